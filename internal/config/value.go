package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Value is the marker interface implemented by every recognized config value
// type. A schema entry that is not a Value (for example a nil interface) is
// rejected during extension validation.
type Value interface {
	// Type returns the cty type an option of this kind decodes to.
	Type() cty.Type
	// Validate checks a decoded option value against the kind's constraints.
	Validate(v cty.Value) error
}

// Boolean is the config value type for true/false options. The "enabled"
// option every extension must carry is a Boolean.
type Boolean struct{}

func (Boolean) Type() cty.Type { return cty.Bool }

func (Boolean) Validate(cty.Value) error { return nil }

// String is the config value type for free-form text options.
type String struct{}

func (String) Type() cty.Type { return cty.String }

func (String) Validate(cty.Value) error { return nil }

// Integer is the config value type for whole-number options.
type Integer struct{}

func (Integer) Type() cty.Type { return cty.Number }

func (Integer) Validate(v cty.Value) error {
	if _, acc := v.AsBigFloat().Int64(); acc != 0 {
		return fmt.Errorf("value is not a whole number")
	}
	return nil
}

// Hostname is the config value type for host names and addresses. Only
// non-emptiness is enforced; resolvability is a runtime concern.
type Hostname struct{}

func (Hostname) Type() cty.Type { return cty.String }

func (Hostname) Validate(v cty.Value) error {
	if v.AsString() == "" {
		return fmt.Errorf("hostname must not be empty")
	}
	return nil
}

// Port is the config value type for TCP/UDP port options.
type Port struct{}

func (Port) Type() cty.Type { return cty.Number }

func (Port) Validate(v cty.Value) error {
	n, acc := v.AsBigFloat().Int64()
	if acc != 0 || n < 0 || n > 65535 {
		return fmt.Errorf("port must be an integer between 0 and 65535")
	}
	return nil
}

// Secret is the config value type for sensitive text such as passwords and
// tokens. It decodes like String; the distinct kind lets presentation layers
// mask it.
type Secret struct{}

func (Secret) Type() cty.Type { return cty.String }

func (Secret) Validate(cty.Value) error { return nil }

// List is the config value type for ordered collections of a single element
// kind.
type List struct {
	Of Value
}

func (l List) Type() cty.Type { return cty.List(l.Of.Type()) }

func (l List) Validate(v cty.Value) error {
	for it := v.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if err := l.Of.Validate(elem); err != nil {
			return err
		}
	}
	return nil
}
