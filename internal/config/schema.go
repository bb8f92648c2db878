package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Schema describes one extension's configuration surface: an ordered mapping
// from option name to its config value type. The section name matches the
// owning extension's name and is used for error reporting and config lookup.
type Schema struct {
	section string
	keys    []string
	values  map[string]Value
}

// NewSchema creates an empty schema for the named config section.
func NewSchema(section string) *Schema {
	return &Schema{
		section: section,
		values:  make(map[string]Value),
	}
}

// Section returns the config section name this schema describes.
func (s *Schema) Section() string {
	return s.section
}

// Set adds or replaces the value type for an option. First insertion fixes
// the option's position in the schema's order.
func (s *Schema) Set(name string, v Value) {
	if _, ok := s.values[name]; !ok {
		s.keys = append(s.keys, name)
	}
	s.values[name] = v
}

// Get returns the value type for an option, or nil if the option is unknown.
func (s *Schema) Get(name string) Value {
	return s.values[name]
}

// Keys returns the option names in insertion order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Len returns the number of options in the schema.
func (s *Schema) Len() int {
	return len(s.keys)
}

// Decode evaluates all attributes of an HCL body against the schema,
// converting each option to its declared type and applying per-kind
// validation. Options absent from the body are simply not present in the
// result; unknown options and failed conversions are errors.
func (s *Schema) Decode(body hcl.Body) (map[string]cty.Value, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid config section '%s': %w", s.section, diags)
	}

	var errs []string
	out := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		kind := s.values[name]
		if kind == nil {
			errs = append(errs, fmt.Sprintf("unknown option '%s'", name))
			continue
		}

		raw, valDiags := attr.Expr.Value(nil)
		if valDiags.HasErrors() {
			errs = append(errs, fmt.Sprintf("option '%s': %s", name, valDiags.Error()))
			continue
		}

		val, err := convert.Convert(raw, kind.Type())
		if err != nil {
			errs = append(errs, fmt.Sprintf("option '%s': %v", name, err))
			continue
		}
		if val.IsNull() {
			errs = append(errs, fmt.Sprintf("option '%s': must not be null", name))
			continue
		}
		if err := kind.Validate(val); err != nil {
			errs = append(errs, fmt.Sprintf("option '%s': %v", name, err))
			continue
		}
		out[name] = val
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid config section '%s':\n- %s", s.section, strings.Join(errs, "\n- "))
	}
	return out, nil
}
