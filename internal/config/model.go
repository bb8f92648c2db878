package config

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified representation of the host's effective configuration:
// one section of decoded option values per extension, defaults overlaid with
// user config. It is built once at bootstrap and treated as read-only
// afterwards.
type Model struct {
	sections map[string]map[string]cty.Value
}

// NewModel creates an empty configuration model.
func NewModel() *Model {
	return &Model{
		sections: make(map[string]map[string]cty.Value),
	}
}

// Merge overlays the given option values onto the named section, creating
// the section if needed. Later merges win per option.
func (m *Model) Merge(section string, values map[string]cty.Value) {
	dst, ok := m.sections[section]
	if !ok {
		dst = make(map[string]cty.Value, len(values))
		m.sections[section] = dst
	}
	for name, val := range values {
		dst[name] = val
	}
}

// Section returns the decoded option values for a section, or nil if the
// section is absent.
func (m *Model) Section(name string) map[string]cty.Value {
	return m.sections[name]
}

// HasSection reports whether the named section exists.
func (m *Model) HasSection(name string) bool {
	_, ok := m.sections[name]
	return ok
}

// Sections returns all section names in lexical order.
func (m *Model) Sections() []string {
	names := make([]string, 0, len(m.sections))
	for name := range m.sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Enabled reports whether the named section exists and its "enabled" option
// is true. A missing section or option means disabled.
func (m *Model) Enabled(name string) bool {
	val, ok := m.sections[name]["enabled"]
	return ok && val.Type() == cty.Bool && val.True()
}

// Bool returns a section's option as a bool. The second return value is
// false when the section or option is absent or not a boolean.
func (m *Model) Bool(section, option string) (bool, bool) {
	val, ok := m.sections[section][option]
	if !ok || val.Type() != cty.Bool {
		return false, false
	}
	return val.True(), true
}

// String returns a section's option as a Go string. The second return value
// is false when the section or option is absent or not a string.
func (m *Model) String(section, option string) (string, bool) {
	val, ok := m.sections[section][option]
	if !ok || val.Type() != cty.String {
		return "", false
	}
	return val.AsString(), true
}

// Int returns a section's option as an int. The second return value is false
// when the section or option is absent or not a whole number.
func (m *Model) Int(section, option string) (int, bool) {
	val, ok := m.sections[section][option]
	if !ok || val.Type() != cty.Number {
		return 0, false
	}
	n, acc := val.AsBigFloat().Int64()
	if acc != 0 {
		return 0, false
	}
	return int(n), true
}
