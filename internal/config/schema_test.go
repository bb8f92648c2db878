package config

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// parseBody is a helper that parses HCL source into a body for Decode tests.
func parseBody(t *testing.T, src string) hcl.Body {
	t.Helper()
	file, diags := hclparse.NewParser().ParseHCL([]byte(src), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	return file.Body
}

func TestSchema_KeysKeepInsertionOrder(t *testing.T) {
	t.Parallel()
	s := NewSchema("demo")
	s.Set("enabled", Boolean{})
	s.Set("hostname", Hostname{})
	s.Set("port", Port{})

	assert.Equal(t, []string{"enabled", "hostname", "port"}, s.Keys())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "demo", s.Section())
}

func TestSchema_SetReplacesWithoutReordering(t *testing.T) {
	t.Parallel()
	s := NewSchema("demo")
	s.Set("enabled", Boolean{})
	s.Set("timeout", Integer{})
	s.Set("enabled", Boolean{})

	assert.Equal(t, []string{"enabled", "timeout"}, s.Keys())
	assert.IsType(t, Boolean{}, s.Get("enabled"))
	assert.Nil(t, s.Get("unknown"))
}

func TestSchema_Decode(t *testing.T) {
	t.Parallel()
	s := NewSchema("demo")
	s.Set("enabled", Boolean{})
	s.Set("port", Port{})
	s.Set("hosts", List{Of: Hostname{}})

	values, err := s.Decode(parseBody(t, `
		enabled = true
		port    = 6680
		hosts   = ["a.example.com", "b.example.com"]
	`))
	require.NoError(t, err)

	assert.Equal(t, cty.True, values["enabled"])
	port, _ := values["port"].AsBigFloat().Int64()
	assert.EqualValues(t, 6680, port)
	assert.Equal(t, 2, values["hosts"].LengthInt())
}

func TestSchema_DecodeRejectsUnknownOption(t *testing.T) {
	t.Parallel()
	s := NewSchema("demo")
	s.Set("enabled", Boolean{})

	_, err := s.Decode(parseBody(t, `volume = 11`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown option 'volume'")
}

func TestSchema_DecodeRejectsWrongType(t *testing.T) {
	t.Parallel()
	s := NewSchema("demo")
	s.Set("enabled", Boolean{})

	_, err := s.Decode(parseBody(t, `enabled = "maybe"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enabled")
}

func TestValueKinds_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kind    Value
		value   cty.Value
		wantErr bool
	}{
		{"port in range", Port{}, cty.NumberIntVal(6680), false},
		{"port negative", Port{}, cty.NumberIntVal(-1), true},
		{"port too large", Port{}, cty.NumberIntVal(70000), true},
		{"hostname empty", Hostname{}, cty.StringVal(""), true},
		{"hostname ok", Hostname{}, cty.StringVal("localhost"), false},
		{"integer fractional", Integer{}, cty.NumberFloatVal(1.5), true},
		{"integer whole", Integer{}, cty.NumberIntVal(42), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.kind.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValueKinds_Types(t *testing.T) {
	t.Parallel()
	assert.Equal(t, cty.Bool, Boolean{}.Type())
	assert.Equal(t, cty.String, Secret{}.Type())
	assert.Equal(t, cty.List(cty.String), List{Of: String{}}.Type())
}
