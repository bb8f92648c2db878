package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirement_Satisfied(t *testing.T) {
	t.Parallel()

	tests := []struct {
		constraint string
		version    string
		want       bool
	}{
		{"", "0.0.1", true},
		{">=1.2.0", "1.2.0", true},
		{">=1.2.0", "1.1.9", false},
		{">1.0.0", "1.0.0", false},
		{">1.0.0", "1.0.1", true},
		{"<2.0.0", "1.9.9", true},
		{"<2.0.0", "2.0.0", false},
		{"<=2.0.0", "2.0.0", true},
		{"=1.5.0", "1.5.0", true},
		{"1.5.0", "1.5.0", true},
		{"1.5.0", "1.5.1", false},
		{">=1.2.0", "v1.3.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.constraint+"/"+tt.version, func(t *testing.T) {
			t.Parallel()
			r := Requirement{Name: "dep", Constraint: tt.constraint}
			assert.Equal(t, tt.want, r.Satisfied(tt.version))
		})
	}
}

func TestStaticNamespace_RequireDistinguishesFailures(t *testing.T) {
	t.Parallel()

	ns := NewStaticNamespace()
	ns.Install(Dist{Name: "codecs", Version: "1.1.0", Location: "/opt/plughub/codecs"})

	satisfied := EntryPoint{Name: "demo", Requires: []Requirement{
		{Name: "codecs", Constraint: ">=1.0.0"},
	}}
	require.NoError(t, ns.Require(satisfied))

	missing := EntryPoint{Name: "demo", Requires: []Requirement{
		{Name: "transcoder", Constraint: ">=1.0.0"},
	}}
	err := ns.Require(missing)
	var notFound *DependencyNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Contains(t, err.Error(), "transcoder")

	conflict := EntryPoint{Name: "demo", Requires: []Requirement{
		{Name: "codecs", Constraint: ">=2.0.0"},
	}}
	err = ns.Require(conflict)
	var versionErr *VersionConflictError
	require.True(t, errors.As(err, &versionErr))
	assert.Equal(t, "1.1.0", versionErr.Found.Version)
	assert.Contains(t, err.Error(), "/opt/plughub/codecs")
}

func TestStaticNamespace_ResolveNilRef(t *testing.T) {
	t.Parallel()

	ns := NewStaticNamespace()
	_, err := ns.Resolve(nil)
	assert.Error(t, err)

	ref := "anything"
	got, err := ns.Resolve(ref)
	require.NoError(t, err)
	assert.Equal(t, ref, got)
}

func TestStaticNamespace_EnumerateReturnsCopy(t *testing.T) {
	t.Parallel()

	ns := NewStaticNamespace()
	ns.Add(EntryPoint{Name: "alpha"})

	entries := ns.Enumerate()
	entries[0].Name = "mutated"

	assert.Equal(t, "alpha", ns.Enumerate()[0].Name)
}
