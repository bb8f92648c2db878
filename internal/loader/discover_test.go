package loader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/plughub/internal/extension"
	"github.com/vk/plughub/internal/registry"
)

// fakeExt is a minimal well-formed extension for discovery tests.
type fakeExt struct {
	extension.Base
	defaults     string
	panicOnCalls bool
}

func (f *fakeExt) DefaultConfig() string {
	if f.panicOnCalls {
		panic("defaults exploded")
	}
	return f.defaults
}

func (f *fakeExt) Setup(*registry.Registry) error { return nil }

// goodFactory returns a factory producing a well-formed extension named name.
func goodFactory(name string) extension.Factory {
	return func() extension.Extension {
		return &fakeExt{
			Base:     extension.Base{Dist: "plughub-" + name, Name: name, Ver: "1.0.0"},
			defaults: "enabled = true\n",
		}
	}
}

func discoverNames(descs []*Descriptor) []string {
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Extension.ExtName()
	}
	return names
}

func TestDiscover_ReturnsAllConstructibleCandidates(t *testing.T) {
	t.Parallel()

	ns := NewStaticNamespace()
	ns.Add(EntryPoint{Name: "beta", Ref: goodFactory("beta")})
	ns.Add(EntryPoint{Name: "alpha", Ref: goodFactory("alpha")})
	ns.Add(EntryPoint{Name: "gamma", Ref: goodFactory("gamma")})

	descs := Discover(context.Background(), ns)

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, discoverNames(descs),
		"candidates must be processed in name order")
	for _, d := range descs {
		assert.NotNil(t, d.ConfigSchema)
		assert.NotEmpty(t, d.ConfigDefaults)
		assert.Nil(t, d.Command)
	}
}

func TestDiscover_SkipsOnlyThePanickingCandidate(t *testing.T) {
	t.Parallel()

	panicking := extension.Factory(func() extension.Extension {
		panic("instantiation exploded")
	})

	ns := NewStaticNamespace()
	ns.Add(EntryPoint{Name: "alpha", Ref: goodFactory("alpha")})
	ns.Add(EntryPoint{Name: "boom", Ref: panicking})
	ns.Add(EntryPoint{Name: "gamma", Ref: goodFactory("gamma")})

	var descs []*Descriptor
	require.NotPanics(t, func() {
		descs = Discover(context.Background(), ns)
	})
	assert.Equal(t, []string{"alpha", "gamma"}, discoverNames(descs))
}

func TestDiscover_SkipsNonFactoryReference(t *testing.T) {
	t.Parallel()

	ns := NewStaticNamespace()
	ns.Add(EntryPoint{Name: "bogus", Ref: "not a factory"})
	ns.Add(EntryPoint{Name: "alpha", Ref: goodFactory("alpha")})

	descs := Discover(context.Background(), ns)
	assert.Equal(t, []string{"alpha"}, discoverNames(descs))
}

func TestDiscover_SkipsUnresolvableReference(t *testing.T) {
	t.Parallel()

	ns := NewStaticNamespace()
	ns.Add(EntryPoint{Name: "ghost", Ref: nil})

	assert.Empty(t, Discover(context.Background(), ns))
}

func TestDiscover_SkipsCandidateMissingMetadata(t *testing.T) {
	t.Parallel()

	noVersion := extension.Factory(func() extension.Extension {
		return &fakeExt{
			Base:     extension.Base{Dist: "plughub-anon", Name: "anon"},
			defaults: "enabled = true\n",
		}
	})

	ns := NewStaticNamespace()
	ns.Add(EntryPoint{Name: "anon", Ref: noVersion})

	assert.Empty(t, Discover(context.Background(), ns))
}

func TestDiscover_SkipsCandidatePanickingInMetadataCall(t *testing.T) {
	t.Parallel()

	exploding := extension.Factory(func() extension.Extension {
		return &fakeExt{
			Base:         extension.Base{Dist: "plughub-bad", Name: "bad", Ver: "1.0.0"},
			panicOnCalls: true,
		}
	})

	ns := NewStaticNamespace()
	ns.Add(EntryPoint{Name: "bad", Ref: exploding})
	ns.Add(EntryPoint{Name: "alpha", Ref: goodFactory("alpha")})

	descs := Discover(context.Background(), ns)
	assert.Equal(t, []string{"alpha"}, discoverNames(descs))
}

func TestDiscover_SkipsNilInstance(t *testing.T) {
	t.Parallel()

	nilFactory := extension.Factory(func() extension.Extension { return nil })

	ns := NewStaticNamespace()
	ns.Add(EntryPoint{Name: "empty", Ref: nilFactory})

	assert.Empty(t, Discover(context.Background(), ns))
}

func TestDiscover_IsRepeatable(t *testing.T) {
	t.Parallel()

	ns := NewStaticNamespace()
	ns.Add(EntryPoint{Name: "beta", Ref: goodFactory("beta")})
	ns.Add(EntryPoint{Name: "alpha", Ref: goodFactory("alpha")})

	first := discoverNames(Discover(context.Background(), ns))
	second := discoverNames(Discover(context.Background(), ns))
	assert.Equal(t, first, second)
}
