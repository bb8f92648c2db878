package siobridge

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/plughub/extensions/httpapi"
	"github.com/vk/plughub/internal/component"
	"github.com/vk/plughub/internal/config"
	"github.com/vk/plughub/internal/ctxlog"
	"github.com/vk/plughub/internal/extension"
	"github.com/vk/plughub/internal/loader"
	"github.com/vk/plughub/internal/registry"
	"github.com/vk/plughub/internal/validator"
)

// badSchemeExtension builds a bridge whose compiled-in URL the environment
// check must reject.
func badSchemeExtension() *Extension {
	ext := New().(*Extension)
	ext.url = "ftp://127.0.0.1:3000"
	return ext
}

// loadModel decodes the extension's own defaults into a config model.
func loadModel(t *testing.T) *config.Model {
	t.Helper()
	ext := New().(*Extension)
	model, err := config.Load(context.Background(), []config.Defaults{{
		Section: "siobridge",
		Text:    ext.DefaultConfig(),
		Schema:  ext.ConfigSchema(),
	}})
	require.NoError(t, err)
	return model
}

func TestExtension_Contract(t *testing.T) {
	t.Parallel()
	ext := New()

	assert.Equal(t, "plughub-siobridge", ext.DistName())
	assert.Equal(t, "siobridge", ext.ExtName())
	assert.Equal(t, Version, ext.Version())
	assert.NotEmpty(t, ext.DefaultConfig())
	assert.NoError(t, ext.ValidateEnvironment())

	cmd := ext.Command()
	require.NotNil(t, cmd)
	assert.Equal(t, "sio-emit", cmd.Name)
}

func TestValidateEnvironment_RejectsUnsupportedScheme(t *testing.T) {
	t.Parallel()

	err := badSchemeExtension().ValidateEnvironment()

	require.Error(t, err)
	var extErr *extension.Error
	require.True(t, errors.As(err, &extErr),
		"an unfit environment must be reported as an extension error, not a bug")
	assert.Contains(t, extErr.Message, "ftp")
}

func TestValidateEnvironment_BadSchemeDisablesExtension(t *testing.T) {
	t.Parallel()

	ext := badSchemeExtension()
	d := &loader.Descriptor{
		Extension:      ext,
		EntryPoint:     loader.EntryPoint{Name: "siobridge"},
		ConfigSchema:   ext.ConfigSchema(),
		ConfigDefaults: ext.DefaultConfig(),
	}

	out := &bytes.Buffer{}
	ctx := ctxlog.WithLogger(context.Background(),
		slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})))

	assert.False(t, validator.New(loader.NewStaticNamespace()).Validate(ctx, d))
	assert.Contains(t, out.String(), "level=INFO")
	assert.Contains(t, out.String(), "Disabled extension.")
}

func TestExtension_DisabledByDefault(t *testing.T) {
	t.Parallel()
	assert.False(t, loadModel(t).Enabled("siobridge"),
		"the bridge needs a server to talk to and must not start on defaults")
}

func TestEntryPoint_DeclaresHTTPAPIDependency(t *testing.T) {
	t.Parallel()
	ep := EntryPoint()

	require.Len(t, ep.Requires, 1)
	assert.Equal(t, "plughub-httpapi", ep.Requires[0].Name)
	assert.True(t, ep.Requires[0].Satisfied(httpapi.Version))
}

func TestSetup_RegistersBridgeAndStatusRoute(t *testing.T) {
	t.Parallel()
	reg := registry.New()

	require.NoError(t, New().Setup(reg))

	require.Len(t, reg.Get("frontend"), 1)
	_, ok := reg.Get("frontend")[0].(component.Factory)
	assert.True(t, ok, "frontend entry must be a component factory")

	require.Len(t, reg.Get(httpapi.RoutesKey), 1)
	_, ok = reg.Get(httpapi.RoutesKey)[0].(httpapi.RouteProvider)
	assert.True(t, ok, "routes entry must satisfy the httpapi extension point")
}

func TestReadSettings(t *testing.T) {
	t.Parallel()

	s, err := readSettings(loadModel(t))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:3000", s.url)
	assert.Equal(t, "/", s.namespace)
	assert.Equal(t, "plughub:heartbeat", s.event)
	assert.Equal(t, 30*time.Second, s.interval)
	assert.False(t, s.insecure)
}

func TestReadSettings_MissingURL(t *testing.T) {
	t.Parallel()

	_, err := readSettings(config.NewModel())
	require.Error(t, err)
}

func TestOffer_DropsErrorsBeyondTheFirst(t *testing.T) {
	t.Parallel()

	ch := make(chan error, 1)
	first := errors.New("first")

	offer(ch, first)
	offer(ch, errors.New("second"))
	offer(ch, errors.New("third"))

	assert.ErrorIs(t, <-ch, first, "only the first error should be delivered")
	assert.Empty(t, ch)
}

func TestRunEmit_RequiresEvent(t *testing.T) {
	t.Parallel()

	err := runEmit(context.Background(), loadModel(t), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")
}
