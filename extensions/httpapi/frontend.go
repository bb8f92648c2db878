package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vk/plughub/internal/component"
	"github.com/vk/plughub/internal/config"
	"github.com/vk/plughub/internal/ctxlog"
	"github.com/vk/plughub/internal/registry"
)

// RouteProvider is the contract for values registered under the
// "httpapi:routes" key. Mount is called once while the API router is built,
// before the server starts.
type RouteProvider interface {
	Mount(r *mux.Router)
}

// frontend is the HTTP API server component.
type frontend struct {
	addr string
	reg  *registry.Registry
}

// newFrontend builds the HTTP API component from the effective config.
func newFrontend(model *config.Model, reg *registry.Registry) (component.Runnable, error) {
	hostname, ok := model.String("httpapi", "hostname")
	if !ok {
		return nil, fmt.Errorf("httpapi: hostname is not configured")
	}
	port, ok := model.Int("httpapi", "port")
	if !ok {
		return nil, fmt.Errorf("httpapi: port is not configured")
	}
	return &frontend{
		addr: net.JoinHostPort(hostname, fmt.Sprintf("%d", port)),
		reg:  reg,
	}, nil
}

// Run serves the API until the context is cancelled.
func (f *frontend) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("frontend", "httpapi")

	server := &http.Server{
		Addr:              f.addr,
		Handler:           f.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening.", "addr", f.addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Debug("Shutting down HTTP API.")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("httpapi: %w", err)
	}
}

// router assembles the API router, including routes contributed by other
// extensions through the "httpapi:routes" extension point.
func (f *frontend) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/status", f.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/registry", f.handleRegistry).Methods(http.MethodGet)

	for _, c := range f.reg.Get(RoutesKey) {
		if provider, ok := c.(RouteProvider); ok {
			provider.Mount(r)
		}
	}
	return r
}

func (f *frontend) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"name":          "plughub",
		"httpapi":       Version,
		"registry_keys": f.reg.Keys(),
	})
}

func (f *frontend) handleRegistry(w http.ResponseWriter, _ *http.Request) {
	counts := make(map[string]int, f.reg.Len())
	for _, key := range f.reg.Keys() {
		counts[key] = len(f.reg.Get(key))
	}
	writeJSON(w, counts)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
