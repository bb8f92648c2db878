package siobridge

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/plughub/internal/component"
	"github.com/vk/plughub/internal/config"
	"github.com/vk/plughub/internal/ctxlog"
	"github.com/vk/plughub/internal/registry"
)

// settings is the bridge's decoded config section.
type settings struct {
	url       string
	namespace string
	event     string
	interval  time.Duration
	insecure  bool
}

// readSettings extracts the bridge settings from the effective config.
func readSettings(model *config.Model) (*settings, error) {
	rawURL, ok := model.String("siobridge", "url")
	if !ok || rawURL == "" {
		return nil, fmt.Errorf("siobridge: url is not configured")
	}
	namespace, _ := model.String("siobridge", "namespace")
	if namespace == "" {
		namespace = "/"
	}
	event, _ := model.String("siobridge", "event")
	if event == "" {
		event = "plughub:heartbeat"
	}
	interval, ok := model.Int("siobridge", "interval")
	if !ok || interval <= 0 {
		interval = 30
	}
	insecure, _ := model.Bool("siobridge", "insecure_skip_verify")

	return &settings{
		url:       rawURL,
		namespace: namespace,
		event:     event,
		interval:  time.Duration(interval) * time.Second,
		insecure:  insecure,
	}, nil
}

// offer hands an error to a result channel without blocking. Socket.io
// callbacks run on the client's goroutines and may fire again after the
// single buffered slot is taken; only the first error matters.
func offer(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

// bridge is the frontend component emitting heartbeats to a socket.io server.
type bridge struct {
	settings *settings
}

// newBridge builds the bridge component from the effective config.
func newBridge(model *config.Model, _ *registry.Registry) (component.Runnable, error) {
	s, err := readSettings(model)
	if err != nil {
		return nil, err
	}
	return &bridge{settings: s}, nil
}

// connect dials the configured socket.io server and returns the namespace
// socket. The caller owns disconnection.
func connect(s *settings) (*socket.Socket, error) {
	parsedURL, err := url.Parse(s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if s.insecure {
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	return manager.Socket(s.namespace, opts), nil
}

// Run connects to the configured server and emits a heartbeat event every
// interval until the context is cancelled. A failed connection attempt fails
// the component; reconnect policy is left to the host restarting it.
func (b *bridge) Run(ctx context.Context) error {
	s := b.settings
	logger := ctxlog.FromContext(ctx).With("frontend", "siobridge", "url", s.url, "event", s.event)

	var isConnected atomic.Bool
	connErr := make(chan error, 1)

	io, err := connect(s)
	if err != nil {
		return err
	}
	defer func() {
		logger.Debug("Disconnecting socket client.")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Info("Connected to socket.io server.", "namespace", s.namespace, "sid", io.Id())
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				offer(connErr, e)
				return
			}
		}
		offer(connErr, fmt.Errorf("connection failed"))
	})

	io.Connect()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-connErr:
			return fmt.Errorf("siobridge: %w", err)
		case <-ticker.C:
			if !isConnected.Load() {
				logger.Warn("Skipping heartbeat, not connected yet.")
				continue
			}
			io.Emit(s.event, map[string]any{
				"source": "plughub",
				"ts":     time.Now().UTC().Format(time.RFC3339),
			})
			logger.Debug("Heartbeat emitted.")
		}
	}
}
