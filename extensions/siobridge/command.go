package siobridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zishang520/engine.io/v2/types"

	"github.com/vk/plughub/internal/command"
	"github.com/vk/plughub/internal/config"
	"github.com/vk/plughub/internal/ctxlog"
)

// Command exposes the one-off emitter: `plughub sio-emit <event> [json]`.
func (e *Extension) Command() *command.Command {
	return &command.Command{
		Name: "sio-emit",
		Help: "Emit a single event to the configured socket.io server.",
		Run:  runEmit,
	}
}

// runEmit connects with the bridge's settings, emits one event, and exits.
func runEmit(ctx context.Context, model *config.Model, args []string) error {
	logger := ctxlog.FromContext(ctx)

	if len(args) < 1 {
		return fmt.Errorf("usage: sio-emit <event> [json-payload]")
	}
	event := args[0]

	var payload any
	if len(args) > 1 {
		if err := json.Unmarshal([]byte(args[1]), &payload); err != nil {
			return fmt.Errorf("invalid payload: %w", err)
		}
	}

	s, err := readSettings(model)
	if err != nil {
		return err
	}

	io, err := connect(s)
	if err != nil {
		return err
	}
	defer io.Disconnect()

	done := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		logger.Debug("Connected, emitting event.", "event", event)
		if payload != nil {
			io.Emit(event, payload)
		} else {
			io.Emit(event)
		}
		offer(done, nil)
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				offer(done, e)
				return
			}
		}
		offer(done, fmt.Errorf("connection failed"))
	})

	io.Connect()

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	select {
	case <-opCtx.Done():
		return fmt.Errorf("timed out while waiting for initial connection")
	case err := <-done:
		return err
	}
}
