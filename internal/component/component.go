// Package component defines the runtime contract for components that
// extensions register under the host-reserved "frontend" and "backend"
// registry keys.
package component

import (
	"context"

	"github.com/vk/plughub/internal/config"
	"github.com/vk/plughub/internal/registry"
)

// Runnable is a long-lived component started by the host after composition.
// Run blocks until the component stops or the context is cancelled; a
// cancelled context is a normal shutdown and must not be returned as an
// error.
type Runnable interface {
	Run(ctx context.Context) error
}

// Factory builds a component instance from the effective configuration model
// and the shared registry. The host invokes factories registered under the
// "frontend" and "backend" keys when assembling its runtime topology; the
// registry is read-only by then and safe to retain for concurrent reads.
type Factory func(model *config.Model, reg *registry.Registry) (Runnable, error)
