package app

import (
	"bytes"
	"sync"
	"testing"

	"github.com/vk/plughub/internal/loader"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest bootstraps an app against the given namespace with debug
// logging captured in a SafeBuffer, for tests in this and other packages.
func SetupAppTest(t *testing.T, ns loader.Namespace) (*App, *SafeBuffer) {
	t.Helper()

	out := &SafeBuffer{}
	appConfig, err := NewConfig(Config{LogLevel: "debug", LogFormat: "text"})
	if err != nil {
		t.Fatalf("failed to build app config: %v", err)
	}
	return NewApp(out, appConfig, ns), out
}
