// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about generation runs and layout store operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The prom subpackage provides a Prometheus implementation of both interfaces.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := prom.New()
//	    observability.SetGeneratorHooks(m)
//	    observability.SetStoreHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Generator().OnUnitComplete(ctx, base, 90, "updated", duration, nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Generator Hooks
// =============================================================================

// GeneratorHooks receives events from generation runs.
type GeneratorHooks interface {
	// OnRunStart records the start of a run over units (base, angle) pairs.
	OnRunStart(ctx context.Context, runID string, units int)

	// OnUnitComplete records the outcome of one (base, angle) unit.
	OnUnitComplete(ctx context.Context, base string, angle int, status string, duration time.Duration, err error)

	// OnRunComplete records the end of a run.
	OnRunComplete(ctx context.Context, runID string, duration time.Duration, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from layout store operations.
type StoreHooks interface {
	// OnRead records a read of a base or variant document.
	OnRead(ctx context.Context, backend, kind string, hit bool)

	// OnWrite records a variant write.
	OnWrite(ctx context.Context, backend string, size int)

	// OnDelete records a variant deletion.
	OnDelete(ctx context.Context, backend string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGeneratorHooks is a no-op implementation of GeneratorHooks.
type NoopGeneratorHooks struct{}

func (NoopGeneratorHooks) OnRunStart(context.Context, string, int) {}
func (NoopGeneratorHooks) OnUnitComplete(context.Context, string, int, string, time.Duration, error) {
}
func (NoopGeneratorHooks) OnRunComplete(context.Context, string, time.Duration, error) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnRead(context.Context, string, string, bool) {}
func (NoopStoreHooks) OnWrite(context.Context, string, int)         {}
func (NoopStoreHooks) OnDelete(context.Context, string)             {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	generatorHooks GeneratorHooks = NoopGeneratorHooks{}
	storeHooks     StoreHooks     = NoopStoreHooks{}
	hooksMu        sync.RWMutex
)

// SetGeneratorHooks registers custom generator hooks.
// This should be called once at application startup before any runs.
func SetGeneratorHooks(h GeneratorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generatorHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Generator returns the registered generator hooks.
func Generator() GeneratorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generatorHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	generatorHooks = NoopGeneratorHooks{}
	storeHooks = NoopStoreHooks{}
}
