// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about metadata extraction and export captures.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCaptureHooks(&myCaptureHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Capture().OnExportStart(ctx, id, debug)
//	// ... run the state machine ...
//	observability.Capture().OnExportComplete(ctx, id, size, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Capture Hooks
// =============================================================================

// CaptureHooks receives events from the capture state machine.
// States are passed by name ("idle", "staging", "resource-wait", ...).
type CaptureHooks interface {
	OnExportStart(ctx context.Context, id string, debug bool)
	OnStateChange(ctx context.Context, id, from, to string)
	OnExportComplete(ctx context.Context, id string, size int, duration time.Duration, err error)

	// OnExportRejected records a capture refused because another was running.
	OnExportRejected(ctx context.Context)
}

// =============================================================================
// Metadata Hooks
// =============================================================================

// MetadataHooks receives events from metadata extraction.
type MetadataHooks interface {
	// OnExtract records an extraction attempt. fields is the number of
	// non-empty normalized fields; err is the absorbed extraction error.
	OnExtract(ctx context.Context, name string, fields int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCaptureHooks is a no-op implementation of CaptureHooks.
type NoopCaptureHooks struct{}

func (NoopCaptureHooks) OnExportStart(context.Context, string, bool)           {}
func (NoopCaptureHooks) OnStateChange(context.Context, string, string, string) {}
func (NoopCaptureHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopCaptureHooks) OnExportRejected(context.Context) {}

// NoopMetadataHooks is a no-op implementation of MetadataHooks.
type NoopMetadataHooks struct{}

func (NoopMetadataHooks) OnExtract(context.Context, string, int, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	captureHooks  CaptureHooks  = NoopCaptureHooks{}
	metadataHooks MetadataHooks = NoopMetadataHooks{}
	hooksMu       sync.RWMutex
)

// SetCaptureHooks registers custom capture hooks.
// This should be called once at application startup before any export.
func SetCaptureHooks(h CaptureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		captureHooks = h
	}
}

// SetMetadataHooks registers custom metadata hooks.
func SetMetadataHooks(h MetadataHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		metadataHooks = h
	}
}

// Capture returns the registered capture hooks.
func Capture() CaptureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return captureHooks
}

// Metadata returns the registered metadata hooks.
func Metadata() MetadataHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return metadataHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	captureHooks = NoopCaptureHooks{}
	metadataHooks = NoopMetadataHooks{}
}
