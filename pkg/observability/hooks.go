// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about plot runs, written figures and experiment
// enumeration.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the plotting packages
// never import a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlotHooks(&myPlotHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Plot().OnPlotStart(ctx, runID, preset, rows)
//	// ... iterate rows ...
//	observability.Plot().OnPlotComplete(ctx, runID, points, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Plot Hooks
// =============================================================================

// PlotHooks receives events from the layer-iteration engine and the figure
// writers of the preset library.
type PlotHooks interface {
	// Run events
	OnPlotStart(ctx context.Context, runID, preset string, rows int)
	OnPlotComplete(ctx context.Context, runID string, points int, duration time.Duration, err error)

	// OnFigureWritten records an image file written at a Figure boundary.
	OnFigureWritten(ctx context.Context, runID, path string, subplots int)
}

// =============================================================================
// Experiment Hooks
// =============================================================================

// ExperimentHooks receives events from experiment configuration.
type ExperimentHooks interface {
	// OnConfigBuilt records the outcome of ordering and enumerating a
	// parameter set.
	OnConfigBuilt(ctx context.Context, params, combinations int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPlotHooks is a no-op implementation of PlotHooks.
type NoopPlotHooks struct{}

func (NoopPlotHooks) OnPlotStart(context.Context, string, string, int)                  {}
func (NoopPlotHooks) OnPlotComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPlotHooks) OnFigureWritten(context.Context, string, string, int)              {}

// NoopExperimentHooks is a no-op implementation of ExperimentHooks.
type NoopExperimentHooks struct{}

func (NoopExperimentHooks) OnConfigBuilt(context.Context, int, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	plotHooks       PlotHooks       = NoopPlotHooks{}
	experimentHooks ExperimentHooks = NoopExperimentHooks{}
	hooksMu         sync.RWMutex
)

// SetPlotHooks registers custom plot hooks.
// This should be called once at application startup before any plot runs.
func SetPlotHooks(h PlotHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		plotHooks = h
	}
}

// SetExperimentHooks registers custom experiment hooks.
func SetExperimentHooks(h ExperimentHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		experimentHooks = h
	}
}

// Plot returns the registered plot hooks.
func Plot() PlotHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return plotHooks
}

// Experiment returns the registered experiment hooks.
func Experiment() ExperimentHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return experimentHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	plotHooks = NoopPlotHooks{}
	experimentHooks = NoopExperimentHooks{}
}
