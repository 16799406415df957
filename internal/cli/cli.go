// Package cli implements the labutil command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labutil/pkg/plot"
	"github.com/matzehuels/labutil/pkg/plotfns"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completions.
	appName = "labutil"

	// previewRows is the default number of rows "table show" prints.
	previewRows = 20
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Registry holds the presets "plot" and "presets" work with.
	Registry *plot.Registry

	// interactive reports whether the preset picker may be shown.
	interactive func() bool
}

// New creates a new CLI instance with a default logger and the built-in
// preset library.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		Registry:    plotfns.NewRegistry(),
		interactive: isTerminal,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// presets returns the registered presets in display order: the built-in
// library first, then anything else registered by name.
func (c *CLI) presets() []plot.Preset {
	var out []plot.Preset
	seen := make(map[string]bool)
	for _, p := range plotfns.Presets() {
		if rp, ok := c.Registry.Lookup(p.Name); ok {
			out = append(out, rp)
			seen[p.Name] = true
		}
	}
	for _, name := range c.Registry.Names() {
		if seen[name] {
			continue
		}
		p, _ := c.Registry.Lookup(name)
		out = append(out, p)
	}
	return out
}
