package plotfns

import (
	"os"
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/observability"
	"github.com/matzehuels/labutil/pkg/plot"
	"github.com/matzehuels/labutil/pkg/table"
)

// Init recreates the output directory, deleting whatever exists at that
// path, and starts a fresh drawing session.
func Init(s *plot.State) error {
	if err := resetOutputDir(s.OutputDir); err != nil {
		return err
	}
	_, err := newSession(s)
	return err
}

// Fini logs a summary of the run.
func Fini(s *plot.State) error {
	s.Logger.Debug("plot done", "run", s.RunID, "points", s.Points, "dir", s.OutputDir)
	return nil
}

// BeforeFigure starts collecting subplots for a new figure.
func BeforeFigure(s *plot.State) error {
	ss, err := sessionOf(s)
	if err != nil {
		return err
	}
	title, _, err := s.Label(plot.LayerFigure)
	if err != nil {
		return errs.Wrap(errs.ErrCodeCallback, err, "figure title")
	}
	ss.fig = &figure{title: title}
	return nil
}

// AfterFigure writes the figure's subplots to the output directory, named
// by [FigureFilename]. A figure without subplots writes nothing.
func AfterFigure(s *plot.State) error {
	ss, err := sessionOf(s)
	if err != nil {
		return err
	}
	fig := ss.fig
	ss.fig = nil
	if fig == nil || len(fig.plots) == 0 {
		s.Logger.Warn("figure has no subplots", "row", s.Row)
		return nil
	}

	path := filepath.Join(s.OutputDir, FigureFilename(s, ss.opts.Format))
	if err := SaveFigure(path, fig.plots, figureOptions(ss.opts)...); err != nil {
		return errs.Wrap(errs.ErrCodeCallback, err, "save figure %s", path)
	}
	observability.Plot().OnFigureWritten(s.Context(), s.RunID, path, len(fig.plots))
	s.Logger.Info("figure written", "path", path, "subplots", len(fig.plots))
	return nil
}

// FigureFilename names the figure of the current row: one "<column>_<value>"
// segment per Figure grouping column joined by "__", or "plot" when the
// Figure layer groups by nothing, followed by "." and ext.
func FigureFilename(s *plot.State, ext string) string {
	name := "plot"
	if cols := s.Groups[plot.LayerFigure]; s.HasLayer(plot.LayerFigure) && len(cols) > 0 {
		parts := make([]string, len(cols))
		for i, c := range cols {
			parts[i] = c + "_" + table.Format(s.Value(c))
		}
		name = strings.Join(parts, "__")
	}
	return pathSafe.Replace(name) + "." + ext
}

var pathSafe = strings.NewReplacer("/", "-", `\`, "-", "\x00", "")

func resetOutputDir(dir string) error {
	if err := errs.ValidateOutputDir(dir); err != nil {
		return err
	}
	info, err := os.Lstat(dir)
	switch {
	case err == nil && info.IsDir():
		err = os.RemoveAll(dir)
	case err == nil:
		err = os.Remove(dir)
	case os.IsNotExist(err):
		err = nil
	}
	if err != nil {
		return errs.Wrap(errs.ErrCodeCallback, err, "remove %s", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrap(errs.ErrCodeCallback, err, "create %s", dir)
	}
	return nil
}
