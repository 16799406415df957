package plotfns

import (
	"github.com/matzehuels/labutil/pkg/plot"
)

// traceLayers are the boundary layers the Trace preset answers to.
var traceLayers = []string{
	plot.LayerFigure,
	plot.LayerSubplot,
	plot.LayerGroup,
	plot.LayerSeries,
	plot.LayerStack,
	"Line",
	"Bar",
	"Hist",
}

// traceCallbacks log every invocation at info level and draw nothing, so a
// layer configuration can be checked without touching the filesystem.
func traceCallbacks() plot.Callbacks {
	cb := plot.Callbacks{
		Init: func(s *plot.State) error {
			s.Logger.Info("Init", "rows", s.Table.Len(), "layers", s.Layers)
			return nil
		},
		Fini: func(s *plot.State) error {
			s.Logger.Info("Fini", "points", s.Points)
			return nil
		},
		Point: func(s *plot.State) error {
			leaf := s.Layers.Leaf()
			s.Logger.Info(leaf, "row", s.Row, "values", s.Values[leaf].String())
			return nil
		},
		Layers: make(map[string]plot.Pair, len(traceLayers)),
	}
	for _, l := range traceLayers {
		cb.Layers[l] = plot.Pair{Before: traceBoundary("+", l), After: traceBoundary("-", l)}
	}
	return cb
}

func traceBoundary(sign, layer string) plot.Fn {
	return func(s *plot.State) error {
		s.Logger.Info(sign+layer, "row", s.Row, "key", s.Values[layer].String())
		return nil
	}
}
