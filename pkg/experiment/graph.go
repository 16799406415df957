package experiment

import (
	"context"

	"github.com/matzehuels/labutil/pkg/dag"
	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/dag/transform"
	"github.com/matzehuels/labutil/pkg/render/nodelink"
)

// Node metadata keys set by [Config.Graph].
const (
	MetaValues     = "values"
	MetaDescribing = nodelink.MetaHighlight
)

// Graph returns the dependency graph with edges from each dependency to its
// dependents. Node rows hold the dependency depth; node metadata holds the
// longest value list and whether the parameter is describing.
func (c *Config) Graph() (*dag.DAG, error) {
	g := c.dependencyGraph()
	if err := transform.AssignLayers(g); err != nil {
		// New rejects cycles.
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "layer dependency graph")
	}
	for _, n := range g.Nodes() {
		n.Meta[MetaValues] = c.maxValues[n.ID]
		n.Meta[MetaDescribing] = c.describing[n.ID]
	}
	return g, nil
}

// DOT returns the dependency graph in Graphviz DOT format. Describing
// parameters are highlighted.
func (c *Config) DOT(detailed bool) (string, error) {
	g, err := c.Graph()
	if err != nil {
		return "", err
	}
	return nodelink.ToDOT(g, nodelink.Options{Detailed: detailed}), nil
}

// RenderGraph renders the dependency graph as "svg", "png", "jpg" or "dot".
func (c *Config) RenderGraph(ctx context.Context, format string, detailed bool) ([]byte, error) {
	dot, err := c.DOT(detailed)
	if err != nil {
		return nil, err
	}
	return nodelink.Render(ctx, dot, format)
}
