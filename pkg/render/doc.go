// Package render groups the diagram renderers used by labutil.
//
// Figures of experiment results are drawn by [plotfns] with gonum/plot.
// Graph diagrams live here: the [nodelink] subpackage renders directed
// graphs, such as experiment parameter dependencies, through Graphviz.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.Render(ctx, dot, "svg")
//
// [plotfns]: github.com/matzehuels/labutil/pkg/plotfns
// [nodelink]: github.com/matzehuels/labutil/pkg/render/nodelink
package render
