// Package transform provides orderings and layer assignments over a
// [dag.DAG].
//
// # Topological Order
//
// [TopoSort] returns every node after all of its predecessors using Kahn's
// algorithm. Among the nodes that are ready at the same time, the one added
// to the graph first is emitted first, so the result only depends on the
// graph's contents and insertion order.
//
// If the graph has a cycle, TopoSort returns the nodes it could order and
// an error wrapping [dag.ErrGraphHasCycle] that lists the nodes left over.
//
// # Layer Assignment
//
// [AssignLayers] sets each node's Row to its depth: source nodes are at row
// 0 and every other node sits one row below its deepest predecessor. The
// experiment graph renderer uses rows to rank nodes.
//
// [dag.DAG]: github.com/matzehuels/labutil/pkg/dag
package transform
