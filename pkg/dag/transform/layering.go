package transform

import (
	"fmt"

	"github.com/matzehuels/labutil/pkg/dag"
)

// CycleError reports the nodes that could not be ordered because they lie
// on, or downstream of, a directed cycle.
type CycleError struct {
	Remaining []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: unordered nodes %v", dag.ErrGraphHasCycle, e.Remaining)
}

// Unwrap allows errors.Is(err, dag.ErrGraphHasCycle).
func (e *CycleError) Unwrap() error { return dag.ErrGraphHasCycle }

// TopoSort returns node IDs so that every edge points forward.
//
// Ties among ready nodes are broken by insertion order. If the graph has a
// cycle the partial order is returned together with a *CycleError.
func TopoSort(g *dag.DAG) ([]string, error) {
	ids := g.NodeIDs()
	inDegree := make(map[string]int, len(ids))
	ready := make([]bool, len(ids))
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
		inDegree[id] = g.InDegree(id)
		ready[i] = inDegree[id] == 0
	}

	order := make([]string, 0, len(ids))
	done := make([]bool, len(ids))
	for {
		next := -1
		for i := range ids {
			if ready[i] && !done[i] {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}
		done[next] = true
		curr := ids[next]
		order = append(order, curr)
		for _, child := range g.Children(curr) {
			inDegree[child]--
			if inDegree[child] == 0 {
				ready[pos[child]] = true
			}
		}
	}

	if len(order) < len(ids) {
		var rest []string
		for i, id := range ids {
			if !done[i] {
				rest = append(rest, id)
			}
		}
		return order, &CycleError{Remaining: rest}
	}
	return order, nil
}

// AssignLayers assigns nodes to rows based on their depth in the graph.
//
// Each node is placed at one plus the maximum row of any of its parents.
// Source nodes are at row 0. Existing row assignments are overwritten.
// Nodes that cannot be ordered because of a cycle keep row 0 and the
// cycle error from [TopoSort] is returned.
func AssignLayers(g *dag.DAG) error {
	order, err := TopoSort(g)
	rows := make(map[string]int, g.NodeCount())
	for _, id := range g.NodeIDs() {
		rows[id] = 0
	}
	for _, curr := range order {
		for _, child := range g.Children(curr) {
			if row := rows[curr] + 1; row > rows[child] {
				rows[child] = row
			}
		}
	}
	g.SetRows(rows)
	return err
}

// MaxRow returns the deepest row assigned in g, or 0 for an empty graph.
func MaxRow(g *dag.DAG) int {
	maxRow := 0
	for _, n := range g.Nodes() {
		maxRow = max(maxRow, n.Row)
	}
	return maxRow
}
