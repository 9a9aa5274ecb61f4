package data

import "fmt"

// Graph is a single attributed graph.
//
// X holds node features, one row per node. A is the sparse adjacency matrix.
// E holds edge features aligned with A's stored entries: E[k] describes the
// edge at (A.Rows[k], A.Cols[k]). Y holds labels: a one-hot vector for a
// graph-level label, or per-node one-hot rows flattened row-major for
// node-level labels (readers document which).
type Graph struct {
	X [][]float64
	A *COO
	E [][]float64
	Y []float64
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int {
	if g.A != nil {
		return g.A.N
	}
	return len(g.X)
}

// NumNodeFeatures returns the width of the node feature rows (0 if no
// features).
func (g *Graph) NumNodeFeatures() int {
	if len(g.X) == 0 {
		return 0
	}
	return len(g.X[0])
}

// NumEdges returns the number of stored adjacency entries.
func (g *Graph) NumEdges() int {
	if g.A == nil {
		return 0
	}
	return g.A.NNZ()
}

// NumEdgeFeatures returns the width of the edge feature rows (0 if no
// features).
func (g *Graph) NumEdgeFeatures() int {
	if len(g.E) == 0 {
		return 0
	}
	return len(g.E[0])
}

// NumLabels returns the length of the label vector.
func (g *Graph) NumLabels() int {
	return len(g.Y)
}

// Validate checks that the container dimensions agree: X rows match the
// adjacency dimension, all feature rows have equal width, and E is aligned
// with A's entries.
func (g *Graph) Validate() error {
	n := g.NumNodes()
	if len(g.X) > 0 && len(g.X) != n {
		return fmt.Errorf("X has %d rows, graph has %d nodes", len(g.X), n)
	}
	for i, row := range g.X {
		if len(row) != g.NumNodeFeatures() {
			return fmt.Errorf("X row %d has %d features, row 0 has %d", i, len(row), g.NumNodeFeatures())
		}
	}
	if len(g.E) > 0 {
		if g.A == nil {
			return fmt.Errorf("E has %d rows but the graph has no adjacency", len(g.E))
		}
		if len(g.E) != g.A.NNZ() {
			return fmt.Errorf("E has %d rows, A has %d entries", len(g.E), g.A.NNZ())
		}
		for k, row := range g.E {
			if len(row) != g.NumEdgeFeatures() {
				return fmt.Errorf("E row %d has %d features, row 0 has %d", k, len(row), g.NumEdgeFeatures())
			}
		}
	}
	return nil
}
