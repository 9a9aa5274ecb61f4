package data

// Dataset is a named collection of graphs.
type Dataset struct {
	Name   string
	Graphs []*Graph
}

// Len returns the number of graphs.
func (d *Dataset) Len() int {
	return len(d.Graphs)
}

// NumGraphs is an alias for Len, matching the summary accessors.
func (d *Dataset) NumGraphs() int {
	return len(d.Graphs)
}

// MaxNumNodes returns the node count of the largest graph (0 for an empty
// dataset).
func (d *Dataset) MaxNumNodes() int {
	max := 0
	for _, g := range d.Graphs {
		if n := g.NumNodes(); n > max {
			max = n
		}
	}
	return max
}

// Filter returns a new Dataset (same name) containing only the graphs for
// which pred returns true. Graphs are shared, not copied.
func (d *Dataset) Filter(pred func(*Graph) bool) *Dataset {
	out := &Dataset{Name: d.Name}
	for _, g := range d.Graphs {
		if pred(g) {
			out.Graphs = append(out.Graphs, g)
		}
	}
	return out
}

// Apply runs transform on every graph in place.
func (d *Dataset) Apply(transform func(*Graph)) {
	for _, g := range d.Graphs {
		transform(g)
	}
}
