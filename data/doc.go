// Package data defines the in-memory containers for graph datasets: a sparse
// COO adjacency matrix, a Graph holding node features, adjacency, edge
// features, and labels, and a Dataset collecting graphs under a name.
// The containers are plain slices with no external dependencies, so callers
// can hand them to any numeric or export tooling.
package data
