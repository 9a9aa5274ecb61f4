// Package export writes cached datasets out as Parquet files so the graphs
// can be handed to columnar data tooling. A dataset becomes three files:
// graphs.parquet (one row per graph), nodes.parquet (one row per node), and
// edges.parquet (one row per stored adjacency entry).
package export
