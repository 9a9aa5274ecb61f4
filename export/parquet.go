package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spektral-labs/spektral-go/data"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// Output filenames inside the export directory.
const (
	GraphsFile = "graphs.parquet"
	NodesFile  = "nodes.parquet"
	EdgesFile  = "edges.parquet"
)

// GraphRow is the graphs.parquet schema: one row per graph.
type GraphRow struct {
	GraphID  int64     `parquet:"name=graph_id, type=INT64"`
	NumNodes int32     `parquet:"name=num_nodes, type=INT32"`
	NumEdges int32     `parquet:"name=num_edges, type=INT32"`
	Labels   []float64 `parquet:"name=labels, type=DOUBLE, repetitiontype=REPEATED"`
}

// NodeRow is the nodes.parquet schema: one row per node.
type NodeRow struct {
	GraphID  int64     `parquet:"name=graph_id, type=INT64"`
	NodeID   int32     `parquet:"name=node_id, type=INT32"`
	Features []float64 `parquet:"name=features, type=DOUBLE, repetitiontype=REPEATED"`
}

// EdgeRow is the edges.parquet schema: one row per stored adjacency entry.
type EdgeRow struct {
	GraphID int64     `parquet:"name=graph_id, type=INT64"`
	Src     int32     `parquet:"name=src, type=INT32"`
	Dst     int32     `parquet:"name=dst, type=INT32"`
	Weight  float64   `parquet:"name=weight, type=DOUBLE"`
	Attrs   []float64 `parquet:"name=attrs, type=DOUBLE, repetitiontype=REPEATED"`
}

// ToParquet writes ds into dir (created if needed) as graphs.parquet,
// nodes.parquet, and edges.parquet, SNAPPY-compressed.
func ToParquet(ds *data.Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	if err := writeRows(filepath.Join(dir, GraphsFile), new(GraphRow), graphRows(ds)); err != nil {
		return fmt.Errorf("writing %s: %w", GraphsFile, err)
	}
	if err := writeRows(filepath.Join(dir, NodesFile), new(NodeRow), nodeRows(ds)); err != nil {
		return fmt.Errorf("writing %s: %w", NodesFile, err)
	}
	if err := writeRows(filepath.Join(dir, EdgesFile), new(EdgeRow), edgeRows(ds)); err != nil {
		return fmt.Errorf("writing %s: %w", EdgesFile, err)
	}
	return nil
}

func graphRows(ds *data.Dataset) []interface{} {
	rows := make([]interface{}, 0, len(ds.Graphs))
	for i, g := range ds.Graphs {
		rows = append(rows, GraphRow{
			GraphID:  int64(i),
			NumNodes: int32(g.NumNodes()),
			NumEdges: int32(g.NumEdges()),
			Labels:   g.Y,
		})
	}
	return rows
}

func nodeRows(ds *data.Dataset) []interface{} {
	var rows []interface{}
	for i, g := range ds.Graphs {
		for n := 0; n < g.NumNodes(); n++ {
			var features []float64
			if n < len(g.X) {
				features = g.X[n]
			}
			rows = append(rows, NodeRow{
				GraphID:  int64(i),
				NodeID:   int32(n),
				Features: features,
			})
		}
	}
	return rows
}

func edgeRows(ds *data.Dataset) []interface{} {
	var rows []interface{}
	for i, g := range ds.Graphs {
		if g.A == nil {
			continue
		}
		for k := range g.A.Vals {
			var attrs []float64
			if k < len(g.E) {
				attrs = g.E[k]
			}
			rows = append(rows, EdgeRow{
				GraphID: int64(i),
				Src:     int32(g.A.Rows[k]),
				Dst:     int32(g.A.Cols[k]),
				Weight:  g.A.Vals[k],
				Attrs:   attrs,
			})
		}
	}
	return rows
}

// writeRows writes one parquet file. schema must be a pointer to the row
// struct; rows holds values of that struct type.
func writeRows(path string, schema interface{}, rows []interface{}) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, schema, 2)
	if err != nil {
		fw.Close()
		return fmt.Errorf("creating parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			fw.Close()
			return fmt.Errorf("writing row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("finalizing parquet file: %w", err)
	}
	return fw.Close()
}
