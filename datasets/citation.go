package datasets

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spektral-labs/spektral-go/data"
)

// readCitation parses a LINQS citation network (cora, citeseer) from dir as a
// single undirected graph.
//
// <name>.content rows are "<id> <word vector...> <class>"; nodes appear in
// file order. <name>.cites rows are "<cited> <citing>" pairs; pairs naming an
// unknown id are skipped. The adjacency is symmetrized with unit weights and
// Y holds per-node one-hot class rows flattened row-major (n x c).
func readCitation(dir, name string) (*data.Graph, error) {
	contentPath := filepath.Join(dir, name+".content")
	citesPath := filepath.Join(dir, name+".cites")

	var (
		index    = make(map[string]int)
		features [][]float64
		classes  []string
	)
	err := readLines(contentPath, func(_ int, line string) error {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return fmt.Errorf("expected at least 3 fields, got %d", len(fields))
		}
		id := fields[0]
		if _, dup := index[id]; dup {
			return fmt.Errorf("duplicate node id %q", id)
		}

		row := make([]float64, len(fields)-2)
		for i, f := range fields[1 : len(fields)-1] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return fmt.Errorf("feature %d: %w", i+1, err)
			}
			row[i] = v
		}

		index[id] = len(features)
		features = append(features, row)
		classes = append(classes, fields[len(fields)-1])
		return nil
	})
	if err != nil {
		return nil, err
	}

	n := len(features)
	if n == 0 {
		return nil, fmt.Errorf("%s.content has no nodes", name)
	}

	// One-hot classes, sorted for a stable column order.
	distinct := make(map[string]struct{})
	for _, c := range classes {
		distinct[c] = struct{}{}
	}
	classNames := make([]string, 0, len(distinct))
	for c := range distinct {
		classNames = append(classNames, c)
	}
	sort.Strings(classNames)
	classCol := make(map[string]int, len(classNames))
	for i, c := range classNames {
		classCol[c] = i
	}

	y := make([]float64, n*len(classNames))
	for i, c := range classes {
		y[i*len(classNames)+classCol[c]] = 1.0
	}

	// Symmetrized unit adjacency; duplicate and reversed pairs collapse.
	adj := data.NewCOO(n)
	seen := make(map[[2]int]struct{})
	err = readLines(citesPath, func(_ int, line string) error {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("expected 2 fields, got %d", len(fields))
		}
		cited, okA := index[fields[0]]
		citing, okB := index[fields[1]]
		if !okA || !okB {
			// The raw archives reference a handful of ids missing from
			// the content file.
			return nil
		}
		for _, pair := range [][2]int{{citing, cited}, {cited, citing}} {
			if _, dup := seen[pair]; dup {
				continue
			}
			seen[pair] = struct{}{}
			if err := adj.Add(pair[0], pair[1], 1.0); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	adj.Canonicalize()

	return &data.Graph{X: features, A: adj, Y: y}, nil
}
