package datasets

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spektral-labs/spektral-go/data"
)

// readTUD parses the TUDataset flat-text format from dir. All files share the
// "<name>_" prefix; node and graph ids in the files are 1-based and global.
//
// Required: <name>_A.txt (edge list), <name>_graph_indicator.txt (node ->
// graph), <name>_graph_labels.txt. Optional: node labels (one-hot appended to
// X), node attributes (prepended to X), edge labels / edge attributes
// (combined into E the same way).
func readTUD(dir, name string) ([]*data.Graph, error) {
	prefix := filepath.Join(dir, name+"_")

	edges, err := readIntPairs(prefix + "A.txt")
	if err != nil {
		return nil, err
	}
	indicator, err := readIntColumn(prefix + "graph_indicator.txt")
	if err != nil {
		return nil, err
	}
	graphLabels, err := readIntColumn(prefix + "graph_labels.txt")
	if err != nil {
		return nil, err
	}

	nodeLabels, err := readOptionalIntColumn(prefix + "node_labels.txt")
	if err != nil {
		return nil, err
	}
	nodeAttrs, err := readOptionalFloatRows(prefix + "node_attributes.txt")
	if err != nil {
		return nil, err
	}
	edgeLabels, err := readOptionalIntColumn(prefix + "edge_labels.txt")
	if err != nil {
		return nil, err
	}
	edgeAttrs, err := readOptionalFloatRows(prefix + "edge_attributes.txt")
	if err != nil {
		return nil, err
	}

	numNodes := len(indicator)
	if nodeLabels != nil && len(nodeLabels) != numNodes {
		return nil, fmt.Errorf("node_labels has %d rows, graph_indicator has %d", len(nodeLabels), numNodes)
	}
	if nodeAttrs != nil && len(nodeAttrs) != numNodes {
		return nil, fmt.Errorf("node_attributes has %d rows, graph_indicator has %d", len(nodeAttrs), numNodes)
	}
	if edgeLabels != nil && len(edgeLabels) != len(edges) {
		return nil, fmt.Errorf("edge_labels has %d rows, A has %d", len(edgeLabels), len(edges))
	}
	if edgeAttrs != nil && len(edgeAttrs) != len(edges) {
		return nil, fmt.Errorf("edge_attributes has %d rows, A has %d", len(edgeAttrs), len(edges))
	}

	// Map each global node id to (graph index, local node index).
	numGraphs := 0
	for _, gid := range indicator {
		if gid > numGraphs {
			numGraphs = gid
		}
	}
	if numGraphs != len(graphLabels) {
		return nil, fmt.Errorf("graph_indicator names %d graphs, graph_labels has %d", numGraphs, len(graphLabels))
	}

	graphOf := make([]int, numNodes) // 0-based graph index per global node
	localOf := make([]int, numNodes) // local node index per global node
	counts := make([]int, numGraphs) // nodes per graph
	for i, gid := range indicator {
		if gid < 1 || gid > numGraphs {
			return nil, fmt.Errorf("graph_indicator row %d: graph id %d out of range", i+1, gid)
		}
		graphOf[i] = gid - 1
		localOf[i] = counts[gid-1]
		counts[gid-1]++
	}

	nodeClasses := classIndex(nodeLabels)
	edgeClasses := classIndex(edgeLabels)
	graphClasses := classIndex(graphLabels)

	graphs := make([]*data.Graph, numGraphs)
	for g := 0; g < numGraphs; g++ {
		graphs[g] = &data.Graph{A: data.NewCOO(counts[g])}
	}

	// Node features: attributes first, then one-hot node labels.
	if nodeAttrs != nil || nodeLabels != nil {
		width := 0
		if nodeAttrs != nil {
			width = len(nodeAttrs[0])
		}
		width += len(nodeClasses)
		for i := 0; i < numNodes; i++ {
			row := make([]float64, 0, width)
			if nodeAttrs != nil {
				row = append(row, nodeAttrs[i]...)
			}
			if nodeLabels != nil {
				row = append(row, oneHot(nodeClasses, nodeLabels[i])...)
			}
			graphs[graphOf[i]].X = append(graphs[graphOf[i]].X, row)
		}
	}

	// Edges: unit adjacency weight; attributes then one-hot edge labels in E.
	for k, e := range edges {
		u, v := e[0]-1, e[1]-1
		if u < 0 || u >= numNodes || v < 0 || v >= numNodes {
			return nil, fmt.Errorf("A row %d: node id out of range", k+1)
		}
		if graphOf[u] != graphOf[v] {
			return nil, fmt.Errorf("A row %d: edge (%d, %d) crosses graphs", k+1, e[0], e[1])
		}
		g := graphs[graphOf[u]]
		if err := g.A.Add(localOf[u], localOf[v], 1.0); err != nil {
			return nil, err
		}
		if edgeAttrs != nil || edgeLabels != nil {
			row := []float64{}
			if edgeAttrs != nil {
				row = append(row, edgeAttrs[k]...)
			}
			if edgeLabels != nil {
				row = append(row, oneHot(edgeClasses, edgeLabels[k])...)
			}
			g.E = append(g.E, row)
		}
	}

	// One-hot graph labels.
	for g := 0; g < numGraphs; g++ {
		graphs[g].Y = oneHot(graphClasses, graphLabels[g])
	}

	return graphs, nil
}

// classIndex maps each distinct label to its position in sorted order.
func classIndex(labels []int) map[int]int {
	if labels == nil {
		return nil
	}
	distinct := make(map[int]struct{})
	for _, l := range labels {
		distinct[l] = struct{}{}
	}
	sorted := make([]int, 0, len(distinct))
	for l := range distinct {
		sorted = append(sorted, l)
	}
	sort.Ints(sorted)
	index := make(map[int]int, len(sorted))
	for i, l := range sorted {
		index[l] = i
	}
	return index
}

// oneHot encodes label against the class index.
func oneHot(classes map[int]int, label int) []float64 {
	row := make([]float64, len(classes))
	if i, ok := classes[label]; ok {
		row[i] = 1.0
	}
	return row
}

// readLines streams non-empty trimmed lines of path into fn.
func readLines(path string, fn func(lineNo int, line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return fmt.Errorf("%s line %d: %w", filepath.Base(path), lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return nil
}

// readIntColumn reads one integer per line.
func readIntColumn(path string) ([]int, error) {
	var out []int
	err := readLines(path, func(_ int, line string) error {
		v, err := strconv.Atoi(line)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// readIntPairs reads comma-separated integer pairs, one per line.
func readIntPairs(path string) ([][2]int, error) {
	var out [][2]int
	err := readLines(path, func(_ int, line string) error {
		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			return fmt.Errorf("expected 2 comma-separated values, got %d", len(parts))
		}
		a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return err
		}
		b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}
		out = append(out, [2]int{a, b})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// readFloatRows reads comma-separated float rows, one per line. Rows must be
// rectangular.
func readFloatRows(path string) ([][]float64, error) {
	var out [][]float64
	err := readLines(path, func(_ int, line string) error {
		parts := strings.Split(line, ",")
		row := make([]float64, len(parts))
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return err
			}
			row[i] = v
		}
		if len(out) > 0 && len(row) != len(out[0]) {
			return fmt.Errorf("row width %d differs from first row %d", len(row), len(out[0]))
		}
		out = append(out, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func readOptionalIntColumn(path string) ([]int, error) {
	if !fileExists(path) {
		return nil, nil
	}
	return readIntColumn(path)
}

func readOptionalFloatRows(path string) ([][]float64, error) {
	if !fileExists(path) {
		return nil, nil
	}
	return readFloatRows(path)
}
