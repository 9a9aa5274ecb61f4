//go:build integration

package integration_test

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

// testEnv holds the isolated directories and the archive server for one
// end-to-end run.
type testEnv struct {
	Home    string // $HOME, containing .spektral/
	Root    string // dataset storage root, via SPEKTRAL_DATASET_FOLDER
	Server  *httptest.Server
	Hits    *int64 // number of archive downloads served
	Catalog string // user catalog directory (~/.spektral/catalog.d)
}

// setupTestEnv creates a temp HOME with a user catalog entry named TOY that
// points at an in-process archive server serving a TUD-format zip.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	home := t.TempDir()
	root := filepath.Join(home, "graph-data")
	t.Setenv("HOME", home)
	t.Setenv("SPEKTRAL_DATASET_FOLDER", root)
	t.Setenv("SPEKTRAL_MIRROR", "")

	archive := buildTOYZip(t)
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write(archive)
	}))
	t.Cleanup(server.Close)

	catalogDir := filepath.Join(home, ".spektral", "catalog.d")
	if err := os.MkdirAll(catalogDir, 0755); err != nil {
		t.Fatal(err)
	}
	doc := fmt.Sprintf("datasets:\n  - name: TOY\n    kind: tud\n    url: %s/TOY.zip\n    version: 1.0.0\n", server.URL)
	if err := os.WriteFile(filepath.Join(catalogDir, "toy.yaml"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	return &testEnv{Home: home, Root: root, Server: server, Hits: &hits, Catalog: catalogDir}
}

// buildTOYZip packs a two-node, one-edge TUD fixture nested under TOY/.
func buildTOYZip(t *testing.T) []byte {
	t.Helper()
	files := map[string]string{
		"TOY/TOY_A.txt":               "1, 2\n2, 1\n",
		"TOY/TOY_graph_indicator.txt": "1\n1\n",
		"TOY/TOY_graph_labels.txt":    "1\n",
		"TOY/TOY_node_labels.txt":     "0\n1\n",
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
