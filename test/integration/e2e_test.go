//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/spektral-labs/spektral-go/datasets"
	"github.com/spektral-labs/spektral-go/export"
	"github.com/spektral-labs/spektral-go/internal/catalog"
	"github.com/spektral-labs/spektral-go/internal/ledger"
)

// TestEndToEndDatasetFlow drives the full lifecycle in-process: catalog merge
// from the user directory, download-on-miss, cache-hit reload, ledger
// verification, parquet export, and removal with re-fetch.
func TestEndToEndDatasetFlow(t *testing.T) {
	env := setupTestEnv(t)

	cat, problems, err := catalog.Load(env.Catalog)
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("catalog problems: %v", problems)
	}
	if _, ok := cat.Lookup("TOY"); !ok {
		t.Fatal("user catalog entry TOY not merged")
	}

	loader := datasets.NewLoader(
		datasets.WithRoot(env.Root),
		datasets.WithCatalog(cat),
		datasets.WithHTTPClient(env.Server.Client()),
		datasets.WithQuiet(),
	)

	// Step 1: first Load downloads and persists.
	ds, err := loader.Load("TOY")
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	if ds.Len() != 1 || ds.Graphs[0].NumNodes() != 2 {
		t.Fatalf("unexpected dataset shape: %d graphs, %d nodes", ds.Len(), ds.Graphs[0].NumNodes())
	}
	if got := atomic.LoadInt64(env.Hits); got != 1 {
		t.Fatalf("first Load made %d downloads, want 1", got)
	}
	if _, err := os.Stat(filepath.Join(env.Root, "TOY")); err != nil {
		t.Fatalf("dataset not persisted under the storage root: %v", err)
	}

	// Step 2: reload is a pure cache hit.
	if _, err := loader.Load("TOY"); err != nil {
		t.Fatalf("cache-hit Load: %v", err)
	}
	if got := atomic.LoadInt64(env.Hits); got != 1 {
		t.Fatalf("cache hit made %d total downloads, want 1", got)
	}

	// Step 3: the ledger record verifies against the tree on disk.
	led, err := ledger.Open(filepath.Join(env.Root, ledger.FileName))
	if err != nil {
		t.Fatalf("opening ledger: %v", err)
	}
	rec, err := led.Get("TOY")
	led.Close()
	if err != nil || rec == nil {
		t.Fatalf("ledger record missing: %v", err)
	}
	hash, err := ledger.HashTree(filepath.Join(env.Root, "TOY"))
	if err != nil {
		t.Fatalf("HashTree: %v", err)
	}
	if hash != rec.ContentHash {
		t.Fatalf("content hash mismatch: ledger %s, disk %s", rec.ContentHash, hash)
	}

	// Step 4: parquet export of the loaded dataset.
	outDir := filepath.Join(env.Home, "export")
	if err := export.ToParquet(ds, outDir); err != nil {
		t.Fatalf("ToParquet: %v", err)
	}
	for _, name := range []string{export.GraphsFile, export.NodesFile, export.EdgesFile} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("export file %s missing: %v", name, err)
		}
	}

	// Step 5: removal brings back download-on-miss.
	if err := os.RemoveAll(filepath.Join(env.Root, "TOY")); err != nil {
		t.Fatal(err)
	}
	if _, err := loader.Load("TOY"); err != nil {
		t.Fatalf("Load after removal: %v", err)
	}
	if got := atomic.LoadInt64(env.Hits); got != 2 {
		t.Fatalf("Load after removal made %d total downloads, want 2", got)
	}
}
