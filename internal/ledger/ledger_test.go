package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), ".ledger.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestPutGetRoundtrip(t *testing.T) {
	l := openTestLedger(t)

	rec := Record{
		Name:        "MUTAG",
		URL:         "https://example.com/MUTAG.zip",
		Version:     "1.0.0",
		SHA256:      "abc123",
		ContentHash: "def456",
		SizeBytes:   4096,
		Files:       4,
		FetchedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := l.Put(rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := l.Get("MUTAG")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for stored record")
	}
	if *got != rec {
		t.Errorf("Get = %+v, want %+v", *got, rec)
	}
}

func TestGetMissing(t *testing.T) {
	l := openTestLedger(t)
	got, err := l.Get("nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("Get for missing name = %+v, want nil", got)
	}
}

func TestAllAndDelete(t *testing.T) {
	l := openTestLedger(t)

	for _, name := range []string{"b", "a", "c"} {
		if err := l.Put(Record{Name: name}); err != nil {
			t.Fatalf("Put %s failed: %v", name, err)
		}
	}

	records, err := l.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("All returned %d records, want 3", len(records))
	}
	// bbolt iterates in key order.
	for i, want := range []string{"a", "b", "c"} {
		if records[i].Name != want {
			t.Errorf("records[%d].Name = %q, want %q", i, records[i].Name, want)
		}
	}

	if err := l.Delete("b"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	records, err = l.All()
	if err != nil {
		t.Fatalf("All after Delete failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("All after Delete returned %d records, want 2", len(records))
	}

	// Deleting a missing record is fine.
	if err := l.Delete("b"); err != nil {
		t.Errorf("Delete of missing record failed: %v", err)
	}
}

func TestPutReplaces(t *testing.T) {
	l := openTestLedger(t)
	if err := l.Put(Record{Name: "x", Version: "1.0.0"}); err != nil {
		t.Fatal(err)
	}
	if err := l.Put(Record{Name: "x", Version: "2.0.0"}); err != nil {
		t.Fatal(err)
	}
	got, err := l.Get("x")
	if err != nil || got == nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Version != "2.0.0" {
		t.Errorf("Version after replace = %q, want 2.0.0", got.Version)
	}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestHashTreeDeterministic(t *testing.T) {
	files := map[string]string{
		"a.txt":        "alpha",
		"sub/b.txt":    "beta",
		"sub/deep/c":   "gamma",
		"zzz_last.txt": "omega",
	}

	dir1 := t.TempDir()
	dir2 := t.TempDir()
	writeTree(t, dir1, files)
	writeTree(t, dir2, files)

	h1, err := HashTree(dir1)
	if err != nil {
		t.Fatalf("HashTree failed: %v", err)
	}
	h2, err := HashTree(dir2)
	if err != nil {
		t.Fatalf("HashTree failed: %v", err)
	}
	if h1 != h2 {
		t.Errorf("identical trees hash differently: %s vs %s", h1, h2)
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
}

func TestHashTreeDetectsChanges(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "alpha"})

	before, err := HashTree(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("tampered"), 0644); err != nil {
		t.Fatal(err)
	}
	after, err := HashTree(dir)
	if err != nil {
		t.Fatal(err)
	}
	if before == after {
		t.Error("content change not reflected in tree hash")
	}
}
