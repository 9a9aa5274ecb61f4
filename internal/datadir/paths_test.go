package datadir

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// resetRoot clears the process-wide root cache so each test resolves against
// its own $HOME.
func resetRoot(t *testing.T) {
	t.Helper()
	rootOnce = sync.Once{}
	rootPath = ""
	t.Cleanup(func() {
		rootOnce = sync.Once{}
		rootPath = ""
	})
}

func TestResolveFromConfigFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("SPEKTRAL_DATASET_FOLDER", "")

	dir := filepath.Join(tmp, ".spektral")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	cfg := `{"dataset_folder": "/tmp/x"}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	if got := resolve(); got != "/tmp/x" {
		t.Errorf("resolve() = %q, want /tmp/x", got)
	}
}

func TestResolveDefaultWhenConfigAbsent(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("SPEKTRAL_DATASET_FOLDER", "")

	want := filepath.Join(tmp, ".spektral", "datasets")
	if got := resolve(); got != want {
		t.Errorf("resolve() = %q, want %q", got, want)
	}
}

func TestResolveMalformedConfigFallsBack(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("SPEKTRAL_DATASET_FOLDER", "")

	dir := filepath.Join(tmp, ".spektral")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(tmp, ".spektral", "datasets")
	if got := resolve(); got != want {
		t.Errorf("resolve() with malformed config = %q, want default %q", got, want)
	}
}

func TestResolveEnvWinsOverConfig(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("SPEKTRAL_DATASET_FOLDER", "/mnt/env-root")

	dir := filepath.Join(tmp, ".spektral")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	cfg := `{"dataset_folder": "/tmp/from-config"}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	if got := resolve(); got != "/mnt/env-root" {
		t.Errorf("resolve() = %q, want env override /mnt/env-root", got)
	}
}

func TestRootStableAcrossCalls(t *testing.T) {
	resetRoot(t)
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("SPEKTRAL_DATASET_FOLDER", "")

	first := Root()
	// Changing the environment after the first resolution has no effect.
	t.Setenv("SPEKTRAL_DATASET_FOLDER", "/somewhere/else")
	if second := Root(); second != first {
		t.Errorf("Root() changed mid-process: %q then %q", first, second)
	}

	if got := DatasetPath("cora"); got != filepath.Join(first, "cora") {
		t.Errorf("DatasetPath = %q, want %q", got, filepath.Join(first, "cora"))
	}
}
