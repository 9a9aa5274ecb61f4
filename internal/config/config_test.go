package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestFilePath(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	want := filepath.Join(tmp, ".spektral", "config.json")
	if got := FilePath(); got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}
}

func TestSetAndGet(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("SPEKTRAL_DATASET_FOLDER", "")

	Load()
	if err := Set(KeyDatasetFolder, "/tmp/graph-data"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh Load must see the persisted value.
	Load()
	if got := Get(KeyDatasetFolder); got != "/tmp/graph-data" {
		t.Errorf("Get(%q) = %q, want %q", KeyDatasetFolder, got, "/tmp/graph-data")
	}

	// The file on disk is JSON with the expected key.
	data, err := os.ReadFile(FilePath())
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("config file is empty")
	}
}

func TestGet_MissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SPEKTRAL_DATASET_FOLDER", "")

	Load()
	if got := Get(KeyDatasetFolder); got != "" {
		t.Errorf("Get on missing file = %q, want empty", got)
	}
}

func TestGet_MalformedJSON(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("SPEKTRAL_DATASET_FOLDER", "")

	dir := filepath.Join(tmp, ".spektral")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	// Load must not panic and Get must fall through to empty.
	Load()
	if got := Get(KeyDatasetFolder); got != "" {
		t.Errorf("Get on malformed file = %q, want empty", got)
	}
}

func TestGet_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SPEKTRAL_DATASET_FOLDER", "/mnt/shared/datasets")

	Load()
	if got := Get(KeyDatasetFolder); got != "/mnt/shared/datasets" {
		t.Errorf("Get with env override = %q, want %q", got, "/mnt/shared/datasets")
	}
}

func TestLoadAndGetConcurrent(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SPEKTRAL_DATASET_FOLDER", "/mnt/shared/datasets")

	var wg sync.WaitGroup
	got := make([]string, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			Load()
			got[i] = Get(KeyDatasetFolder)
		}(i)
	}
	wg.Wait()

	for i, v := range got {
		if v != "/mnt/shared/datasets" {
			t.Errorf("concurrent Get %d = %q, want %q", i, v, "/mnt/shared/datasets")
		}
	}
}

func TestSet_PreservesOtherKeys(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	dir := filepath.Join(tmp, ".spektral")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	seed := []byte(`{"dataset_folder": "/data/a", "custom_key": "kept"}`)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), seed, 0644); err != nil {
		t.Fatal(err)
	}

	Load()
	if err := Set(KeyMirror, "https://mirror.example.com"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	Load()
	if got := Get(KeyDatasetFolder); got != "/data/a" {
		t.Errorf("dataset_folder after Set = %q, want %q", got, "/data/a")
	}
	if got := Get("custom_key"); got != "kept" {
		t.Errorf("custom_key after Set = %q, want %q", got, "kept")
	}
	if got := Get(KeyMirror); got != "https://mirror.example.com" {
		t.Errorf("mirror after Set = %q, want %q", got, "https://mirror.example.com")
	}
}
