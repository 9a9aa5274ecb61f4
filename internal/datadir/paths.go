package datadir

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spektral-labs/spektral-go/internal/branding"
	"github.com/spektral-labs/spektral-go/internal/config"
	"github.com/spektral-labs/spektral-go/internal/ledger"
)

// DatasetsDir is the name of the default storage directory under ~/.spektral.
const DatasetsDir = "datasets"

// Permission constants.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

var (
	rootOnce sync.Once
	rootPath string
)

// Root returns the dataset storage root for this process run. The first call
// resolves it; later calls return the same path even if the environment or
// the config file change afterwards.
func Root() string {
	rootOnce.Do(func() { rootPath = resolve() })
	return rootPath
}

// resolve picks the storage root: SPEKTRAL_DATASET_FOLDER env var first, then
// the dataset_folder config key, then the built-in default.
func resolve() string {
	if v := os.Getenv(branding.EnvVar("DATASET_FOLDER")); v != "" {
		return v
	}
	config.Load()
	if v := config.Get(config.KeyDatasetFolder); v != "" {
		return v
	}
	return DefaultRoot()
}

// DefaultRoot returns the built-in default storage root (~/.spektral/datasets).
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir(), DatasetsDir)
	}
	return filepath.Join(home, branding.HomeDir(), DatasetsDir)
}

// DatasetPath returns the on-disk location for a named dataset: Root()/name.
func DatasetPath(name string) string {
	return filepath.Join(Root(), name)
}

// CatalogDir returns the directory holding user catalog files
// (~/.spektral/catalog.d).
func CatalogDir() string {
	return filepath.Join(config.Dir(), "catalog.d")
}

// LedgerPath returns the location of the fetch ledger inside the storage root.
func LedgerPath() string {
	return filepath.Join(Root(), ledger.FileName)
}

// EnsureRoot creates the storage root if it does not exist.
func EnsureRoot() error {
	root := Root()
	if err := os.MkdirAll(root, DirPerm); err != nil {
		return fmt.Errorf("creating dataset folder %s: %w", root, err)
	}
	return nil
}
