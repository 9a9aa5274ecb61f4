package datadir

import (
	"fmt"
	"io"
	"os"

	"github.com/spektral-labs/spektral-go/internal/config"
)

// Init creates the ~/.spektral directory tree: the config file (seeded with
// the default dataset folder), the storage root, and the user catalog
// directory. It prints progress messages to w. Existing items are skipped
// with a message.
func Init(w io.Writer) error {
	if err := ensureDir(w, config.Dir(), DirPerm); err != nil {
		return err
	}

	defaultConfig := fmt.Sprintf("{\n  %q: %q\n}\n", config.KeyDatasetFolder, DefaultRoot())
	if err := ensureFile(w, config.FilePath(), defaultConfig, FilePerm); err != nil {
		return err
	}

	if err := ensureDir(w, Root(), DirPerm); err != nil {
		return err
	}

	if err := ensureDir(w, CatalogDir(), DirPerm); err != nil {
		return err
	}

	return nil
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

// ensureFile creates a file with content if it doesn't exist.
func ensureFile(w io.Writer, path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
