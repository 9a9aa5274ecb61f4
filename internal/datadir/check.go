package datadir

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spektral-labs/spektral-go/internal/config"
	"github.com/spektral-labs/spektral-go/internal/ledger"
)

// Check validates the ~/.spektral directory tree and the storage root. When
// fix is true, missing directories are created. The returned error reports
// problems that remain after checking (fixable ones only count when fix is
// false).
func Check(w io.Writer, fix bool) error {
	problems := 0

	fmt.Fprintln(w, "Storage check:")

	// Home directory.
	if !checkDir(w, config.Dir(), fix) {
		problems++
	}

	// Config file: absence is fine, malformed JSON means the override is
	// silently ignored, which is worth surfacing here.
	checkConfigFile(w, &problems)

	// Storage root and user catalog dir.
	if !checkDir(w, Root(), fix) {
		problems++
	}
	if !checkDir(w, CatalogDir(), fix) {
		problems++
	}

	// Ledger: optional, but if present it must open.
	checkLedger(w, &problems)

	// Per-dataset layout: a cached dataset directory should not be empty.
	checkDatasets(w, &problems)

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	fmt.Fprintln(w, "All checks passed.")
	return nil
}

// checkDir reports whether path is a healthy directory, creating it when fix
// is set.
func checkDir(w io.Writer, path string, fix bool) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if !fix {
			return false
		}
		if mkErr := os.MkdirAll(path, DirPerm); mkErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
			return false
		}
		fmt.Fprintf(w, "  [FIX ] Created %s\n", path)
		return true
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return false
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [FAIL] %s exists but is not a directory\n", path)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return true
}

func checkConfigFile(w io.Writer, problems *int) {
	path := config.FilePath()
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [ OK ] %s absent (using defaults)\n", path)
		return
	}
	if err != nil {
		fmt.Fprintf(w, "  [WARN] %s unreadable: %v (using defaults)\n", path, err)
		*problems++
		return
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		fmt.Fprintf(w, "  [WARN] %s is not valid JSON (dataset_folder override ignored)\n", path)
		*problems++
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s parses\n", path)
}

func checkLedger(w io.Writer, problems *int) {
	path := LedgerPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [ OK ] no ledger yet (nothing fetched)\n")
		return
	}
	led, err := ledger.Open(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] ledger %s does not open: %v\n", path, err)
		*problems++
		return
	}
	records, err := led.All()
	led.Close()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] ledger %s unreadable: %v\n", path, err)
		*problems++
		return
	}
	fmt.Fprintf(w, "  [ OK ] ledger holds %d record(s)\n", len(records))
}

func checkDatasets(w io.Writer, problems *int) {
	entries, err := os.ReadDir(Root())
	if err != nil {
		return // root issues already reported
	}
	for _, e := range entries {
		if !e.IsDir() || e.Name()[0] == '.' {
			continue
		}
		path := DatasetPath(e.Name())
		contents, err := os.ReadDir(path)
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %s unreadable: %v\n", path, err)
			*problems++
			continue
		}
		if len(contents) == 0 {
			fmt.Fprintf(w, "  [WARN] %s is empty; remove and re-fetch\n", path)
			*problems++
			continue
		}
		fmt.Fprintf(w, "  [ OK ] dataset %s (%d entries)\n", e.Name(), len(contents))
	}
}
