package cli

import (
	"fmt"
	"os"

	"github.com/spektral-labs/spektral-go/internal/catalog"
	"github.com/spektral-labs/spektral-go/internal/datadir"
	"github.com/spektral-labs/spektral-go/internal/ledger"
)

// loadCatalog returns the merged catalog, reporting skipped user files on
// stderr.
func loadCatalog() (*catalog.Catalog, error) {
	cat, problems, err := catalog.Load(datadir.CatalogDir())
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	for _, p := range problems {
		fmt.Fprintf(os.Stderr, "Warning: skipping catalog file %s: %s\n", p.Path, p.Reason)
	}
	return cat, nil
}

// ledgerRecords returns fetch records keyed by dataset name. A missing or
// unreadable ledger yields an empty map: the commands that use this degrade
// to showing less detail.
func ledgerRecords() map[string]ledger.Record {
	path := datadir.LedgerPath()
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	led, err := ledger.Open(path)
	if err != nil {
		return nil
	}
	defer led.Close()

	records, err := led.All()
	if err != nil {
		return nil
	}
	out := make(map[string]ledger.Record, len(records))
	for _, r := range records {
		out[r.Name] = r
	}
	return out
}

// deleteLedgerRecord removes the record for name, best-effort.
func deleteLedgerRecord(name string) {
	led, err := ledger.Open(datadir.LedgerPath())
	if err != nil {
		return
	}
	defer led.Close()
	_ = led.Delete(name)
}

// humanSize formats a byte count for display.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
