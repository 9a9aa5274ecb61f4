// Package ledger records what was fetched into the storage root. Records are
// JSON-marshaled into a bbolt database at <root>/.ledger.db, keyed by dataset
// name. The ledger is best-effort bookkeeping: a missing or unwritable ledger
// never blocks dataset loading, it only degrades `list`, `info`, and `verify`.
package ledger
