package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// FileName is the ledger database filename inside the storage root.
const FileName = ".ledger.db"

// fetchBucket holds one JSON record per fetched dataset.
var fetchBucket = []byte("Fetches")

// Record describes one fetched dataset.
type Record struct {
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Version     string    `json:"version,omitempty"`
	SHA256      string    `json:"sha256,omitempty"`       // digest of the downloaded artifact
	ContentHash string    `json:"content_hash,omitempty"` // tree hash of the extracted files
	SizeBytes   int64     `json:"size_bytes"`
	Files       int       `json:"files"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Ledger is a handle to the fetch record database.
type Ledger struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the ledger database at path.
func Open(path string) (*Ledger, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(fetchBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger bucket: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Put stores (or replaces) the record for rec.Name.
func (l *Ledger) Put(rec Record) error {
	return l.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling record for %s: %w", rec.Name, err)
		}
		return tx.Bucket(fetchBucket).Put([]byte(rec.Name), data)
	})
}

// Get returns the record for name, or (nil, nil) if none exists.
func (l *Ledger) Get(name string) (*Record, error) {
	var rec *Record
	err := l.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(fetchBucket).Get([]byte(name))
		if data == nil {
			return nil
		}
		rec = &Record{}
		return json.Unmarshal(data, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("reading record for %s: %w", name, err)
	}
	return rec, nil
}

// All returns every record, in key (name) order.
func (l *Ledger) All() ([]Record, error) {
	var records []Record
	err := l.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(fetchBucket).ForEach(func(k, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshaling record %s: %w", k, err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes the record for name. Deleting a missing record is not an
// error.
func (l *Ledger) Delete(name string) error {
	return l.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(fetchBucket).Delete([]byte(name))
	})
}
