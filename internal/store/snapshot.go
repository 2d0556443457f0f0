package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sakanapp/sakan/internal/dbx"
	"github.com/sakanapp/sakan/internal/models"
)

// SnapshotVersion identifies the export format. Import accepts only
// snapshots it can reproduce byte-faithfully.
const SnapshotVersion = "1.0"

// Snapshot is the full-state export: settings plus the raw documents of
// every table, in insertion order. Importing a snapshot reproduces an
// observably identical store, ids and timestamps included.
type Snapshot struct {
	Version   string                       `json:"version"`
	Timestamp time.Time                    `json:"timestamp"`
	Settings  models.Settings              `json:"settings"`
	Tables    map[string][]json.RawMessage `json:"tables"`
}

// Export serializes the whole store.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	snap := Snapshot{
		Version:   SnapshotVersion,
		Timestamp: time.Now().UTC(),
		Tables:    make(map[string][]json.RawMessage, len(s.tables)),
	}

	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	snap.Settings = settings

	for _, name := range models.TableNames() {
		docs, err := s.tables[name].exportDocs(ctx, s.db)
		if err != nil {
			return nil, err
		}
		snap.Tables[name] = docs
	}

	return json.MarshalIndent(snap, "", "  ")
}

// Import validates the snapshot and replaces all local state with it inside
// one transaction. Every logical table must be present as an array; each
// record must decode into the table's schema and carry an id. The pending
// sync queue is left untouched.
func (s *Store) Import(ctx context.Context, data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if snap.Version == "" {
		return fmt.Errorf("%w: missing version", ErrInvalidSnapshot)
	}
	for _, name := range models.TableNames() {
		if _, ok := snap.Tables[name]; !ok {
			return fmt.Errorf("%w: missing table %q", ErrInvalidSnapshot, name)
		}
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, name := range models.TableNames() {
			table := s.tables[name]
			if err := table.clear(ctx, tx); err != nil {
				return err
			}
			for _, doc := range snap.Tables[name] {
				if err := table.importDoc(ctx, tx, doc); err != nil {
					return err
				}
			}
		}
		return writeSettings(ctx, tx, snap.Settings)
	})
}

// ClearAll empties every table and resets settings to defaults. It is
// irreversible and does not touch the pending sync queue.
func (s *Store) ClearAll(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, name := range models.TableNames() {
			if err := s.tables[name].clear(ctx, tx); err != nil {
				return err
			}
		}
		return writeSettings(ctx, tx, models.DefaultSettings())
	})
}
