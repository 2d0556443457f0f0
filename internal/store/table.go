package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sakanapp/sakan/internal/dbx"
	"github.com/sakanapp/sakan/internal/models"
)

// Table is a typed handle over one logical table. The row shape is uniform:
// the canonical JSON form of the record lives in the doc column, with id and
// timestamps duplicated into their own columns for keyed access.
//
// All reads return records in insertion (rowid) order.
type Table[T models.Record] struct {
	name  string
	db    dbx.DBTX
	blank func() T
}

func newTable[T models.Record](db dbx.DBTX, name string, blank func() T) *Table[T] {
	return &Table[T]{name: name, db: db, blank: blank}
}

func (t *Table[T]) Name() string { return t.name }

// All returns every record in the table in insertion order. An empty table
// yields an empty, non-nil slice.
func (t *Table[T]) All(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s ORDER BY rowid`, t.name)
	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", t.name, err)
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		rec := t.blank()
		if err := json.Unmarshal([]byte(doc), rec); err != nil {
			return nil, fmt.Errorf("corrupt record in %s: %w", t.name, err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns the record with the given id, or ErrNotFound.
func (t *Table[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = ?`, t.name)
	var doc string
	err := t.db.QueryRowContext(ctx, query, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("failed to select from %s: %w", t.name, err)
	}

	rec := t.blank()
	if err := json.Unmarshal([]byte(doc), rec); err != nil {
		return zero, fmt.Errorf("corrupt record in %s: %w", t.name, err)
	}
	return rec, nil
}

// Add inserts a new record. When the id is empty a new one is assigned;
// supplied ids (the restore path) are kept as-is but must be unique. Zero
// timestamps are stamped with the current time, createdAt == updatedAt.
func (t *Table[T]) Add(ctx context.Context, rec T) error {
	meta := rec.RecordMeta()
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = now
	}
	if meta.UpdatedAt.IsZero() {
		meta.UpdatedAt = meta.CreatedAt
	}

	var exists int
	check := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE id = ?`, t.name)
	if err := t.db.QueryRowContext(ctx, check, meta.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check id in %s: %w", t.name, err)
	}
	if exists > 0 {
		return fmt.Errorf("%s id %q: %w", t.name, meta.ID, ErrDuplicateID)
	}

	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode %s record: %w", t.name, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc, created_at, updated_at) VALUES (?, ?, ?, ?)`, t.name)
	_, err = t.db.ExecContext(ctx, query, meta.ID, string(doc),
		meta.CreatedAt.Format(time.RFC3339Nano), meta.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", t.name, err)
	}
	return nil
}

// Update applies a shallow merge of patch onto the stored record: patched
// keys overwrite, everything else is retained. The id and createdAt fields
// are invariant and silently skipped; updatedAt is stamped. The merged
// document is re-decoded into the table's record type, so a patch with a
// mistyped value fails before anything is written.
func (t *Table[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	var zero T

	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = ?`, t.name)
	var doc string
	err := t.db.QueryRowContext(ctx, query, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("failed to select from %s: %w", t.name, err)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(doc), &fields); err != nil {
		return zero, fmt.Errorf("corrupt record in %s: %w", t.name, err)
	}
	for k, v := range patch {
		if k == "id" || k == "createdAt" || k == "updatedAt" {
			continue
		}
		fields[k] = v
	}
	fields["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)

	merged, err := json.Marshal(fields)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s record: %w", t.name, err)
	}
	rec := t.blank()
	if err := json.Unmarshal(merged, rec); err != nil {
		return zero, fmt.Errorf("patch does not match %s schema: %w", t.name, err)
	}

	return rec, t.write(ctx, rec)
}

// Save replaces the stored record with rec, stamping updatedAt. It is the
// typed counterpart of Update for callers that already hold the full record.
func (t *Table[T]) Save(ctx context.Context, rec T) error {
	rec.RecordMeta().UpdatedAt = time.Now().UTC()
	return t.write(ctx, rec)
}

func (t *Table[T]) write(ctx context.Context, rec T) error {
	meta := rec.RecordMeta()
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode %s record: %w", t.name, err)
	}

	query := fmt.Sprintf(`UPDATE %s SET doc = ?, updated_at = ? WHERE id = ?`, t.name)
	res, err := t.db.ExecContext(ctx, query, string(doc), meta.UpdatedAt.Format(time.RFC3339Nano), meta.ID)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", t.name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the record with the given id, or returns ErrNotFound.
// Deleted ids are never reassigned because ids are random.
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, t.name)
	res, err := t.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", t.name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of records in the table.
func (t *Table[T]) Count(ctx context.Context) (int, error) {
	var n int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, t.name)
	if err := t.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", t.name, err)
	}
	return n, nil
}

// rawTable is the untyped view of a Table used by export/import/clear, which
// walk all tables uniformly inside one transaction.
type rawTable interface {
	Name() string
	exportDocs(ctx context.Context, q dbx.DBTX) ([]json.RawMessage, error)
	importDoc(ctx context.Context, q dbx.DBTX, doc json.RawMessage) error
	clear(ctx context.Context, q dbx.DBTX) error
}

func (t *Table[T]) exportDocs(ctx context.Context, q dbx.DBTX) ([]json.RawMessage, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s ORDER BY rowid`, t.name)
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", t.name, err)
	}
	defer rows.Close()

	docs := []json.RawMessage{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, json.RawMessage(doc))
	}
	return docs, rows.Err()
}

// importDoc validates the document against the table's record type before
// inserting it verbatim, preserving id and timestamps from the snapshot.
func (t *Table[T]) importDoc(ctx context.Context, q dbx.DBTX, doc json.RawMessage) error {
	rec := t.blank()
	if err := json.Unmarshal(doc, rec); err != nil {
		return fmt.Errorf("%w: %s record: %v", ErrInvalidSnapshot, t.name, err)
	}
	meta := rec.RecordMeta()
	if meta.ID == "" {
		return fmt.Errorf("%w: %s record without id", ErrInvalidSnapshot, t.name)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc, created_at, updated_at) VALUES (?, ?, ?, ?)`, t.name)
	_, err := q.ExecContext(ctx, query, meta.ID, string(doc),
		meta.CreatedAt.Format(time.RFC3339Nano), meta.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", t.name, err)
	}
	return nil
}

func (t *Table[T]) clear(ctx context.Context, q dbx.DBTX) error {
	query := fmt.Sprintf(`DELETE FROM %s`, t.name)
	if _, err := q.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to clear %s: %w", t.name, err)
	}
	return nil
}
