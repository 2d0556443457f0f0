package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sakanapp/sakan/internal/dbx"
	"github.com/sakanapp/sakan/internal/models"
)

// Settings returns the stored settings, or the defaults when nothing has
// been saved yet.
func (s *Store) Settings(ctx context.Context) (models.Settings, error) {
	return loadSettings(ctx, s.db)
}

func loadSettings(ctx context.Context, q dbx.DBTX) (models.Settings, error) {
	var doc string
	err := q.QueryRowContext(ctx, `SELECT doc FROM settings WHERE id = 1`).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	out := models.DefaultSettings()
	if err := json.Unmarshal([]byte(doc), &out); err != nil {
		return models.Settings{}, fmt.Errorf("corrupt settings: %w", err)
	}
	return out, nil
}

// UpdateSettings shallow-merges patch onto the stored settings, the same
// semantics as a record update, and returns the result.
func (s *Store) UpdateSettings(ctx context.Context, patch map[string]any) (models.Settings, error) {
	current, err := s.Settings(ctx)
	if err != nil {
		return models.Settings{}, err
	}

	raw, err := json.Marshal(current)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to encode settings: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	for k, v := range patch {
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to encode settings: %w", err)
	}
	var next models.Settings
	if err := json.Unmarshal(merged, &next); err != nil {
		return models.Settings{}, fmt.Errorf("patch does not match settings schema: %w", err)
	}

	if err := writeSettings(ctx, s.db, next); err != nil {
		return models.Settings{}, err
	}
	return next, nil
}

// ReplaceSettings overwrites settings wholesale; used by the import path.
func (s *Store) ReplaceSettings(ctx context.Context, settings models.Settings) error {
	return writeSettings(ctx, s.db, settings)
}

func writeSettings(ctx context.Context, q dbx.DBTX, settings models.Settings) error {
	doc, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	query := `INSERT INTO settings (id, doc) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`
	if _, err := q.ExecContext(ctx, query, string(doc)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
