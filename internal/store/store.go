// Package store implements the local record store: five keyed tables, a
// settings singleton and full-state export/import, persisted in a SQLite
// database. The store is the single source of truth for display; the sync
// layer only calls its mutation operations, never the database directly.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/sakanapp/sakan/internal/models"
	"github.com/sakanapp/sakan/internal/store/migrations"
)

// Store owns the local database. Mutations persist synchronously before
// returning; a *sql.DB serializes access, so no extra locking is needed.
type Store struct {
	db *sql.DB

	Units       *Table[*models.Unit]
	Residents   *Table[*models.Resident]
	Contracts   *Table[*models.Contract]
	Payments    *Table[*models.Payment]
	Maintenance *Table[*models.Maintenance]

	tables map[string]rawTable
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the database at dsn and migrates it.
// The modernc.org/sqlite driver must be blank-imported by the binary.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return New(db), nil
}

// New wraps an already-migrated database handle. Tests use this with an
// in-memory database.
func New(db *sql.DB) *Store {
	s := &Store{
		db:          db,
		Units:       newTable(db, models.TableUnits, func() *models.Unit { return &models.Unit{} }),
		Residents:   newTable(db, models.TableResidents, func() *models.Resident { return &models.Resident{} }),
		Contracts:   newTable(db, models.TableContracts, func() *models.Contract { return &models.Contract{} }),
		Payments:    newTable(db, models.TablePayments, func() *models.Payment { return &models.Payment{} }),
		Maintenance: newTable(db, models.TableMaintenance, func() *models.Maintenance { return &models.Maintenance{} }),
	}
	s.tables = map[string]rawTable{
		models.TableUnits:       s.Units,
		models.TableResidents:   s.Residents,
		models.TableContracts:   s.Contracts,
		models.TablePayments:    s.Payments,
		models.TableMaintenance: s.Maintenance,
	}
	return s
}

// DB exposes the underlying handle so the sync queue can share the same
// database file.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }
