package syncq

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakanapp/sakan/internal/dbx"
	"github.com/sakanapp/sakan/internal/models"
)

// ErrQueueEntryNotFound is returned when removing or marking an entry that
// is no longer queued.
var ErrQueueEntryNotFound = errors.New("queue entry not found")

// QueueRepository is the durable pending-operation queue. All returns
// entries strictly in enqueue order.
type QueueRepository interface {
	Append(ctx context.Context, op *models.QueuedOperation) error
	All(ctx context.Context) ([]*models.QueuedOperation, error)
	Remove(ctx context.Context, queueID string) error
	MarkAttempt(ctx context.Context, queueID string, attemptErr string) error
	Len(ctx context.Context) (int, error)
}

// SQLiteQueue persists queued operations in the sync_queue table, sharing
// the store's database so a crash loses nothing.
type SQLiteQueue struct {
	db dbx.DBTX
}

func NewSQLiteQueue(db dbx.DBTX) *SQLiteQueue {
	return &SQLiteQueue{db: db}
}

func (q *SQLiteQueue) Append(ctx context.Context, op *models.QueuedOperation) error {
	if op.EnqueuedAt.IsZero() {
		op.EnqueuedAt = time.Now().UTC()
	}
	query := `INSERT INTO sync_queue (queue_id, resource, method, body, enqueued_at, attempts, last_error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := q.db.ExecContext(ctx, query,
		op.QueueID, op.Resource, op.Method, string(op.Body),
		op.EnqueuedAt.Format(time.RFC3339Nano), op.Attempts, op.LastError)
	if err != nil {
		return fmt.Errorf("failed to append queue entry: %w", err)
	}
	return nil
}

func (q *SQLiteQueue) All(ctx context.Context) ([]*models.QueuedOperation, error) {
	query := `SELECT queue_id, resource, method, body, enqueued_at, attempts, last_error
		FROM sync_queue ORDER BY rowid`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select queue entries: %w", err)
	}
	defer rows.Close()

	result := []*models.QueuedOperation{}
	for rows.Next() {
		op := &models.QueuedOperation{}
		var body, enqueuedAt string
		if err := rows.Scan(&op.QueueID, &op.Resource, &op.Method, &body, &enqueuedAt, &op.Attempts, &op.LastError); err != nil {
			return nil, err
		}
		op.Body = []byte(body)
		op.EnqueuedAt, err = time.Parse(time.RFC3339Nano, enqueuedAt)
		if err != nil {
			return nil, fmt.Errorf("corrupt queue entry %s: %w", op.QueueID, err)
		}
		result = append(result, op)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (q *SQLiteQueue) Remove(ctx context.Context, queueID string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM sync_queue WHERE queue_id = ?`, queueID)
	if err != nil {
		return fmt.Errorf("failed to remove queue entry: %w", err)
	}
	return requireAffected(res)
}

func (q *SQLiteQueue) MarkAttempt(ctx context.Context, queueID string, attemptErr string) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE sync_queue SET attempts = attempts + 1, last_error = ? WHERE queue_id = ?`,
		attemptErr, queueID)
	if err != nil {
		return fmt.Errorf("failed to mark queue attempt: %w", err)
	}
	return requireAffected(res)
}

func (q *SQLiteQueue) Len(ctx context.Context) (int, error) {
	var n int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sync_queue`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count queue entries: %w", err)
	}
	return n, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrQueueEntryNotFound
	}
	return nil
}
