package syncq

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/sakanapp/sakan/internal/models"
	"github.com/sakanapp/sakan/internal/store"
)

func setupQueue(t *testing.T) *SQLiteQueue {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, store.RunMigrations(context.Background(), db))
	return NewSQLiteQueue(db)
}

func queuedOp(id, resource, method string) *models.QueuedOperation {
	return &models.QueuedOperation{
		QueueID:  id,
		Resource: resource,
		Method:   method,
		Body:     []byte(`{"id":"` + id + `"}`),
	}
}

func TestSQLiteQueue_AppendAndAllKeepOrder(t *testing.T) {
	q := setupQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Append(ctx, queuedOp("q1", "residents", "POST")))
	require.NoError(t, q.Append(ctx, queuedOp("q2", "residents/r1", "PUT")))
	require.NoError(t, q.Append(ctx, queuedOp("q3", "sms", "POST")))

	ops, err := q.All(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 3)
	assert.Equal(t, "q1", ops[0].QueueID)
	assert.Equal(t, "q2", ops[1].QueueID)
	assert.Equal(t, "q3", ops[2].QueueID)

	assert.Equal(t, "residents/r1", ops[1].Resource)
	assert.Equal(t, "PUT", ops[1].Method)
	assert.JSONEq(t, `{"id":"q2"}`, string(ops[1].Body))
	assert.False(t, ops[0].EnqueuedAt.IsZero())
}

func TestSQLiteQueue_Remove(t *testing.T) {
	q := setupQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Append(ctx, queuedOp("q1", "residents", "POST")))
	require.NoError(t, q.Append(ctx, queuedOp("q2", "residents", "POST")))

	require.NoError(t, q.Remove(ctx, "q1"))

	ops, err := q.All(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "q2", ops[0].QueueID)

	require.ErrorIs(t, q.Remove(ctx, "q1"), ErrQueueEntryNotFound)
}

func TestSQLiteQueue_MarkAttempt(t *testing.T) {
	q := setupQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Append(ctx, queuedOp("q1", "residents", "POST")))
	require.NoError(t, q.MarkAttempt(ctx, "q1", "connection refused"))
	require.NoError(t, q.MarkAttempt(ctx, "q1", "timeout"))

	ops, err := q.All(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, 2, ops[0].Attempts)
	assert.Equal(t, "timeout", ops[0].LastError)

	require.ErrorIs(t, q.MarkAttempt(ctx, "missing", "x"), ErrQueueEntryNotFound)
}

func TestSQLiteQueue_Len(t *testing.T) {
	q := setupQueue(t)
	ctx := context.Background()

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, q.Append(ctx, queuedOp("q1", "residents", "POST")))
	n, err = q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
