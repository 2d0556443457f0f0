package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/sakanapp/sakan/internal/logging"
	"github.com/sakanapp/sakan/internal/notify"
	"github.com/sakanapp/sakan/internal/store"
	"github.com/sakanapp/sakan/internal/syncq"
)

// fakeRemote stands in for the proxy. offline makes every Send fail at the
// transport level; notConfigured mimics a missing endpoint; rejectWith makes
// the proxy answer with a definitive refusal.
type fakeRemote struct {
	mu            sync.Mutex
	offline       bool
	notConfigured bool
	rejectWith    string
	sent          []sentOp
}

type sentOp struct {
	Resource string
	Method   string
	Body     []byte
}

func (f *fakeRemote) Send(ctx context.Context, resource, method string, body []byte) (*syncq.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.notConfigured {
		return nil, syncq.ErrNotConfigured
	}
	if f.offline {
		return nil, errors.New("connection refused")
	}
	if f.rejectWith != "" {
		return &syncq.Response{Success: false, Error: f.rejectWith}, nil
	}
	f.sent = append(f.sent, sentOp{Resource: resource, Method: method, Body: body})
	return &syncq.Response{Success: true}, nil
}

func (f *fakeRemote) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.offline || f.notConfigured {
		return errors.New("connection refused")
	}
	return nil
}

func (f *fakeRemote) setOffline(v bool) {
	f.mu.Lock()
	f.offline = v
	f.mu.Unlock()
}

func (f *fakeRemote) setReject(reason string) {
	f.mu.Lock()
	f.rejectWith = reason
	f.mu.Unlock()
}

func (f *fakeRemote) sentOps() []sentOp {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentOp(nil), f.sent...)
}

type harness struct {
	building *Building
	remote   *fakeRemote
	notices  *notify.Recorder
}

func setup(t *testing.T) *harness {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.RunMigrations(context.Background(), db))

	remote := &fakeRemote{}
	outbox := syncq.NewOutbox(remote, syncq.NewSQLiteQueue(db), logging.Nop{})
	notices := notify.NewRecorder()

	b := New(store.New(db), outbox, notices, logging.Nop{})
	return &harness{building: b, remote: remote, notices: notices}
}

// pinNow fixes the service clock for contract-state checks.
func (h *harness) pinNow(t time.Time) {
	h.building.now = func() time.Time { return t }
}

func (h *harness) lastNotice(t *testing.T) notify.Notification {
	t.Helper()
	n, ok := h.notices.Last()
	require.True(t, ok, "expected at least one notification")
	return n
}
