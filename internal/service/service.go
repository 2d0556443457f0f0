// Package service implements the validated domain operations over the
// record store: CRUD with uniqueness, overlap and delete guards, remote
// sync for resident changes and SMS, and the user-facing outcome
// notifications. UI collaborators call into this package and render what
// comes back; no rendering concern lives here.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/sakanapp/sakan/internal/logging"
	"github.com/sakanapp/sakan/internal/notify"
	"github.com/sakanapp/sakan/internal/store"
	"github.com/sakanapp/sakan/internal/syncq"
)

var (
	ErrValidation = errors.New("validation failed")

	ErrUnitNumberTaken  = errors.New("unit number already in use")
	ErrPhoneTaken       = errors.New("phone number already in use")
	ErrUnitNotFound     = errors.New("unit does not exist")
	ErrResidentNotFound = errors.New("resident does not exist")

	ErrUnitHasActiveContract     = errors.New("unit has an active contract")
	ErrResidentHasActiveContract = errors.New("resident has an active contract")
	ErrContractOverlap           = errors.New("contract dates overlap an existing contract for this unit")

	ErrSMSDisabled      = errors.New("sms sending is disabled in settings")
	ErrSMSNotConfigured = errors.New("sms proxy endpoint is not configured")

	ErrRemoteRejected = errors.New("proxy rejected the operation")
)

// Building wires the store, the sync outbox and the notification channel
// into one dependency-injected service. There is no ambient global state;
// construct one and pass it to whoever needs it.
type Building struct {
	store    *store.Store
	outbox   *syncq.Outbox
	notifier notify.Notifier
	log      logging.Logger

	// now is swapped in tests to pin "today".
	now func() time.Time
}

func New(st *store.Store, outbox *syncq.Outbox, notifier notify.Notifier, log logging.Logger) *Building {
	return &Building{
		store:    st,
		outbox:   outbox,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Store exposes read access for query/report composition by the UI layer.
func (b *Building) Store() *store.Store { return b.store }

// Run syncs on a fixed interval and on NotifyOnline signals until ctx is
// cancelled. Every pass is a full Sync, so deferred deletions are
// reconciled no matter which trigger fired. Overlap with a concurrent Sync
// is impossible because the drain itself is guarded.
func (b *Building) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
		case <-b.outbox.Online():
		case <-ctx.Done():
			return
		}

		if _, _, err := b.Sync(ctx); err != nil && !errors.Is(err, syncq.ErrDrainBusy) {
			b.log.Error(ctx, "sync pass failed", "error", err.Error())
		}
	}
}

// NotifyOnline tells the running sync loop that connectivity returned.
// Never blocks; a signal arriving during a pass is carried over to the next.
func (b *Building) NotifyOnline() { b.outbox.NotifyOnline() }

const noticeDuration = 3 * time.Second

func (b *Building) success(msg string) {
	b.notifier.Publish(notify.Notification{Message: msg, Kind: notify.KindSuccess, Duration: noticeDuration})
}

func (b *Building) warning(msg string) {
	b.notifier.Publish(notify.Notification{Message: msg, Kind: notify.KindWarning, Duration: noticeDuration})
}

func (b *Building) failure(msg string) {
	b.notifier.Publish(notify.Notification{Message: msg, Kind: notify.KindError, Duration: noticeDuration})
}

// fail publishes the specific reason and returns err. Every failure path
// resolves to exactly one message; a generic catch-all would hide the
// cause from the user.
func (b *Building) fail(err error, msg string) error {
	b.failure(msg)
	return err
}
