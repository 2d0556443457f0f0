package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sakanapp/sakan/internal/auth"
	"github.com/sakanapp/sakan/internal/models"
	"github.com/sakanapp/sakan/internal/reports"
)

// CreateResident validates the resident, applies it locally and delivers it
// to the proxy best-effort. The id is assigned before the first network
// attempt, so a redelivered create is idempotent on the server side.
func (b *Building) CreateResident(ctx context.Context, r *models.Resident) error {
	if err := b.validateResident(ctx, r, ""); err != nil {
		return err
	}
	if r.Status == "" {
		r.Status = models.ResidentStatusActive
	}

	r.ID = uuid.NewString()
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	body, err := json.Marshal(r)
	if err != nil {
		return err
	}
	res, err := b.outbox.EnqueueOrSend(ctx, models.TableResidents, http.MethodPost, body)
	if err != nil {
		return b.fail(err, "Could not queue the resident for sync")
	}

	if err := b.store.Residents.Add(ctx, r); err != nil {
		return b.fail(err, "Could not save the resident")
	}

	switch {
	case res.Queued:
		b.warning(fmt.Sprintf("Resident %s saved locally; sync pending", r.Name))
	case res.Rejected:
		b.warning(fmt.Sprintf("Resident %s saved locally; proxy rejected the record: %s", r.Name, res.Response.Error))
	default:
		b.success(fmt.Sprintf("Resident %s added", r.Name))
	}
	return nil
}

// UpdateResident applies the patch locally first, then pushes the updated
// record to the proxy, queueing on failure.
func (b *Building) UpdateResident(ctx context.Context, id string, patch map[string]any) (*models.Resident, error) {
	if phone, ok := patch["phone"].(string); ok {
		if err := b.checkPhoneFree(ctx, phone, id); err != nil {
			return nil, err
		}
	}

	r, err := b.store.Residents.Update(ctx, id, patch)
	if err != nil {
		return nil, b.fail(err, "Could not update the resident")
	}

	body, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	res, err := b.outbox.EnqueueOrSend(ctx, models.TableResidents+"/"+id, http.MethodPut, body)
	if err != nil {
		return nil, b.fail(err, "Could not queue the resident update for sync")
	}

	switch {
	case res.Queued:
		b.warning(fmt.Sprintf("Resident %s updated locally; sync pending", r.Name))
	case res.Rejected:
		b.warning(fmt.Sprintf("Resident %s updated locally; proxy rejected the update: %s", r.Name, res.Response.Error))
	default:
		b.success(fmt.Sprintf("Resident %s updated", r.Name))
	}
	return r, nil
}

// DeleteResident refuses while the resident holds an active contract. When
// the proxy is unreachable the record is kept with status pending_delete
// and removed for real once the queued delete drains.
func (b *Building) DeleteResident(ctx context.Context, id string) error {
	r, err := b.store.Residents.Get(ctx, id)
	if err != nil {
		return b.fail(err, "Resident not found")
	}

	contracts, err := b.store.Contracts.All(ctx)
	if err != nil {
		return err
	}
	now := b.now()
	for _, c := range contracts {
		if c.ResidentID == id && reports.IsContractActive(c, now) {
			return b.fail(ErrResidentHasActiveContract, "Cannot delete a resident with an active contract")
		}
	}

	res, err := b.outbox.EnqueueOrSend(ctx, models.TableResidents+"/"+id, http.MethodDelete, nil)
	if err != nil {
		return b.fail(err, "Could not queue the resident deletion for sync")
	}

	if res.Queued {
		r.Status = models.ResidentStatusPendingDelete
		if err := b.store.Residents.Save(ctx, r); err != nil {
			return b.fail(err, "Could not mark the resident for deletion")
		}
		b.warning(fmt.Sprintf("Resident %s marked for deletion; sync pending", r.Name))
		return nil
	}

	if err := b.store.Residents.Delete(ctx, id); err != nil {
		return b.fail(err, "Resident not found")
	}
	if res.Rejected {
		b.warning(fmt.Sprintf("Resident %s deleted locally; proxy rejected the deletion: %s", r.Name, res.Response.Error))
	} else {
		b.success(fmt.Sprintf("Resident %s deleted", r.Name))
	}
	return nil
}

// Sync drains the pending queue and finishes any deletions whose queued
// operation has been delivered.
func (b *Building) Sync(ctx context.Context) (delivered, remaining int, err error) {
	delivered, remaining, err = b.outbox.Drain(ctx)
	if err != nil {
		return delivered, remaining, err
	}
	return delivered, remaining, b.reconcilePendingDeletes(ctx)
}

// reconcilePendingDeletes removes residents in pending_delete whose queued
// delete no longer sits in the outbox.
func (b *Building) reconcilePendingDeletes(ctx context.Context) error {
	residents, err := b.store.Residents.All(ctx)
	if err != nil {
		return err
	}
	pending, err := b.outbox.Pending(ctx)
	if err != nil {
		return err
	}

	stillQueued := map[string]bool{}
	for _, op := range pending {
		if i := strings.LastIndexByte(op.Resource, '/'); i >= 0 {
			stillQueued[op.Resource[i+1:]] = true
		}
	}

	for _, r := range residents {
		if r.Status != models.ResidentStatusPendingDelete || stillQueued[r.ID] {
			continue
		}
		if err := b.store.Residents.Delete(ctx, r.ID); err != nil {
			return err
		}
		b.log.Info(ctx, "completed deferred resident deletion", "resident_id", r.ID)
	}
	return nil
}

// SetResidentPassword installs a permanent password chosen by the resident.
func (b *Building) SetResidentPassword(ctx context.Context, id, password string) error {
	r, err := b.store.Residents.Get(ctx, id)
	if err != nil {
		return b.fail(err, "Resident not found")
	}
	if err := auth.SetPassword(r, password); err != nil {
		return b.fail(err, "Password must be at least 8 characters")
	}
	if err := b.store.Residents.Save(ctx, r); err != nil {
		return b.fail(err, "Could not save the password")
	}
	b.success("Password updated")
	return nil
}

// IssueTempPassword generates a one-time password for the resident and
// returns it so the operator can hand it over (typically by SMS). The
// resident must change it on first login.
func (b *Building) IssueTempPassword(ctx context.Context, id string) (string, error) {
	r, err := b.store.Residents.Get(ctx, id)
	if err != nil {
		return "", b.fail(err, "Resident not found")
	}

	temp := uuid.NewString()[:8]
	if err := auth.SetTempPassword(r, temp); err != nil {
		return "", err
	}
	if err := b.store.Residents.Save(ctx, r); err != nil {
		return "", b.fail(err, "Could not save the temporary password")
	}
	b.success("Temporary password issued")
	return temp, nil
}

// VerifyResidentLogin authenticates by phone and password. mustChange tells
// the portal to demand a new password before anything else.
func (b *Building) VerifyResidentLogin(ctx context.Context, phone, password string) (r *models.Resident, mustChange bool, err error) {
	residents, err := b.store.Residents.All(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, cand := range residents {
		if cand.Phone != phone || cand.Status == models.ResidentStatusPendingDelete {
			continue
		}
		mustChange, err = auth.Verify(cand, password)
		if err != nil {
			return nil, false, err
		}
		return cand, mustChange, nil
	}
	return nil, false, ErrResidentNotFound
}

func (b *Building) validateResident(ctx context.Context, r *models.Resident, skipID string) error {
	if r.Name == "" {
		return b.fail(fmt.Errorf("%w: resident name is required", ErrValidation), "Resident name is required")
	}
	if r.Phone == "" {
		return b.fail(fmt.Errorf("%w: resident phone is required", ErrValidation), "Resident phone is required")
	}
	if r.Status != "" && !r.Status.Valid() {
		return b.fail(fmt.Errorf("%w: unknown resident status %q", ErrValidation, r.Status), "Unknown resident status")
	}
	return b.checkPhoneFree(ctx, r.Phone, skipID)
}

func (b *Building) checkPhoneFree(ctx context.Context, phone, skipID string) error {
	residents, err := b.store.Residents.All(ctx)
	if err != nil {
		return err
	}
	for _, cand := range residents {
		if cand.Phone == phone && cand.ID != skipID {
			return b.fail(ErrPhoneTaken, fmt.Sprintf("Phone %s is already registered", phone))
		}
	}
	return nil
}
