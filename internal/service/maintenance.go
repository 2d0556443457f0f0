package service

import (
	"context"
	"fmt"

	"github.com/sakanapp/sakan/internal/models"
)

// CreateMaintenance validates and stores a maintenance request. Priority
// defaults to medium and status to pending.
func (b *Building) CreateMaintenance(ctx context.Context, m *models.Maintenance) error {
	if m.Title == "" {
		return b.fail(fmt.Errorf("%w: request title is required", ErrValidation), "Request title is required")
	}
	if _, err := b.store.Units.Get(ctx, m.UnitID); err != nil {
		return b.fail(ErrUnitNotFound, "Request unit does not exist")
	}
	if m.ResidentID != "" {
		if _, err := b.store.Residents.Get(ctx, m.ResidentID); err != nil {
			return b.fail(ErrResidentNotFound, "Request resident does not exist")
		}
	}
	if m.Priority == "" {
		m.Priority = models.PriorityMedium
	}
	if !m.Priority.Valid() {
		return b.fail(fmt.Errorf("%w: unknown priority %q", ErrValidation, m.Priority), "Unknown request priority")
	}
	if m.Status == "" {
		m.Status = models.MaintenanceStatusPending
	}
	if !m.Status.Valid() {
		return b.fail(fmt.Errorf("%w: unknown status %q", ErrValidation, m.Status), "Unknown request status")
	}

	if err := b.store.Maintenance.Add(ctx, m); err != nil {
		return b.fail(err, "Could not save the maintenance request")
	}
	b.success(fmt.Sprintf("Maintenance request %q created", m.Title))
	return nil
}

func (b *Building) UpdateMaintenance(ctx context.Context, id string, patch map[string]any) (*models.Maintenance, error) {
	m, err := b.store.Maintenance.Update(ctx, id, patch)
	if err != nil {
		return nil, b.fail(err, "Could not update the maintenance request")
	}
	b.success(fmt.Sprintf("Maintenance request %q updated", m.Title))
	return m, nil
}

func (b *Building) DeleteMaintenance(ctx context.Context, id string) error {
	if err := b.store.Maintenance.Delete(ctx, id); err != nil {
		return b.fail(err, "Maintenance request not found")
	}
	b.success("Maintenance request deleted")
	return nil
}
