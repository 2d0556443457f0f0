package service

import (
	"context"
	"fmt"

	"github.com/sakanapp/sakan/internal/models"
	"github.com/sakanapp/sakan/internal/reports"
)

// CreateUnit validates and stores a new unit. The unit number must be
// unique within the table; rent cannot be negative.
func (b *Building) CreateUnit(ctx context.Context, u *models.Unit) error {
	if u.UnitNumber == "" {
		return b.fail(fmt.Errorf("%w: unit number is required", ErrValidation), "Unit number is required")
	}
	if u.Rent < 0 {
		return b.fail(fmt.Errorf("%w: rent cannot be negative", ErrValidation), "Rent cannot be negative")
	}
	if u.Status == "" {
		u.Status = models.UnitStatusAvailable
	}
	if !u.Status.Valid() {
		return b.fail(fmt.Errorf("%w: unknown unit status %q", ErrValidation, u.Status), "Unknown unit status")
	}

	taken, err := b.unitNumberTaken(ctx, u.UnitNumber, "")
	if err != nil {
		return err
	}
	if taken {
		return b.fail(ErrUnitNumberTaken, fmt.Sprintf("Unit %s already exists", u.UnitNumber))
	}

	if err := b.store.Units.Add(ctx, u); err != nil {
		return b.fail(err, "Could not save the unit")
	}
	b.success(fmt.Sprintf("Unit %s added", u.UnitNumber))
	return nil
}

// UpdateUnit applies a partial update. Changing the unit number re-checks
// uniqueness against every other unit.
func (b *Building) UpdateUnit(ctx context.Context, id string, patch map[string]any) (*models.Unit, error) {
	if num, ok := patch["unitNumber"].(string); ok {
		taken, err := b.unitNumberTaken(ctx, num, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, b.fail(ErrUnitNumberTaken, fmt.Sprintf("Unit %s already exists", num))
		}
	}

	u, err := b.store.Units.Update(ctx, id, patch)
	if err != nil {
		return nil, b.fail(err, "Could not update the unit")
	}
	b.success(fmt.Sprintf("Unit %s updated", u.UnitNumber))
	return u, nil
}

// DeleteUnit refuses while any contract covering today references the unit.
func (b *Building) DeleteUnit(ctx context.Context, id string) error {
	contracts, err := b.store.Contracts.All(ctx)
	if err != nil {
		return err
	}
	now := b.now()
	for _, c := range contracts {
		if c.UnitID == id && reports.IsContractActive(c, now) {
			return b.fail(ErrUnitHasActiveContract, "Cannot delete a unit with an active contract")
		}
	}

	if err := b.store.Units.Delete(ctx, id); err != nil {
		return b.fail(err, "Unit not found")
	}
	b.success("Unit deleted")
	return nil
}

func (b *Building) unitNumberTaken(ctx context.Context, number, skipID string) (bool, error) {
	units, err := b.store.Units.All(ctx)
	if err != nil {
		return false, err
	}
	for _, u := range units {
		if u.UnitNumber == number && u.ID != skipID {
			return true, nil
		}
	}
	return false, nil
}
