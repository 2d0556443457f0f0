package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sakanapp/sakan/internal/models"
	"github.com/sakanapp/sakan/internal/reports"
)

// CreateContract validates the lease and stores it. The referenced resident
// and unit must exist, the date range must be sane, and the unit must be
// free of overlapping contracts. On success the unit is marked occupied.
func (b *Building) CreateContract(ctx context.Context, c *models.Contract) error {
	if err := b.validateContract(ctx, c); err != nil {
		return err
	}

	contracts, err := b.store.Contracts.All(ctx)
	if err != nil {
		return err
	}
	if clash := reports.FindOverlap(contracts, c.UnitID, c.StartDate, c.EndDate, ""); clash != nil {
		return b.fail(ErrContractOverlap,
			fmt.Sprintf("Dates overlap contract %s on the same unit", clash.ContractNumber))
	}

	if err := b.store.Contracts.Add(ctx, c); err != nil {
		return b.fail(err, "Could not save the contract")
	}

	if _, err := b.store.Units.Update(ctx, c.UnitID, map[string]any{"status": string(models.UnitStatusOccupied)}); err != nil {
		return b.fail(err, "Could not update the unit status")
	}
	b.success(fmt.Sprintf("Contract %s created", c.ContractNumber))
	return nil
}

// UpdateContract applies a partial update, re-running the overlap check
// when either date moves.
func (b *Building) UpdateContract(ctx context.Context, id string, patch map[string]any) (*models.Contract, error) {
	current, err := b.store.Contracts.Get(ctx, id)
	if err != nil {
		return nil, b.fail(err, "Contract not found")
	}

	start, end := current.StartDate, current.EndDate
	if v, ok := patch["startDate"].(string); ok {
		if start, err = time.Parse(time.RFC3339, v); err != nil {
			return nil, b.fail(fmt.Errorf("%w: bad start date", ErrValidation), "Start date is not a valid date")
		}
	}
	if v, ok := patch["endDate"].(string); ok {
		if end, err = time.Parse(time.RFC3339, v); err != nil {
			return nil, b.fail(fmt.Errorf("%w: bad end date", ErrValidation), "End date is not a valid date")
		}
	}
	if !end.After(start) {
		return nil, b.fail(fmt.Errorf("%w: end date must be after start date", ErrValidation),
			"End date must be after the start date")
	}

	contracts, err := b.store.Contracts.All(ctx)
	if err != nil {
		return nil, err
	}
	if clash := reports.FindOverlap(contracts, current.UnitID, start, end, id); clash != nil {
		return nil, b.fail(ErrContractOverlap,
			fmt.Sprintf("Dates overlap contract %s on the same unit", clash.ContractNumber))
	}

	c, err := b.store.Contracts.Update(ctx, id, patch)
	if err != nil {
		return nil, b.fail(err, "Could not update the contract")
	}
	b.success(fmt.Sprintf("Contract %s updated", c.ContractNumber))
	return c, nil
}

// DeleteContract removes the lease and frees the unit when no other
// currently-active contract covers it.
func (b *Building) DeleteContract(ctx context.Context, id string) error {
	c, err := b.store.Contracts.Get(ctx, id)
	if err != nil {
		return b.fail(err, "Contract not found")
	}

	if err := b.store.Contracts.Delete(ctx, id); err != nil {
		return b.fail(err, "Contract not found")
	}

	contracts, err := b.store.Contracts.All(ctx)
	if err != nil {
		return err
	}
	now := b.now()
	unitStillOccupied := false
	for _, other := range contracts {
		if other.UnitID == c.UnitID && reports.IsContractActive(other, now) {
			unitStillOccupied = true
			break
		}
	}
	if !unitStillOccupied {
		if _, err := b.store.Units.Update(ctx, c.UnitID, map[string]any{"status": string(models.UnitStatusAvailable)}); err != nil {
			return b.fail(err, "Could not update the unit status")
		}
	}
	b.success(fmt.Sprintf("Contract %s deleted", c.ContractNumber))
	return nil
}

// ContractStatus classifies the contract against "now" using the warning
// window from settings.
func (b *Building) ContractStatus(ctx context.Context, c *models.Contract) (reports.ContractState, error) {
	settings, err := b.store.Settings(ctx)
	if err != nil {
		return "", err
	}
	warn := time.Duration(settings.ContractWarnDays) * 24 * time.Hour
	if warn <= 0 {
		warn = reports.DefaultWarnWindow
	}
	return reports.ClassifyContract(c, b.now(), warn), nil
}

func (b *Building) validateContract(ctx context.Context, c *models.Contract) error {
	if c.ContractNumber == "" {
		return b.fail(fmt.Errorf("%w: contract number is required", ErrValidation), "Contract number is required")
	}
	if !c.EndDate.After(c.StartDate) {
		return b.fail(fmt.Errorf("%w: end date must be after start date", ErrValidation),
			"End date must be after the start date")
	}
	if c.MonthlyRent <= 0 {
		return b.fail(fmt.Errorf("%w: monthly rent must be positive", ErrValidation),
			"Monthly rent must be greater than zero")
	}
	if c.PaymentDay < 1 || c.PaymentDay > 28 {
		return b.fail(fmt.Errorf("%w: payment day must be 1-28", ErrValidation),
			"Payment day must be between 1 and 28")
	}

	if _, err := b.store.Residents.Get(ctx, c.ResidentID); err != nil {
		return b.fail(ErrResidentNotFound, "Contract resident does not exist")
	}
	if _, err := b.store.Units.Get(ctx, c.UnitID); err != nil {
		return b.fail(ErrUnitNotFound, "Contract unit does not exist")
	}
	return nil
}
