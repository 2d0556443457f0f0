package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakanapp/sakan/internal/models"
	"github.com/sakanapp/sakan/internal/notify"
	"github.com/sakanapp/sakan/internal/reports"
)

func seedUnitAndResident(t *testing.T, h *harness) (*models.Unit, *models.Resident) {
	t.Helper()
	ctx := context.Background()
	u := &models.Unit{UnitNumber: "101", Rent: 2500}
	require.NoError(t, h.building.CreateUnit(ctx, u))
	r := &models.Resident{Name: "سالم", Phone: "0551234567"}
	require.NoError(t, h.building.CreateResident(ctx, r))
	return u, r
}

func testContract(u *models.Unit, r *models.Resident, number string, start, end time.Time) *models.Contract {
	return &models.Contract{
		ContractNumber: number,
		UnitID:         u.ID,
		ResidentID:     r.ID,
		StartDate:      start,
		EndDate:        end,
		MonthlyRent:    2500,
		PaymentDay:     5,
	}
}

func TestCreateContract_MarksUnitOccupied(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	u, r := seedUnitAndResident(t, h)

	c := testContract(u, r, "C-1",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, h.building.CreateContract(ctx, c))

	got, err := h.building.Store().Units.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UnitStatusOccupied, got.Status)
}

func TestCreateContract_Validation(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	u, r := seedUnitAndResident(t, h)

	jan := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(c *models.Contract)
		want   error
	}{
		{"missing number", func(c *models.Contract) { c.ContractNumber = "" }, ErrValidation},
		{"end before start", func(c *models.Contract) { c.StartDate, c.EndDate = dec, jan }, ErrValidation},
		{"zero rent", func(c *models.Contract) { c.MonthlyRent = 0 }, ErrValidation},
		{"payment day too high", func(c *models.Contract) { c.PaymentDay = 29 }, ErrValidation},
		{"unknown resident", func(c *models.Contract) { c.ResidentID = "ghost" }, ErrResidentNotFound},
		{"unknown unit", func(c *models.Contract) { c.UnitID = "ghost" }, ErrUnitNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := testContract(u, r, "C-X", jan, dec)
			tc.mutate(c)
			require.ErrorIs(t, h.building.CreateContract(ctx, c), tc.want)
		})
	}
}

func TestCreateContract_OverlapRejected(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	u, r := seedUnitAndResident(t, h)

	first := testContract(u, r, "C-1",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, h.building.CreateContract(ctx, first))

	second := testContract(u, r, "C-2",
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, h.building.CreateContract(ctx, second), ErrContractOverlap)

	// the same dates on another unit are fine
	u2 := &models.Unit{UnitNumber: "102", Rent: 2000}
	require.NoError(t, h.building.CreateUnit(ctx, u2))
	third := testContract(u2, r, "C-3", second.StartDate, second.EndDate)
	require.NoError(t, h.building.CreateContract(ctx, third))
}

func TestUpdateContract_OverlapRechecked(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	u, r := seedUnitAndResident(t, h)

	first := testContract(u, r, "C-1",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, h.building.CreateContract(ctx, first))

	second := testContract(u, r, "C-2",
		time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, h.building.CreateContract(ctx, second))

	// pulling the second contract's start into the first one's range clashes
	_, err := h.building.UpdateContract(ctx, second.ID, map[string]any{
		"startDate": time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
	})
	require.ErrorIs(t, err, ErrContractOverlap)

	// shifting entirely clear of it is fine
	updated, err := h.building.UpdateContract(ctx, second.ID, map[string]any{
		"startDate": time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.Equal(t, 8, int(updated.StartDate.Month()))

	// extending your own range over yourself is not a clash
	_, err = h.building.UpdateContract(ctx, second.ID, map[string]any{
		"endDate": time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
	})
	require.NoError(t, err)
}

func TestDeleteContract_FreesUnit(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	h.pinNow(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	u, r := seedUnitAndResident(t, h)

	c := testContract(u, r, "C-1",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, h.building.CreateContract(ctx, c))

	require.NoError(t, h.building.DeleteContract(ctx, c.ID))

	got, err := h.building.Store().Units.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UnitStatusAvailable, got.Status)
}

func TestDeleteContract_MissingUnitReportsFailure(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	h.pinNow(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	u, r := seedUnitAndResident(t, h)

	c := testContract(u, r, "C-1",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, h.building.CreateContract(ctx, c))

	// the unit disappears underneath the contract, so freeing it fails
	require.NoError(t, h.building.Store().Units.Delete(ctx, u.ID))

	err := h.building.DeleteContract(ctx, c.ID)
	require.Error(t, err)
	assert.Equal(t, notify.KindError, h.lastNotice(t).Kind,
		"a failed status update must still tell the user what went wrong")
}

func TestContractStatus_UsesSettingsWarnWindow(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	h.pinNow(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	u, r := seedUnitAndResident(t, h)

	c := testContract(u, r, "C-1",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, h.building.CreateContract(ctx, c))

	// 61 days out: beyond the default 30-day window
	state, err := h.building.ContractStatus(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, reports.ContractActive, state)

	// widen the window past the remaining term
	_, err = h.building.UpdateSettings(ctx, map[string]any{"contractWarnDays": 90.0})
	require.NoError(t, err)

	state, err = h.building.ContractStatus(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, reports.ContractExpiring, state)
}
