package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakanapp/sakan/internal/models"
	"github.com/sakanapp/sakan/internal/notify"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := setup(t)
	ctx := context.Background()
	seedUnitAndResident(t, src)

	data, err := src.building.ExportData(ctx)
	require.NoError(t, err)

	dst := setup(t)
	require.NoError(t, dst.building.ImportData(ctx, data))

	n, err := dst.building.Store().Units.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = dst.building.Store().Residents.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestImportData_RejectsGarbage(t *testing.T) {
	h := setup(t)
	seedUnitAndResident(t, h)
	ctx := context.Background()

	require.Error(t, h.building.ImportData(ctx, []byte(`{"version":"0.1"}`)))
	assert.Equal(t, notify.KindError, h.lastNotice(t).Kind)

	n, err := h.building.Store().Units.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "a rejected import leaves existing data intact")
}

func TestClearAllData(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	seedUnitAndResident(t, h)
	_, err := h.building.UpdateSettings(ctx, map[string]any{"buildingName": "برج الياسمين"})
	require.NoError(t, err)

	require.NoError(t, h.building.ClearAllData(ctx))

	n, err := h.building.Store().Residents.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	settings, err := h.building.Store().Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)
	assert.Equal(t, notify.KindWarning, h.lastNotice(t).Kind)
}
