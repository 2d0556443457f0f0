package service

import (
	"context"

	"github.com/sakanapp/sakan/internal/models"
)

// UpdateSettings shallow-merges the patch into settings.
func (b *Building) UpdateSettings(ctx context.Context, patch map[string]any) (models.Settings, error) {
	settings, err := b.store.UpdateSettings(ctx, patch)
	if err != nil {
		b.failure("Could not save settings")
		return models.Settings{}, err
	}
	b.success("Settings saved")
	return settings, nil
}

// ExportData serializes the full store for backup.
func (b *Building) ExportData(ctx context.Context) ([]byte, error) {
	data, err := b.store.Export(ctx)
	if err != nil {
		b.failure("Could not export data")
		return nil, err
	}
	b.success("Data exported")
	return data, nil
}

// ImportData validates and restores a backup, replacing all local state.
func (b *Building) ImportData(ctx context.Context, data []byte) error {
	if err := b.store.Import(ctx, data); err != nil {
		b.failure("The backup file is not valid")
		return err
	}
	b.success("Data imported")
	return nil
}

// ClearAllData irreversibly empties every table and resets settings.
func (b *Building) ClearAllData(ctx context.Context) error {
	if err := b.store.ClearAll(ctx); err != nil {
		b.failure("Could not clear data")
		return err
	}
	b.warning("All data has been cleared")
	return nil
}
