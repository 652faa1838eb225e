package storage

import (
	"context"
	"fmt"

	"realestate-bot/models"
)

// LoadRaw reads src and maps its rows through profile. Schema problems are
// reported as *SchemaError.
func LoadRaw(ctx context.Context, src Source, profile *Profile) ([]*models.RawListing, error) {
	header, rows, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Describe(), err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("load %s: %w", src.Describe(), ErrEmptyDataset)
	}
	return profile.MapRows(src.Describe(), header, rows)
}
