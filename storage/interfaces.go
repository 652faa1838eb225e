package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"realestate-bot/config"
	"realestate-bot/utils"
)

// Source is the interface any dataset backend must satisfy. It returns the
// header row and the data rows as plain strings.
type Source interface {
	Load(ctx context.Context) (header []string, rows [][]string, err error)
	Describe() string
}

// Open picks a Source from the shape of cfg.DatasetSource: a postgres DSN,
// an http(s) CSV export URL, or a local .csv / .xlsx file.
func Open(cfg *config.Config, logger *utils.Logger) (Source, error) {
	src := strings.TrimSpace(cfg.DatasetSource)
	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   time.Second,
		Logger:      logger,
	}
	lower := strings.ToLower(src)

	switch {
	case src == "":
		return nil, fmt.Errorf("%w: DATASET_SOURCE is empty", ErrUnsupportedSource)
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return NewPostgresSource(src, cfg.DatasetTable, retry), nil
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return NewRemoteCSVSource(src, cfg.FetchTimeout(), retry), nil
	}

	switch strings.ToLower(filepath.Ext(src)) {
	case ".csv":
		return NewCSVSource(src), nil
	case ".xlsx", ".xlsm":
		return NewExcelSource(src, cfg.DatasetSheet), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, src)
	}
}
