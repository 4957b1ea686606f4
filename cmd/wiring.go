package cmd

import (
	"context"
	"fmt"

	"creditwatch/internal/config"
	"creditwatch/internal/dataset"
	"creditwatch/internal/report"
	"creditwatch/internal/source"
)

// buildStore wires the configured spreadsheet source into a dataset store.
// The Sheets API source is preferred; the Drive CSV export is the fallback
// for deployments that only have a file ID.
func buildStore(ctx context.Context, cfg *config.Config) (*dataset.Store, error) {
	var (
		src source.Source
		err error
	)

	switch {
	case cfg.GoogleSheetURL != "":
		src, err = source.NewSheetsSource(ctx, cfg.GoogleSheetURL, cfg.GoogleSheetWorksheet)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Sheets source: %w", err)
		}
	case cfg.GoogleDriveFileID != "":
		src = source.NewDriveSource(cfg.GoogleDriveFileID, cfg.GoogleDriveAPIKey)
	default:
		return nil, fmt.Errorf("no spreadsheet source configured")
	}

	return dataset.NewStore(src, cfg.CacheTTL), nil
}

// reportOptions maps the configured year-fallback policy onto report options.
func reportOptions(cfg *config.Config) report.Options {
	opts := report.Options{}
	if cfg.YearFallback == "skip" {
		opts.YearPolicy = report.SkipUndatedRows
	}
	return opts
}
