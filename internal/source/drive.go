package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"creditwatch/internal/ledger"
	"creditwatch/internal/logger"
)

// DriveSource downloads the ledger file's CSV export from Google Drive.
// With an API key it uses the Drive v3 media endpoint; without one it falls
// back to the public uc?export=download URL, which requires the file to be
// shared publicly.
type DriveSource struct {
	fileID     string
	apiKey     string
	apiBase    string
	exportBase string
	client     *http.Client
	log        zerolog.Logger
}

// NewDriveSource creates a Drive CSV-export source for the given file ID.
// The API key may be empty.
func NewDriveSource(fileID, apiKey string) *DriveSource {
	return &DriveSource{
		fileID:     fileID,
		apiKey:     apiKey,
		apiBase:    "https://www.googleapis.com",
		exportBase: "https://drive.google.com",
		client:     &http.Client{Timeout: 30 * time.Second},
		log:        logger.WithComponent("drive-source"),
	}
}

// Fetch downloads and parses the CSV export.
func (d *DriveSource) Fetch(ctx context.Context) ([]ledger.Row, error) {
	const op = "DriveSource.Fetch"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.downloadURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: download failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: download failed: unexpected status %s", op, resp.Status)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1 // ragged rows are padded by the column mapping
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse CSV export: %w", op, err)
	}

	rows, err := rowsFromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d.log.Info().
		Int("rows", len(rows)).
		Str("file_id", d.fileID).
		Msg("Drive CSV export read successfully")

	return rows, nil
}

func (d *DriveSource) downloadURL() string {
	if d.apiKey != "" {
		q := url.Values{"alt": {"media"}, "key": {d.apiKey}}
		return fmt.Sprintf("%s/drive/v3/files/%s?%s", d.apiBase, d.fileID, q.Encode())
	}
	q := url.Values{"id": {d.fileID}, "export": {"download"}}
	return d.exportBase + "/uc?" + q.Encode()
}
