package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"creditwatch/internal/ledger"
	"creditwatch/internal/logger"
)

// ErrMissingCredentials is returned when neither GOOGLE_APPLICATION_CREDENTIALS
// nor GOOGLE_CREDENTIALS is set.
var ErrMissingCredentials = errors.New("missing Google service account credentials")

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// SheetsSource reads the ledger worksheet through the Google Sheets API.
type SheetsSource struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
	log           zerolog.Logger
}

// NewSheetsSource creates a source for the given Google Sheets URL and
// worksheet name. Credentials come from GOOGLE_APPLICATION_CREDENTIALS (a
// service account JSON file path) or GOOGLE_CREDENTIALS (inline JSON).
func NewSheetsSource(ctx context.Context, sheetURL, worksheet string) (*SheetsSource, error) {
	const op = "NewSheetsSource"

	log := logger.WithComponent("sheets-source")

	spreadsheetID, err := extractSpreadsheetID(sheetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var creds []byte
	if credsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credsFile != "" {
		creds, err = os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read credentials file: %w", op, err)
		}
	} else if credsJSON := os.Getenv("GOOGLE_CREDENTIALS"); credsJSON != "" {
		creds = []byte(credsJSON)
	} else {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingCredentials)
	}

	config, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse credentials: %w", op, err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create sheets service: %w", op, err)
	}

	log.Debug().
		Str("spreadsheet_id", spreadsheetID).
		Str("worksheet", worksheet).
		Msg("Sheets source ready")

	return &SheetsSource{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
		log:           log,
	}, nil
}

// Fetch reads the whole worksheet and maps it to ledger rows.
func (s *SheetsSource) Fetch(ctx context.Context) ([]ledger.Row, error) {
	const op = "SheetsSource.Fetch"

	rangeSpec := s.worksheet + "!A:L"
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read range %s: %w", op, rangeSpec, err)
	}

	rows, err := rowsFromRecords(stringifyValues(resp.Values))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info().
		Int("rows", len(rows)).
		Str("worksheet", s.worksheet).
		Msg("Ledger worksheet read successfully")

	return rows, nil
}

func extractSpreadsheetID(url string) (string, error) {
	matches := spreadsheetIDPattern.FindStringSubmatch(url)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Google Sheets URL format")
	}
	return matches[1], nil
}
