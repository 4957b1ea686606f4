package report

import "errors"

// Report computation errors surfaced to callers. Everything else the core
// encounters (missing cells, unparseable months, invalid calendar pairs)
// degrades in-band to an unavailable result instead of failing the request.
var (
	// ErrEmptyDataset is returned when the upstream snapshot holds no rows,
	// typically because the source has never been fetched successfully.
	ErrEmptyDataset = errors.New("no ledger data available")

	// ErrClientNotFound is returned when no rows match the requested client name.
	ErrClientNotFound = errors.New("client not found")
)
