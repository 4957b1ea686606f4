// Package ledger defines the in-memory representation of the client ledger
// loaded from the remote spreadsheet.
//
// A Dataset is an immutable snapshot: the loading layer builds it once per
// refresh and report computations only ever read it, so snapshots can be
// shared across concurrent requests without locking.
package ledger

import (
	"math"
	"time"
)

// Number is a numeric spreadsheet cell that may be missing or unparseable.
// Invalid values stay invalid rather than degrading to zero; downstream
// computations decide how to treat the absence.
type Number struct {
	Value float64
	Valid bool
}

// Num returns a valid Number.
func Num(v float64) Number {
	return Number{Value: v, Valid: true}
}

// None returns the missing-value sentinel.
func None() Number {
	return Number{}
}

// Positive reports whether the number is present and strictly greater than zero.
func (n Number) Positive() bool {
	return n.Valid && !math.IsNaN(n.Value) && n.Value > 0
}

// Int returns the value truncated to an integer. Only meaningful when Valid.
func (n Number) Int() int {
	return int(n.Value)
}

// Row is one invoice/transaction line from the ledger sheet.
// Numeric coercion happens once at load time; a cell that fails to parse
// becomes an invalid Number, never zero.
type Row struct {
	Client        string
	Payer         string
	Gross         Number
	Balance       Number
	AgreementDays Number
	Metax         Number
	MonthLabel    string
	Year          Number
	Material      string
	MaterialDesc  string
	UnitPrice     Number
	Quantity      Number
}

// Dataset is an ordered snapshot of ledger rows.
type Dataset struct {
	Rows     []Row
	LoadedAt time.Time
}

// Empty reports whether the snapshot holds no rows.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Rows) == 0
}

// Len returns the number of rows in the snapshot.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}
