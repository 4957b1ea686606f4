package report

import "strconv"

// placeholder is what unavailable figures serialize to, matching what the
// browser UI renders for a value it cannot show.
const placeholder = `"-"`

// Reason explains why a computed figure is unavailable. It lets callers and
// tests distinguish the causes instead of string-matching a placeholder.
type Reason int

const (
	// ReasonNone marks an available result.
	ReasonNone Reason = iota

	// ReasonNoBalance means the client has no positive numeric balance,
	// so there is no debt to age.
	ReasonNoBalance

	// ReasonNoBuckets means no row produced a usable (month, year, amount)
	// triple to walk.
	ReasonNoBuckets

	// ReasonZeroDays means the walk produced no positive day count.
	ReasonZeroDays

	// ReasonMissingInput means a required input was absent or non-numeric.
	ReasonMissingInput

	// ReasonOutOfRange means an input fell outside its supported range,
	// such as a negative agreement-days threshold.
	ReasonOutOfRange
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNoBalance:
		return "no_balance"
	case ReasonNoBuckets:
		return "no_buckets"
	case ReasonZeroDays:
		return "zero_days"
	case ReasonMissingInput:
		return "missing_input"
	case ReasonOutOfRange:
		return "out_of_range"
	}
	return "unknown"
}

// Days is a credit-days figure that may be unavailable.
type Days struct {
	Value  int
	Valid  bool
	Reason Reason
}

// OkDays returns an available day count.
func OkDays(v int) Days {
	return Days{Value: v, Valid: true}
}

// NoDays returns an unavailable day count with its cause.
func NoDays(r Reason) Days {
	return Days{Reason: r}
}

// MarshalJSON renders the day count, or the "-" placeholder when unavailable.
func (d Days) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte(placeholder), nil
	}
	return []byte(strconv.Itoa(d.Value)), nil
}

// Money is a monetary figure that may be unavailable.
type Money struct {
	Value  float64
	Valid  bool
	Reason Reason
}

// OkMoney returns an available amount.
func OkMoney(v float64) Money {
	return Money{Value: v, Valid: true}
}

// NoMoney returns an unavailable amount with its cause.
func NoMoney(r Reason) Money {
	return Money{Reason: r}
}

// MarshalJSON renders the amount, or the "-" placeholder when unavailable.
// NaN and infinite values are replaced with 0 so the output is always valid JSON.
func (m Money) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte(placeholder), nil
	}
	return []byte(strconv.FormatFloat(safeFloat(m.Value), 'f', -1, 64)), nil
}
