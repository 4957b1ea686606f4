package report

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"creditwatch/internal/ledger"
)

// MonthYear identifies a calendar month. Year is 0 when the source label
// carried no year of its own.
type MonthYear struct {
	Month int
	Year  int
}

// Legacy sheets encode months in several ways: "(07) ΙΟΥΛΙΟΣ" style labels
// carry only the month number, newer ones carry "07_2024", "07/2024" or
// "07-2024".
var (
	parenMonthPattern = regexp.MustCompile(`^\((\d{1,2})\)`)
	monthYearPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(\d{1,2})_(\d{4})$`),
		regexp.MustCompile(`^(\d{1,2})/(\d{4})$`),
		regexp.MustCompile(`^(\d{1,2})-(\d{4})$`),
	}
)

// ParseMonthLabel extracts the month, and where present the year, from a
// free-text month label. Rules are tried in order and the first match wins;
// a blank or unrecognized label reports ok=false.
func ParseMonthLabel(label string) (MonthYear, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return MonthYear{}, false
	}

	if m := parenMonthPattern.FindStringSubmatch(label); m != nil {
		month, _ := strconv.Atoi(m[1])
		return MonthYear{Month: month}, true
	}

	for _, p := range monthYearPatterns {
		if m := p.FindStringSubmatch(label); m != nil {
			month, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[2])
			return MonthYear{Month: month, Year: year}, true
		}
	}

	return MonthYear{}, false
}

// YearPolicy controls what happens to rows whose month label carries no year
// and whose year column is empty.
type YearPolicy int

const (
	// AssumeCurrentYear treats undated legacy rows as belonging to the
	// current calendar year. This skews the aging of genuinely old records
	// but keeps them in the computation, which is the established behavior
	// of the reporting sheet.
	AssumeCurrentYear YearPolicy = iota

	// SkipUndatedRows discards rows that cannot be dated.
	SkipUndatedRows
)

// Options tune the report computation. The zero value is ready to use:
// wall-clock time and the assume-current-year policy.
type Options struct {
	// Now supplies the current time for the year fallback. Defaults to time.Now.
	Now func() time.Time

	// YearPolicy selects the fallback for undated rows.
	YearPolicy YearPolicy
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// resolveMonth determines the calendar month a row belongs to: the label's own
// year wins, then the row's year column, then the configured fallback.
func resolveMonth(row ledger.Row, opts Options) (MonthYear, bool) {
	my, ok := ParseMonthLabel(row.MonthLabel)
	if !ok {
		return MonthYear{}, false
	}

	if my.Year == 0 {
		switch {
		case row.Year.Valid:
			my.Year = row.Year.Int()
		case opts.YearPolicy == AssumeCurrentYear:
			my.Year = opts.now().Year()
		default:
			return MonthYear{}, false
		}
	}

	return my, true
}
