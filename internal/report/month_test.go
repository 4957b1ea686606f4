package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"creditwatch/internal/ledger"
)

func TestParseMonthLabel(t *testing.T) {
	tests := []struct {
		name   string
		label  string
		want   MonthYear
		wantOK bool
	}{
		{name: "blank", label: "", wantOK: false},
		{name: "whitespace only", label: "   ", wantOK: false},
		{name: "parenthesized month", label: "(07)", want: MonthYear{Month: 7}, wantOK: true},
		{name: "parenthesized month with suffix", label: "(07) JULY", want: MonthYear{Month: 7}, wantOK: true},
		{name: "single digit paren", label: "(7)", want: MonthYear{Month: 7}, wantOK: true},
		{name: "underscore format", label: "07_2024", want: MonthYear{Month: 7, Year: 2024}, wantOK: true},
		{name: "slash format", label: "07/2024", want: MonthYear{Month: 7, Year: 2024}, wantOK: true},
		{name: "dash format", label: "07-2024", want: MonthYear{Month: 7, Year: 2024}, wantOK: true},
		{name: "single digit month with year", label: "7/2024", want: MonthYear{Month: 7, Year: 2024}, wantOK: true},
		{name: "garbage", label: "garbage", wantOK: false},
		{name: "two digit year rejected", label: "07/24", wantOK: false},
		{name: "trailing text after year rejected", label: "07/2024 extra", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMonthLabel(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func fixedNow() time.Time {
	return time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
}

func TestResolveMonth(t *testing.T) {
	opts := Options{Now: fixedNow}

	t.Run("label year wins", func(t *testing.T) {
		row := ledger.Row{MonthLabel: "03/2023", Year: ledger.Num(2022)}
		my, ok := resolveMonth(row, opts)
		assert.True(t, ok)
		assert.Equal(t, MonthYear{Month: 3, Year: 2023}, my)
	})

	t.Run("year column fills missing year", func(t *testing.T) {
		row := ledger.Row{MonthLabel: "(03)", Year: ledger.Num(2022)}
		my, ok := resolveMonth(row, opts)
		assert.True(t, ok)
		assert.Equal(t, MonthYear{Month: 3, Year: 2022}, my)
	})

	t.Run("current year fallback for undated rows", func(t *testing.T) {
		row := ledger.Row{MonthLabel: "(03)"}
		my, ok := resolveMonth(row, opts)
		assert.True(t, ok)
		assert.Equal(t, MonthYear{Month: 3, Year: 2024}, my)
	})

	t.Run("skip policy discards undated rows", func(t *testing.T) {
		row := ledger.Row{MonthLabel: "(03)"}
		_, ok := resolveMonth(row, Options{Now: fixedNow, YearPolicy: SkipUndatedRows})
		assert.False(t, ok)
	})

	t.Run("unparseable label", func(t *testing.T) {
		row := ledger.Row{MonthLabel: "n/a", Year: ledger.Num(2022)}
		_, ok := resolveMonth(row, opts)
		assert.False(t, ok)
	})
}
