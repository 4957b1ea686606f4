package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"", 0, false},
		{"1234.56", 1234.56, true},
		{"1234,56", 1234.56, true},
		{"1.234,56", 1234.56, true},
		{"-42", -42, true},
		{"0", 0, true},
		{" 1 234,5 ", 1234.5, true},
		{"n/a", 0, false},
		{"12x", 0, false},
	}

	for _, tt := range tests {
		got := parseNumber(tt.in)
		assert.Equal(t, tt.valid, got.Valid, "input %q", tt.in)
		if tt.valid {
			assert.InDelta(t, tt.want, got.Value, 1e-9, "input %q", tt.in)
		}
	}
}

func TestResolveColumns(t *testing.T) {
	t.Run("case and whitespace insensitive", func(t *testing.T) {
		cols, err := resolveColumns([]string{" Client ", "GROSS AMOUNT", "month"})
		require.NoError(t, err)
		assert.Equal(t, 0, cols.client)
		assert.Equal(t, 1, cols.gross)
		assert.Equal(t, 2, cols.month)
		assert.Equal(t, -1, cols.balance)
	})

	t.Run("missing client column is an error", func(t *testing.T) {
		_, err := resolveColumns([]string{"Month", "Gross Amount"})
		assert.Error(t, err)
	})
}

func TestRowsFromRecords(t *testing.T) {
	records := [][]string{
		{"Client", "Payer", "Gross Amount", "Balance", "Agreement Days", "Metax", "Month", "Year", "Material", "Material Description", "Unit Price", "Invoiced Qty"},
		{"ACME", "ACME PAY", "1000", "500,25", "30", "2", "(07)", "2024", "MAT-1", "Cement", "4,2", "12"},
		{"ACME", "", "oops", "", "", "", "07/2024", "", "", "", "", ""},
	}

	rows, err := rowsFromRecords(records)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "ACME", first.Client)
	assert.Equal(t, "ACME PAY", first.Payer)
	assert.True(t, first.Gross.Valid)
	assert.Equal(t, 1000.0, first.Gross.Value)
	assert.InDelta(t, 500.25, first.Balance.Value, 1e-9)
	assert.Equal(t, "(07)", first.MonthLabel)
	assert.True(t, first.Year.Valid)
	assert.Equal(t, 2024, first.Year.Int())
	assert.InDelta(t, 4.2, first.UnitPrice.Value, 1e-9)

	// Unparseable numerics become missing, not zero, and never fail the load.
	second := rows[1]
	assert.False(t, second.Gross.Valid)
	assert.False(t, second.Balance.Valid)
	assert.False(t, second.Year.Valid)
	assert.Equal(t, "07/2024", second.MonthLabel)
}

func TestRowsFromRecords_RaggedRows(t *testing.T) {
	records := [][]string{
		{"Client", "Month", "Gross Amount"},
		{"ACME"},
	}

	rows, err := rowsFromRecords(records)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ACME", rows[0].Client)
	assert.Equal(t, "", rows[0].MonthLabel)
	assert.False(t, rows[0].Gross.Valid)
}

func TestRowsFromRecords_Empty(t *testing.T) {
	_, err := rowsFromRecords(nil)
	assert.Error(t, err)
}

func TestExtractSpreadsheetID(t *testing.T) {
	id, err := extractSpreadsheetID("https://docs.google.com/spreadsheets/d/1AbC_dEf-123/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "1AbC_dEf-123", id)

	_, err = extractSpreadsheetID("https://example.com/not-a-sheet")
	assert.Error(t, err)
}
