package report

import "creditwatch/internal/ledger"

// monthlyTotals sums invoiced gross amounts per calendar month for one
// client's rows. Rows without a resolvable month or year, or without a
// positive amount, contribute nothing; duplicate months accumulate.
func monthlyTotals(rows []ledger.Row, opts Options) map[MonthYear]float64 {
	totals := make(map[MonthYear]float64)

	for _, row := range rows {
		my, ok := resolveMonth(row, opts)
		if !ok {
			continue
		}
		if !row.Gross.Positive() {
			continue
		}
		totals[my] += row.Gross.Value
	}

	return totals
}
