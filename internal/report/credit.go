package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"creditwatch/internal/ledger"
)

// CreditDays models how old the outstanding balance is: walking months from
// the most recent backwards, how many days of invoicing does it take to
// accumulate an amount equal to the balance.
//
// The reverse-chronological order is load-bearing. The balance is treated as
// covered by the most recent invoices first, and the collectible calculation
// downstream depends on the exact day counts this produces.
func CreditDays(rows []ledger.Row, balance ledger.Number, opts Options) Days {
	if !balance.Positive() {
		return NoDays(ReasonNoBalance)
	}

	totals := monthlyTotals(rows, opts)
	if len(totals) == 0 {
		return NoDays(ReasonNoBuckets)
	}

	// Most recent month first.
	months := make([]MonthYear, 0, len(totals))
	for my := range totals {
		months = append(months, my)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year > months[j].Year
		}
		return months[i].Month > months[j].Month
	})

	var cumulative, totalDays float64
	for _, my := range months {
		amount := totals[my]

		days, err := daysInMonth(my.Year, my.Month)
		if err != nil {
			// Unusable calendar pair, e.g. a "(13)" label. Skip the
			// bucket without touching the running totals.
			continue
		}

		dailyRate := amount / float64(days)

		if cumulative+amount >= balance.Value {
			// The balance runs out partway through this month.
			var partial float64
			if dailyRate > 0 {
				partial = (balance.Value - cumulative) / dailyRate
			}
			totalDays += partial
			break
		}

		cumulative += amount
		totalDays += float64(days)
	}

	if totalDays <= 0 {
		return NoDays(ReasonZeroDays)
	}
	return OkDays(int(math.Round(totalDays)))
}

// daysInMonth returns the day count of a proleptic-Gregorian calendar month.
func daysInMonth(year, month int) (int, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return 0, fmt.Errorf("invalid calendar month %d/%d", month, year)
	}
	// Day zero of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day(), nil
}
