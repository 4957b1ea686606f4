// Package report computes per-client financial reports from a ledger
// snapshot.
//
// All functions are pure: they take an immutable dataset and return derived
// values, holding no state of their own, so they are safe to call from any
// number of concurrent requests.
//
// The computation pipeline is strictly one-directional:
//
//	rows → client subset → parsed month buckets → monthly totals
//	     → credit days → collectible amount → assembled report
//
// A missing or unparseable cell never fails a request; the affected figure
// degrades to an unavailable result ("-" on the wire) and everything else in
// the report is still produced.
package report

import (
	"math"
	"sort"

	"creditwatch/internal/ledger"
)

// MaterialRow is one material the client purchased, with its usage per month.
type MaterialRow struct {
	Code        string             `json:"material"`
	Description string             `json:"description"`
	UnitPrice   float64            `json:"unit_price"`
	Usage       map[string]float64 `json:"usage"`
}

// Report is the full per-client aggregate served to the UI.
// Months holds the dataset-wide sorted month labels; MonthlyTurnover and each
// material's Usage are zero-filled over exactly those labels.
type Report struct {
	Client            string             `json:"client"`
	Payer             string             `json:"payer"`
	Metax             float64            `json:"metax"`
	Balance           Money              `json:"balance"`
	CreditDays        Days               `json:"credit_days"`
	AgreementDays     Days               `json:"agreement_days"`
	CollectibleAmount Money              `json:"collectible_amount"`
	Months            []string           `json:"months"`
	MonthlyTurnover   map[string]float64 `json:"monthly_turnover"`
	Materials         []MaterialRow      `json:"materials"`
}

// ListClients returns the sorted distinct client names present in the snapshot.
func ListClients(ds *ledger.Dataset) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	if ds != nil {
		for _, row := range ds.Rows {
			if row.Client == "" {
				continue
			}
			if _, ok := seen[row.Client]; ok {
				continue
			}
			seen[row.Client] = struct{}{}
			names = append(names, row.Client)
		}
	}
	sort.Strings(names)
	return names
}

// Compute assembles the report for one client. It returns ErrEmptyDataset
// when the snapshot has no rows at all and ErrClientNotFound when no row
// matches the name; any other degradation happens in-band.
func Compute(ds *ledger.Dataset, client string, opts Options) (*Report, error) {
	if ds.Empty() {
		return nil, ErrEmptyDataset
	}

	var rows []ledger.Row
	for _, row := range ds.Rows {
		if row.Client == client {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, ErrClientNotFound
	}

	balance := firstValid(rows, func(r ledger.Row) ledger.Number { return r.Balance })
	agreement := firstValid(rows, func(r ledger.Row) ledger.Number { return r.AgreementDays })
	metax := firstValid(rows, func(r ledger.Row) ledger.Number { return r.Metax })

	creditDays := CreditDays(rows, balance, opts)
	collectible := CollectibleAmount(balance, creditDays, agreement)

	months := monthLabels(ds)

	rep := &Report{
		Client:            client,
		Payer:             firstPayer(rows),
		Metax:             safeFloat(metax.Value),
		Balance:           asMoney(balance),
		CreditDays:        creditDays,
		AgreementDays:     asDays(agreement),
		CollectibleAmount: collectible,
		Months:            months,
		MonthlyTurnover:   monthlyTurnover(rows, months),
		Materials:         materialRows(rows, months),
	}

	return rep, nil
}

// monthLabels returns the sorted distinct month labels across the whole
// dataset. Every client's monthly columns line up against this list.
func monthLabels(ds *ledger.Dataset) []string {
	seen := make(map[string]struct{})
	labels := make([]string, 0)
	for _, row := range ds.Rows {
		if row.MonthLabel == "" {
			continue
		}
		if _, ok := seen[row.MonthLabel]; ok {
			continue
		}
		seen[row.MonthLabel] = struct{}{}
		labels = append(labels, row.MonthLabel)
	}
	sort.Strings(labels)
	return labels
}

// monthlyTurnover sums gross amounts per month label, zero-filling labels the
// client has no rows for.
func monthlyTurnover(rows []ledger.Row, months []string) map[string]float64 {
	turnover := make(map[string]float64, len(months))
	for _, m := range months {
		turnover[m] = 0
	}
	for _, row := range rows {
		if row.MonthLabel == "" || !row.Gross.Valid {
			continue
		}
		turnover[row.MonthLabel] += row.Gross.Value
	}
	for m, v := range turnover {
		turnover[m] = round2(safeFloat(v))
	}
	return turnover
}

// materialRows builds one row per distinct material the client purchased:
// the last non-missing unit price, the first non-missing description and the
// invoiced quantity per month, zero-filled over the dataset-wide labels.
func materialRows(rows []ledger.Row, months []string) []MaterialRow {
	var codes []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		if row.Material == "" {
			continue
		}
		if _, ok := seen[row.Material]; ok {
			continue
		}
		seen[row.Material] = struct{}{}
		codes = append(codes, row.Material)
	}

	materials := make([]MaterialRow, 0, len(codes))
	for _, code := range codes {
		mat := MaterialRow{
			Code:  code,
			Usage: make(map[string]float64, len(months)),
		}
		for _, m := range months {
			mat.Usage[m] = 0
		}

		for _, row := range rows {
			if row.Material != code {
				continue
			}
			if row.UnitPrice.Valid {
				mat.UnitPrice = row.UnitPrice.Value
			}
			if mat.Description == "" && row.MaterialDesc != "" {
				mat.Description = row.MaterialDesc
			}
			if row.MonthLabel != "" && row.Quantity.Valid {
				mat.Usage[row.MonthLabel] += row.Quantity.Value
			}
		}

		mat.UnitPrice = round2(safeFloat(mat.UnitPrice))
		for m, v := range mat.Usage {
			mat.Usage[m] = round2(safeFloat(v))
		}

		materials = append(materials, mat)
	}

	return materials
}

func firstValid(rows []ledger.Row, field func(ledger.Row) ledger.Number) ledger.Number {
	for _, row := range rows {
		if n := field(row); n.Valid {
			return n
		}
	}
	return ledger.None()
}

func firstPayer(rows []ledger.Row) string {
	for _, row := range rows {
		if row.Payer != "" {
			return row.Payer
		}
	}
	return "-"
}

func asMoney(n ledger.Number) Money {
	if !n.Valid {
		return NoMoney(ReasonMissingInput)
	}
	return OkMoney(n.Value)
}

func asDays(n ledger.Number) Days {
	if !n.Valid {
		return NoDays(ReasonMissingInput)
	}
	return OkDays(n.Int())
}

// safeFloat replaces NaN and infinite values with 0 so every numeric field in
// the report serializes to valid JSON.
func safeFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
