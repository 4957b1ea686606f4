// Package source retrieves the ledger spreadsheet from its remote home and
// turns it into ledger rows.
//
// Two implementations exist: SheetsSource reads a worksheet through the
// Google Sheets API with service-account credentials, and DriveSource
// downloads the file's CSV export over plain HTTPS for deployments that only
// have a Drive file ID and API key. Both feed the same header-driven row
// mapping, so the rest of the system never knows where a snapshot came from.
package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"creditwatch/internal/ledger"
)

// Source supplies a fresh set of ledger rows on demand.
type Source interface {
	Fetch(ctx context.Context) ([]ledger.Row, error)
}

// Expected header names, matched case-insensitively after trimming.
const (
	colClient        = "client"
	colPayer         = "payer"
	colGross         = "gross amount"
	colBalance       = "balance"
	colAgreementDays = "agreement days"
	colMetax         = "metax"
	colMonth         = "month"
	colYear          = "year"
	colMaterial      = "material"
	colMaterialDesc  = "material description"
	colUnitPrice     = "unit price"
	colQuantity      = "invoiced qty"
)

// columns maps header names to their position in the sheet. Absent columns
// stay at -1 and yield missing values for every row.
type columns struct {
	client, payer, gross, balance, agreementDays, metax int
	month, year, material, materialDesc, unitPrice, qty int
}

func resolveColumns(header []string) (columns, error) {
	cols := columns{
		client: -1, payer: -1, gross: -1, balance: -1, agreementDays: -1,
		metax: -1, month: -1, year: -1, material: -1, materialDesc: -1,
		unitPrice: -1, qty: -1,
	}

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case colClient:
			cols.client = i
		case colPayer:
			cols.payer = i
		case colGross:
			cols.gross = i
		case colBalance:
			cols.balance = i
		case colAgreementDays:
			cols.agreementDays = i
		case colMetax:
			cols.metax = i
		case colMonth:
			cols.month = i
		case colYear:
			cols.year = i
		case colMaterial:
			cols.material = i
		case colMaterialDesc:
			cols.materialDesc = i
		case colUnitPrice:
			cols.unitPrice = i
		case colQuantity:
			cols.qty = i
		}
	}

	if cols.client == -1 {
		return cols, fmt.Errorf("header has no %q column", colClient)
	}
	return cols, nil
}

// rowsFromRecords converts raw sheet records (header first) into ledger rows.
// Numeric coercion happens here, once: a cell that fails to parse becomes a
// missing Number, never zero, and never fails the load.
func rowsFromRecords(records [][]string) ([]ledger.Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}

	cols, err := resolveColumns(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]ledger.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, ledger.Row{
			Client:        cell(rec, cols.client),
			Payer:         cell(rec, cols.payer),
			Gross:         parseNumber(cell(rec, cols.gross)),
			Balance:       parseNumber(cell(rec, cols.balance)),
			AgreementDays: parseNumber(cell(rec, cols.agreementDays)),
			Metax:         parseNumber(cell(rec, cols.metax)),
			MonthLabel:    cell(rec, cols.month),
			Year:          parseNumber(cell(rec, cols.year)),
			Material:      cell(rec, cols.material),
			MaterialDesc:  cell(rec, cols.materialDesc),
			UnitPrice:     parseNumber(cell(rec, cols.unitPrice)),
			Quantity:      parseNumber(cell(rec, cols.qty)),
		})
	}

	return rows, nil
}

// cell safely extracts a trimmed string value from a record.
func cell(rec []string, index int) string {
	if index < 0 || index >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[index])
}

// parseNumber coerces a spreadsheet cell to a number. The sheet mixes dot and
// comma decimal separators; "1.234,56", "1234,56" and "1234.56" all parse.
func parseNumber(s string) ledger.Number {
	if s == "" {
		return ledger.None()
	}

	cleaned := strings.ReplaceAll(s, " ", "")
	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			// Full thousands format: dots separate thousands.
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return ledger.None()
	}
	return ledger.Num(v)
}

// stringifyValues renders Sheets API cell values ([][]interface{}) as string
// records for the shared row mapping.
func stringifyValues(values [][]interface{}) [][]string {
	records := make([][]string, len(values))
	for i, row := range values {
		rec := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			rec[j] = fmt.Sprintf("%v", v)
		}
		records[i] = rec
	}
	return records
}
