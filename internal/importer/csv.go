// Package importer converts between CSV files and deposit drafts for bulk
// import and export of a portfolio.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dlow/fd-tracker/internal/domain"
)

// Column synonyms accepted per field. Matching is a literal, case-sensitive
// lookup against this declared table, first hit wins. No fuzzy matching.
var columnSynonyms = map[string][]string{
	"bank":      {"Bank", "bankName", "Bank Name"},
	"principal": {"Principal", "principal"},
	"rate":      {"Rate", "interestRate", "Interest Rate"},
	"start":     {"Start Date", "startDate"},
	"maturity":  {"Maturity Date", "maturityDate"},
	"status":    {"Status", "status"},
}

// exportHeader is the canonical column set written by Export.
var exportHeader = []string{"Bank", "Principal", "Rate", "Start Date", "Maturity Date", "Status"}

// Import parses a CSV file into deposit drafts. Rows missing a bank name or
// a positive principal are dropped; money cells tolerate currency prefixes
// and thousand separators. Imported drafts always default to active.
func Import(r io.Reader, ownerID string) ([]domain.Deposit, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("importer: reading CSV header: %w", err)
	}

	cols := resolveColumns(header)
	if _, ok := cols["bank"]; !ok {
		return nil, fmt.Errorf("importer: no bank column found (accepted: %s)", strings.Join(columnSynonyms["bank"], ", "))
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("importer: reading CSV rows: %w", err)
	}

	var drafts []domain.Deposit
	for _, row := range records {
		principal, okPrincipal := parseMoney(cell(row, cols, "principal"))
		bank := strings.TrimSpace(cell(row, cols, "bank"))
		if bank == "" || !okPrincipal || principal <= 0 {
			continue
		}

		rate, _ := parseMoney(cell(row, cols, "rate"))

		drafts = append(drafts, domain.Deposit{
			OwnerID:      ownerID,
			BankName:     bank,
			Principal:    principal,
			InterestRate: rate,
			StartDate:    strings.TrimSpace(cell(row, cols, "start")),
			MaturityDate: strings.TrimSpace(cell(row, cols, "maturity")),
			Status:       domain.StatusActive,
		})
	}

	return drafts, nil
}

// Export writes the portfolio as CSV with the canonical header.
func Export(w io.Writer, deposits []domain.Deposit) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("importer: writing CSV header: %w", err)
	}
	for _, d := range deposits {
		row := []string{
			d.BankName,
			decimal.NewFromFloat(d.Principal).String(),
			decimal.NewFromFloat(d.InterestRate).String(),
			d.StartDate,
			d.MaturityDate,
			string(d.Status),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("importer: writing CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// resolveColumns maps field names to column indexes via the synonym table.
func resolveColumns(header []string) map[string]int {
	cols := map[string]int{}
	for field, synonyms := range columnSynonyms {
		for _, syn := range synonyms {
			for i, h := range header {
				if strings.TrimSpace(h) == syn {
					cols[field] = i
					break
				}
			}
			if _, ok := cols[field]; ok {
				break
			}
		}
	}
	return cols
}

func cell(row []string, cols map[string]int, field string) string {
	i, ok := cols[field]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseMoney parses a money or rate cell exactly. "RM10,000.50" and
// "3.85%" both parse; the boolean is false when nothing numeric remains.
func parseMoney(s string) (float64, bool) {
	cleaned := strings.NewReplacer(",", "", "%", "", "RM", "", "rm", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, false
	}
	dec, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	f, _ := dec.Float64()
	return f, true
}
