// Package ingest normalizes raw transaction rows into the core data
// model: it coerces dates, parses signed decimal amounts, applies
// defaults for absent category/account columns, and drops rows the core
// must never see. The analysis core assumes this normalization has
// already happened and does not re-validate.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"finsight/internal/core"
)

// Defaults backfilled when a column is absent or a cell is blank.
const (
	DefaultCategory = "Uncategorized"
	DefaultAccount  = "Main Account"
)

var (
	ErrEmptyInput     = errors.New("empty CSV input")
	ErrMissingColumn  = errors.New("missing required column")
	ErrMalformedValue = errors.New("malformed value")
)

// dateLayouts are tried in order when coercing the date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Result is the outcome of one CSV import.
type Result struct {
	Transactions core.TransactionSet
	// Dropped counts rows discarded for unparseable dates or amounts.
	Dropped int
}

// ParseCSV reads transaction rows from r. Column headers are matched
// case-insensitively after trimming whitespace and any UTF-8 BOM; Date
// and Amount are required, Category and Account fall back to defaults.
// Rows that fail date or amount coercion are dropped and counted, never
// propagated as errors.
func ParseCSV(r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return Result{}, ErrEmptyInput
	}
	if err != nil {
		return Result{}, fmt.Errorf("read CSV header: %w", err)
	}

	dateCol, amountCol, categoryCol, accountCol := -1, -1, -1, -1
	for i, h := range headers {
		switch normalizeHeader(h) {
		case "date":
			dateCol = i
		case "amount":
			amountCol = i
		case "category":
			categoryCol = i
		case "account":
			accountCol = i
		}
	}
	if dateCol < 0 {
		return Result{}, fmt.Errorf("%w: Date", ErrMissingColumn)
	}
	if amountCol < 0 {
		return Result{}, fmt.Errorf("%w: Amount", ErrMissingColumn)
	}

	var res Result
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Dropped++
			continue
		}

		date, err := ParseDate(cell(row, dateCol))
		if err != nil {
			res.Dropped++
			continue
		}
		amount, err := ParseAmount(cell(row, amountCol))
		if err != nil {
			res.Dropped++
			continue
		}

		category := cell(row, categoryCol)
		if category == "" {
			category = DefaultCategory
		}
		account := cell(row, accountCol)
		if account == "" {
			account = DefaultAccount
		}

		res.Transactions = append(res.Transactions, core.Transaction{
			Date:     date,
			Amount:   amount,
			Category: category,
			Account:  account,
		})
	}
	return res, nil
}

// WriteCSV renders a transaction set in the import column layout, so an
// export round-trips through ParseCSV.
func WriteCSV(w io.Writer, ts core.TransactionSet) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Date", "Amount", "Category", "Account"}); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, t := range ts {
		row := []string{
			t.Date.Format("2006-01-02"),
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.Category,
			t.Account,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ParseAmount parses a signed decimal amount, tolerating a currency
// prefix and thousands separators ("-$1,234.56").
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrMalformedValue)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q", ErrMalformedValue, s)
	}
	return v, nil
}

// ParseDate coerces a cell into a calendar date. Time-of-day is
// irrelevant to the data model, so the result is truncated to midnight
// UTC.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrMalformedValue)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q", ErrMalformedValue, s)
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// normalizeHeader lower-cases a header after trimming whitespace and a
// leading UTF-8 BOM (utf-8-sig exports carry one).
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}
