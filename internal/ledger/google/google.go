// Package google reads a transaction ledger kept in a Google Sheets
// spreadsheet. Rows follow the import column layout (Date, Amount,
// Category, Account); malformed rows are skipped the same way the CSV
// ingestion path drops them.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"finsight/internal/core"
	"finsight/internal/ingest"
	ports "finsight/internal/ledger"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var _ ports.Reader = (*Client)(nil)

// NewFromEnv creates a Sheets-backed ledger reader.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME (default "Transactions").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Transactions"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReadTransactions fetches the ledger range and maps each row into the
// core data model. The first row is assumed to be a header when its
// amount cell is not numeric.
func (c *Client) ReadTransactions(ctx context.Context) (core.TransactionSet, error) {
	readRange := fmt.Sprintf("%s!A:D", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet range %s: %w", readRange, err)
	}

	var ts core.TransactionSet
	skipped := 0
	for i, row := range resp.Values {
		t, err := mapRow(row)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			skipped++
			continue
		}
		ts = append(ts, t)
	}
	if skipped > 0 {
		slog.WarnContext(ctx, "Skipped malformed sheet rows",
			"spreadsheet_id", c.spreadsheetID,
			"sheet", c.sheetName,
			"skipped", skipped)
	}
	return ts, nil
}

func mapRow(row []interface{}) (core.Transaction, error) {
	date, err := ingest.ParseDate(cellString(row, 0))
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := ingest.ParseAmount(cellString(row, 1))
	if err != nil {
		return core.Transaction{}, err
	}

	category := cellString(row, 2)
	if category == "" {
		category = ingest.DefaultCategory
	}
	account := cellString(row, 3)
	if account == "" {
		account = ingest.DefaultAccount
	}

	return core.Transaction{
		Date:     date,
		Amount:   amount,
		Category: category,
		Account:  account,
	}, nil
}

func cellString(row []interface{}, col int) string {
	if col >= len(row) || row[col] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[col]))
}
