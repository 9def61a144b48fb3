package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"finsight/internal/core"
	"finsight/internal/ingest"
	"finsight/internal/ledger/memory"
)

func TestImportCSV(t *testing.T) {
	store := memory.New()
	analysis := NewAnalysisService(store, core.DefaultBenchmarkPolicy())
	svc := NewImportService(store, nil, analysis)

	csv := strings.Join([]string{
		"Date,Amount,Category,Account",
		"2025-01-05,2000,Salary,Checking",
		"2025-01-10,-600,Housing,Checking",
		"bad-date,10,Misc,Checking",
	}, "\n")

	summary, err := svc.ImportCSV(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Imported != 2 || summary.Dropped != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.Accounts) != 1 || summary.Accounts[0] != "Checking" {
		t.Fatalf("accounts = %v", summary.Accounts)
	}

	stored, err := store.ReadTransactions(context.Background())
	if err != nil || len(stored) != 2 {
		t.Fatalf("stored = %v err=%v", stored, err)
	}
}

func TestImportCSVInvalidHeader(t *testing.T) {
	svc := NewImportService(memory.New(), nil, nil)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("Amount\n10\n"))
	if !errors.Is(err, ingest.ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
}

func TestImportCSVInvalidatesAnalysisCache(t *testing.T) {
	store := memory.New()
	analysis := NewAnalysisService(store, core.DefaultBenchmarkPolicy())
	svc := NewImportService(store, nil, analysis)
	ctx := context.Background()

	// Prime the cache with an empty-ledger analysis.
	empty, err := analysis.Analyze(ctx, "Checking", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if empty.TotalIncome != 0 {
		t.Fatalf("TotalIncome = %v, want 0", empty.TotalIncome)
	}

	csv := "Date,Amount,Category,Account\n2025-01-05,2000,Salary,Checking\n"
	if _, err := svc.ImportCSV(ctx, strings.NewReader(csv)); err != nil {
		t.Fatalf("import: %v", err)
	}

	after, err := analysis.Analyze(ctx, "Checking", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("analyze after import: %v", err)
	}
	if after.TotalIncome != 2000 {
		t.Fatalf("TotalIncome after import = %v, want 2000", after.TotalIncome)
	}
}
