package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"finsight/internal/core"
)

func TestAppendAndRead(t *testing.T) {
	s := New()
	ctx := context.Background()

	n, err := s.AppendTransactions(ctx, core.TransactionSet{
		{Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), Amount: 100, Category: "Salary", Account: "Main Account"},
	})
	if err != nil || n != 1 {
		t.Fatalf("append failed: n=%d err=%v", n, err)
	}

	got, err := s.ReadTransactions(ctx)
	if err != nil || len(got) != 1 {
		t.Fatalf("read failed: %v err=%v", got, err)
	}

	// Reads must be isolated from later appends.
	_, _ = s.AppendTransactions(ctx, core.TransactionSet{
		{Date: time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), Amount: -50, Category: "Housing", Account: "Main Account"},
	})
	if len(got) != 1 {
		t.Fatalf("earlier read mutated by append: %v", got)
	}
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.csv")
	csv := "Date,Amount,Category,Account\n2025-01-05,100,Salary,Checking\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewFromFile(path)
	got, err := s.ReadTransactions(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("unexpected seed result: %v err=%v", got, err)
	}

	if s := NewFromFile(filepath.Join(dir, "missing.csv")); s == nil {
		t.Fatal("missing file must still yield a store")
	}
}
