package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"finsight/internal/ledger"
)

func TestCreateMemoryBackend(t *testing.T) {
	f := NewFactory(nil)

	res, err := f.CreateBackend(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Store == nil {
		t.Fatal("expected a store")
	}
	if res.Cleanup != nil {
		t.Fatal("memory backend needs no cleanup")
	}
}

func TestCreateMemoryBackendWithSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.csv")
	csv := "Date,Amount,Category,Account\n2025-01-05,100,Salary,Checking\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewFactory(nil)
	res, err := f.CreateBackend(context.Background(), Config{Type: MemoryBackend, SeedCSVPath: path})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ts, err := res.Store.ReadTransactions(context.Background())
	if err != nil || len(ts) != 1 {
		t.Fatalf("seeded read = %v err=%v", ts, err)
	}
}

func TestCreateSQLiteBackend(t *testing.T) {
	f := NewFactory(nil)

	res, err := f.CreateBackend(context.Background(), Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "ledger.db"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	t.Cleanup(func() { res.Cleanup() })

	if res.Cleanup == nil {
		t.Fatal("sqlite backend must provide cleanup")
	}
}

func TestCreateBackendInvalidConfig(t *testing.T) {
	f := NewFactory(nil)

	cases := []Config{
		{Type: "bogus"},
		{Type: SQLiteBackend, SQLiteDBPath: ""},
		{Type: SheetsBackend, GoogleSpreadsheetID: ""},
	}
	for _, cfg := range cases {
		if _, err := f.CreateBackend(context.Background(), cfg); err == nil {
			t.Errorf("CreateBackend(%+v) expected error", cfg)
		}
	}
}

func TestReadOnlyStoreRejectsWrites(t *testing.T) {
	s := readOnlyStore{}

	_, err := s.AppendTransactions(context.Background(), nil)
	if !errors.Is(err, ledger.ErrReadOnly) {
		t.Fatalf("err = %v, want ErrReadOnly", err)
	}
}
