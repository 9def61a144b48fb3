package memory

import (
	"context"
	"os"
	"sync"

	"finsight/internal/core"
	"finsight/internal/ingest"
)

// Store is an in-memory ledger backend, useful for development and
// tests. Reads return copies so callers never observe later appends.
type Store struct {
	mu    sync.Mutex
	items core.TransactionSet
}

func New() *Store {
	return &Store{}
}

// NewFromFile seeds the store from a CSV file when it exists; a missing
// or unreadable file yields an empty store.
func NewFromFile(path string) *Store {
	s := New()
	f, err := os.Open(path)
	if err != nil {
		return s
	}
	defer f.Close()

	res, err := ingest.ParseCSV(f)
	if err != nil {
		return s
	}
	s.items = res.Transactions
	return s
}

// ReadTransactions returns a copy of the stored transaction set.
func (s *Store) ReadTransactions(_ context.Context) (core.TransactionSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(core.TransactionSet, len(s.items))
	copy(out, s.items)
	return out, nil
}

// AppendTransactions stores the given transactions.
func (s *Store) AppendTransactions(_ context.Context, ts core.TransactionSet) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, ts...)
	return len(ts), nil
}
