// Package backend selects and constructs the ledger backend the
// binaries run against.
package backend

import (
	"context"

	"finsight/internal/core"
	"finsight/internal/ledger"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the constructed ledger store and optional cleanup
// function.
type Result struct {
	Store   ledger.Store
	Cleanup CleanupFunc
}

// Type represents the kind of ledger backend
type Type string

const (
	SQLiteBackend Type = "sqlite"
	SheetsBackend Type = "sheets"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// readOnlyStore lifts a read-only backend into the Store interface.
// Writes fail with ledger.ErrReadOnly.
type readOnlyStore struct {
	ledger.Reader
}

func (readOnlyStore) AppendTransactions(_ context.Context, _ core.TransactionSet) (int, error) {
	return 0, ledger.ErrReadOnly
}
