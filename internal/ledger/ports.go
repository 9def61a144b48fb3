package ledger

import (
	"context"
	"errors"

	"finsight/internal/core"
)

// ErrReadOnly is returned by backends that cannot accept writes.
var ErrReadOnly = errors.New("ledger backend is read-only")

// Ports for outbound transaction backends.
type (
	// Reader loads the full normalized transaction set from a backend.
	Reader interface {
		ReadTransactions(ctx context.Context) (core.TransactionSet, error)
	}

	// Writer appends normalized transactions to a backend, returning the
	// number stored.
	Writer interface {
		AppendTransactions(ctx context.Context, ts core.TransactionSet) (int, error)
	}

	// Store combines reading and writing for backends that support both.
	Store interface {
		Reader
		Writer
	}
)
