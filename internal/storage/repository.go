package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finsight/internal/core"
	ports "finsight/internal/ledger"

	_ "modernc.org/sqlite"
)

// dateLayout is how posted_on is stored; lexicographic order matches
// chronological order.
const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

// Ensure interface conformance
var _ ports.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AppendTransactions implements ledger.Writer. All rows are written in
// one database transaction so a failed import never leaves a partial
// batch behind.
func (r *SQLiteRepository) AppendTransactions(ctx context.Context, ts core.TransactionSet) (int, error) {
	if len(ts) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (posted_on, amount, category, account) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range ts {
		if _, err := stmt.ExecContext(ctx, t.Date.Format(dateLayout), t.Amount, t.Category, t.Account); err != nil {
			return 0, fmt.Errorf("insert transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction batch: %w", err)
	}

	slog.InfoContext(ctx, "Transactions saved to SQLite", "count", len(ts))
	return len(ts), nil
}

// ReadTransactions implements ledger.Reader, returning the full ledger
// ordered by date then insertion order.
func (r *SQLiteRepository) ReadTransactions(ctx context.Context) (core.TransactionSet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT posted_on, amount, category, account FROM transactions ORDER BY posted_on, id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var ts core.TransactionSet
	for rows.Next() {
		var postedOn string
		var t core.Transaction
		if err := rows.Scan(&postedOn, &t.Amount, &t.Category, &t.Account); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		date, err := time.Parse(dateLayout, postedOn)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", postedOn, err)
		}
		t.Date = date
		ts = append(ts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return ts, nil
}

// CountTransactions reports how many rows the ledger holds.
func (r *SQLiteRepository) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
