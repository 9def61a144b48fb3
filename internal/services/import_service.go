package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"finsight/internal/amqp"
	"finsight/internal/ingest"
	"finsight/internal/ledger"
)

// ImportService orchestrates CSV imports across the ledger backend and
// AMQP notifications.
type ImportService struct {
	store      ledger.Store
	amqpClient *amqp.Client
	analysis   *AnalysisService
}

// ImportSummary reports the outcome of one CSV import.
type ImportSummary struct {
	Imported int      `json:"imported"`
	Dropped  int      `json:"dropped"`
	Accounts []string `json:"accounts"`
}

func NewImportService(store ledger.Store, amqpClient *amqp.Client, analysis *AnalysisService) *ImportService {
	return &ImportService{
		store:      store,
		amqpClient: amqpClient,
		analysis:   analysis,
	}
}

// ImportCSV parses transaction rows from r, appends them to the ledger,
// and publishes an import notification. Storage is the source of truth:
// a failed publish is logged but never fails the import.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (ImportSummary, error) {
	parsed, err := ingest.ParseCSV(r)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("parse import: %w", err)
	}

	n, err := s.store.AppendTransactions(ctx, parsed.Transactions)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("store import: %w", err)
	}

	accounts := parsed.Transactions.Accounts()
	if s.analysis != nil {
		s.analysis.InvalidateCache()
	}

	if err := s.publishImported(ctx, accounts, n); err != nil {
		slog.ErrorContext(ctx, "Failed to publish import message",
			"count", n, "error", err)
		// Don't fail the request - transactions are stored
	}

	slog.InfoContext(ctx, "Ledger import completed",
		"imported", n,
		"dropped", parsed.Dropped,
		"accounts", len(accounts))

	return ImportSummary{Imported: n, Dropped: parsed.Dropped, Accounts: accounts}, nil
}

func (s *ImportService) publishImported(ctx context.Context, accounts []string, count int) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping import message")
		return nil
	}
	if count == 0 {
		return nil
	}
	return s.amqpClient.PublishLedgerImported(ctx, accounts, count)
}

// Close closes the AMQP connection and, when the backend supports it,
// the ledger store.
func (s *ImportService) Close() error {
	var errs []error

	if closer, ok := s.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close import service: %v", errs)
	}

	return nil
}
