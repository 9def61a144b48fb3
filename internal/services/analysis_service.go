// Package services orchestrates the ledger backends, the analysis core,
// and the AMQP notifications around them.
package services

import (
	"context"
	"fmt"
	"time"

	"finsight/internal/cache"
	"finsight/internal/core"
	"finsight/internal/ledger"
)

const (
	analysisCacheSize = 64
	analysisCacheTTL  = 5 * time.Minute
)

// AnalysisService runs account analyses over a ledger backend. Results
// are cached per (account, range) until the next import invalidates
// them; the analysis itself is deterministic, so a cached result is
// exactly what a fresh run would produce.
type AnalysisService struct {
	source ledger.Reader
	policy core.BenchmarkPolicy
	cache  *cache.LRUCache[core.AnalysisResult]
}

func NewAnalysisService(source ledger.Reader, policy core.BenchmarkPolicy) *AnalysisService {
	return &AnalysisService{
		source: source,
		policy: policy,
		cache:  cache.NewLRUCache[core.AnalysisResult](analysisCacheSize, analysisCacheTTL),
	}
}

// RegisterCache adds the service's result cache to a cleanup manager.
func (s *AnalysisService) RegisterCache(m *cache.Manager) {
	m.Register(s.cache)
}

// Analyze produces the full analysis for one account. A zero start or
// end is widened to the account's earliest or latest transaction date,
// so callers omitting the range analyze the whole ledger.
func (s *AnalysisService) Analyze(ctx context.Context, account string, start, end time.Time) (core.AnalysisResult, error) {
	key := analysisCacheKey(account, start, end)
	if res, ok := s.cache.Get(key); ok {
		return res, nil
	}

	ts, err := s.source.ReadTransactions(ctx)
	if err != nil {
		return core.AnalysisResult{}, fmt.Errorf("read ledger: %w", err)
	}

	if start.IsZero() || end.IsZero() {
		spanStart, spanEnd := ts.ByAccount(account).Span()
		if start.IsZero() {
			start = spanStart
		}
		if end.IsZero() {
			end = spanEnd
		}
	}

	res := core.Analyze(ts, account, start, end, s.policy)
	s.cache.Set(key, res)
	return res, nil
}

// Accounts lists the distinct account labels present in the ledger.
func (s *AnalysisService) Accounts(ctx context.Context) ([]string, error) {
	ts, err := s.source.ReadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return ts.Accounts(), nil
}

// Transactions returns the ledger contents, optionally filtered to one
// account, for export.
func (s *AnalysisService) Transactions(ctx context.Context, account string) (core.TransactionSet, error) {
	ts, err := s.source.ReadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if account != "" {
		ts = ts.ByAccount(account)
	}
	return ts.SortedByDate(), nil
}

// InvalidateCache drops every cached analysis result. Called after an
// import changes the ledger.
func (s *AnalysisService) InvalidateCache() {
	s.cache.Purge()
}

func analysisCacheKey(account string, start, end time.Time) string {
	return fmt.Sprintf("%s|%d|%d", account, start.Unix(), end.Unix())
}
