// Package worker reviews accounts after ledger imports and surfaces
// alert-worthy findings in the logs.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"finsight/internal/amqp"
	"finsight/internal/services"
)

const defaultConcurrency = 4

// alertPrefixes are the insight messages worth escalating from info to
// warning when they show up in an account review.
var alertPrefixes = []string{
	"Deficit:",
	"Low savings rate:",
	"High concentration risk:",
	"Monthly net declined significantly",
	"The most recent month ran a deficit",
}

// AlertWorker re-analyzes accounts when the ledger changes. The
// analysis is deterministic and side-effect free, so accounts are
// reviewed concurrently.
type AlertWorker struct {
	analysis    *services.AnalysisService
	concurrency int
}

func NewAlertWorker(analysis *services.AnalysisService, concurrency int) *AlertWorker {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &AlertWorker{
		analysis:    analysis,
		concurrency: concurrency,
	}
}

// HandleImportMessage processes a single ledger import notification,
// reviewing the accounts the import touched. A message without account
// labels falls back to reviewing everything.
func (w *AlertWorker) HandleImportMessage(ctx context.Context, msg *amqp.LedgerImportedMessage) error {
	slog.InfoContext(ctx, "Processing import message",
		"count", msg.Count,
		"accounts", len(msg.Accounts))

	accounts := msg.Accounts
	if len(accounts) == 0 {
		return w.ReviewAllAccounts(ctx)
	}
	return w.reviewAccounts(ctx, accounts)
}

// ReviewAllAccounts analyzes every account in the ledger. Used at
// startup to catch alerts from imports that happened while the worker
// was down.
func (w *AlertWorker) ReviewAllAccounts(ctx context.Context) error {
	accounts, err := w.analysis.Accounts(ctx)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	if len(accounts) == 0 {
		slog.InfoContext(ctx, "No accounts to review")
		return nil
	}
	return w.reviewAccounts(ctx, accounts)
}

func (w *AlertWorker) reviewAccounts(ctx context.Context, accounts []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	for _, account := range accounts {
		g.Go(func() error {
			return w.reviewAccount(ctx, account)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("review accounts: %w", err)
	}
	return nil
}

func (w *AlertWorker) reviewAccount(ctx context.Context, account string) error {
	res, err := w.analysis.Analyze(ctx, account, time.Time{}, time.Time{})
	if err != nil {
		return fmt.Errorf("analyze account %s: %w", account, err)
	}

	alerts := 0
	for _, insight := range res.Insights {
		if isAlert(insight) {
			alerts++
			slog.WarnContext(ctx, "Account alert",
				"account", account,
				"finding", insight)
		}
	}

	slog.InfoContext(ctx, "Account review completed",
		"account", account,
		"alerts", alerts,
		"net_savings", res.NetSavings,
		"savings_rate", res.SavingsRate)
	return nil
}

func isAlert(insight string) bool {
	for _, prefix := range alertPrefixes {
		if strings.HasPrefix(insight, prefix) {
			return true
		}
	}
	return false
}
