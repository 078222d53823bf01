package batch

import (
	"context"
	"log/slog"
	"time"

	"debt-ledger/internal/domain/dashboard"
	"debt-ledger/internal/domain/session"
	"debt-ledger/internal/infrastructure/monitoring"
)

// LedgerSource is the read side of the workspace the job samples.
type LedgerSource interface {
	Owner() *session.Principal
	Summary() dashboard.Summary
}

// OverdueSnapshotJob publishes the current ledger totals as gauges so overdue
// debts become visible on dashboards between requests.
type OverdueSnapshotJob struct {
	source LedgerSource
	logger *slog.Logger
}

func NewOverdueSnapshotJob(source LedgerSource, logger *slog.Logger) *OverdueSnapshotJob {
	if source == nil || logger == nil {
		panic("OverdueSnapshotJob dependencies cannot be nil")
	}
	return &OverdueSnapshotJob{
		source: source,
		logger: logger.With("job", "OverdueSnapshot"),
	}
}

func (j *OverdueSnapshotJob) Run(ctx context.Context) error {
	startTime := time.Now()

	if err := ctx.Err(); err != nil {
		j.logger.WarnContext(ctx, "Overdue snapshot skipped, context already done.", slog.Any("error", err))
		return err
	}

	if j.source.Owner() == nil {
		j.logger.InfoContext(ctx, "No active session, resetting ledger gauges.")
		monitoring.SetLedgerSnapshot(0, 0, 0, 0)
		return nil
	}

	summary := j.source.Summary()
	monitoring.SetLedgerSnapshot(
		summary.CustomerCount,
		summary.Pending.Count,
		summary.Pending.Total.InexactFloat64(),
		summary.OverdueCount,
	)

	j.logger.InfoContext(ctx, "Overdue snapshot recorded.",
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("customers", summary.CustomerCount),
		slog.Int("pending", summary.Pending.Count),
		slog.String("pending_total", summary.Pending.Total.StringFixed(2)),
		slog.Int("overdue", summary.OverdueCount),
	)
	return nil
}
