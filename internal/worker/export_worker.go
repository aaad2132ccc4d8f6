// Package worker mirrors ledger changes to the export target. It reacts
// to AMQP change events and also runs a periodic full export so a missed
// message never leaves the mirror permanently stale.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
)

// SnapshotReader yields the current full ledger.
type SnapshotReader interface {
	List(ctx context.Context) ([]core.Transaction, error)
}

// Exporter rewrites the mirror from a full snapshot.
type Exporter interface {
	ReplaceAll(ctx context.Context, items []core.Transaction) error
}

type ExportWorker struct {
	reader   SnapshotReader
	exporter Exporter
}

func NewExportWorker(reader SnapshotReader, exporter Exporter) *ExportWorker {
	return &ExportWorker{
		reader:   reader,
		exporter: exporter,
	}
}

// HandleChangeMessage processes one change event by re-exporting the full
// snapshot. The message content is only a hint; the snapshot is always
// re-read from the backing store.
func (w *ExportWorker) HandleChangeMessage(ctx context.Context, msg *amqp.LedgerChangeMessage) error {
	slog.InfoContext(ctx, "Processing ledger change",
		"op", msg.Op,
		"id", msg.ID)
	return w.Export(ctx)
}

// Export reads a fresh snapshot and rewrites the mirror.
func (w *ExportWorker) Export(ctx context.Context) error {
	items, err := w.reader.List(ctx)
	if err != nil {
		return fmt.Errorf("read ledger snapshot: %w", err)
	}
	if err := w.exporter.ReplaceAll(ctx, items); err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}
	return nil
}

// RunPeriodic exports on every tick until ctx is done. Failures are
// logged and retried on the next tick.
func (w *ExportWorker) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Export(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", "error", err)
			}
		}
	}
}
