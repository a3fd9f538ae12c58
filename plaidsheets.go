// Package plaidsheets imports financial transactions from the Plaid
// aggregation API into a spreadsheet tab, deduplicated and flattened into a
// fixed column schema. Re-running an import is always safe: already stored
// transaction IDs and pending transactions are filtered out before anything
// is written.
package plaidsheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Storage is the grid holding the stored rows. Reads happen once at the start
// of a run, the single append at the end.
type Storage interface {
	// TransactionIDs returns the IDs of every stored transaction.
	TransactionIDs(ctx context.Context) (IDSet, error)

	// LatestDate returns the most recent stored date, or false when the tab
	// holds no data rows. It assumes the tab is sorted descending by date.
	LatestDate(ctx context.Context) (time.Time, bool, error)

	// Headers returns the header row, empty when the tab is blank.
	Headers(ctx context.Context) ([]string, error)

	// Append writes a block below the existing rows. An empty block is a
	// no-op. With clearFirst all data rows are removed before the append.
	Append(ctx context.Context, block [][]any, clearFirst bool) error

	// Cleanup restores the descending date sort the date window relies on.
	Cleanup(ctx context.Context) error

	// Reset removes every row except the header.
	Reset(ctx context.Context) error
}

// Fetcher returns the accounts and transactions for one access token within a
// date window. Pagination, auth and retries are the fetcher's business.
type Fetcher interface {
	Fetch(ctx context.Context, accessToken string, start, end time.Time) ([]Account, []Transaction, error)
}

// Notifier delivers a best-effort failure notification for one run.
type Notifier interface {
	Notify(owner, account, operation string, err error) error
}

// Importer runs the import pipeline for each configured item.
type Importer struct {
	Config    *Config
	Fetcher   Fetcher
	Storage   Storage
	Transform Transform
	Notifier  Notifier

	logger *slog.Logger
	now    func() time.Time
}

func NewImporter(cfg *Config, fetcher Fetcher, storage Storage, transform Transform, notifier Notifier) *Importer {
	if transform == nil {
		transform = NopTransform
	}
	return &Importer{
		Config:    cfg,
		Fetcher:   fetcher,
		Storage:   storage,
		Transform: transform,
		Notifier:  notifier,
		logger:    slog.Default().With("component", "importer"),
		now:       time.Now,
	}
}

// Run imports every configured item sequentially. A failing item is logged
// and reported through the notifier but never stops the remaining items. The
// returned error joins all per-item failures.
func (im *Importer) Run(ctx context.Context) error {
	var failures []error
	for _, item := range im.Config.Items {
		logger := im.logger.With(
			"owner", item.Owner,
			"account", item.Account,
			"run", uuid.NewString(),
		)
		operation, err := im.runItem(ctx, logger, item)
		if err != nil {
			logger.Error("import failed", "operation", operation, "error", err)
			im.notify(logger, item, operation, err)
			failures = append(failures, fmt.Errorf("%s/%s: %s: %w", item.Owner, item.Account, operation, err))
		}
	}
	return errors.Join(failures...)
}

// Reset clears every stored row except the header and imports from scratch.
func (im *Importer) Reset(ctx context.Context) error {
	im.logger.Info("resetting stored rows")
	if err := im.Storage.Reset(ctx); err != nil {
		return fmt.Errorf("resetting storage: %w", err)
	}
	return im.Run(ctx)
}

func (im *Importer) notify(logger *slog.Logger, item Item, operation string, runErr error) {
	if im.Notifier == nil {
		return
	}
	if err := im.Notifier.Notify(item.Owner, item.Account, operation, runErr); err != nil {
		// Best effort only, a dead notifier must not fail the run
		logger.Warn("sending notification", "error", err)
	}
}

// runItem is read-then-compute-then-single-write: nothing is appended until
// the whole block is assembled, so a failed run appends nothing at all. The
// returned string names the operation that failed, for notifications.
func (im *Importer) runItem(ctx context.Context, logger *slog.Logger, item Item) (string, error) {
	seen, err := im.Storage.TransactionIDs(ctx)
	if err != nil {
		return "reading stored ids", err
	}
	latest, hasData, err := im.Storage.LatestDate(ctx)
	if err != nil {
		return "reading latest date", err
	}
	headers, err := im.Storage.Headers(ctx)
	if err != nil {
		return "reading headers", err
	}

	start, end := im.window(latest, hasData)
	logger.Info("fetching transactions", "from", FormatDate(start), "to", FormatDate(end))

	accounts, transactions, err := im.Fetcher.Fetch(ctx, item.AccessToken, start, end)
	if err != nil {
		return "fetching transactions", err
	}

	index := NewAccountIndex(accounts)
	accepted := Filter(transactions, seen)
	logger.Info("filtered transactions",
		"fetched", len(transactions),
		"accepted", len(accepted),
		"skipped", len(transactions)-len(accepted),
	)

	records := make([]Record, 0, len(accepted))
	for _, t := range accepted {
		record, err := MapRow(t, index, item.Owner, item.Account)
		if err != nil {
			return "mapping rows", err
		}
		records = append(records, record)
	}

	records, err = im.Transform.Apply(records)
	if err != nil {
		return "applying rules", err
	}

	block := Serialize(records, len(headers) == 0)
	if err := im.Storage.Append(ctx, block, false); err != nil {
		return "appending rows", err
	}
	if len(block) > 0 {
		if err := im.Storage.Cleanup(ctx); err != nil {
			return "sorting rows", err
		}
	}

	logger.Info("appended rows", "rows", len(records))
	return "", nil
}

// window returns the fetch range, either computed from the stored state or
// overridden by a configured one-off date range.
func (im *Importer) window(latest time.Time, hasData bool) (start, end time.Time) {
	now := im.now()
	end = DateOnly(now)
	if !im.Config.EndDate.IsZero() {
		end = time.Time(im.Config.EndDate)
	}
	if !im.Config.StartDate.IsZero() {
		return time.Time(im.Config.StartDate), end
	}
	start = StartDate(latest, hasData, now, im.Config.WindowInitialDays, im.Config.WindowOverlapDays)
	return start, end
}
