package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"albumcheck/internal/catalog"
	"albumcheck/internal/config"
	"albumcheck/internal/inventory"
	"albumcheck/internal/logging"
	"albumcheck/internal/matching"
	"albumcheck/internal/services"
)

// Catalog is the store surface a run needs.
type Catalog interface {
	Load(ctx context.Context) ([]catalog.NormalizedRecord, error)
	MarkAcquired(ctx context.Context, groupIDs []string) error
}

// Reporter receives every resolved line in listing order and the final tally.
type Reporter interface {
	Line(display string, outcome matching.Outcome, writeErr error)
	Summary(tally Tally)
}

// Tally counts outcomes. Exact, Fuzzy, and None sum to the number of pairs;
// WriteFailures counts exact lines whose catalog update failed.
type Tally struct {
	Exact         int `json:"exact"`
	Fuzzy         int `json:"fuzzy"`
	None          int `json:"none"`
	WriteFailures int `json:"write_failures"`
}

// Total returns the number of pairs reconciled.
func (t Tally) Total() int {
	return t.Exact + t.Fuzzy + t.None
}

// Options control a single run.
type Options struct {
	ListingPath  string
	Timeout      time.Duration
	PollInterval time.Duration
	// RemoveStale deletes the previous listing before triggering.
	RemoveStale bool
	// SkipTrigger reads the listing as-is, without removal or trigger.
	SkipTrigger bool
	// DryRun resolves and reports without writing to the catalog.
	DryRun   bool
	LockPath string
}

// Result summarizes a completed run.
type Result struct {
	RunID string
	Tally Tally
}

// Runner wires the collaborators of a run.
type Runner struct {
	Store    Catalog
	Trigger  inventory.Trigger
	Resolver matching.Resolver
	Reporter Reporter
	Logger   *slog.Logger
	Options  Options
}

// New builds a Runner from configuration.
func New(cfg *config.Config, store Catalog, reporter Reporter, logger *slog.Logger) (*Runner, error) {
	if cfg == nil || store == nil || reporter == nil {
		return nil, errors.New("reconcile requires config, store, and reporter")
	}
	trigger, err := inventory.NewTrigger(cfg)
	if err != nil {
		return nil, err
	}
	return &Runner{
		Store:    store,
		Trigger:  trigger,
		Resolver: matching.NewResolver(float64(cfg.Matching.FuzzyThreshold)),
		Reporter: reporter,
		Logger:   logging.NewComponentLogger(logger, "reconcile"),
		Options: Options{
			ListingPath:  cfg.Paths.InventoryFile,
			Timeout:      cfg.StabilizationTimeout(),
			PollInterval: cfg.PollInterval(),
			RemoveStale:  cfg.Inventory.RemoveStale,
			LockPath:     cfg.LockPath(),
		},
	}, nil
}

// Run performs one reconciliation pass.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := r.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	result := Result{RunID: runID}

	unlock, err := acquireLock(r.Options.LockPath)
	if err != nil {
		return result, err
	}
	defer unlock()

	loadCtx := services.WithStage(ctx, "load")
	records, err := r.Store.Load(loadCtx)
	if err != nil {
		return result, fail(loadCtx, logger, "catalog_unavailable", "check paths.catalog_db", err)
	}
	logging.WithContext(loadCtx, logger).Info("catalog loaded", slog.Int("records", len(records)))

	inventoryCtx := services.WithStage(ctx, "inventory")
	pairs, err := r.readListing(inventoryCtx, logger)
	if err != nil {
		return result, fail(inventoryCtx, logger, "inventory_not_ready", "check that the listing producer ran", err)
	}

	matchCtx := services.WithStage(ctx, "match")
	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		lineCtx := services.WithLine(matchCtx, i+1)
		outcome := r.Resolver.Resolve(pair, records)

		var writeErr error
		switch outcome.Kind {
		case matching.KindExact:
			result.Tally.Exact++
			if !r.Options.DryRun {
				writeErr = r.Store.MarkAcquired(lineCtx, outcome.GroupIDs)
			}
			if writeErr != nil {
				result.Tally.WriteFailures++
				logging.WarnWithContext(logging.WithContext(lineCtx, logger), "catalog update failed", "catalog_write_failed",
					slog.String("pair", pair.Display()),
					slog.Any("group_ids", outcome.GroupIDs),
					logging.Error(writeErr),
					slog.String(logging.FieldErrorHint, "rerun once the catalog is no longer locked"),
					slog.String(logging.FieldImpact, "album stays pending in the catalog"),
				)
			} else {
				logging.WithContext(lineCtx, logger).Debug("exact match",
					slog.String("pair", pair.Display()),
					slog.Any("group_ids", outcome.GroupIDs),
					slog.Bool("dry_run", r.Options.DryRun),
				)
			}
		case matching.KindCandidates:
			result.Tally.Fuzzy++
			logging.WithContext(lineCtx, logger).Debug("candidates found",
				slog.String("pair", pair.Display()),
				slog.Int("candidates", len(outcome.Candidates)),
			)
		default:
			result.Tally.None++
		}
		r.Reporter.Line(pair.Display(), outcome, writeErr)
	}

	r.Reporter.Summary(result.Tally)
	logger.Info("reconciliation complete",
		slog.String(logging.FieldRunID, runID),
		slog.Int("exact", result.Tally.Exact),
		slog.Int("fuzzy", result.Tally.Fuzzy),
		slog.Int("none", result.Tally.None),
		slog.Int("write_failures", result.Tally.WriteFailures),
	)
	return result, nil
}

func (r *Runner) readListing(ctx context.Context, logger *slog.Logger) ([]inventory.Pair, error) {
	logger = logging.WithContext(ctx, logger)
	if !r.Options.SkipTrigger {
		if r.Options.RemoveStale {
			removed, err := inventory.RemoveStale(r.Options.ListingPath)
			if err != nil {
				return nil, err
			}
			if removed {
				logger.Debug("stale listing removed", slog.String("path", r.Options.ListingPath))
			}
		}
		if r.Trigger != nil {
			if err := r.Trigger.Trigger(ctx); err != nil {
				logging.WarnWithContext(logger, "listing trigger failed", "inventory_trigger_failed",
					logging.Error(err),
					slog.String(logging.FieldErrorHint, "check inventory.trigger_command or the producer app"),
					slog.String(logging.FieldImpact, "waiting for the listing anyway"),
				)
			}
		}
	}

	reader := inventory.Reader{
		Path:         r.Options.ListingPath,
		Timeout:      r.Options.Timeout,
		PollInterval: r.Options.PollInterval,
	}
	pairs, err := reader.Read(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("listing read", slog.Int("pairs", len(pairs)))
	return pairs, nil
}

func fail(ctx context.Context, logger *slog.Logger, eventType, hint string, err error) error {
	if !errors.Is(err, context.Canceled) {
		logging.ErrorWithContext(logging.WithContext(ctx, logger), "reconciliation aborted", eventType,
			logging.Alert(eventType),
			logging.Error(err),
			slog.String(logging.FieldErrorHint, hint),
		)
	}
	return err
}

// acquireLock takes the run lock at path. An empty path disables locking.
func acquireLock(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrLocked, "reconcile", "lock", path, nil)
	}
	return func() { _ = lock.Unlock() }, nil
}
