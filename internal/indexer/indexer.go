package indexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"

	"jobindex/internal/classify"
	"jobindex/internal/config"
	"jobindex/internal/docstore"
	"jobindex/internal/emit"
	"jobindex/internal/job"
	"jobindex/internal/logging"
)

// ErrLocked indicates another scan already holds the store lock.
var ErrLocked = errors.New("document store is locked by another scan")

// Summary aggregates counters for one scan.
type Summary struct {
	// Processed counts every document visited.
	Processed int
	// Emitted counts job documents that produced a record.
	Emitted int
	// Ignored counts documents whose type tag is not "job".
	Ignored int
	// Skipped counts job documents dropped because they could not be
	// classified.
	Skipped int
}

// Indexer runs the map step over a document store.
type Indexer struct {
	store    *docstore.Store
	emitter  emit.Emitter
	logger   *slog.Logger
	lockPath string
	lockWait time.Duration
	failFast bool
}

// New constructs an indexer. A nil logger discards scan logging.
func New(cfg *config.Config, store *docstore.Store, emitter emit.Emitter, logger *slog.Logger) (*Indexer, error) {
	if cfg == nil || store == nil || emitter == nil {
		return nil, errors.New("indexer requires config, store, and emitter")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Indexer{
		store:    store,
		emitter:  emitter,
		logger:   logging.WithComponent(logger, "scan"),
		lockPath: cfg.LockPath(),
		lockWait: time.Duration(cfg.Scan.LockTimeout) * time.Second,
		failFast: cfg.Scan.FailFast,
	}, nil
}

// MapDocument performs the map step for a single decoded document. Documents
// not tagged as jobs return nil without error and emit nothing. The
// computation is pure: re-invoking it on the same document always yields the
// same record.
func MapDocument(doc *job.Document) (*emit.Record, error) {
	if !doc.IsJob() {
		return nil, nil
	}
	outcome, err := classify.Document(doc)
	if err != nil {
		return nil, err
	}
	rec := emit.Unit(doc.Workflow, string(outcome.Status), outcome.Site.String())
	return &rec, nil
}

// Run scans every stored document and emits one record per classifiable job
// document. The returned summary is valid even when an error cut the scan
// short.
func (ix *Indexer) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	lock := flock.New(ix.lockPath)
	acquired, err := ix.acquireLock(ctx, lock)
	if err != nil {
		return summary, err
	}
	if !acquired {
		return summary, ErrLocked
	}
	defer func() { _ = lock.Unlock() }()

	start := time.Now()
	err = ix.store.ForEach(ctx, func(stored *docstore.Stored) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.Processed++

		doc, err := job.DecodeDocument(stored.Body)
		if err != nil {
			return ix.skip(&summary, stored.ID, err)
		}
		rec, err := MapDocument(doc)
		if err != nil {
			return ix.skip(&summary, stored.ID, err)
		}
		if rec == nil {
			summary.Ignored++
			return nil
		}

		if err := ix.emitter.Emit(ctx, *rec); err != nil {
			return fmt.Errorf("emit record for document %s: %w", stored.ID, err)
		}
		summary.Emitted++
		return nil
	})
	if err != nil {
		return summary, err
	}

	ix.logger.Info("scan complete",
		slog.Int("processed", summary.Processed),
		slog.Int("emitted", summary.Emitted),
		slog.Int("ignored", summary.Ignored),
		slog.Int("skipped", summary.Skipped),
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return summary, nil
}

// skip records a per-document classification failure. In fail-fast mode the
// error aborts the scan instead.
func (ix *Indexer) skip(summary *Summary, docID string, cause error) error {
	if ix.failFast {
		return fmt.Errorf("classify document %s: %w", docID, cause)
	}
	summary.Skipped++
	ix.logger.Warn("document skipped",
		slog.String("doc_id", docID),
		slog.Any("error", cause),
	)
	return nil
}

func (ix *Indexer) acquireLock(ctx context.Context, lock *flock.Flock) (bool, error) {
	if ix.lockWait <= 0 {
		ok, err := lock.TryLock()
		if err != nil {
			return false, fmt.Errorf("acquire scan lock: %w", err)
		}
		return ok, nil
	}

	lockCtx, cancel := context.WithTimeout(ctx, ix.lockWait)
	defer cancel()
	ok, err := lock.TryLockContext(lockCtx, 250*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return false, nil
		}
		return false, fmt.Errorf("acquire scan lock: %w", err)
	}
	return ok, nil
}
