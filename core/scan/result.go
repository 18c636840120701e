package scan

import (
	"context"
	"errors"
	"sync"
	"time"

	"controller-cleaner/core/graph"
	"controller-cleaner/core/metrics"

	"go.uber.org/zap"
)

const missingName = "[Missing]"

// Result owns the scan of one controller. All methods are safe for
// concurrent use.
type Result struct {
	key    string
	store  AssetStore
	logger *zap.Logger

	mu sync.Mutex
	// markHook runs at the start of the mark goroutine of every scan started
	// while it is set. Tests use it to hold a scan in the Scanning state.
	markHook    func()
	controller  *graph.Controller
	status      Status
	generation  uint64
	cancel      context.CancelFunc
	done        chan struct{}
	candidates  []graph.Object
	reachable   *ReachableSet
	obsolete    []graph.Object
	failMessage string
	elapsed     time.Duration
	runningFrom time.Time

	// walking counts mark goroutines still reading the graph, stale ones
	// included. The graph is only mutated once it drops to zero.
	walking sync.WaitGroup
}

// NewResult returns an idle result for the controller stored under key.
func NewResult(key string, store AssetStore, logger *zap.Logger) *Result {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Result{key: key, store: store, logger: logger}
}

// Key returns the controller key the result was created for.
func (r *Result) Key() string { return r.key }

// Controller returns the scanned controller, nil when it is missing.
func (r *Result) Controller() *graph.Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.controller
}

// StartScan discards any scan in flight and scans c from scratch. Candidates
// are collected before StartScan returns; marking continues in the
// background and does not inherit ctx's cancellation, only its values.
func (r *Result) StartScan(ctx context.Context, c *graph.Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startLocked(ctx, c)
}

func (r *Result) startLocked(ctx context.Context, c *graph.Controller) {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.generation++
	gen := r.generation

	r.controller = c
	r.candidates = nil
	r.reachable = nil
	r.obsolete = nil
	r.failMessage = ""
	r.elapsed = 0
	r.runningFrom = time.Now()
	r.status = StatusScanning
	done := make(chan struct{})
	r.done = done

	candidates, err := CollectCandidates(ctx, r.store, c)
	if err != nil {
		r.failLocked(err)
		close(done)
		return
	}
	r.candidates = candidates

	scanCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.cancel = cancel
	r.log().Debug("Scan started", zap.Int("candidates", len(candidates)))

	r.walking.Add(1)
	go r.mark(scanCtx, gen, c, done, r.markHook)
}

func (r *Result) mark(ctx context.Context, gen uint64, c *graph.Controller, done chan struct{}, hook func()) {
	defer close(done)
	if hook != nil {
		hook()
	}

	reachable, err := Mark(ctx, c)
	r.walking.Done()

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		// Superseded by a newer scan; drop everything.
		return
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.stopClockLocked()

	switch {
	case errors.Is(err, ErrCancelled):
		r.status = StatusCancelled
		r.log().Info("Scan cancelled", zap.Duration("elapsed", r.elapsed))
		metrics.RecordScan(StatusCancelled.String(), r.elapsed)
	case err != nil:
		r.failLocked(err)
	default:
		r.reachable = reachable
		r.status = StatusFinalizing
	}
}

// finalizeLocked runs Finalize and Sweep once the mark phase has joined.
func (r *Result) finalizeLocked() {
	if r.status != StatusFinalizing {
		return
	}
	r.runningFrom = time.Now()

	if err := Finalize(r.controller, r.reachable); err != nil {
		r.failLocked(err)
		return
	}
	r.obsolete = Sweep(r.candidates, r.reachable)
	r.stopClockLocked()
	r.status = StatusCompleted

	r.log().Info("Scan completed",
		zap.Int("candidates", len(r.candidates)),
		zap.Int("reachable", r.reachable.Len()),
		zap.Int("obsolete", len(r.obsolete)),
		zap.Duration("elapsed", r.elapsed),
	)
	metrics.RecordScan(StatusCompleted.String(), r.elapsed)
	metrics.RecordObsolete(len(r.obsolete))
}

func (r *Result) failLocked(err error) {
	r.stopClockLocked()
	r.status = StatusFailed
	r.failMessage = err.Error()
	r.obsolete = nil
	r.log().Error("Scan failed", zap.Error(err))
	metrics.RecordScan(StatusFailed.String(), r.elapsed)
}

func (r *Result) stopClockLocked() {
	if !r.runningFrom.IsZero() {
		r.elapsed += time.Since(r.runningFrom)
		r.runningFrom = time.Time{}
	}
}

func (r *Result) log() *zap.Logger {
	name := missingName
	if r.controller != nil {
		name = r.controller.Name
	}
	return r.logger.With(zap.String("controller", name), zap.String("key", r.key))
}

// Cancel asks a running scan to stop. It has no effect unless the result is
// scanning; tasks observe the request at their next node.
func (r *Result) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusScanning && r.cancel != nil {
		r.cancel()
	}
}

// stop cancels a running scan and waits until no mark goroutine of r reads
// the graph anymore.
func (r *Result) stop() {
	r.Cancel()
	r.walking.Wait()
}

// Wait blocks until the current scan reaches a terminal state or ctx ends.
func (r *Result) Wait(ctx context.Context) error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return nil
	}

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	r.mu.Lock()
	r.finalizeLocked()
	r.mu.Unlock()
	return nil
}

// CleanUp destroys the obsolete objects, repairs dangling transitions and
// starts a new scan. It returns nil, nil unless the scan completed with at
// least one obsolete object. Destroy failures are reported per object in the
// report; a repair error is returned alongside the report.
func (r *Result) CleanUp(ctx context.Context) (*CleanupReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalizeLocked()
	if r.status != StatusCompleted || len(r.obsolete) == 0 {
		return nil, nil
	}

	c := r.controller
	r.walking.Wait()
	report := destroyObsolete(ctx, r.store, c, r.obsolete)

	l := r.log()
	dangling, repairErr := Repair(c, r.store)
	if repairErr != nil {
		report.RepairErr = repairErr.Error()
		l.Error("Failed to repair transitions", zap.Error(repairErr))
	}
	// Transitions left without a destination by the removal go too.
	if len(dangling) > 0 {
		extra := destroyObsolete(ctx, r.store, c, dangling)
		report.Removed = append(report.Removed, extra.Removed...)
		report.Failed = append(report.Failed, extra.Failed...)
	}

	l.Info(report.String(), zap.Int("removed", len(report.Removed)), zap.Int("failed", len(report.Failed)))
	for _, f := range report.Failed {
		l.Warn("Failed to destroy sub-asset", zap.String("object", f.ObjectRef.String()), zap.String("error", f.Error))
	}
	metrics.RecordCleanup(len(report.Removed), len(report.Failed))

	r.startLocked(ctx, c)
	return report, repairErr
}

// State returns the lifecycle state, finalizing first if the mark phase
// has joined.
func (r *Result) State() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalizeLocked()
	return r.status
}

// Obsolete returns the obsolete objects of a completed scan.
func (r *Result) Obsolete() []graph.Object {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalizeLocked()
	return append([]graph.Object(nil), r.obsolete...)
}

// ObsoleteCount returns the number of obsolete objects.
func (r *Result) ObsoleteCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalizeLocked()
	return len(r.obsolete)
}

// IsClean reports whether no obsolete object is known.
func (r *Result) IsClean() bool {
	return r.ObsoleteCount() == 0
}

// CanClean reports whether CleanUp would do anything.
func (r *Result) CanClean() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalizeLocked()
	return r.status == StatusCompleted && len(r.obsolete) > 0
}

// FailMessage returns the error text of a failed scan.
func (r *Result) FailMessage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalizeLocked()
	return r.failMessage
}

// Elapsed returns the time spent scanning so far.
func (r *Result) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalizeLocked()
	return r.elapsedLocked()
}

func (r *Result) elapsedLocked() time.Duration {
	if r.runningFrom.IsZero() {
		return r.elapsed
	}
	return r.elapsed + time.Since(r.runningFrom)
}

// Snapshot returns every observation at once.
func (r *Result) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalizeLocked()

	s := Snapshot{
		Key:            r.key,
		Name:           missingName,
		Status:         r.status.String(),
		Clean:          r.status == StatusCompleted && len(r.obsolete) == 0,
		ObsoleteCount:  len(r.obsolete),
		Error:          r.failMessage,
		ElapsedSeconds: r.elapsedLocked().Seconds(),
		CanClean:       r.status == StatusCompleted && len(r.obsolete) > 0,
		CanScan:        r.status.Finished() && r.controller != nil,
		CanCancel:      !r.status.Finished() && r.status != StatusIdle,
	}
	if r.controller != nil {
		s.Name = r.controller.Name
	}
	for _, o := range r.obsolete {
		s.Obsolete = append(s.Obsolete, refOf(o))
	}
	return s
}
