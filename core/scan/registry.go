package scan

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"controller-cleaner/core/graph"

	"go.uber.org/zap"
)

// Registry holds the results shown to users, newest first. It opens
// controllers through a ControllerSource and scans them against an AssetStore.
type Registry struct {
	source ControllerSource
	store  AssetStore
	logger *zap.Logger

	mu      sync.Mutex
	results map[string]*Result
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry(source ControllerSource, store AssetStore, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		source:  source,
		store:   store,
		logger:  logger,
		results: make(map[string]*Result),
	}
}

// ScanOne opens the controller stored under key and starts scanning it. An
// existing result for key is cancelled and replaced; the new result moves to
// the front of the list.
func (r *Registry) ScanOne(ctx context.Context, key string) (*Result, error) {
	c, err := r.source.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnknownController, key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.results[key]; ok {
		old.stop()
		r.removeLocked(key)
	}
	res := r.newResult(ctx, key, c)
	r.order = append([]string{key}, r.order...)
	return res, nil
}

// ScanAll replaces every result with a fresh scan of each discovered
// controller. A controller that fails to open still gets a result, which
// fails with ErrMissingController.
func (r *Registry) ScanAll(ctx context.Context) ([]*Result, error) {
	keys, err := r.source.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover controllers: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.results {
		res.stop()
	}
	r.results = make(map[string]*Result, len(keys))
	r.order = r.order[:0]

	out := make([]*Result, 0, len(keys))
	for _, key := range keys {
		if _, dup := r.results[key]; dup {
			continue
		}
		c, err := r.source.Open(ctx, key)
		if err != nil {
			r.logger.Warn("Failed to open controller", zap.String("key", key), zap.Error(err))
			c = nil
		}
		out = append(out, r.newResult(ctx, key, c))
		r.order = append(r.order, key)
	}
	return out, nil
}

func (r *Registry) newResult(ctx context.Context, key string, c *graph.Controller) *Result {
	res := NewResult(key, r.store, r.logger)
	res.StartScan(ctx, c)
	r.results[key] = res
	return res
}

// CleanAll waits for every scan and cleans each result that has obsolete
// objects. Reports are returned in list order; errors are joined.
func (r *Registry) CleanAll(ctx context.Context) ([]*CleanupReport, error) {
	var (
		reports []*CleanupReport
		errs    []error
	)
	for _, res := range r.List() {
		if err := res.Wait(ctx); err != nil {
			return reports, err
		}
		report, err := res.CleanUp(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Key(), err))
		}
		if report != nil {
			reports = append(reports, report)
		}
	}
	return reports, errors.Join(errs...)
}

// Get returns the result registered under key.
func (r *Registry) Get(key string) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.results[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownController, key)
	}
	return res, nil
}

// List returns the results in display order.
func (r *Registry) List() []*Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Result, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.results[key])
	}
	return out
}

// Discover lists the controller keys known to the source.
func (r *Registry) Discover(ctx context.Context) ([]string, error) {
	return r.source.Discover(ctx)
}

// Remove cancels and drops the result registered under key.
func (r *Registry) Remove(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.results[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownController, key)
	}
	res.stop()
	r.removeLocked(key)
	return nil
}

func (r *Registry) removeLocked(key string) {
	delete(r.results, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Close cancels every running scan.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.results {
		res.Cancel()
	}
}
