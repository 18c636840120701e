package cleaner

import (
	"context"
	"errors"
	"fmt"

	"controller-cleaner/core/assetstore"
	"controller-cleaner/core/scan"

	"go.uber.org/zap"
)

// ErrNothingToClean is returned when a result has no completed scan with
// obsolete sub-assets.
var ErrNothingToClean = errors.New("nothing to clean")

// Service drives the scan registry and persists cleaned controllers.
type Service struct {
	registry *scan.Registry
	store    *assetstore.Store
	logger   *zap.Logger
}

// NewService creates a cleaner service over registry, saving through store.
func NewService(registry *scan.Registry, store *assetstore.Store, logger *zap.Logger) *Service {
	return &Service{
		registry: registry,
		store:    store,
		logger:   logger,
	}
}

// List returns a snapshot of every result, newest first.
func (s *Service) List() []scan.Snapshot {
	results := s.registry.List()
	out := make([]scan.Snapshot, 0, len(results))
	for _, res := range results {
		out = append(out, res.Snapshot())
	}
	return out
}

// Get returns the snapshot of the result registered under key.
func (s *Service) Get(key string) (scan.Snapshot, error) {
	res, err := s.registry.Get(key)
	if err != nil {
		return scan.Snapshot{}, err
	}
	return res.Snapshot(), nil
}

// Discover lists the controller keys known to the store.
func (s *Service) Discover(ctx context.Context) ([]string, error) {
	return s.registry.Discover(ctx)
}

// ScanAll starts a scan of every discovered controller.
func (s *Service) ScanAll(ctx context.Context) ([]scan.Snapshot, error) {
	results, err := s.registry.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Started scan of all controllers", zap.Int("controllers", len(results)))
	out := make([]scan.Snapshot, 0, len(results))
	for _, res := range results {
		out = append(out, res.Snapshot())
	}
	return out, nil
}

// ScanOne starts a scan of the controller stored under key.
func (s *Service) ScanOne(ctx context.Context, key string) (scan.Snapshot, error) {
	res, err := s.registry.ScanOne(ctx, key)
	if err != nil {
		return scan.Snapshot{}, err
	}
	return res.Snapshot(), nil
}

// Wait blocks until the scan of key finishes or ctx ends.
func (s *Service) Wait(ctx context.Context, key string) (scan.Snapshot, error) {
	res, err := s.registry.Get(key)
	if err != nil {
		return scan.Snapshot{}, err
	}
	if err := res.Wait(ctx); err != nil {
		return res.Snapshot(), err
	}
	return res.Snapshot(), nil
}

// WaitAll blocks until every scan finishes or ctx ends.
func (s *Service) WaitAll(ctx context.Context) ([]scan.Snapshot, error) {
	results := s.registry.List()
	out := make([]scan.Snapshot, 0, len(results))
	for _, res := range results {
		if err := res.Wait(ctx); err != nil {
			return nil, err
		}
		out = append(out, res.Snapshot())
	}
	return out, nil
}

// Cancel stops the running scan of key.
func (s *Service) Cancel(key string) (scan.Snapshot, error) {
	res, err := s.registry.Get(key)
	if err != nil {
		return scan.Snapshot{}, err
	}
	res.Cancel()
	return res.Snapshot(), nil
}

// Clean removes the obsolete sub-assets found for key and saves the
// controller. The report is returned even when repair or save fails.
func (s *Service) Clean(ctx context.Context, key string) (*scan.CleanupReport, error) {
	res, err := s.registry.Get(key)
	if err != nil {
		return nil, err
	}
	report, repairErr := res.CleanUp(ctx)
	if report == nil {
		if repairErr != nil {
			return nil, repairErr
		}
		return nil, fmt.Errorf("%w: %s", ErrNothingToClean, key)
	}
	return report, errors.Join(repairErr, s.save(ctx, res))
}

// CleanAll waits for every scan, cleans each result with obsolete
// sub-assets and saves the touched controllers.
func (s *Service) CleanAll(ctx context.Context) ([]*scan.CleanupReport, error) {
	reports, err := s.registry.CleanAll(ctx)
	errs := []error{err}
	for _, res := range s.registry.List() {
		errs = append(errs, s.save(ctx, res))
	}
	return reports, errors.Join(errs...)
}

// Remove drops the result registered under key.
func (s *Service) Remove(key string) error {
	return s.registry.Remove(key)
}

func (s *Service) save(ctx context.Context, res *scan.Result) error {
	c := res.Controller()
	if c == nil {
		return nil
	}
	if _, err := s.store.Save(ctx, c); err != nil {
		s.logger.Error("Failed to save controller", zap.String("key", res.Key()), zap.Error(err))
		return err
	}
	return nil
}
