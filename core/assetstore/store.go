package assetstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"controller-cleaner/core/document"
	"controller-cleaner/core/graph"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrNotFound is returned when a backend has no document for a key.
	ErrNotFound = errors.New("controller document not found")
	// ErrNotOpen is returned for controllers that were not opened by the store.
	ErrNotOpen = errors.New("controller is not open")
	// ErrNotStored is returned when destroying an object the controller does not store.
	ErrNotStored = errors.New("object is not stored in controller")
)

// Backend persists controller documents under string keys.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string
	// List returns the keys of every stored document.
	List(ctx context.Context) ([]string, error)
	// Read returns the document stored under key, or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write replaces the document stored under key.
	Write(ctx context.Context, key string, data []byte) error
}

// Store opens controllers from a Backend and tracks the objects modified
// since they were loaded. Opened controllers are cached until Forget.
type Store struct {
	backend Backend
	logger  *zap.Logger

	mu     sync.RWMutex
	byKey  map[string]*entry
	byCtrl map[*graph.Controller]*entry
	sf     singleflight.Group
}

type entry struct {
	key        string
	controller *graph.Controller
	dirty      map[graph.ID]struct{}
}

// New returns a store reading from backend.
func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		byKey:   make(map[string]*entry),
		byCtrl:  make(map[*graph.Controller]*entry),
	}
}

// Backend returns the backend the store reads from.
func (s *Store) Backend() Backend { return s.backend }

// Discover returns every document key in ascending order.
func (s *Store) Discover(ctx context.Context) ([]string, error) {
	keys, err := s.backend.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s backend: %w", s.backend.Name(), err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Open returns the controller stored under key, loading it on first use.
// Concurrent opens of the same key share one load.
func (s *Store) Open(ctx context.Context, key string) (*graph.Controller, error) {
	s.mu.RLock()
	e, ok := s.byKey[key]
	s.mu.RUnlock()
	if ok {
		return e.controller, nil
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		s.mu.RLock()
		e, ok := s.byKey[key]
		s.mu.RUnlock()
		if ok {
			return e.controller, nil
		}

		data, err := s.backend.Read(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		c, err := document.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}

		s.mu.Lock()
		e = &entry{key: key, controller: c, dirty: make(map[graph.ID]struct{})}
		s.byKey[key] = e
		s.byCtrl[c] = e
		s.mu.Unlock()

		s.logger.Debug("Opened controller",
			zap.String("key", key),
			zap.String("backend", s.backend.Name()),
			zap.Int("sub_assets", c.Len()),
		)
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*graph.Controller), nil
}

func (s *Store) lookup(c *graph.Controller) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byCtrl[c]
	if !ok {
		name := "<nil>"
		if c != nil {
			name = c.Name
		}
		return nil, fmt.Errorf("%w: %s", ErrNotOpen, name)
	}
	return e, nil
}

// LoadSubAssets returns every sub-asset stored with c.
func (s *Store) LoadSubAssets(ctx context.Context, c *graph.Controller) ([]graph.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.lookup(c); err != nil {
		return nil, err
	}
	return c.SubAssets(), nil
}

// Destroy removes obj from c's storage and destroys it.
func (s *Store) Destroy(ctx context.Context, c *graph.Controller, obj graph.Object) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e, err := s.lookup(c)
	if err != nil {
		return err
	}
	if obj == nil {
		return fmt.Errorf("%w: <nil>", ErrNotStored)
	}
	if !c.Detach(obj) {
		return fmt.Errorf("%w: %d", ErrNotStored, obj.ObjectID())
	}
	s.mu.Lock()
	e.dirty[obj.ObjectID()] = struct{}{}
	s.mu.Unlock()
	return nil
}

// SetDirty records that obj changed. Unknown controllers are ignored.
func (s *Store) SetDirty(c *graph.Controller, obj graph.Object) {
	e, err := s.lookup(c)
	if err != nil || obj == nil {
		return
	}
	s.mu.Lock()
	e.dirty[obj.ObjectID()] = struct{}{}
	s.mu.Unlock()
}

// IsDirty reports whether c has unsaved changes.
func (s *Store) IsDirty(c *graph.Controller) bool {
	e, err := s.lookup(c)
	if err != nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(e.dirty) > 0
}

// Key returns the key c was opened from.
func (s *Store) Key(c *graph.Controller) (string, bool) {
	e, err := s.lookup(c)
	if err != nil {
		return "", false
	}
	return e.key, true
}

// Save writes c back to the backend when it has unsaved changes. It reports
// whether a write happened.
func (s *Store) Save(ctx context.Context, c *graph.Controller) (bool, error) {
	e, err := s.lookup(c)
	if err != nil {
		return false, err
	}
	s.mu.RLock()
	dirty := len(e.dirty)
	s.mu.RUnlock()
	if dirty == 0 {
		return false, nil
	}

	data, err := document.Encode(c)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", e.key, err)
	}
	if err := s.backend.Write(ctx, e.key, data); err != nil {
		return false, fmt.Errorf("write %s: %w", e.key, err)
	}

	s.mu.Lock()
	e.dirty = make(map[graph.ID]struct{})
	s.mu.Unlock()

	s.logger.Info("Saved controller",
		zap.String("key", e.key),
		zap.String("backend", s.backend.Name()),
		zap.Int("changed", dirty),
	)
	return true, nil
}

// Forget drops the cached controller for key so the next Open reloads it.
func (s *Store) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.byKey[key]; ok {
		delete(s.byCtrl, e.controller)
		delete(s.byKey, key)
	}
}
