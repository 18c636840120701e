package mocks

import (
	"context"

	"controller-cleaner/core/graph"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of scan.AssetStore
type Store struct {
	mock.Mock
}

func (m *Store) LoadSubAssets(ctx context.Context, c *graph.Controller) ([]graph.Object, error) {
	args := m.Called(ctx, c)
	if objs, ok := args.Get(0).([]graph.Object); ok {
		return objs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Destroy(ctx context.Context, c *graph.Controller, obj graph.Object) error {
	args := m.Called(ctx, c, obj)
	return args.Error(0)
}

func (m *Store) SetDirty(c *graph.Controller, obj graph.Object) {
	m.Called(c, obj)
}

// Backend is a mock implementation of assetstore.Backend
type Backend struct {
	mock.Mock
}

func (m *Backend) Name() string {
	return "mock"
}

func (m *Backend) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if keys, ok := args.Get(0).([]string); ok {
		return keys, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) Read(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) Write(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}
