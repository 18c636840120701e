package cleaner

import (
	"context"
	"errors"
	"testing"

	"controller-cleaner/core/assetstore"
	"controller-cleaner/core/assetstore/mocks"
	"controller-cleaner/core/scan"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_ScanAndClean(t *testing.T) {
	svc, fs := newTestService(t)
	ctx := context.Background()

	_, err := svc.ScanOne(ctx, "hero")
	require.NoError(t, err)
	snap, err := svc.Wait(ctx, "hero")
	require.NoError(t, err)
	assert.Equal(t, "Hero", snap.Name)
	assert.Equal(t, scan.StatusCompleted.String(), snap.Status)
	assert.Equal(t, 1, snap.ObsoleteCount)
	assert.True(t, snap.CanClean)

	report, err := svc.Clean(ctx, "hero")
	require.NoError(t, err)
	require.Len(t, report.Removed, 1)
	assert.Equal(t, "Orphan", report.Removed[0].Name)

	data, err := util.ReadFile(fs, "hero.controller.yaml")
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Orphan")

	snap, err = svc.Wait(ctx, "hero")
	require.NoError(t, err)
	assert.True(t, snap.Clean)

	_, err = svc.Clean(ctx, "hero")
	assert.ErrorIs(t, err, ErrNothingToClean)
}

func TestService_UnknownKey(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ScanOne(ctx, "villain")
	assert.ErrorIs(t, err, scan.ErrUnknownController)
	_, err = svc.Get("villain")
	assert.ErrorIs(t, err, scan.ErrUnknownController)
	_, err = svc.Cancel("villain")
	assert.ErrorIs(t, err, scan.ErrUnknownController)
	_, err = svc.Clean(ctx, "villain")
	assert.ErrorIs(t, err, scan.ErrUnknownController)
	assert.ErrorIs(t, svc.Remove("villain"), scan.ErrUnknownController)
}

func TestService_ScanAllAndCleanAll(t *testing.T) {
	svc, fs := newTestService(t)
	ctx := context.Background()

	keys, err := svc.Discover(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"hero", "tidy"}, keys)

	snaps, err := svc.ScanAll(ctx)
	require.NoError(t, err)
	assert.Len(t, snaps, 2)

	snaps, err = svc.WaitAll(ctx)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 1, snaps[0].ObsoleteCount)
	assert.True(t, snaps[1].Clean)

	reports, err := svc.CleanAll(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Hero", reports[0].Controller)

	data, err := util.ReadFile(fs, "tidy.controller.yaml")
	require.NoError(t, err)
	assert.Equal(t, tidyDoc, string(data), "clean controllers are not rewritten")

	assert.Len(t, svc.List(), 2)
	require.NoError(t, svc.Remove("tidy"))
	assert.Len(t, svc.List(), 1)
}

func TestService_CleanSaveError(t *testing.T) {
	backend := new(mocks.Backend)
	backend.On("Read", mock.Anything, "hero").Return([]byte(heroDoc), nil)
	backend.On("Write", mock.Anything, "hero", mock.Anything).Return(errors.New("read-only"))

	logger := zap.NewNop()
	store := assetstore.New(backend, logger)
	registry := scan.NewRegistry(store, store, logger)
	t.Cleanup(registry.Close)
	svc := NewService(registry, store, logger)
	ctx := context.Background()

	_, err := svc.ScanOne(ctx, "hero")
	require.NoError(t, err)
	_, err = svc.Wait(ctx, "hero")
	require.NoError(t, err)

	report, err := svc.Clean(ctx, "hero")
	require.NotNil(t, report)
	assert.Len(t, report.Removed, 1)
	assert.ErrorContains(t, err, "read-only")
	backend.AssertExpectations(t)
}
