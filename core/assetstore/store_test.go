package assetstore_test

import (
	"context"
	"errors"
	"testing"

	"controller-cleaner/core/assetstore"
	"controller-cleaner/core/assetstore/mocks"
	"controller-cleaner/core/graph"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const heroDoc = `
controller:
  id: 1
  name: Hero
  layers:
    - name: Base Layer
      stateMachine: 2
objects:
  - id: 2
    kind: StateMachine
    name: Base Layer
    states: [3]
  - id: 3
    kind: State
    name: Idle
  - id: 4
    kind: State
    name: Orphan
`

func newFileStore(t *testing.T) (*assetstore.Store, *assetstore.FileBackend) {
	t.Helper()
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("characters", 0o755))
	require.NoError(t, util.WriteFile(fs, "characters/hero.controller.yaml", []byte(heroDoc), 0o644))
	require.NoError(t, util.WriteFile(fs, "boss.controller.yaml", []byte(heroDoc), 0o644))
	backend := assetstore.NewFileBackendFS(fs, "")
	return assetstore.New(backend, nil), backend
}

func TestStore_Discover(t *testing.T) {
	store, _ := newFileStore(t)
	keys, err := store.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"boss", "characters/hero"}, keys)
}

func TestStore_OpenCaches(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()

	c1, err := store.Open(ctx, "characters/hero")
	require.NoError(t, err)
	c2, err := store.Open(ctx, "characters/hero")
	require.NoError(t, err)
	assert.Same(t, c1, c2)

	key, ok := store.Key(c1)
	assert.True(t, ok)
	assert.Equal(t, "characters/hero", key)

	store.Forget("characters/hero")
	c3, err := store.Open(ctx, "characters/hero")
	require.NoError(t, err)
	assert.NotSame(t, c1, c3)
}

func TestStore_OpenMissing(t *testing.T) {
	store, _ := newFileStore(t)
	_, err := store.Open(context.Background(), "nobody")
	assert.ErrorIs(t, err, assetstore.ErrNotFound)
}

func TestStore_NotOpen(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()
	stranger := graph.NewController(9, "Stranger")

	_, err := store.LoadSubAssets(ctx, stranger)
	assert.ErrorIs(t, err, assetstore.ErrNotOpen)
	assert.ErrorIs(t, store.Destroy(ctx, stranger, graph.NewState(1, "s")), assetstore.ErrNotOpen)
	_, err = store.Save(ctx, stranger)
	assert.ErrorIs(t, err, assetstore.ErrNotOpen)
	assert.False(t, store.IsDirty(stranger))

	// SetDirty on an unknown controller is ignored.
	store.SetDirty(stranger, graph.NewState(1, "s"))
}

func TestStore_DestroyAndSave(t *testing.T) {
	store, backend := newFileStore(t)
	ctx := context.Background()

	c, err := store.Open(ctx, "characters/hero")
	require.NoError(t, err)
	objs, err := store.LoadSubAssets(ctx, c)
	require.NoError(t, err)
	assert.Len(t, objs, 3)

	saved, err := store.Save(ctx, c)
	require.NoError(t, err)
	assert.False(t, saved, "clean controllers are not written")

	orphan, ok := c.Lookup(4)
	require.True(t, ok)
	require.NoError(t, store.Destroy(ctx, c, orphan))
	assert.False(t, orphan.Alive())
	assert.True(t, store.IsDirty(c))
	assert.ErrorIs(t, store.Destroy(ctx, c, orphan), assetstore.ErrNotStored)

	saved, err = store.Save(ctx, c)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.False(t, store.IsDirty(c))

	data, err := backend.Read(ctx, "characters/hero")
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Orphan")

	store.Forget("characters/hero")
	reloaded, err := store.Open(ctx, "characters/hero")
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Len())
}

func TestStore_BackendErrors(t *testing.T) {
	ctx := context.Background()
	backend := new(mocks.Backend)
	backend.On("List", mock.Anything).Return(nil, errors.New("unreachable"))
	backend.On("Read", mock.Anything, "hero").Return([]byte(heroDoc), nil)
	backend.On("Read", mock.Anything, "broken").Return([]byte("objects: ["), nil)
	backend.On("Write", mock.Anything, "hero", mock.Anything).Return(errors.New("read-only"))

	store := assetstore.New(backend, nil)

	_, err := store.Discover(ctx)
	assert.ErrorContains(t, err, "unreachable")

	_, err = store.Open(ctx, "broken")
	assert.Error(t, err)

	c, err := store.Open(ctx, "hero")
	require.NoError(t, err)
	store.SetDirty(c, c.Layers[0].StateMachine)
	_, err = store.Save(ctx, c)
	assert.ErrorContains(t, err, "read-only")
	assert.True(t, store.IsDirty(c), "failed saves keep changes pending")

	backend.AssertExpectations(t)
}
