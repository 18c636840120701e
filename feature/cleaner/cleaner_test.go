package cleaner

import (
	"testing"

	"controller-cleaner/core/assetstore"
	"controller-cleaner/core/scan"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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

const tidyDoc = `
controller:
  id: 1
  name: Tidy
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
`

func newTestService(t *testing.T) (*Service, billy.Filesystem) {
	t.Helper()
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "hero.controller.yaml", []byte(heroDoc), 0o644))
	require.NoError(t, util.WriteFile(fs, "tidy.controller.yaml", []byte(tidyDoc), 0o644))

	logger := zap.NewNop()
	store := assetstore.New(assetstore.NewFileBackendFS(fs, ""), logger)
	registry := scan.NewRegistry(store, store, logger)
	t.Cleanup(registry.Close)
	return NewService(registry, store, logger), fs
}
