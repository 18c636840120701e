package document_test

import (
	"testing"

	"controller-cleaner/core/document"
	"controller-cleaner/core/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const locomotion = `
controller:
  id: 1
  name: Locomotion
  layers:
    - name: Base Layer
      stateMachine: 2
objects:
  - id: 2
    kind: StateMachine
    name: Base Layer
    states: [3, 4]
    stateMachines: [5]
    entryTransitions: [10]
    anyStateTransitions: [11]
    stateMachineTransitions:
      - stateMachine: 5
        transitions: [12]
    behaviours: [20]
  - id: 3
    kind: State
    name: Idle
    motion: 30
    transitions: [13, 99]
  - id: 4
    kind: State
    name: Walk
  - id: 5
    kind: StateMachine
    name: Combat
  - id: 10
    kind: Transition
    destinationState: 3
  - id: 11
    kind: StateTransition
    destinationState: 4
  - id: 12
    kind: Transition
    destinationState: 4
  - id: 13
    kind: StateTransition
    isExit: true
  - id: 20
    kind: Behaviour
    name: Footsteps
    script: FootstepDriver
  - id: 30
    kind: BlendTree
    name: Move
    children: [31]
  - id: 31
    kind: Clip
    name: walk_fwd
    external: true
`

func TestDecode(t *testing.T) {
	c, err := document.Decode([]byte(locomotion))
	require.NoError(t, err)

	assert.Equal(t, graph.ID(1), c.ID)
	assert.Equal(t, "Locomotion", c.Name)
	require.Len(t, c.Layers, 1)

	root := c.Layers[0].StateMachine
	require.NotNil(t, root)
	assert.Equal(t, "Base Layer", root.Name)
	require.Len(t, root.States, 2)
	require.Len(t, root.ChildMachines, 1)
	assert.Equal(t, "Combat", root.ChildMachines[0].Name)
	require.Len(t, root.Behaviours, 1)
	assert.Equal(t, "FootstepDriver", root.Behaviours[0].Script)

	ts, err := root.StateMachineTransitions(root.ChildMachines[0])
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, graph.ID(12), ts[0].ID)

	idle := root.States[0]
	tree, ok := idle.Motion.(*graph.BlendTree)
	require.True(t, ok)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, graph.KindClip, tree.Children[0].Kind())

	require.Len(t, idle.Transitions, 2)
	assert.True(t, idle.Transitions[0].IsExit)
	assert.Nil(t, idle.Transitions[1], "unresolved reference decodes to nil")

	_, stored := c.Lookup(31)
	assert.False(t, stored, "external objects are not stored")
	assert.Equal(t, 10, c.Len())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"Syntax", "controller: ["},
		{"UnknownKind", "objects:\n  - id: 2\n    kind: AudioSource\n"},
		{"DuplicateID", "objects:\n  - id: 2\n    kind: State\n  - id: 2\n    kind: State\n"},
		{"MissingID", "objects:\n  - kind: State\n"},
		{"ControllerObject", "objects:\n  - id: 2\n    kind: Controller\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := document.Decode([]byte(tt.doc))
			assert.ErrorIs(t, err, document.ErrInvalidDocument)
		})
	}
}

func TestDecode_CorruptMapping(t *testing.T) {
	doc := `
controller:
  id: 1
  name: c
  layers:
    - name: Base Layer
      stateMachine: 2
objects:
  - id: 2
    kind: StateMachine
    stateMachines: [3]
    stateMachineTransitions:
      - stateMachine: 4
        transitions: [5]
  - id: 3
    kind: StateMachine
  - id: 4
    kind: StateMachine
  - id: 5
    kind: Transition
`
	c, err := document.Decode([]byte(doc))
	require.NoError(t, err)

	root := c.Layers[0].StateMachine
	_, err = root.StateMachineTransitions(root.ChildMachines[0])
	assert.ErrorIs(t, err, graph.ErrNotChildMachine)
}

func TestEncode_RoundTrip(t *testing.T) {
	c, err := document.Decode([]byte(locomotion))
	require.NoError(t, err)

	data, err := document.Encode(c)
	require.NoError(t, err)

	again, err := document.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, c.Len(), again.Len())

	f1, err := document.Flatten(c)
	require.NoError(t, err)
	f2, err := document.Flatten(again)
	require.NoError(t, err)
	assert.Equal(t, f1, f2)
}

func TestEncode_SkipsDestroyed(t *testing.T) {
	c, err := document.Decode([]byte(locomotion))
	require.NoError(t, err)

	walk, _ := c.Lookup(4)
	require.True(t, c.Detach(walk))

	f, err := document.Flatten(c)
	require.NoError(t, err)

	for _, o := range f.Objects {
		assert.NotEqual(t, graph.ID(4), o.ID)
		switch o.ID {
		case 2:
			assert.Equal(t, []graph.ID{3}, o.States)
		case 11:
			assert.Zero(t, o.DestinationState, "reference to a destroyed state is dropped")
		}
	}
}
