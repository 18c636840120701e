package graph_test

import (
	"errors"
	"testing"

	"controller-cleaner/core/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	recognized := 0
	for _, k := range []graph.Kind{
		graph.KindController, graph.KindStateMachine, graph.KindState, graph.KindStateTransition,
		graph.KindTransition, graph.KindTransitionBase, graph.KindBehaviour, graph.KindBlendTree, graph.KindClip,
	} {
		parsed, err := graph.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
		if k.Recognized() {
			recognized++
		}
	}
	assert.Equal(t, 7, recognized)

	_, err := graph.ParseKind("AudioClip")
	assert.ErrorIs(t, err, graph.ErrUnknownKind)
}

func TestController_Detach(t *testing.T) {
	c := graph.NewController(1, "Locomotion")
	s := c.NewState(10, "Idle")
	other := graph.NewState(11, "Walk")

	assert.True(t, s.Alive())
	assert.Equal(t, 1, c.Len())

	assert.False(t, c.Detach(other), "unstored object cannot be detached")
	assert.True(t, c.Detach(s))
	assert.False(t, s.Alive())
	assert.False(t, c.Detach(s), "second detach is a no-op")

	_, ok := c.Lookup(10)
	assert.False(t, ok)
	assert.Empty(t, c.SubAssets())
}

func TestController_AddDuplicate(t *testing.T) {
	c := graph.NewController(1, "c")
	s := c.NewState(10, "A")

	assert.NoError(t, c.Add(s), "re-adding the same object is allowed")
	err := c.Add(graph.NewState(10, "B"))
	assert.ErrorIs(t, err, graph.ErrDuplicateID)
}

func TestController_SubAssetsOrdered(t *testing.T) {
	c := graph.NewController(1, "c")
	c.NewState(30, "C")
	c.NewState(10, "A")
	c.NewBehaviour(20, "B", "Driver")

	var ids []graph.ID
	for _, o := range c.SubAssets() {
		ids = append(ids, o.ObjectID())
	}
	assert.Equal(t, []graph.ID{10, 20, 30}, ids)
}

func TestTransition_HasTarget(t *testing.T) {
	c := graph.NewController(1, "c")
	dst := c.NewState(2, "B")
	sub := c.NewStateMachine(3, "Sub")

	toState := graph.NewTransition(10, graph.KindStateTransition)
	toState.DestinationState = dst
	toMachine := graph.NewTransition(11, graph.KindTransition)
	toMachine.DestinationMachine = sub
	exit := graph.NewTransition(12, graph.KindStateTransition)
	exit.IsExit = true
	dead := graph.NewTransition(13, graph.KindStateTransition)

	assert.True(t, toState.HasTarget())
	assert.True(t, toMachine.HasTarget())
	assert.True(t, exit.HasTarget())
	assert.False(t, dead.HasTarget())

	var missing *graph.Transition
	assert.False(t, missing.HasTarget())
	assert.False(t, missing.Alive())

	c.Detach(dst)
	assert.False(t, toState.HasTarget(), "destroyed destination does not count")
}

func TestNewTransition_FallbackKind(t *testing.T) {
	assert.Equal(t, graph.KindTransitionBase, graph.NewTransition(1, graph.KindState).Kind())
	assert.Equal(t, graph.KindTransition, graph.NewTransition(1, graph.KindTransition).Kind())
}

func TestStateMachine_Transitions(t *testing.T) {
	root := graph.NewStateMachine(1, "Base Layer")
	child := graph.NewStateMachine(2, "Combat")
	stranger := graph.NewStateMachine(3, "Elsewhere")
	root.ChildMachines = []*graph.StateMachine{child}

	tr := graph.NewTransition(10, graph.KindTransition)
	require.NoError(t, root.SetStateMachineTransitions(child, []*graph.Transition{tr}))

	ts, err := root.StateMachineTransitions(child)
	require.NoError(t, err)
	assert.Equal(t, []*graph.Transition{tr}, ts)
	assert.Equal(t, []graph.ID{2}, root.MachineTransitionKeys())

	_, err = root.StateMachineTransitions(stranger)
	assert.ErrorIs(t, err, graph.ErrNotChildMachine)
	assert.ErrorIs(t, root.SetStateMachineTransitions(nil, nil), graph.ErrNotChildMachine)

	require.NoError(t, root.SetStateMachineTransitions(child, nil))
	assert.Empty(t, root.MachineTransitionKeys())

	corrupt := errors.New("broken mapping")
	root.MarkMappingCorrupt(corrupt)
	_, err = root.StateMachineTransitions(child)
	assert.ErrorIs(t, err, corrupt)
}
