package graph

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotChildMachine is returned when the side mapping is read or written
// for a state machine that is not a direct child.
var ErrNotChildMachine = errors.New("state machine is not a direct child")

// StateMachine is a (possibly nested) node owning states and child machines.
type StateMachine struct {
	Header
	States        []*State
	ChildMachines []*StateMachine
	Behaviours    []*Behaviour

	EntryTransitions []*Transition
	// AnyStateTransitions are only owned by root state machines.
	AnyStateTransitions []*Transition

	machineTransitions map[ID][]*Transition
	mappingErr         error
}

// NewStateMachine returns a detached state machine.
func NewStateMachine(id ID, name string) *StateMachine {
	return &StateMachine{
		Header:             Header{ID: id, Name: name},
		machineTransitions: make(map[ID][]*Transition),
	}
}

func (m *StateMachine) Kind() Kind { return KindStateMachine }

func (m *StateMachine) Alive() bool { return m != nil && m.alive() }

// StateMachineTransitions returns the transitions this machine owns that
// leave the given child machine. The returned slice is a copy.
func (m *StateMachine) StateMachineTransitions(child *StateMachine) ([]*Transition, error) {
	if m.mappingErr != nil {
		return nil, m.mappingErr
	}
	if !m.hasChild(child) {
		return nil, m.notChild(child)
	}
	ts := m.machineTransitions[child.ID]
	if len(ts) == 0 {
		return nil, nil
	}
	return append([]*Transition(nil), ts...), nil
}

// SetStateMachineTransitions replaces the transitions leaving child.
func (m *StateMachine) SetStateMachineTransitions(child *StateMachine, ts []*Transition) error {
	if !m.hasChild(child) {
		return m.notChild(child)
	}
	if m.machineTransitions == nil {
		m.machineTransitions = make(map[ID][]*Transition)
	}
	if len(ts) == 0 {
		delete(m.machineTransitions, child.ID)
		return nil
	}
	m.machineTransitions[child.ID] = append([]*Transition(nil), ts...)
	return nil
}

// MachineTransitionKeys returns the child ids that have mapped transitions,
// in ascending order.
func (m *StateMachine) MachineTransitionKeys() []ID {
	keys := make([]ID, 0, len(m.machineTransitions))
	for id := range m.machineTransitions {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// MarkMappingCorrupt records an error that every later read of the side
// mapping returns.
func (m *StateMachine) MarkMappingCorrupt(err error) {
	if m.mappingErr == nil {
		m.mappingErr = err
	}
}

func (m *StateMachine) hasChild(child *StateMachine) bool {
	if child == nil {
		return false
	}
	for _, c := range m.ChildMachines {
		if c == child {
			return true
		}
	}
	return false
}

func (m *StateMachine) notChild(child *StateMachine) error {
	if child == nil {
		return fmt.Errorf("%w: <nil> in %q", ErrNotChildMachine, m.Name)
	}
	return fmt.Errorf("%w: %d in %q", ErrNotChildMachine, child.ID, m.Name)
}
