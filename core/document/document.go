package document

import (
	"errors"
	"fmt"

	"controller-cleaner/core/graph"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned for documents that cannot describe a graph.
var ErrInvalidDocument = errors.New("invalid controller document")

// File is the on-disk layout of a controller document.
type File struct {
	Controller ControllerEntry `yaml:"controller"`
	Objects    []ObjectEntry   `yaml:"objects"`
}

// ControllerEntry describes the controller and its layers.
type ControllerEntry struct {
	ID     graph.ID     `yaml:"id"`
	Name   string       `yaml:"name"`
	Layers []LayerEntry `yaml:"layers"`
}

// LayerEntry points a layer at its root state machine.
type LayerEntry struct {
	Name         string   `yaml:"name"`
	StateMachine graph.ID `yaml:"stateMachine"`
}

// MappingEntry lists the transitions a machine owns that leave one child.
type MappingEntry struct {
	StateMachine graph.ID   `yaml:"stateMachine"`
	Transitions  []graph.ID `yaml:"transitions,omitempty"`
}

// ObjectEntry is one sub-asset. Only the fields of its kind are used.
type ObjectEntry struct {
	ID   graph.ID `yaml:"id"`
	Kind string   `yaml:"kind"`
	Name string   `yaml:"name,omitempty"`
	// External objects are referenced but stored elsewhere.
	External bool `yaml:"external,omitempty"`

	// StateMachine
	States                  []graph.ID     `yaml:"states,omitempty"`
	StateMachines           []graph.ID     `yaml:"stateMachines,omitempty"`
	EntryTransitions        []graph.ID     `yaml:"entryTransitions,omitempty"`
	AnyStateTransitions     []graph.ID     `yaml:"anyStateTransitions,omitempty"`
	StateMachineTransitions []MappingEntry `yaml:"stateMachineTransitions,omitempty"`

	// StateMachine, State
	Behaviours []graph.ID `yaml:"behaviours,omitempty"`

	// State
	Motion      graph.ID   `yaml:"motion,omitempty"`
	Transitions []graph.ID `yaml:"transitions,omitempty"`

	// transitions
	DestinationState        graph.ID `yaml:"destinationState,omitempty"`
	DestinationStateMachine graph.ID `yaml:"destinationStateMachine,omitempty"`
	IsExit                  bool     `yaml:"isExit,omitempty"`

	// BlendTree
	Children []graph.ID `yaml:"children,omitempty"`

	// Behaviour
	Script string `yaml:"script,omitempty"`
}

// Decode parses a YAML document into a controller graph.
//
// References to ids that are not in the document resolve to nothing, the
// same way a deleted asset leaves a missing reference behind. A side-mapping
// key that is not a direct child leaves the owning machine's mapping corrupt.
func Decode(data []byte) (*graph.Controller, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return Build(&f)
}

// Build turns a parsed document into a controller graph.
func Build(f *File) (*graph.Controller, error) {
	c := graph.NewController(f.Controller.ID, f.Controller.Name)
	objs := make(map[graph.ID]graph.Object, len(f.Objects))

	// First pass creates every object so references can resolve in any order.
	for _, e := range f.Objects {
		if e.ID == 0 {
			return nil, fmt.Errorf("%w: object %q has no id", ErrInvalidDocument, e.Name)
		}
		if _, dup := objs[e.ID]; dup {
			return nil, fmt.Errorf("%w: %w: %d", ErrInvalidDocument, graph.ErrDuplicateID, e.ID)
		}
		kind, err := graph.ParseKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: object %d: %w", ErrInvalidDocument, e.ID, err)
		}
		o, err := newObject(e, kind)
		if err != nil {
			return nil, err
		}
		objs[e.ID] = o
		if !e.External {
			if err := c.Add(o); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
			}
		}
	}

	r := resolver{objs: objs}
	for _, e := range f.Objects {
		r.link(objs[e.ID], e)
	}

	for _, l := range f.Controller.Layers {
		root, _ := objs[l.StateMachine].(*graph.StateMachine)
		c.Layers = append(c.Layers, &graph.Layer{Name: l.Name, StateMachine: root})
	}
	return c, nil
}

func newObject(e ObjectEntry, kind graph.Kind) (graph.Object, error) {
	switch kind {
	case graph.KindStateMachine:
		return graph.NewStateMachine(e.ID, e.Name), nil
	case graph.KindState:
		return graph.NewState(e.ID, e.Name), nil
	case graph.KindStateTransition, graph.KindTransition, graph.KindTransitionBase:
		t := graph.NewTransition(e.ID, kind)
		t.Name = e.Name
		t.IsExit = e.IsExit
		return t, nil
	case graph.KindBehaviour:
		return graph.NewBehaviour(e.ID, e.Name, e.Script), nil
	case graph.KindBlendTree:
		return graph.NewBlendTree(e.ID, e.Name), nil
	case graph.KindClip:
		return graph.NewClip(e.ID, e.Name), nil
	default:
		return nil, fmt.Errorf("%w: object %d: %s cannot be stored in a controller", ErrInvalidDocument, e.ID, kind)
	}
}

type resolver struct {
	objs map[graph.ID]graph.Object
}

func (r resolver) link(o graph.Object, e ObjectEntry) {
	switch v := o.(type) {
	case *graph.StateMachine:
		v.States = r.states(e.States)
		v.ChildMachines = r.machines(e.StateMachines)
		v.Behaviours = r.behaviours(e.Behaviours)
		v.EntryTransitions = r.transitions(e.EntryTransitions)
		v.AnyStateTransitions = r.transitions(e.AnyStateTransitions)
		for _, m := range e.StateMachineTransitions {
			child, _ := r.objs[m.StateMachine].(*graph.StateMachine)
			if err := v.SetStateMachineTransitions(child, r.transitions(m.Transitions)); err != nil {
				v.MarkMappingCorrupt(fmt.Errorf("mapping key %d: %w", m.StateMachine, err))
			}
		}
	case *graph.State:
		if m, ok := r.objs[e.Motion].(graph.Motion); ok {
			v.Motion = m
		}
		v.Transitions = r.transitions(e.Transitions)
		v.Behaviours = r.behaviours(e.Behaviours)
	case *graph.Transition:
		v.DestinationState, _ = r.objs[e.DestinationState].(*graph.State)
		v.DestinationMachine, _ = r.objs[e.DestinationStateMachine].(*graph.StateMachine)
	case *graph.BlendTree:
		for _, id := range e.Children {
			if m, ok := r.objs[id].(graph.Motion); ok {
				v.Children = append(v.Children, m)
			}
		}
	}
}

// Unresolved ids become nil entries; the scan skips them.

func (r resolver) states(ids []graph.ID) []*graph.State {
	out := make([]*graph.State, 0, len(ids))
	for _, id := range ids {
		s, _ := r.objs[id].(*graph.State)
		out = append(out, s)
	}
	return out
}

func (r resolver) machines(ids []graph.ID) []*graph.StateMachine {
	out := make([]*graph.StateMachine, 0, len(ids))
	for _, id := range ids {
		m, _ := r.objs[id].(*graph.StateMachine)
		out = append(out, m)
	}
	return out
}

func (r resolver) transitions(ids []graph.ID) []*graph.Transition {
	out := make([]*graph.Transition, 0, len(ids))
	for _, id := range ids {
		t, _ := r.objs[id].(*graph.Transition)
		out = append(out, t)
	}
	return out
}

func (r resolver) behaviours(ids []graph.ID) []*graph.Behaviour {
	out := make([]*graph.Behaviour, 0, len(ids))
	for _, id := range ids {
		b, _ := r.objs[id].(*graph.Behaviour)
		out = append(out, b)
	}
	return out
}
