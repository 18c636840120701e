package document

import (
	"fmt"
	"sort"

	"controller-cleaner/core/graph"

	"gopkg.in/yaml.v3"
)

// Encode renders c as a YAML document. Destroyed objects and references to
// them are left out, and objects are written in id order.
func Encode(c *graph.Controller) ([]byte, error) {
	f, err := Flatten(c)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(f)
}

// Flatten converts c into its document layout.
func Flatten(c *graph.Controller) (*File, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil controller", ErrInvalidDocument)
	}

	f := &File{Controller: ControllerEntry{ID: c.ID, Name: c.Name}}
	for _, l := range c.Layers {
		if l == nil {
			continue
		}
		le := LayerEntry{Name: l.Name}
		if l.StateMachine.Alive() {
			le.StateMachine = l.StateMachine.ID
		}
		f.Controller.Layers = append(f.Controller.Layers, le)
	}

	objs := reachableObjects(c)
	ids := make([]graph.ID, 0, len(objs))
	for id := range objs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		o := objs[id]
		e := ObjectEntry{ID: id, Kind: o.Kind().String(), Name: o.ObjectName()}
		if stored, ok := c.Lookup(id); !ok || stored != o {
			e.External = true
		}
		if err := fill(&e, o); err != nil {
			return nil, err
		}
		f.Objects = append(f.Objects, e)
	}
	return f, nil
}

func fill(e *ObjectEntry, o graph.Object) error {
	switch v := o.(type) {
	case *graph.StateMachine:
		e.States = stateIDs(v.States)
		e.StateMachines = machineIDs(v.ChildMachines)
		e.Behaviours = behaviourIDs(v.Behaviours)
		e.EntryTransitions = transitionIDs(v.EntryTransitions)
		e.AnyStateTransitions = transitionIDs(v.AnyStateTransitions)
		for _, child := range v.ChildMachines {
			if !child.Alive() {
				continue
			}
			ts, err := v.StateMachineTransitions(child)
			if err != nil {
				return fmt.Errorf("encode transitions of %q to %q: %w", v.Name, child.Name, err)
			}
			if ids := transitionIDs(ts); len(ids) > 0 {
				e.StateMachineTransitions = append(e.StateMachineTransitions, MappingEntry{StateMachine: child.ID, Transitions: ids})
			}
		}
	case *graph.State:
		if v.Motion != nil && v.Motion.Alive() {
			e.Motion = v.Motion.ObjectID()
		}
		e.Transitions = transitionIDs(v.Transitions)
		e.Behaviours = behaviourIDs(v.Behaviours)
	case *graph.Transition:
		if v.DestinationState.Alive() {
			e.DestinationState = v.DestinationState.ID
		}
		if v.DestinationMachine.Alive() {
			e.DestinationStateMachine = v.DestinationMachine.ID
		}
		e.IsExit = v.IsExit
	case *graph.BlendTree:
		for _, m := range v.Children {
			if m != nil && m.Alive() {
				e.Children = append(e.Children, m.ObjectID())
			}
		}
	case *graph.Behaviour:
		e.Script = v.Script
	}
	return nil
}

// reachableObjects returns every live stored object plus the live objects
// they reference, keyed by id.
func reachableObjects(c *graph.Controller) map[graph.ID]graph.Object {
	objs := make(map[graph.ID]graph.Object)
	var queue []graph.Object
	push := func(o graph.Object) {
		if o == nil || !o.Alive() {
			return
		}
		if _, seen := objs[o.ObjectID()]; seen {
			return
		}
		objs[o.ObjectID()] = o
		queue = append(queue, o)
	}

	for _, o := range c.SubAssets() {
		push(o)
	}
	for _, l := range c.Layers {
		if l != nil && l.StateMachine != nil {
			push(l.StateMachine)
		}
	}

	for len(queue) > 0 {
		o := queue[0]
		queue = queue[1:]
		for _, ref := range references(o) {
			push(ref)
		}
	}
	return objs
}

func references(o graph.Object) []graph.Object {
	var refs []graph.Object
	add := func(r graph.Object) { refs = append(refs, r) }
	switch v := o.(type) {
	case *graph.StateMachine:
		for _, s := range v.States {
			if s != nil {
				add(s)
			}
		}
		for _, m := range v.ChildMachines {
			if m != nil {
				add(m)
			}
		}
		for _, b := range v.Behaviours {
			if b != nil {
				add(b)
			}
		}
		for _, t := range append(append([]*graph.Transition(nil), v.EntryTransitions...), v.AnyStateTransitions...) {
			if t != nil {
				add(t)
			}
		}
		for _, child := range v.ChildMachines {
			if !child.Alive() {
				continue
			}
			ts, _ := v.StateMachineTransitions(child)
			for _, t := range ts {
				if t != nil {
					add(t)
				}
			}
		}
	case *graph.State:
		if v.Motion != nil {
			add(v.Motion)
		}
		for _, t := range v.Transitions {
			if t != nil {
				add(t)
			}
		}
		for _, b := range v.Behaviours {
			if b != nil {
				add(b)
			}
		}
	case *graph.Transition:
		if v.DestinationState != nil {
			add(v.DestinationState)
		}
		if v.DestinationMachine != nil {
			add(v.DestinationMachine)
		}
	case *graph.BlendTree:
		for _, m := range v.Children {
			if m != nil {
				add(m)
			}
		}
	}
	return refs
}

func stateIDs(ss []*graph.State) []graph.ID {
	var ids []graph.ID
	for _, s := range ss {
		if s.Alive() {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func machineIDs(ms []*graph.StateMachine) []graph.ID {
	var ids []graph.ID
	for _, m := range ms {
		if m.Alive() {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

func transitionIDs(ts []*graph.Transition) []graph.ID {
	var ids []graph.ID
	for _, t := range ts {
		if t.Alive() {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func behaviourIDs(bs []*graph.Behaviour) []graph.ID {
	var ids []graph.ID
	for _, b := range bs {
		if b.Alive() {
			ids = append(ids, b.ID)
		}
	}
	return ids
}
