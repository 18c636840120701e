package scan

import (
	"context"
	"errors"
	"fmt"

	"controller-cleaner/core/graph"
)

// destroyObsolete destroys every obsolete object that still exists. A failing
// object is recorded and the loop moves on; nothing is rolled back.
func destroyObsolete(ctx context.Context, store AssetStore, c *graph.Controller, obsolete []graph.Object) *CleanupReport {
	report := &CleanupReport{Controller: c.Name}
	for _, o := range obsolete {
		if o == nil || !o.Alive() {
			continue
		}
		ref := refOf(o)
		if err := destroyOne(ctx, store, c, o); err != nil {
			report.Failed = append(report.Failed, FailedObject{ObjectRef: ref, Error: err.Error()})
			continue
		}
		report.Removed = append(report.Removed, ref)
	}
	return report
}

func destroyOne(ctx context.Context, store AssetStore, c *graph.Controller, o graph.Object) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("destroy %d: %v", o.ObjectID(), r)
		}
	}()
	return store.Destroy(ctx, c, o)
}

// Repair drops transitions that no longer lead to a live object from every
// state machine of c: entry transitions, AnyState transitions of roots, state
// transitions and the side mapping for child machines. A transition is kept
// only while it is alive and has a target. Every touched machine and state is
// marked dirty in store.
//
// The live transitions that were dropped because their destination is gone
// and that c still stores are returned so the caller can destroy them.
// Repair keeps going after a side-mapping error and returns all of them joined.
func Repair(c *graph.Controller, store AssetStore) ([]graph.Object, error) {
	if c == nil {
		return nil, ErrMissingController
	}
	r := &repairer{
		store:      store,
		controller: c,
		visited:    make(map[*graph.StateMachine]bool),
		seen:       make(map[*graph.Transition]bool),
	}
	for _, layer := range c.Layers {
		if layer == nil {
			continue
		}
		r.machine(layer.StateMachine, true)
	}
	return r.dangling, errors.Join(r.errs...)
}

type repairer struct {
	store      AssetStore
	controller *graph.Controller
	visited    map[*graph.StateMachine]bool
	seen       map[*graph.Transition]bool
	dangling   []graph.Object
	errs       []error
}

func (r *repairer) machine(sm *graph.StateMachine, root bool) {
	if !sm.Alive() || r.visited[sm] {
		return
	}
	r.visited[sm] = true

	sm.EntryTransitions = r.keep(sm.EntryTransitions)
	if root {
		sm.AnyStateTransitions = r.keep(sm.AnyStateTransitions)
	}

	for _, s := range sm.States {
		if !s.Alive() {
			continue
		}
		s.Transitions = r.keep(s.Transitions)
		r.store.SetDirty(r.controller, s)
	}

	for _, child := range sm.ChildMachines {
		if !child.Alive() {
			continue
		}
		ts, err := sm.StateMachineTransitions(child)
		if err == nil {
			err = sm.SetStateMachineTransitions(child, r.keep(ts))
		}
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("repair transitions of %q to %q: %w", sm.Name, child.Name, err))
		}
		r.machine(child, false)
	}

	r.store.SetDirty(r.controller, sm)
}

func (r *repairer) keep(ts []*graph.Transition) []*graph.Transition {
	if len(ts) == 0 {
		return ts
	}
	live := make([]*graph.Transition, 0, len(ts))
	for _, t := range ts {
		if !t.Alive() {
			continue
		}
		if t.HasTarget() {
			live = append(live, t)
			continue
		}
		if r.seen[t] {
			continue
		}
		r.seen[t] = true
		if stored, ok := r.controller.Lookup(t.ID); ok && stored == graph.Object(t) {
			r.dangling = append(r.dangling, t)
		}
	}
	return live
}
