package scan

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"controller-cleaner/core/graph"

	"golang.org/x/sync/errgroup"
)

// Mark walks the ownership tree of c from every layer root and returns the
// set of objects in use. Each state machine is handled by its own goroutine;
// a task checks ctx before touching its node and waits for the tasks it
// spawned for its child machines.
//
// The returned error is ErrCancelled when any task observed cancellation,
// otherwise the first recorded failure. Tasks are never aborted because a
// sibling failed, so the set may be partial whenever err != nil and must not
// be swept.
func Mark(ctx context.Context, c *graph.Controller) (*ReachableSet, error) {
	m := &marker{reachable: NewReachableSet()}
	if c == nil {
		return m.reachable, ErrMissingController
	}

	var g errgroup.Group
	for _, layer := range c.Layers {
		if layer == nil || layer.StateMachine == nil {
			continue
		}
		root := layer.StateMachine
		g.Go(func() error {
			return m.visit(ctx, root, true)
		})
	}
	_ = g.Wait()

	return m.reachable, m.outcome.err()
}

type marker struct {
	reachable *ReachableSet
	outcome   outcome
}

func (m *marker) visit(ctx context.Context, sm *graph.StateMachine, root bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: state machine %d: %v", ErrGraphRead, sm.ID, r)
		}
		m.outcome.record(err)
	}()

	if ctx.Err() != nil {
		return ErrCancelled
	}
	// Already visited through another parent, or a cycle.
	if !m.reachable.TryAdd(sm.ID) {
		return nil
	}

	m.behaviours(sm.Behaviours)
	for _, s := range sm.States {
		if !s.Alive() {
			continue
		}
		m.reachable.Add(s.ID)
		if tree, ok := s.Motion.(*graph.BlendTree); ok {
			m.blendTree(tree)
		}
		m.transitions(s.Transitions)
		m.behaviours(s.Behaviours)
	}

	m.transitions(sm.EntryTransitions)
	if root {
		m.transitions(sm.AnyStateTransitions)
	}

	var g errgroup.Group
	for _, child := range sm.ChildMachines {
		if !child.Alive() {
			continue
		}
		g.Go(func() error {
			return m.visit(ctx, child, false)
		})
	}
	return g.Wait()
}

func (m *marker) transitions(ts []*graph.Transition) {
	markTransitions(m.reachable, ts)
}

func (m *marker) behaviours(bs []*graph.Behaviour) {
	for _, b := range bs {
		if b.Alive() {
			m.reachable.Add(b.ID)
		}
	}
}

func (m *marker) blendTree(t *graph.BlendTree) {
	if !t.Alive() || !m.reachable.TryAdd(t.ID) {
		return
	}
	for _, child := range t.Children {
		if sub, ok := child.(*graph.BlendTree); ok {
			m.blendTree(sub)
		}
	}
}

// markTransitions marks every live transition that leads somewhere.
// Dead transitions are left out and end up obsolete.
func markTransitions(reachable *ReachableSet, ts []*graph.Transition) {
	for _, t := range ts {
		if t.Alive() && t.HasTarget() {
			reachable.Add(t.ID)
		}
	}
}

// outcome collects terminal conditions reported by concurrent tasks.
// Cancellation wins over failure; among failures the first one is kept.
type outcome struct {
	mu        sync.Mutex
	cancelled bool
	failure   error
}

func (o *outcome) record(err error) {
	if err == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled) {
		o.cancelled = true
		return
	}
	if o.failure == nil {
		o.failure = err
	}
}

func (o *outcome) err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancelled {
		return ErrCancelled
	}
	return o.failure
}
