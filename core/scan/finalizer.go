package scan

import (
	"fmt"

	"controller-cleaner/core/graph"
)

// Finalize marks the transitions stored in each state machine's side mapping
// for its child machines. It must run after Mark has returned and from a
// single goroutine: the mapping is not safe for concurrent reads.
//
// The first error reading a mapping stops finalization.
func Finalize(c *graph.Controller, reachable *ReachableSet) (err error) {
	if c == nil {
		return ErrMissingController
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: finalize %s: %v", ErrGraphRead, c.Name, r)
		}
	}()

	visited := make(map[*graph.StateMachine]bool)
	for _, layer := range c.Layers {
		if layer == nil || !layer.StateMachine.Alive() {
			continue
		}
		if err := finalizeMachine(layer.StateMachine, reachable, visited); err != nil {
			return err
		}
	}
	return nil
}

func finalizeMachine(sm *graph.StateMachine, reachable *ReachableSet, visited map[*graph.StateMachine]bool) error {
	if visited[sm] {
		return nil
	}
	visited[sm] = true

	for _, child := range sm.ChildMachines {
		if !child.Alive() {
			continue
		}
		ts, err := sm.StateMachineTransitions(child)
		if err != nil {
			return fmt.Errorf("%w: transitions of %q to %q: %w", ErrGraphRead, sm.Name, child.Name, err)
		}
		markTransitions(reachable, ts)
		if err := finalizeMachine(child, reachable, visited); err != nil {
			return err
		}
	}
	return nil
}
