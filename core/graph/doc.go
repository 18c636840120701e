// Package graph models the object graph owned by one animation controller.
//
// A controller owns an ordered list of layers. Each layer owns a root state
// machine, and state machines own states, child state machines, entry
// transitions, AnyState transitions (roots only) and behaviours. States own
// their outgoing transitions, behaviours and an optional motion, which may be a
// blend tree with nested child motions.
//
// # Two Relations
//
// The graph carries two relations that are walked separately:
//
//   - Ownership: the tree formed by the exported slices (States, ChildMachines,
//     Transitions, ...). It is safe to read concurrently while no cleanup runs.
//   - Reference: transitions leaving a child state machine, stored in a keyed
//     side mapping on the parent and read through StateMachineTransitions.
//     This mapping is only read from a single goroutine.
//
// # Physical Storage
//
// Besides the ownership tree, a Controller keeps the table of every sub-asset
// physically stored with it (SubAssets). Objects can be stored without being
// referenced by the tree; those are the ones a scan reports as obsolete.
// Detach removes an object from the table and marks it destroyed, after which
// Alive reports false for it and every reference to it counts as missing.
package graph
