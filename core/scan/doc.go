// Package scan finds and removes sub-assets of an animation controller that
// are no longer reachable from its layers.
//
// # Pipeline
//
// A scan runs four steps:
//
// 1. Collect: load every physically stored sub-asset and keep the seven
// recognized kinds (CollectCandidates).
//
// 2. Mark: walk the ownership tree from every layer root, one goroutine per
// state machine, recording used objects in a ReachableSet (Mark).
//
// 3. Finalize: walk the state-machine tree again from a single goroutine and
// mark the transitions stored in each parent's side mapping (Finalize).
//
// 4. Sweep: obsolete = candidates - reachable (Sweep).
//
// CleanUp then destroys the obsolete objects, repairs transition lists that
// still point at destroyed objects (Repair) and starts a fresh scan.
//
// # Lifecycle
//
// A Result owns one controller's scan and moves through
// Idle -> Scanning -> Finalizing -> Completed | Cancelled | Failed.
// Finalize and Sweep run lazily on the first observation after the mark phase
// has joined. A Registry keeps results keyed by controller and drives
// "scan one", "scan all" and "clean all".
//
// # Usage Example
//
//	registry := scan.NewRegistry(store, store, logger)
//	res, err := registry.ScanOne(ctx, "Characters/Player.controller.yaml")
//	if err := res.Wait(ctx); err != nil {
//	    return err
//	}
//	if res.CanClean() {
//	    report, err := res.CleanUp(ctx)
//	}
package scan
