// Package loader provides the feature loading system used by the start command.
//
// Each feature implements the Feature interface and registers its routes when
// loaded. The Manager keeps features in registration order, skips disabled
// ones and refuses duplicate names.
//
//	mgr := loader.NewManager(logg)
//	mgr.Register(cleaner.NewFeature(svc, logg))
//	if err := mgr.LoadAll(app); err != nil { ... }
package loader
