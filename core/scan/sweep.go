package scan

import "controller-cleaner/core/graph"

// Sweep returns the candidates that were not marked reachable.
func Sweep(candidates []graph.Object, reachable *ReachableSet) []graph.Object {
	var obsolete []graph.Object
	for _, o := range candidates {
		if !reachable.Contains(o.ObjectID()) {
			obsolete = append(obsolete, o)
		}
	}
	return obsolete
}
