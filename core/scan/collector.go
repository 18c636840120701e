package scan

import (
	"context"
	"fmt"

	"controller-cleaner/core/graph"
)

// CollectCandidates loads every sub-asset stored with c and keeps the live
// objects of a recognized kind. The result is unordered from the caller's
// point of view.
func CollectCandidates(ctx context.Context, store AssetStore, c *graph.Controller) ([]graph.Object, error) {
	if c == nil {
		return nil, ErrMissingController
	}

	objs, err := store.LoadSubAssets(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%w: load sub-assets of %s: %w", ErrGraphRead, c.Name, err)
	}

	candidates := make([]graph.Object, 0, len(objs))
	for _, o := range objs {
		if o == nil || !o.Alive() || !o.Kind().Recognized() {
			continue
		}
		candidates = append(candidates, o)
	}
	return candidates, nil
}
