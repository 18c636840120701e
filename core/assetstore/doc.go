// Package assetstore loads controller documents, hands out the decoded
// graphs and writes them back after cleanup.
//
// A Store sits in front of one Backend:
//
//   - FileBackend: one YAML file per controller on a billy filesystem.
//   - BucketBackend: one object per controller in an S3 compatible bucket.
//   - DatabaseBackend: the controller_documents table.
//   - RedisBackend: string values indexed by a set.
//
// The Store implements both scan.ControllerSource and scan.AssetStore.
// Destroy and SetDirty only touch the in-memory graph; Save persists it.
//
// # Usage
//
//	store := assetstore.New(assetstore.NewFileBackend("controllers", ""), logger)
//	c, err := store.Open(ctx, "characters/hero")
//	...
//	saved, err := store.Save(ctx, c)
package assetstore
