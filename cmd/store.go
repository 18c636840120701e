package cmd

import (
	"context"
	"fmt"

	"controller-cleaner/core/assetstore"
	"controller-cleaner/core/config"
	"controller-cleaner/core/database"
	"controller-cleaner/core/storage"

	"go.uber.org/zap"
)

// openBackend builds the document backend selected by cfg.Store.Backend. The
// returned close function releases its connections.
func openBackend(ctx context.Context, cfg *config.Config, logg *zap.Logger) (assetstore.Backend, func(), error) {
	noop := func() {}
	switch cfg.Store.Backend {
	case "", "file":
		logg.Info("Using file backend", zap.String("root", cfg.Store.Root))
		return assetstore.NewFileBackend(cfg.Store.Root, cfg.Store.Extension), noop, nil

	case "bucket":
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		b := assetstore.NewBucketBackend(client, cfg.Storage.Bucket, cfg.Store.Prefix, cfg.Store.Extension)
		if err := b.EnsureBucket(ctx); err != nil {
			return nil, nil, err
		}
		logg.Info("Using bucket backend", zap.String("bucket", cfg.Storage.Bucket), zap.String("prefix", cfg.Store.Prefix))
		return b, noop, nil

	case "database":
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection required: %w", err)
		}
		b := assetstore.NewDatabaseBackend(db)
		if err := b.Migrate(); err != nil {
			return nil, nil, err
		}
		if err := b.Verify(); err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		logg.Info("Using database backend", zap.String("driver", cfg.Database.Driver), zap.String("name", cfg.Database.Name))
		return b, closeDB, nil

	case "redis":
		b := assetstore.NewRedisBackend(cfg.Redis)
		logg.Info("Using redis backend", zap.String("addr", cfg.Redis.Addr))
		return b, func() { _ = b.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
