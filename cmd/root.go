package cmd

import (
	"context"
	"fmt"
	"os"

	"controller-cleaner/core/assetstore"
	"controller-cleaner/core/config"
	"controller-cleaner/core/logger"
	"controller-cleaner/core/scan"
	"controller-cleaner/feature/cleaner"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "controller-cleaner",
	Short: "Animation controller sub-asset cleaner",
	Long: `Controller Cleaner finds the sub-assets stored in animation controllers
that no layer can reach anymore and removes them.
Controllers are read from files, an S3 bucket, a database or redis.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config gives readable timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory holding the .env file")
}

// env bundles what every command needs to reach controllers.
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *assetstore.Store
	registry *scan.Registry
	service  *cleaner.Service
	close    func()
}

func newEnv(ctx context.Context) (*env, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	backend, closeBackend, err := openBackend(ctx, cfg, logg)
	if err != nil {
		_ = logg.Sync()
		return nil, err
	}

	store := assetstore.New(backend, logg)
	registry := scan.NewRegistry(store, store, logg)
	return &env{
		cfg:      cfg,
		logger:   logg,
		store:    store,
		registry: registry,
		service:  cleaner.NewService(registry, store, logg),
		close: func() {
			registry.Close()
			closeBackend()
			_ = logg.Sync()
		},
	}, nil
}
