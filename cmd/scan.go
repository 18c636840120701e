package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"controller-cleaner/core/scan"
	"controller-cleaner/feature/cleaner"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	scanAll    bool
	scanClean  bool
	scanJSON   bool
	scanDryRun bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [keys...]",
	Short: "Scan controllers for unreachable sub-assets",
	Long: `Scans the given controllers (or every controller with --all) and reports the
sub-assets no layer can reach. With --clean the obsolete sub-assets are removed
and the controllers are saved back to the store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !scanAll && len(args) == 0 {
			return cmd.Help()
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		start := time.Now()

		rt, err := newEnv(ctx)
		if err != nil {
			return err
		}
		defer rt.close()

		snaps, err := runScans(ctx, rt.service, args)
		if err != nil {
			return err
		}

		var reports []*scan.CleanupReport
		if scanClean && !scanDryRun {
			reports, err = cleanScans(ctx, rt.service, snaps)
			if err != nil {
				rt.logger.Error("Cleanup finished with errors", zap.Error(err))
			}
		}

		if scanJSON {
			out := struct {
				Results []scan.Snapshot       `json:"results"`
				Cleanup []*scan.CleanupReport `json:"cleanup,omitempty"`
			}{snaps, reports}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if encErr := enc.Encode(out); encErr != nil {
				return fmt.Errorf("failed to encode JSON: %w", encErr)
			}
			return err
		}

		printScans(snaps, scanDryRun && scanClean)
		for _, r := range reports {
			fmt.Println(r.String())
		}
		fmt.Printf("\nExecution Time: %s\n", time.Since(start).Round(time.Millisecond))

		rt.logger.Info("Scan completed",
			zap.Int("controllers", len(snaps)),
			zap.Int("cleaned", len(reports)),
			zap.Duration("execution_time", time.Since(start)),
		)
		return err
	},
}

func runScans(ctx context.Context, svc *cleaner.Service, keys []string) ([]scan.Snapshot, error) {
	if scanAll {
		if _, err := svc.ScanAll(ctx); err != nil {
			return nil, err
		}
		return svc.WaitAll(ctx)
	}

	snaps := make([]scan.Snapshot, 0, len(keys))
	for _, key := range keys {
		if _, err := svc.ScanOne(ctx, key); err != nil {
			return nil, err
		}
	}
	for _, key := range keys {
		snap, err := svc.Wait(ctx, key)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func cleanScans(ctx context.Context, svc *cleaner.Service, snaps []scan.Snapshot) ([]*scan.CleanupReport, error) {
	var (
		reports []*scan.CleanupReport
		errs    []error
	)
	for _, s := range snaps {
		if !s.CanClean {
			continue
		}
		report, err := svc.Clean(ctx, s.Key)
		if report != nil {
			reports = append(reports, report)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Key, err))
		}
	}
	return reports, errors.Join(errs...)
}

func printScans(snaps []scan.Snapshot, dryRun bool) {
	fmt.Println("\n=== Controller Scan ===")
	for _, s := range snaps {
		line := fmt.Sprintf("%-32s %-10s obsolete=%d elapsed=%.1fs", s.Name, s.Status, s.ObsoleteCount, s.ElapsedSeconds)
		if s.Error != "" {
			line += " error=" + s.Error
		}
		fmt.Println(line)
		for _, o := range s.Obsolete {
			fmt.Printf("    %s\n", o.String())
		}
	}
	if dryRun {
		fmt.Println("\nDry run: nothing was removed.")
	}
}

func init() {
	scanCmd.Flags().BoolVar(&scanAll, "all", false, "scan every controller in the store")
	scanCmd.Flags().BoolVar(&scanClean, "clean", false, "remove obsolete sub-assets and save the controllers")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print results as JSON")
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "with --clean, only report what would be removed")
	RootCmd.AddCommand(scanCmd)
}
