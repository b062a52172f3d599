package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sakuffo/event-automation/core/config"
	"github.com/sakuffo/event-automation/core/logger"
	"github.com/sakuffo/event-automation/feature/syncer"
)

// testCmd verifies connectivity to both external services.
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connectivity to Wix and Google",
	Long: `Test builds every API client from the current configuration and issues one
cheap read against each service: a single-event listing on Wix and the
configured range on the sheet.`,
	RunE: runTest,
}

func init() {
	RootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	rt, err := syncer.NewRuntime(ctx, cfg, l)
	if err != nil {
		return err
	}

	if _, err := rt.Wix.ListEvents(ctx, 1); err != nil {
		return fmt.Errorf("wix connection failed: %w", err)
	}
	l.Info("Wix connection OK", zap.String("site_id", cfg.Wix.SiteID))

	rows, err := rt.Sheets.ReadRange(ctx, cfg.Google.SheetID, cfg.Google.SheetRange)
	if err != nil {
		return fmt.Errorf("google sheets connection failed: %w", err)
	}
	l.Info("Google Sheets connection OK",
		zap.String("sheet_id", cfg.Google.SheetID),
		zap.Int("rows", len(rows)),
	)

	return nil
}
