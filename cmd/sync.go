package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sakuffo/event-automation/core/config"
	"github.com/sakuffo/event-automation/core/logger"
	"github.com/sakuffo/event-automation/feature/syncer"
)

var noTickets bool

// syncCmd runs one full spreadsheet-to-Wix sync.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync events from the spreadsheet to Wix",
	Long: `Sync reads the configured sheet range, validates each row, and reconciles
the result against the events already on the Wix site.

New rows are created (with their Drive poster uploaded to the media manager),
changed rows are updated in place, and unchanged rows are skipped. Ticket
definitions are created automatically for priced TICKETING events unless
--no-tickets is set.

Examples:
  # Full sync with automatic ticket creation
  event-automation sync

  # Sync events only, never touch ticket definitions
  event-automation sync --no-tickets`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&noTickets, "no-tickets", false, "Skip automatic ticket definition creation")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	// Ctrl-C aborts between API calls rather than mid-request.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	l.Info("Starting event sync")

	rt, err := syncer.NewRuntime(ctx, cfg, l)
	if err != nil {
		return err
	}

	orch, err := rt.NewOrchestrator(!noTickets)
	if err != nil {
		return err
	}

	results, err := orch.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("sync interrupted: %w", ctx.Err())
		}
		return err
	}

	if !results.Succeeded() {
		return fmt.Errorf("sync finished with %d failed event(s)", len(results.Failed))
	}
	return nil
}
