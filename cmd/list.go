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

const listDisplayLimit = 50

// listCmd prints the events currently on the Wix site.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List events currently on the Wix site",
	RunE:  runList,
}

func init() {
	RootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
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

	events, err := rt.Wix.ListAllEvents(ctx, cfg.Sync.PageSize)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	l.Info("Fetched events", zap.Int("count", len(events)))

	shown := len(events)
	if shown > listDisplayLimit {
		shown = listDisplayLimit
	}
	for _, ev := range events[:shown] {
		start := ""
		if ev.DateAndTimeSettings != nil {
			start = ev.DateAndTimeSettings.StartDate
		}
		fmt.Printf("  %s  %s\n", start, ev.Title)
	}
	if len(events) > shown {
		fmt.Printf("  ...and %d more\n", len(events)-shown)
	}

	return nil
}
