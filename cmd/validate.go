package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sakuffo/event-automation/core/config"
	"github.com/sakuffo/event-automation/core/logger"
)

// validateCmd checks the configuration without touching any API.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and credentials",
	Long: `Validate loads the configuration from the environment and .env file and
reports every missing or malformed setting at once, so a fresh deployment
can be fixed in a single pass.`,
	RunE: runValidate,
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	errs := cfg.ValidationErrors()
	if len(errs) > 0 {
		for _, msg := range errs {
			l.Error("Configuration problem", zap.String("problem", msg))
		}
		return fmt.Errorf("configuration has %d problem(s)", len(errs))
	}

	l.Info("Configuration is valid",
		zap.String("sheet_id", cfg.Google.SheetID),
		zap.String("service_account", cfg.Google.ClientEmail()),
		zap.String("timezone", cfg.Sync.Timezone),
	)
	return nil
}
