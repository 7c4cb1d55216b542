package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/xcsdk/internal/logging"
	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

// loggerFrom returns the logger setupLogging attached to the command.
func loggerFrom(cmd *cobra.Command) *slog.Logger {
	return logging.FromContext(cmd.Context())
}

// loadEnvironment returns the locator environment described by the config.
func loadEnvironment() (applesdk.Environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return applesdk.Environment{}, err
	}
	return cfg.Environment()
}
