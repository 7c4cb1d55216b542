// Package commands implements the CLI commands for xcsdk.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/xcsdk/cmd"
	"github.com/thoreinstein/xcsdk/cmd/xcsdk/commands/flags"
	"github.com/thoreinstein/xcsdk/cmd/xcsdk/commands/search"
	"github.com/thoreinstein/xcsdk/internal/config"
	"github.com/thoreinstein/xcsdk/internal/errors"
	"github.com/thoreinstein/xcsdk/internal/logging"
)

// debugEnv enables debug logging when no -v flag is given: "1" or "true" for
// debug, "2" for trace.
const debugEnv = "XCSDK_DEBUG"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// configTolerant lists commands that run with a broken config file, so it
// can be diagnosed and replaced.
var configTolerant = []string{"help", "version", "doctor", "config", "path", "init", "edit", "gen-doc"}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: $XDG_CONFIG_HOME/xcsdk/config.yaml)")

	rootCmd.AddCommand(search.Cmd)

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("xcsdk version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	flags.SetConfigFile(configFile)
	config.Init()
	// Capture load errors for later reporting
	_, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "xcsdk",
	Short: "Find Apple SDKs and developer directories",
	Long: `xcsdk locates Apple SDKs (macOS, iOS, tvOS, watchOS, DriverKit and their
simulators) installed by Xcode and the Command Line Tools.

It searches the active developer directory, the Command Line Tools, installed
Xcode applications and any extra directories you configure, and filters the
results by platform and version. Output is a table for humans or JSON, YAML
or TOML for build tooling.`,
	Example: `  # Newest macOS SDK, for SDKROOT
  xcsdk search --platform MacOSX --sort desc --first

  # Every SDK from every installed Xcode
  xcsdk list

  # Check the toolchain installation
  xcsdk doctor

  See Also: xcsdk search, xcsdk doctor, xcsdk config`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		logging.ConfigureColor(cmd.OutOrStdout())
		return checkConfig(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			switch os.Getenv(debugEnv) {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	cfg := logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "")
		}
		cfg.File = f
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig fails commands that need the configuration when it did not load.
func checkConfig(cmd *cobra.Command, _ []string) error {
	if configLoadErr == nil || slices.Contains(configTolerant, cmd.Name()) {
		return nil
	}
	return errors.NewConfigError(configLoadErr)
}

// loadConfig returns the effective configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigFile())
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return cfg, nil
}

// Execute runs the root command. Failures are reported on stderr with a
// suggestion when one is known; the returned error carries the exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	exitErr := errors.Classify(err)
	reportError(os.Stderr, exitErr)
	return exitErr
}

func reportError(w io.Writer, err *errors.ExitError) {
	if err.Err == nil {
		return
	}
	fmt.Fprintf(w, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err.Err)
	if err.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", err.Suggestion)
	}
}
