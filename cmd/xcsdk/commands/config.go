package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/xcsdk/cmd/xcsdk/commands/output"
	"github.com/thoreinstein/xcsdk/internal/config"
	"github.com/thoreinstein/xcsdk/internal/editor"
	"github.com/thoreinstein/xcsdk/internal/errors"
	"github.com/thoreinstein/xcsdk/internal/paths"
	"github.com/thoreinstein/xcsdk/pkg/fileutil"
)

var (
	configListOutput string
	configInitForce  bool
	configInitFormat string
)

func init() {
	configListCmd.Flags().StringVarP(&configListOutput, "output", "o", "yaml",
		"output format: yaml, json, toml")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false,
		"overwrite an existing config file")
	configInitCmd.Flags().StringVar(&configInitFormat, "format", "yaml",
		"file format: yaml, toml")

	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage xcsdk configuration",
	Long: `Manage xcsdk configuration stored in $XDG_CONFIG_HOME/xcsdk/config.yaml.

Every key can be overridden from the environment with the XCSDK_ prefix,
e.g. XCSDK_SEARCH_PLATFORM=MacOSX.

Without a subcommand, lists the effective configuration.`,
	Example: `  # Show the effective configuration
  xcsdk config

  # Get a single value
  xcsdk config get search.platform

  # Create a config file with the defaults
  xcsdk config init

See Also: xcsdk doctor`,
	RunE: runConfigList,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the effective configuration",
	Long:  `List the effective configuration: defaults, then the config file, then XCSDK_ environment variables.`,
	Example: `  xcsdk config list
  xcsdk config list -o toml`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys. Array values are printed one per line.`,
	Example: `  xcsdk config get search.sdks_dirs
  xcsdk config get locations.applications_dir`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Long:  `Print the config file in use, or where 'xcsdk config init' would create one.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the defaults",
	Long: `Write the default configuration to the config file. The file is written
atomically; an existing file is kept unless --force is given.`,
	Example: `  xcsdk config init
  xcsdk config init --format toml --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in an editor",
	Long: `Open the config file in $XCSDK_EDITOR, $EDITOR or $VISUAL, falling back
to nano or vi. The file must exist; create it with 'xcsdk config init'.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	format, err := output.ParseFormat(configListOutput)
	if err != nil {
		return err
	}
	if format == output.FormatText {
		format = output.FormatYAML
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return output.Encode(cmd.OutOrStdout(), format, cfg)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	return configGet(cmd.OutOrStdout(), args[0])
}

func configGet(w io.Writer, key string) error {
	if !viper.IsSet(key) {
		return errors.NewUserError(errors.Newf("unknown config key %q", key), "Run: xcsdk config list")
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}

	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	if used := config.FileUsed(); used != "" {
		_, err := fmt.Fprintln(w, used)
		return err
	}
	_, err := fmt.Fprintf(w, "%s (not created)\n", initTarget(configFile, "yaml"))
	return err
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := initTarget(configFile, configInitFormat)
	if err := writeDefaultConfig(path, configInitFormat, configInitForce); err != nil {
		return err
	}
	loggerFrom(cmd).Info("wrote config file", "path", path)
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return err
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path, err := editTarget(config.FileUsed(), configFile)
	if err != nil {
		return err
	}
	loggerFrom(cmd).Debug("opening config file", "path", path)
	if err := editor.Open(cmd.Context(), path); err != nil {
		return errors.NewSystemError(err, "Set XCSDK_EDITOR or EDITOR to a working editor")
	}
	return nil
}

// editTarget returns the existing config file `config edit` opens.
func editTarget(used, explicit string) (string, error) {
	path := used
	if path == "" {
		path = initTarget(explicit, "yaml")
	}
	if _, err := os.Stat(path); err != nil {
		return "", errors.NewUserError(errors.Newf("no config file at %s", path),
			"Run: xcsdk config init")
	}
	return path, nil
}

// initTarget returns the file `config init` writes: the --config path when
// given, otherwise config.<format> in the xcsdk config directory.
func initTarget(explicit, format string) string {
	if explicit != "" {
		if expanded, err := paths.ExpandHome(explicit); err == nil {
			return expanded
		}
		return explicit
	}
	return filepath.Join(paths.ConfigDir(), "config."+strings.ToLower(format))
}

func writeDefaultConfig(path, format string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.NewUserError(errors.Newf("config file %s already exists", path),
				"Use --force to overwrite it")
		}
	}

	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "yaml", "yml":
		return fileutil.AtomicWriteYAML(path, config.Default(), fileutil.DefaultPerm)
	case "toml":
		return fileutil.AtomicWriteTOML(path, config.Default(), fileutil.DefaultPerm)
	default:
		return errors.NewUserError(errors.Wrapf(errors.ErrInvalidOutput, "%q (want yaml or toml)", format), "")
	}
}
