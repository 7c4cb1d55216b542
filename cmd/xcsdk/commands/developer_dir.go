package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/xcsdk/internal/errors"
	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

var developerDirCheck bool

func init() {
	developerDirCmd.Flags().BoolVar(&developerDirCheck, "check", false,
		"fail when the directory does not exist")
	rootCmd.AddCommand(developerDirCmd)
}

var developerDirCmd = &cobra.Command{
	Use:   "developer-dir",
	Short: "Print the active developer directory",
	Long: `Print the active developer directory.

DEVELOPER_DIR is used verbatim when set; otherwise 'xcode-select --print-path'
is consulted. The path is not checked unless --check is given.`,
	Example: `  xcsdk developer-dir
  DEVELOPER_DIR=/Applications/Xcode-beta.app/Contents/Developer xcsdk developer-dir --check`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		return runDeveloperDir(cmd.OutOrStdout(), env)
	},
}

func runDeveloperDir(w io.Writer, env applesdk.Environment) error {
	dir, err := env.DeveloperDirectory()
	if err != nil {
		return err
	}

	if developerDirCheck {
		if _, err := os.Stat(dir); err != nil {
			return errors.NewUserError(
				errors.Wrapf(err, "developer directory %s", dir),
				"Run: xcsdk xcodes, then xcode-select --switch <developer dir>")
		}
	}

	_, err = fmt.Fprintln(w, dir)
	return err
}
