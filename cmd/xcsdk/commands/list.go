package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/xcsdk/cmd/xcsdk/commands/output"
	"github.com/thoreinstein/xcsdk/internal/config"
	"github.com/thoreinstein/xcsdk/internal/selection"
	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

var (
	listSkipSymlinks bool
	listOutput       string
)

func init() {
	listCmd.Flags().BoolVar(&listSkipSymlinks, "skip-symlinks", false,
		"omit versionless symlinks such as MacOSX.sdk")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "text",
		"output format: text, json, yaml, toml")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every installed SDK",
	Long: `List SDKs from every location xcsdk knows about: the active developer
directory, the Command Line Tools, every installed Xcode and the extra
directories in the config file.

Platform and version filters from the config file are not applied; use
'xcsdk search' for filtered results.`,
	Example: `  # Everything, as a table
  xcsdk list

  # Without duplicate symlinks, as YAML
  xcsdk list --skip-symlinks -o yaml

See Also: xcsdk search, xcsdk xcodes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		format, err := output.ParseFormat(listOutput)
		if err != nil {
			return err
		}
		s, err := listSearch(cfg)
		if err != nil {
			return err
		}
		return runList(cmd.OutOrStdout(), format, s.WithLogger(loggerFrom(cmd)))
	},
}

// listSearch enables every root strategy on top of the configured
// locations and extra directories.
func listSearch(cfg *config.Config) (applesdk.SdkSearch, error) {
	unfiltered := *cfg
	unfiltered.Search.Platform = ""
	unfiltered.Search.MinimumVersion = ""
	unfiltered.Search.MaximumVersion = ""

	s, err := unfiltered.Search()
	if err != nil {
		return applesdk.SdkSearch{}, err
	}
	return s.
		DeveloperDir(true).
		CommandLineTools(true).
		DefaultSystemXcode(true).
		SystemXcodes(true), nil
}

func runList(w io.Writer, format output.Format, s applesdk.SdkSearch) error {
	sdks, err := applesdk.Search(s, applesdk.LoadUnparsedSDK)
	if err != nil {
		return err
	}
	if listSkipSymlinks {
		sdks = selection.WithoutSymlinks(sdks)
	}

	doc := output.SDKList{SDKs: output.FromSDKs(sdks)}
	return output.Write(w, format, doc, func(w io.Writer) error {
		if len(doc.SDKs) == 0 {
			_, err := io.WriteString(w, "No SDKs found.\n")
			return err
		}
		return output.WriteSDKTable(w, doc.SDKs)
	})
}
