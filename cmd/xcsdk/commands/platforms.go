package commands

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/xcsdk/cmd/xcsdk/commands/output"
	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

var platformsOutput string

func init() {
	platformsCmd.Flags().StringVarP(&platformsOutput, "output", "o", "text",
		"output format: text, json, yaml, toml")
	rootCmd.AddCommand(platformsCmd)
}

var platformsCmd = &cobra.Command{
	Use:   "platforms [developer-dir]",
	Short: "List platform directories",
	Long: `List the *.platform directories of a developer directory.

Without an argument the active developer directory is used (DEVELOPER_DIR,
then xcode-select).`,
	Example: `  # Platforms of the active Xcode
  xcsdk platforms

  # Platforms of a beta
  xcsdk platforms /Applications/Xcode-beta.app/Contents/Developer`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(platformsOutput)
		if err != nil {
			return err
		}

		var developerDir string
		if len(args) == 1 {
			developerDir = args[0]
		} else {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			if developerDir, err = env.DeveloperDirectory(); err != nil {
				return err
			}
		}

		loggerFrom(cmd).Debug("listing platforms", "developer_dir", developerDir)
		return runPlatforms(cmd.OutOrStdout(), format, developerDir)
	},
}

// platformRecord is the rendered form of a platform directory.
type platformRecord struct {
	Platform string `json:"platform" yaml:"platform" toml:"platform"`
	Known    bool   `json:"known" yaml:"known" toml:"known"`
	Path     string `json:"path" yaml:"path" toml:"path"`
	SDKsPath string `json:"sdks_path" yaml:"sdks_path" toml:"sdks_path"`
	SDKs     int    `json:"sdks" yaml:"sdks" toml:"sdks"`
}

type platformList struct {
	DeveloperDir string           `json:"developer_dir" yaml:"developer_dir" toml:"developer_dir"`
	Platforms    []platformRecord `json:"platforms" yaml:"platforms" toml:"platforms"`
}

func runPlatforms(w io.Writer, format output.Format, developerDir string) error {
	dirs, err := applesdk.FindPlatformDirectories(developerDir)
	if err != nil {
		return err
	}

	doc := platformList{
		DeveloperDir: developerDir,
		Platforms:    make([]platformRecord, 0, len(dirs)),
	}
	for _, dir := range dirs {
		sdks, err := applesdk.FindPlatformSDKs(dir, applesdk.LoadUnparsedSDK)
		if err != nil {
			return err
		}
		doc.Platforms = append(doc.Platforms, platformRecord{
			Platform: dir.Platform().FilesystemName(),
			Known:    dir.Platform().IsKnown(),
			Path:     dir.Path(),
			SDKsPath: dir.SDKsPath(),
			SDKs:     len(sdks),
		})
	}

	return output.Write(w, format, doc, func(w io.Writer) error {
		if len(doc.Platforms) == 0 {
			_, err := io.WriteString(w, "No platforms found in "+developerDir+".\n")
			return err
		}
		t := output.NewTable(w, "PLATFORM", "SDKS", "PATH")
		for _, p := range doc.Platforms {
			name := p.Platform
			if !p.Known {
				name = output.Dim(name + " (unknown)")
			}
			t.Row(name, strconv.Itoa(p.SDKs), p.Path)
		}
		return t.Flush()
	})
}
