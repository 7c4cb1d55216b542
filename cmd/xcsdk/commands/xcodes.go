package commands

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/xcsdk/cmd/xcsdk/commands/output"
	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

var xcodesOutput string

func init() {
	xcodesCmd.Flags().StringVarP(&xcodesOutput, "output", "o", "text",
		"output format: text, json, yaml, toml")
	rootCmd.AddCommand(xcodesCmd)
}

var xcodesCmd = &cobra.Command{
	Use:   "xcodes",
	Short: "List installed Xcode applications",
	Long: `List the Xcode*.app bundles in the applications directory with their
developer directories. Xcode.app is listed first, the rest by path.

Set locations.applications_dir in the config file to scan elsewhere.`,
	Example: `  xcsdk xcodes
  xcsdk xcodes -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := output.ParseFormat(xcodesOutput)
		if err != nil {
			return err
		}
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		return runXcodes(cmd.OutOrStdout(), format, env)
	},
}

// xcodeRecord is the rendered form of an Xcode application.
type xcodeRecord struct {
	Path         string `json:"path" yaml:"path" toml:"path"`
	DeveloperDir string `json:"developer_dir,omitempty" yaml:"developer_dir,omitempty" toml:"developer_dir,omitempty"`
	Active       bool   `json:"active" yaml:"active" toml:"active"`
}

type xcodeList struct {
	Xcodes []xcodeRecord `json:"xcodes" yaml:"xcodes" toml:"xcodes"`
}

func runXcodes(w io.Writer, format output.Format, env applesdk.Environment) error {
	apps, err := env.SystemXcodeApplications()
	if err != nil {
		return err
	}

	// A failing xcode-select only means no application is marked active.
	active, _ := env.DeveloperDirectory()

	doc := xcodeList{Xcodes: make([]xcodeRecord, 0, len(apps))}
	for _, app := range apps {
		rec := xcodeRecord{Path: app}
		dir := filepath.Join(app, applesdk.XcodeAppRelativePathDeveloper)
		if _, err := os.Stat(dir); err == nil {
			rec.DeveloperDir = dir
			rec.Active = filepath.Clean(active) == dir
		}
		doc.Xcodes = append(doc.Xcodes, rec)
	}

	return output.Write(w, format, doc, func(w io.Writer) error {
		if len(doc.Xcodes) == 0 {
			_, err := io.WriteString(w, "No Xcode applications found in "+env.ApplicationsDir+".\n")
			return err
		}
		t := output.NewTable(w, "", "APPLICATION", "DEVELOPER DIR")
		for _, x := range doc.Xcodes {
			mark := ""
			if x.Active {
				mark = "*"
			}
			dev := x.DeveloperDir
			if dev == "" {
				dev = output.Dim("(missing)")
			}
			t.Row(mark, x.Path, dev)
		}
		return t.Flush()
	})
}
