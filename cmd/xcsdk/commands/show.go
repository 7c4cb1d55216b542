package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/xcsdk/cmd/xcsdk/commands/output"
	"github.com/thoreinstein/xcsdk/internal/paths"
	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

var showOutput string

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "text",
		"output format: text, json, yaml, toml")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <sdk-path>",
	Short: "Show an SDK's settings",
	Long: `Read an SDK's SDKSettings.json (or SDKSettings.plist) and show its
version, canonical name, deployment targets and supported targets.`,
	Example: `  xcsdk show "$(xcsdk search -p MacOSX --sort desc --first)"
  xcsdk show /Library/Developer/CommandLineTools/SDKs/MacOSX.sdk -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(showOutput)
		if err != nil {
			return err
		}
		path, err := paths.ExpandHome(args[0])
		if err != nil {
			return err
		}
		return runShow(cmd.OutOrStdout(), format, path)
	},
}

// sdkDetails is the rendered form of a parsed SDK.
type sdkDetails struct {
	output.SDK `yaml:",inline"`

	DisplayName             string                              `json:"display_name,omitempty" yaml:"display_name,omitempty" toml:"display_name,omitempty"`
	DefaultDeploymentTarget string                              `json:"default_deployment_target,omitempty" yaml:"default_deployment_target,omitempty" toml:"default_deployment_target,omitempty"`
	MaximumDeploymentTarget string                              `json:"maximum_deployment_target,omitempty" yaml:"maximum_deployment_target,omitempty" toml:"maximum_deployment_target,omitempty"`
	SupportedTargets        map[string]applesdk.SupportedTarget `json:"supported_targets,omitempty" yaml:"supported_targets,omitempty" toml:"supported_targets,omitempty"`
}

func runShow(w io.Writer, format output.Format, path string) error {
	sdk, err := applesdk.LoadParsedSDK(path)
	if err != nil {
		return err
	}

	settings := sdk.Settings()
	doc := sdkDetails{
		SDK:                     output.FromSDK(sdk),
		DisplayName:             settings.DisplayName,
		DefaultDeploymentTarget: settings.DefaultDeploymentTarget,
		MaximumDeploymentTarget: settings.MaximumDeploymentTarget,
		SupportedTargets:        settings.SupportedTargets,
	}

	return output.Write(w, format, doc, func(w io.Writer) error {
		return writeSDKDetails(w, doc)
	})
}

func writeSDKDetails(w io.Writer, d sdkDetails) error {
	t := output.NewTable(w, "FIELD", "VALUE")
	t.Row("Path", d.Path)
	t.Row("Platform", d.Platform)
	t.Row("Version", d.Version)
	if d.CanonicalName != "" {
		t.Row("Canonical name", d.CanonicalName)
	}
	if d.DisplayName != "" {
		t.Row("Display name", d.DisplayName)
	}
	if d.DefaultDeploymentTarget != "" {
		t.Row("Default deployment target", d.DefaultDeploymentTarget)
	}
	if d.MaximumDeploymentTarget != "" {
		t.Row("Maximum deployment target", d.MaximumDeploymentTarget)
	}
	t.Row("Symlink", fmt.Sprint(d.Symlink))
	for _, name := range slices.Sorted(maps.Keys(d.SupportedTargets)) {
		target := d.SupportedTargets[name]
		t.Row("Target "+name, fmt.Sprintf("%s, min %s (%s)",
			strings.Join(target.Archs, " "), target.MinimumDeploymentTarget, target.DeploymentTargetSettingName))
	}
	return t.Flush()
}
