package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

const macSettings = `{
  "CanonicalName": "macosx14.2",
  "DisplayName": "macOS 14.2",
  "Version": "14.2",
  "DefaultDeploymentTarget": "14.2",
  "MaximumDeploymentTarget": "14.2.99",
  "SupportedTargets": {
    "macosx": {
      "Archs": ["x86_64", "arm64"],
      "MinimumDeploymentTarget": "10.13",
      "DeploymentTargetSettingName": "MACOSX_DEPLOYMENT_TARGET"
    }
  }
}`

// installation is a fake machine: Xcode.app with a macOS SDK, an Xcode-beta.app
// missing its developer directory, and the Command Line Tools.
type installation struct {
	root            string
	applicationsDir string
	developerDir    string
	macSDK          string
	cltSDK          string
	env             applesdk.Environment
}

func newInstallation(t *testing.T) installation {
	t.Helper()
	isolate(t)
	root := t.TempDir()
	apps := filepath.Join(root, "Applications")
	developerDir := filepath.Join(apps, "Xcode.app", "Contents", "Developer")
	macSDK := filepath.Join(developerDir, "Platforms", "MacOSX.platform", "Developer", "SDKs", "MacOSX14.2.sdk")
	cltSDK := filepath.Join(root, "CommandLineTools", "SDKs", "MacOSX13.3.sdk")

	for _, dir := range []string{macSDK, cltSDK, filepath.Join(apps, "Xcode-beta.app", "Contents")} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(macSDK, "SDKSettings.json"), []byte(macSettings), 0o644))

	t.Setenv("DEVELOPER_DIR", developerDir)
	t.Setenv("XCSDK_LOCATIONS_APPLICATIONS_DIR", apps)
	t.Setenv("XCSDK_LOCATIONS_XCODE_APP", filepath.Join(apps, "Xcode.app"))
	t.Setenv("XCSDK_LOCATIONS_COMMAND_LINE_TOOLS", filepath.Join(root, "CommandLineTools"))

	env := applesdk.DefaultEnvironment()
	env.ApplicationsDir = apps
	env.XcodeAppPath = filepath.Join(apps, "Xcode.app")
	env.CommandLineToolsDir = filepath.Join(root, "CommandLineTools")

	return installation{
		root:            root,
		applicationsDir: apps,
		developerDir:    developerDir,
		macSDK:          macSDK,
		cltSDK:          cltSDK,
		env:             env,
	}
}

// isolate resets viper and points the config search away from the real
// user config.
func isolate(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			require.NoError(t, sv.Replace([]string{}))
		} else {
			require.NoError(t, f.Value.Set(f.DefValue))
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(t, child)
	}
}

// execute runs the CLI with args and returns what it wrote to stdout. Call
// isolate (or newInstallation) first.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	resetFlags(t, rootCmd)
	configLoadErr = nil

	prevColor := color.NoColor
	prevLogger := slog.Default()
	t.Cleanup(func() {
		color.NoColor = prevColor
		slog.SetDefault(prevLogger)
		resetFlags(t, rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		configLoadErr = nil
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	err := rootCmd.Execute()
	return stdout.String(), err
}

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}
