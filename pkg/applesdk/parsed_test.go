package applesdk

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const macOSSettingsJSON = `{
  "CanonicalName": "macosx14.2",
  "DisplayName": "macOS 14.2",
  "Version": "14.2",
  "MaximumDeploymentTarget": "14.2.99",
  "DefaultProperties": {
    "PLATFORM_NAME": "macosx",
    "IOS_UNZIPPERED_TWIN_PREFIX_PATH": "/System/iOSSupport"
  },
  "SupportedTargets": {
    "macosx": {
      "Archs": ["x86_64", "arm64"],
      "DefaultDeploymentTarget": "14.2",
      "MinimumDeploymentTarget": "10.13",
      "MaximumDeploymentTarget": "14.2.99",
      "DeploymentTargetSettingName": "MACOSX_DEPLOYMENT_TARGET",
      "PlatformFamilyName": "macOS",
      "ValidDeploymentTargets": ["10.13", "14.0", "14.2"]
    }
  }
}`

const iOSSettingsPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CanonicalName</key>
	<string>iphoneos17.2</string>
	<key>DisplayName</key>
	<string>iOS 17.2</string>
	<key>Version</key>
	<string>17.2</string>
	<key>DefaultProperties</key>
	<dict>
		<key>PLATFORM_NAME</key>
		<string>iphoneos</string>
	</dict>
	<key>SupportedTargets</key>
	<dict>
		<key>iphoneos</key>
		<dict>
			<key>Archs</key>
			<array>
				<string>arm64</string>
			</array>
			<key>MinimumDeploymentTarget</key>
			<string>12.0</string>
		</dict>
	</dict>
</dict>
</plist>
`

func TestLoadParsedSDK_JSON(t *testing.T) {
	dir := mkdirs(t, t.TempDir(), "MacOSX.sdk")
	writeFile(t, macOSSettingsJSON, dir, SettingsJSONFile)

	sdk, err := LoadParsedSDK(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, sdk.Path())
	assert.Equal(t, MacOSX, sdk.Platform())
	assert.False(t, sdk.IsSymlink())
	assert.Equal(t, "macosx14.2", sdk.CanonicalName())

	version, ok := sdk.Version()
	require.True(t, ok, "parsed SDKs always have a version")
	assert.Equal(t, "14.2", version.String())

	targets := sdk.SupportedTargets()
	require.Contains(t, targets, "macosx")
	assert.Equal(t, []string{"x86_64", "arm64"}, targets["macosx"].Archs)
	assert.Equal(t, "MACOSX_DEPLOYMENT_TARGET", targets["macosx"].DeploymentTargetSettingName)

	settings := sdk.Settings()
	name, ok := settings.DefaultProperty("PLATFORM_NAME")
	assert.True(t, ok)
	assert.Equal(t, "macosx", name)
}

func TestLoadParsedSDK_Plist(t *testing.T) {
	dir := mkdirs(t, t.TempDir(), "iPhoneOS17.2.sdk")
	writeFile(t, iOSSettingsPlist, dir, SettingsPlistFile)

	sdk, err := LoadParsedSDK(dir)
	require.NoError(t, err)

	assert.Equal(t, IPhoneOS, sdk.Platform())
	assert.Equal(t, "iphoneos17.2", sdk.CanonicalName())
	version, _ := sdk.Version()
	assert.Equal(t, "17.2", version.String())
	assert.Equal(t, "12.0", sdk.SupportedTargets()["iphoneos"].MinimumDeploymentTarget)
}

func TestLoadParsedSDK_PrefersJSON(t *testing.T) {
	dir := mkdirs(t, t.TempDir(), "MacOSX14.2.sdk")
	writeFile(t, macOSSettingsJSON, dir, SettingsJSONFile)
	writeFile(t, iOSSettingsPlist, dir, SettingsPlistFile)

	sdk, err := LoadParsedSDK(dir)
	require.NoError(t, err)
	assert.Equal(t, "macosx14.2", sdk.CanonicalName())
}

func TestLoadParsedSDK_PlatformFromSettings(t *testing.T) {
	tests := []struct {
		name     string
		dir      string
		settings string
		want     Platform
	}{
		{
			name:     "platform name overrides directory name",
			dir:      "Custom14.2.sdk",
			settings: `{"Version": "14.2", "DefaultProperties": {"PLATFORM_NAME": "macosx"}}`,
			want:     MacOSX,
		},
		{
			name:     "platform name wins over canonical name",
			dir:      "Custom17.2.sdk",
			settings: `{"CanonicalName": "macosx14.2", "Version": "17.2", "DefaultProperties": {"PLATFORM_NAME": "iphonesimulator"}}`,
			want:     IPhoneSimulator,
		},
		{
			name:     "canonical name prefix",
			dir:      "Custom.sdk",
			settings: `{"CanonicalName": "driverkit23.0", "Version": "23.0"}`,
			want:     DriverKit,
		},
		{
			name:     "unknown names fall back to the directory",
			dir:      "XROS1.0.sdk",
			settings: `{"CanonicalName": "xros1.0", "Version": "1.0", "DefaultProperties": {"PLATFORM_NAME": "xros"}}`,
			want:     UnknownPlatform("XROS"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := mkdirs(t, t.TempDir(), tt.dir)
			writeFile(t, tt.settings, dir, SettingsJSONFile)

			sdk, err := LoadParsedSDK(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sdk.Platform())
		})
	}
}

func TestLoadParsedSDK_Errors(t *testing.T) {
	root := t.TempDir()

	noSettings := mkdirs(t, root, "MacOSX14.2.sdk")

	badJSON := mkdirs(t, root, "MacOSX13.0.sdk")
	writeFile(t, "{not json", badJSON, SettingsJSONFile)

	noVersion := mkdirs(t, root, "MacOSX12.0.sdk")
	writeFile(t, `{"CanonicalName": "macosx12.0"}`, noVersion, SettingsJSONFile)

	badName := mkdirs(t, root, "Headers")
	writeFile(t, macOSSettingsJSON, badName, SettingsJSONFile)

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "no settings file", path: noSettings, want: ErrPathNotSDK},
		{name: "malformed json", path: badJSON, want: ErrSettingsParse},
		{name: "missing version", path: noVersion, want: ErrSettingsParse},
		{name: "not named like an sdk", path: badName, want: ErrPathNotSDK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadParsedSDK(tt.path)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFindSDKsInDirectory_Parsed(t *testing.T) {
	root := t.TempDir()
	good := mkdirs(t, root, "MacOSX14.2.sdk")
	writeFile(t, macOSSettingsJSON, good, SettingsJSONFile)
	// Skipped: no settings file.
	mkdirs(t, root, "MacOSX13.0.sdk")

	sdks, err := FindSDKsInDirectory(root, LoadParsedSDK)
	require.NoError(t, err)
	require.Len(t, sdks, 1)
	assert.Equal(t, filepath.Join(root, "MacOSX14.2.sdk"), sdks[0].Path())
}

func TestFindSDKsInDirectory_ParsedMalformedAborts(t *testing.T) {
	root := t.TempDir()
	bad := mkdirs(t, root, "MacOSX14.2.sdk")
	writeFile(t, "{", bad, SettingsJSONFile)

	_, err := FindSDKsInDirectory(root, LoadParsedSDK)
	assert.ErrorIs(t, err, ErrSettingsParse)
}
