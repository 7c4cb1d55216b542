package applesdk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadUnparsedSDK(t *testing.T) {
	root := t.TempDir()
	target := mkdirs(t, root, "MacOSX14.2.sdk")
	link := filepath.Join(root, "MacOSX.sdk")
	require.NoError(t, os.Symlink(target, link))

	sdk, err := LoadUnparsedSDK(target)
	require.NoError(t, err)
	assert.Equal(t, target, sdk.Path())
	assert.False(t, sdk.IsSymlink())
	assert.Equal(t, MacOSX, sdk.Platform())
	version, ok := sdk.Version()
	require.True(t, ok)
	assert.Equal(t, "14.2", version.String())

	linked, err := LoadUnparsedSDK(link)
	require.NoError(t, err)
	assert.True(t, linked.IsSymlink())
	_, ok = linked.Version()
	assert.False(t, ok, "versionless directory name should have no version")
}

func TestLoadUnparsedSDK_NotAnSDK(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{name: "wrong name", path: mkdirs(t, root, "Documentation")},
		{name: "plain file", path: writeFile(t, "", root, "MacOSX13.0.sdk")},
		{name: "missing", path: filepath.Join(root, "MacOSX12.0.sdk")},
	}

	dangling := filepath.Join(root, "MacOSX11.0.sdk")
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), dangling))
	tests = append(tests, struct {
		name string
		path string
	}{name: "dangling symlink", path: dangling})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadUnparsedSDK(tt.path)
			assert.ErrorIs(t, err, ErrPathNotSDK)
		})
	}
}

func TestFindSDKsInDirectory(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "MacOSX14.2.sdk")
	mkdirs(t, root, "MacOSX13.3.sdk")
	mkdirs(t, root, "Notes")
	writeFile(t, "", root, "SDKSettings.json")

	sdks, err := FindSDKsInDirectory(root, LoadUnparsedSDK)
	require.NoError(t, err)

	want := []string{
		filepath.Join(root, "MacOSX13.3.sdk"),
		filepath.Join(root, "MacOSX14.2.sdk"),
	}
	if diff := cmp.Diff(want, sdkPaths(sdks)); diff != "" {
		t.Errorf("FindSDKsInDirectory() mismatch (-want +got):\n%s", diff)
	}
}

func TestFindSDKsInDirectory_Missing(t *testing.T) {
	sdks, err := FindSDKsInDirectory(filepath.Join(t.TempDir(), "SDKs"), LoadUnparsedSDK)
	require.NoError(t, err)
	assert.Empty(t, sdks)
}

func TestFindSDKsInDirectory_LoaderErrorAborts(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "MacOSX14.2.sdk")

	boom := errors.New("boom")
	load := func(string) (*UnparsedSDK, error) { return nil, boom }

	_, err := FindSDKsInDirectory(root, load)
	assert.ErrorIs(t, err, boom)
}

func TestFindDeveloperSDKs(t *testing.T) {
	dev := makeDeveloperDir(t, t.TempDir(), map[string][]string{
		"MacOSX":          {"MacOSX14.2.sdk"},
		"iPhoneOS":        {"iPhoneOS17.2.sdk"},
		"iPhoneSimulator": {"iPhoneSimulator17.2.sdk"},
	})

	sdks, err := FindDeveloperSDKs(dev, LoadUnparsedSDK)
	require.NoError(t, err)

	want := []string{
		filepath.Join(dev, "Platforms", "MacOSX.platform", "Developer", "SDKs", "MacOSX14.2.sdk"),
		filepath.Join(dev, "Platforms", "iPhoneOS.platform", "Developer", "SDKs", "iPhoneOS17.2.sdk"),
		filepath.Join(dev, "Platforms", "iPhoneSimulator.platform", "Developer", "SDKs", "iPhoneSimulator17.2.sdk"),
	}
	if diff := cmp.Diff(want, sdkPaths(sdks)); diff != "" {
		t.Errorf("FindDeveloperSDKs() mismatch (-want +got):\n%s", diff)
	}
}

func TestFindDeveloperSDKs_NoPlatforms(t *testing.T) {
	sdks, err := FindDeveloperSDKs(t.TempDir(), LoadUnparsedSDK)
	require.NoError(t, err)
	assert.Empty(t, sdks)
}

func TestFindDefaultDeveloperSDKs(t *testing.T) {
	dev := makeDeveloperDir(t, t.TempDir(), map[string][]string{
		"MacOSX": {"MacOSX14.2.sdk"},
	})
	env := hermeticEnvironment(t)
	env.LookupEnv = func(key string) (string, bool) {
		if key == DeveloperDirEnv {
			return dev, true
		}
		return "", false
	}

	sdks, err := FindDefaultDeveloperSDKs(env, LoadUnparsedSDK)
	require.NoError(t, err)
	assert.Len(t, sdks, 1)

	_, err = FindDefaultDeveloperSDKs(hermeticEnvironment(t), LoadUnparsedSDK)
	assert.ErrorIs(t, err, ErrXcodeSelectRun)
}

func TestFindCommandLineToolsSDKs(t *testing.T) {
	env := hermeticEnvironment(t)

	_, ok, err := FindCommandLineToolsSDKs(env, LoadUnparsedSDK)
	require.NoError(t, err)
	assert.False(t, ok)

	mkdirs(t, env.CommandLineToolsDir, "SDKs", "MacOSX14.2.sdk")
	mkdirs(t, env.CommandLineToolsDir, "SDKs", "MacOSX13.sdk")

	sdks, ok, err := FindCommandLineToolsSDKs(env, LoadUnparsedSDK)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, sdks, 2)
}
