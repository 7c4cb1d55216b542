package applesdk

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// SDK is the behavior shared by Apple SDK representations.
//
// UnparsedSDK derives everything from the directory name. ParsedSDK reads the
// SDK's settings file and always knows its version.
type SDK interface {
	// Path returns the filesystem path to the SDK directory.
	Path() string

	// IsSymlink reports whether Path is a symbolic link. SDK directories
	// commonly contain versionless symlinks (MacOSX.sdk -> MacOSX14.2.sdk);
	// callers may want to drop them to avoid duplicates.
	IsSymlink() bool

	// Platform returns the platform the SDK targets.
	Platform() Platform

	// Version returns the SDK version. The second result is false when the
	// version is not known.
	Version() (SdkVersion, bool)
}

// Loader constructs an SDK from a single candidate directory.
//
// A Loader must return an error matching ErrPathNotSDK for directories that do
// not look like SDKs so enumeration can skip them. Any other error aborts
// enumeration.
type Loader[T SDK] func(path string) (T, error)

// FindSDKsInDirectory loads every SDK directly inside root.
//
// A missing root yields an empty result. Children rejected with ErrPathNotSDK
// are skipped; any other error is returned.
func FindSDKsInDirectory[T SDK](root string, load Loader[T]) ([]T, error) {
	entries, err := readDirIfExists(root)
	if err != nil {
		return nil, err
	}

	res := make([]T, 0, len(entries))
	for _, entry := range entries {
		sdk, err := load(filepath.Join(root, entry.Name()))
		if err != nil {
			if errors.Is(err, ErrPathNotSDK) {
				continue
			}
			return nil, err
		}
		res = append(res, sdk)
	}

	return res, nil
}

// FindDeveloperSDKs finds SDKs in every platform directory of a developer
// directory such as /Applications/Xcode.app/Contents/Developer.
func FindDeveloperSDKs[T SDK](developerDir string, load Loader[T]) ([]T, error) {
	platforms, err := FindPlatformDirectories(developerDir)
	if err != nil {
		return nil, err
	}

	var res []T
	for _, platform := range platforms {
		sdks, err := FindPlatformSDKs(platform, load)
		if err != nil {
			return nil, err
		}
		res = append(res, sdks...)
	}

	return res, nil
}

// FindDefaultDeveloperSDKs finds SDKs in the active developer directory as
// resolved by env.DeveloperDirectory.
func FindDefaultDeveloperSDKs[T SDK](env Environment, load Loader[T]) ([]T, error) {
	developerDir, err := env.DeveloperDirectory()
	if err != nil {
		return nil, err
	}
	return FindDeveloperSDKs(developerDir, load)
}

// FindCommandLineToolsSDKs finds SDKs in the Command Line Tools SDKs directory.
// The boolean is false when no Command Line Tools installation is present.
func FindCommandLineToolsSDKs[T SDK](env Environment, load Loader[T]) ([]T, bool, error) {
	dir, ok := env.CommandLineToolsSDKsDirectory()
	if !ok {
		return nil, false, nil
	}

	sdks, err := FindSDKsInDirectory(dir, load)
	if err != nil {
		return nil, true, err
	}
	return sdks, true, nil
}
