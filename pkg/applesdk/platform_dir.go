package applesdk

import (
	"path/filepath"
	"slices"
	"strings"
)

// PlatformDirectory is a `*.platform` directory beneath a developer directory.
//
// Equality and ordering only consider the path; the platform is derived from
// the path deterministically.
type PlatformDirectory struct {
	path     string
	platform Platform
}

// NewPlatformDirectory constructs a PlatformDirectory from a path whose base
// name is `<name>.platform`. The filesystem is not touched.
func NewPlatformDirectory(path string) (PlatformDirectory, error) {
	platform, err := PlatformFromDirectoryName(path)
	if err != nil {
		return PlatformDirectory{}, err
	}
	return PlatformDirectory{path: path, platform: platform}, nil
}

// FindPlatformDirectories returns the platform directories under
// `<developerDir>/Platforms`, sorted by path.
//
// A missing Platforms directory yields an empty result. Entries that are not
// `*.platform` directories are skipped.
func FindPlatformDirectories(developerDir string) ([]PlatformDirectory, error) {
	platformsPath := filepath.Join(developerDir, "Platforms")

	entries, err := readDirIfExists(platformsPath)
	if err != nil {
		return nil, err
	}

	res := make([]PlatformDirectory, 0, len(entries))
	for _, entry := range entries {
		dir, err := NewPlatformDirectory(filepath.Join(platformsPath, entry.Name()))
		if err != nil {
			continue
		}
		res = append(res, dir)
	}

	slices.SortFunc(res, ComparePlatformDirectories)

	return res, nil
}

// ComparePlatformDirectories orders platform directories by path.
func ComparePlatformDirectories(a, b PlatformDirectory) int {
	return strings.Compare(a.path, b.path)
}

// Path returns the filesystem path of the directory.
func (d PlatformDirectory) Path() string {
	return d.path
}

// Platform returns the platform the directory holds.
func (d PlatformDirectory) Platform() Platform {
	return d.platform
}

// Equal reports whether both directories have the same path.
func (d PlatformDirectory) Equal(other PlatformDirectory) bool {
	return d.path == other.path
}

// SDKsPath returns the directory holding SDKs for this platform. The path is
// not checked for existence.
func (d PlatformDirectory) SDKsPath() string {
	return filepath.Join(d.path, "Developer", "SDKs")
}

// FindPlatformSDKs finds SDKs in the platform's Developer/SDKs directory.
func FindPlatformSDKs[T SDK](d PlatformDirectory, load Loader[T]) ([]T, error) {
	return FindSDKsInDirectory(d.SDKsPath(), load)
}
