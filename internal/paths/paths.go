package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the xcsdk directories under the XDG base directories.
const AppName = "xcsdk"

// ConfigFileName is the default config file name.
const ConfigFileName = "config.yaml"

// DefaultDirPerm is the permission for directories xcsdk creates.
const DefaultDirPerm = 0o755

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates a path that cannot be used, such as "~user/...".
	ErrInvalidPath = errors.New("invalid path")
)

// ResolveHome returns the user's home directory.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.Wrapf(ErrHomeDirNotFound, "%v", err)
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns <ConfigHome>/xcsdk.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the default config file path, <ConfigHome>/xcsdk/config.yaml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// EnsureDir creates path and its parents. A zero perm means DefaultDirPerm.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	if err := os.MkdirAll(path, perm); err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	return nil
}

// ExpandHome replaces a leading "~" or "~/" with the home directory. Other
// paths are returned unchanged. "~user" forms are rejected with ErrInvalidPath.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		if strings.HasPrefix(path, "~") {
			return "", errors.Wrapf(ErrInvalidPath, "%s: only ~/ is supported", path)
		}
		return path, nil
	}

	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// ExpandHomeAll applies ExpandHome to each path, stopping at the first error.
func ExpandHomeAll(paths []string) ([]string, error) {
	res := make([]string, 0, len(paths))
	for _, p := range paths {
		expanded, err := ExpandHome(p)
		if err != nil {
			return nil, err
		}
		res = append(res, expanded)
	}
	return res, nil
}
