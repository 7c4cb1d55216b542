package applesdk

import (
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
)

// UnparsedSDK is an SDK described only by its directory path.
//
// Its version comes from the directory name and may be absent.
type UnparsedSDK struct {
	sdkPath   SdkPath
	isSymlink bool
}

var _ SDK = (*UnparsedSDK)(nil)

// LoadUnparsedSDK constructs an UnparsedSDK. It is a Loader.
//
// The path must be named like an SDK and resolve to a directory.
func LoadUnparsedSDK(path string) (*UnparsedSDK, error) {
	sdkPath, err := ParseSdkPath(path)
	if err != nil {
		return nil, err
	}

	isSymlink, err := checkSDKDirectory(path)
	if err != nil {
		return nil, err
	}

	return &UnparsedSDK{sdkPath: sdkPath, isSymlink: isSymlink}, nil
}

// Path implements SDK.
func (s *UnparsedSDK) Path() string {
	return s.sdkPath.Path
}

// IsSymlink implements SDK.
func (s *UnparsedSDK) IsSymlink() bool {
	return s.isSymlink
}

// Platform implements SDK.
func (s *UnparsedSDK) Platform() Platform {
	return s.sdkPath.Platform
}

// Version implements SDK.
func (s *UnparsedSDK) Version() (SdkVersion, bool) {
	if s.sdkPath.Version == nil {
		return SdkVersion{}, false
	}
	return *s.sdkPath.Version, true
}

// checkSDKDirectory reports whether path is a symlink and ensures it resolves
// to a directory. Dangling links and plain files are not SDKs.
func checkSDKDirectory(path string) (bool, error) {
	linfo, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, notSDK(path)
		}
		return false, errors.Wrapf(err, "inspecting %s", path)
	}

	isSymlink := linfo.Mode()&fs.ModeSymlink != 0

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, notSDK(path)
		}
		return false, errors.Wrapf(err, "inspecting %s", path)
	}
	if !info.IsDir() {
		return false, notSDK(path)
	}

	return isSymlink, nil
}
