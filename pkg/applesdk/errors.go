package applesdk

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
)

// Sentinel errors. Use errors.Is to classify failures returned by this package;
// wrapped I/O causes remain reachable (e.g. errors.Is(err, fs.ErrPermission)).
var (
	// ErrXcodeSelectRun indicates xcode-select could not be started.
	ErrXcodeSelectRun = errors.New("error running xcode-select")

	// ErrXcodeSelectStatus indicates xcode-select ran but exited unsuccessfully.
	ErrXcodeSelectStatus = errors.New("xcode-select exited unsuccessfully")

	// ErrPathNotPlatform indicates a path is not an Apple platform directory.
	ErrPathNotPlatform = errors.New("path is not an Apple Platform")

	// ErrPathNotSDK indicates a path is not an Apple SDK.
	ErrPathNotSDK = errors.New("path is not an Apple SDK")

	// ErrVersionParse indicates a version string could not be parsed.
	ErrVersionParse = errors.New("malformed version string")

	// ErrSettingsParse indicates an SDKSettings file exists but could not be decoded.
	ErrSettingsParse = errors.New("malformed SDK settings")
)

// withKind classifies cause as sentinel while keeping cause reachable.
func withKind(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}

func notPlatform(path string) error {
	return errors.Wrapf(ErrPathNotPlatform, "%s", path)
}

func notSDK(path string) error {
	return errors.Wrapf(ErrPathNotSDK, "%s", path)
}

// readDirIfExists lists a directory, treating a missing directory as empty.
func readDirIfExists(path string) ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading directory %s", path)
	}
	return entries, nil
}
