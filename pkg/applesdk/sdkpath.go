package applesdk

import (
	"path/filepath"
	"strings"
)

// SdkPath holds the metadata that can be derived from an SDK directory name.
type SdkPath struct {
	// Path is the filesystem path as given.
	Path string

	// Platform is parsed from the directory name up to the first digit.
	Platform Platform

	// Version is parsed from the remainder of the name. It is nil when the
	// directory name carries no version, e.g. MacOSX.sdk. Load the SDK settings
	// to reliably obtain the version.
	Version *SdkVersion
}

// ParseSdkPath parses a `<Platform>[<Version>].sdk` path. Only the final path
// segment is inspected; the filesystem is not touched.
func ParseSdkPath(path string) (SdkPath, error) {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return SdkPath{}, notSDK(path)
	}

	idx := strings.LastIndexByte(base, '.')
	if idx < 0 || base[idx+1:] != "sdk" {
		return SdkPath{}, notSDK(path)
	}
	prefix := base[:idx]

	res := SdkPath{Path: path}

	digit := strings.IndexFunc(prefix, isDecimalDigit)
	if digit < 0 {
		res.Platform = ParsePlatform(prefix)
		return res, nil
	}

	version := NewSdkVersion(prefix[digit:])
	res.Platform = ParsePlatform(prefix[:digit])
	res.Version = &version

	return res, nil
}

func isDecimalDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
