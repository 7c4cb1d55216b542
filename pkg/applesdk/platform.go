package applesdk

import (
	"path/filepath"
	"strings"
)

type platformKind int

const (
	kindUnknown platformKind = iota
	kindAppleTVOS
	kindAppleTVSimulator
	kindDriverKit
	kindIPhoneOS
	kindIPhoneSimulator
	kindMacOSX
	kindWatchOS
	kindWatchSimulator
)

// Platform is an Apple platform such as macOS or the iOS simulator.
//
// Platforms are identified by their filesystem name. Two values are Equal when
// their FilesystemName matches, so UnknownPlatform("MacOSX") is equal to
// MacOSX. Use Equal rather than == when either side may be an unknown platform.
type Platform struct {
	kind platformKind
	name string
}

// Known platforms.
var (
	AppleTVOS        = Platform{kind: kindAppleTVOS, name: "AppleTVOS"}
	AppleTVSimulator = Platform{kind: kindAppleTVSimulator, name: "AppleTVSimulator"}
	DriverKit        = Platform{kind: kindDriverKit, name: "DriverKit"}
	IPhoneOS         = Platform{kind: kindIPhoneOS, name: "iPhoneOS"}
	IPhoneSimulator  = Platform{kind: kindIPhoneSimulator, name: "iPhoneSimulator"}
	MacOSX           = Platform{kind: kindMacOSX, name: "MacOSX"}
	WatchOS          = Platform{kind: kindWatchOS, name: "WatchOS"}
	WatchSimulator   = Platform{kind: kindWatchSimulator, name: "WatchSimulator"}
)

// KnownPlatforms returns every known platform in a deterministic order.
func KnownPlatforms() []Platform {
	return []Platform{
		AppleTVOS,
		AppleTVSimulator,
		DriverKit,
		IPhoneOS,
		IPhoneSimulator,
		MacOSX,
		WatchOS,
		WatchSimulator,
	}
}

// UnknownPlatform returns a platform carrying an arbitrary name.
func UnknownPlatform(name string) Platform {
	return Platform{kind: kindUnknown, name: name}
}

// ParsePlatform resolves a filesystem name (e.g. "MacOSX") to a platform.
// Names that are not known yield an unknown platform carrying the name.
func ParsePlatform(name string) Platform {
	for _, p := range KnownPlatforms() {
		if p.name == name {
			return p
		}
	}
	return UnknownPlatform(name)
}

// PlatformFromDirectoryName derives the platform from a `*.platform` directory
// path such as /Applications/Xcode.app/Contents/Developer/Platforms/MacOSX.platform.
func PlatformFromDirectoryName(path string) (Platform, error) {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return Platform{}, notPlatform(path)
	}

	name, suffix, ok := strings.Cut(base, ".")
	if !ok || suffix != "platform" {
		return Platform{}, notPlatform(path)
	}

	return ParsePlatform(name), nil
}

// FilesystemName is the name used in `*.platform` and `*.sdk` directory names.
func (p Platform) FilesystemName() string {
	return p.name
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return p.name
}

// IsKnown reports whether p is one of the known platforms.
func (p Platform) IsKnown() bool {
	return ParsePlatform(p.name).kind != kindUnknown
}

// IsZero reports whether p is the zero value.
func (p Platform) IsZero() bool {
	return p.kind == kindUnknown && p.name == ""
}

// Equal compares platforms by filesystem name.
func (p Platform) Equal(other Platform) bool {
	return p.FilesystemName() == other.FilesystemName()
}

// DirectoryName returns the platform directory name, e.g. "MacOSX.platform".
func (p Platform) DirectoryName() string {
	return p.name + ".platform"
}

// PathInDeveloperDirectory returns where this platform lives under a developer
// directory. The path is not checked for existence.
func (p Platform) PathInDeveloperDirectory(developerDir string) string {
	return filepath.Join(developerDir, "Platforms", p.DirectoryName())
}

// MarshalText implements encoding.TextMarshaler.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Platform) UnmarshalText(text []byte) error {
	*p = ParsePlatform(string(text))
	return nil
}
