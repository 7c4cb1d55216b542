package applesdk

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"howett.net/plist"

	"github.com/thoreinstein/xcsdk/pkg/fileutil"
)

// Settings file names looked up inside an SDK directory, in order.
const (
	SettingsJSONFile  = "SDKSettings.json"
	SettingsPlistFile = "SDKSettings.plist"
)

// SDKSettings is the subset of SDKSettings.json / SDKSettings.plist we decode.
type SDKSettings struct {
	CanonicalName           string                     `json:"CanonicalName" plist:"CanonicalName"`
	DisplayName             string                     `json:"DisplayName" plist:"DisplayName"`
	Version                 string                     `json:"Version" plist:"Version"`
	MaximumDeploymentTarget string                     `json:"MaximumDeploymentTarget,omitempty" plist:"MaximumDeploymentTarget,omitempty"`
	DefaultDeploymentTarget string                     `json:"DefaultDeploymentTarget,omitempty" plist:"DefaultDeploymentTarget,omitempty"`
	DefaultProperties       map[string]any             `json:"DefaultProperties,omitempty" plist:"DefaultProperties,omitempty"`
	SupportedTargets        map[string]SupportedTarget `json:"SupportedTargets,omitempty" plist:"SupportedTargets,omitempty"`
}

// SupportedTarget describes one target an SDK can build for.
type SupportedTarget struct {
	Archs                       []string `json:"Archs,omitempty" plist:"Archs,omitempty"`
	DefaultDeploymentTarget     string   `json:"DefaultDeploymentTarget,omitempty" plist:"DefaultDeploymentTarget,omitempty"`
	MinimumDeploymentTarget     string   `json:"MinimumDeploymentTarget,omitempty" plist:"MinimumDeploymentTarget,omitempty"`
	MaximumDeploymentTarget     string   `json:"MaximumDeploymentTarget,omitempty" plist:"MaximumDeploymentTarget,omitempty"`
	DeploymentTargetSettingName string   `json:"DeploymentTargetSettingName,omitempty" plist:"DeploymentTargetSettingName,omitempty"`
	PlatformFamilyName          string   `json:"PlatformFamilyName,omitempty" plist:"PlatformFamilyName,omitempty"`
	ValidDeploymentTargets      []string `json:"ValidDeploymentTargets,omitempty" plist:"ValidDeploymentTargets,omitempty"`
}

// DefaultProperty returns a string value from DefaultProperties.
func (s *SDKSettings) DefaultProperty(key string) (string, bool) {
	v, ok := s.DefaultProperties[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// ParsedSDK is an SDK whose metadata was read from its settings file.
type ParsedSDK struct {
	path      string
	isSymlink bool
	platform  Platform
	version   SdkVersion
	settings  SDKSettings
}

var _ SDK = (*ParsedSDK)(nil)

// LoadParsedSDK constructs a ParsedSDK. It is a Loader.
//
// The directory must be named like an SDK and contain SDKSettings.json or
// SDKSettings.plist; otherwise ErrPathNotSDK is returned. A settings file that
// cannot be decoded yields ErrSettingsParse.
//
// The platform comes from the settings (PLATFORM_NAME, then the CanonicalName
// prefix) when they name a known platform, else from the directory name.
func LoadParsedSDK(path string) (*ParsedSDK, error) {
	sdkPath, err := ParseSdkPath(path)
	if err != nil {
		return nil, err
	}

	isSymlink, err := checkSDKDirectory(path)
	if err != nil {
		return nil, err
	}

	settings, err := ReadSDKSettings(path)
	if err != nil {
		return nil, err
	}

	if settings.Version == "" {
		return nil, errors.Wrapf(ErrSettingsParse, "%s: missing Version", path)
	}

	platform := sdkPath.Platform
	if p, ok := platformFromSettings(settings); ok {
		platform = p
	}

	return &ParsedSDK{
		path:      path,
		isSymlink: isSymlink,
		platform:  platform,
		version:   NewSdkVersion(settings.Version),
		settings:  *settings,
	}, nil
}

// platformFromSettings matches the platform named by the settings against the
// known platforms, ignoring case.
func platformFromSettings(settings *SDKSettings) (Platform, bool) {
	var names []string
	if name, ok := settings.DefaultProperty("PLATFORM_NAME"); ok {
		names = append(names, name)
	}
	if canonical := settings.CanonicalName; canonical != "" {
		if i := strings.IndexFunc(canonical, isDecimalDigit); i >= 0 {
			canonical = canonical[:i]
		}
		names = append(names, canonical)
	}

	for _, name := range names {
		for _, p := range KnownPlatforms() {
			if strings.EqualFold(p.FilesystemName(), name) {
				return p, true
			}
		}
	}
	return Platform{}, false
}

// ReadSDKSettings decodes the settings file of the SDK at dir, preferring the
// JSON form.
func ReadSDKSettings(dir string) (*SDKSettings, error) {
	jsonPath := filepath.Join(dir, SettingsJSONFile)
	data, err := fileutil.ReadFileWithLimit(jsonPath)
	if err == nil {
		var settings SDKSettings
		if err := json.Unmarshal(data, &settings); err != nil {
			return nil, withKind(ErrSettingsParse, errors.Wrapf(err, "decoding %s", jsonPath))
		}
		return &settings, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, "reading %s", jsonPath)
	}

	plistPath := filepath.Join(dir, SettingsPlistFile)
	data, err = fileutil.ReadFileWithLimit(plistPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notSDK(dir)
		}
		return nil, errors.Wrapf(err, "reading %s", plistPath)
	}

	var settings SDKSettings
	if err := plist.NewDecoder(bytes.NewReader(data)).Decode(&settings); err != nil {
		return nil, withKind(ErrSettingsParse, errors.Wrapf(err, "decoding %s", plistPath))
	}
	return &settings, nil
}

// Path implements SDK.
func (s *ParsedSDK) Path() string {
	return s.path
}

// IsSymlink implements SDK.
func (s *ParsedSDK) IsSymlink() bool {
	return s.isSymlink
}

// Platform implements SDK.
func (s *ParsedSDK) Platform() Platform {
	return s.platform
}

// Version implements SDK. It always reports a version.
func (s *ParsedSDK) Version() (SdkVersion, bool) {
	return s.version, true
}

// CanonicalName returns the SDK's canonical name, e.g. "macosx14.2".
func (s *ParsedSDK) CanonicalName() string {
	return s.settings.CanonicalName
}

// Settings returns the decoded settings.
func (s *ParsedSDK) Settings() SDKSettings {
	return s.settings
}

// SupportedTargets returns the targets the SDK declares, keyed by target name.
func (s *ParsedSDK) SupportedTargets() map[string]SupportedTarget {
	return s.settings.SupportedTargets
}
