package config

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/xcsdk/internal/selection"
	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidPlatform indicates a platform name that cannot name a
	// <Name>.platform directory.
	ErrInvalidPlatform = errors.New("invalid platform")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidBounds indicates a minimum version above the maximum.
	ErrInvalidBounds = errors.New("minimum_version is greater than maximum_version")
)

// Validate checks a Config for validity. It returns every problem found, or
// nil.
//
// Platform names outside the known set are accepted, since new Apple
// platforms appear before this tool learns about them, but a name differing
// from a known platform only by case is reported with a suggestion.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if err := validatePlatform(cfg.Search.Platform); err != nil {
		errs = append(errs, &PlatformError{Platform: cfg.Search.Platform, Err: err})
	}

	minimum, minOK := parseBound(&errs, "search.minimum_version", cfg.Search.MinimumVersion)
	maximum, maxOK := parseBound(&errs, "search.maximum_version", cfg.Search.MaximumVersion)
	if minOK && maxOK && maximum.Less(minimum) {
		errs = append(errs, ErrInvalidBounds)
	}

	if _, err := selection.ParseOrder(cfg.Search.Sort); err != nil {
		errs = append(errs, &FieldError{Field: "search.sort", Value: cfg.Search.Sort, Err: err})
	}

	for _, dir := range cfg.Search.DeveloperDirs {
		if err := validatePath(dir); err != nil {
			errs = append(errs, &PathError{Field: "search.developer_dirs", Path: dir, Err: err})
		}
	}
	for _, dir := range cfg.Search.SDKsDirs {
		if err := validatePath(dir); err != nil {
			errs = append(errs, &PathError{Field: "search.sdks_dirs", Path: dir, Err: err})
		}
	}

	for _, loc := range []struct {
		field string
		path  string
	}{
		{"locations.applications_dir", cfg.Locations.ApplicationsDir},
		{"locations.xcode_app", cfg.Locations.XcodeApp},
		{"locations.command_line_tools", cfg.Locations.CommandLineTools},
	} {
		if loc.path == "" {
			continue
		}
		if err := validatePath(loc.path); err != nil {
			errs = append(errs, &PathError{Field: loc.field, Path: loc.path, Err: err})
		}
	}

	return errs
}

// parseBound parses a version bound, recording a FieldError when it is
// malformed. It reports false for unset or malformed values.
func parseBound(errs *[]error, field, value string) (applesdk.SdkVersion, bool) {
	if value == "" {
		return applesdk.SdkVersion{}, false
	}
	v := applesdk.NewSdkVersion(value)
	if _, err := v.SemanticVersion(); err != nil {
		*errs = append(*errs, &FieldError{Field: field, Value: value, Err: err})
		return applesdk.SdkVersion{}, false
	}
	return v, true
}

// validatePlatform accepts "" (no filter) and any name usable as the stem of
// a .platform directory.
func validatePlatform(name string) error {
	if name == "" {
		return nil
	}
	if strings.ContainsAny(name, "/\\. \t") {
		return ErrInvalidPlatform
	}
	if applesdk.ParsePlatform(name).IsKnown() {
		return nil
	}
	for _, known := range applesdk.KnownPlatforms() {
		if strings.EqualFold(known.FilesystemName(), name) {
			return errors.Wrapf(ErrInvalidPlatform, "did you mean %s", known.FilesystemName())
		}
	}
	return nil
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if path == "" || strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// PlatformError reports an invalid search.platform value.
type PlatformError struct {
	Platform string
	Err      error
}

func (e *PlatformError) Error() string {
	return "search.platform: " + e.Err.Error() + ": " + e.Platform
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// FieldError reports an unparsable scalar value.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Check returns the problems Validate finds joined into one error, or nil.
func Check(cfg *Config) error {
	return errors.Join(Validate(cfg)...)
}
