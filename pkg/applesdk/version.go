package applesdk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// SdkVersion is an SDK version string such as "12.3".
//
// The value is not validated at construction; any string can be stored. For
// ordering it is interpreted as 1-3 dot separated integers in the range
// 0-255. A string that does not fit that shape orders as 0.0.0, so it sorts
// below every well-formed version and level with every other malformed one.
// Equal still compares the raw strings.
type SdkVersion struct {
	value string
}

// NewSdkVersion wraps s without validating it.
func NewSdkVersion(s string) SdkVersion {
	return SdkVersion{value: s}
}

// String returns the raw version string.
func (v SdkVersion) String() string {
	return v.value
}

// Normalized parses the version into its three components, padding missing
// minor and patch components with zero.
func (v SdkVersion) Normalized() (major, minor, patch uint8, err error) {
	parts := strings.Split(v.value, ".")
	if len(parts) < 1 || len(parts) > 3 {
		return 0, 0, 0, errors.Wrapf(ErrVersionParse, "%s", v.value)
	}

	var ints [3]uint8
	for i, part := range parts {
		// One leading '+' is allowed, as in "+5".
		n, perr := strconv.ParseUint(strings.TrimPrefix(part, "+"), 10, 8)
		if perr != nil {
			return 0, 0, 0, errors.Wrapf(ErrVersionParse, "%s", v.value)
		}
		ints[i] = uint8(n)
	}

	return ints[0], ints[1], ints[2], nil
}

// SemanticVersion returns the version in X.Y.Z form.
// Unlike Compare, malformed input is reported instead of treated as zero.
func (v SdkVersion) SemanticVersion() (string, error) {
	major, minor, patch, err := v.Normalized()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d.%d", major, minor, patch), nil
}

// Semver returns the normalized version as a semver value.
func (v SdkVersion) Semver() (*semver.Version, error) {
	major, minor, patch, err := v.Normalized()
	if err != nil {
		return nil, err
	}
	return semver.New(uint64(major), uint64(minor), uint64(patch), "", ""), nil
}

// Compare returns -1, 0 or +1 depending on whether v orders before, level
// with, or after other. Malformed versions compare as 0.0.0.
func (v SdkVersion) Compare(other SdkVersion) int {
	a := v.orderKey()
	b := other.orderKey()
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Less reports whether v orders strictly before other.
func (v SdkVersion) Less(other SdkVersion) bool {
	return v.Compare(other) < 0
}

// Equal reports whether both versions hold the same raw string.
func (v SdkVersion) Equal(other SdkVersion) bool {
	return v.value == other.value
}

// MarshalText implements encoding.TextMarshaler.
func (v SdkVersion) MarshalText() ([]byte, error) {
	return []byte(v.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails; use
// SemanticVersion to validate.
func (v *SdkVersion) UnmarshalText(text []byte) error {
	v.value = string(text)
	return nil
}

func (v SdkVersion) orderKey() [3]uint8 {
	major, minor, patch, err := v.Normalized()
	if err != nil {
		return [3]uint8{}
	}
	return [3]uint8{major, minor, patch}
}
