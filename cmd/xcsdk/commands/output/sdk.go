package output

import (
	"io"
	"path/filepath"

	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

// SDK is the rendered form of an applesdk.SDK.
type SDK struct {
	Path          string `json:"path" yaml:"path" toml:"path"`
	Platform      string `json:"platform" yaml:"platform" toml:"platform"`
	Version       string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Symlink       bool   `json:"symlink" yaml:"symlink" toml:"symlink"`
	CanonicalName string `json:"canonical_name,omitempty" yaml:"canonical_name,omitempty" toml:"canonical_name,omitempty"`
}

// Root is the rendered form of an applesdk.SearchRoot.
type Root struct {
	Kind string `json:"kind" yaml:"kind" toml:"kind"`
	Path string `json:"path" yaml:"path" toml:"path"`
}

// SDKList is the document written for SDK listings. Roots is filled only
// when the search is explained.
type SDKList struct {
	Roots []Root `json:"roots,omitempty" yaml:"roots,omitempty" toml:"roots,omitempty"`
	SDKs  []SDK  `json:"sdks" yaml:"sdks" toml:"sdks"`
}

// FromSDK converts sdk. A canonical name is included when sdk knows one.
func FromSDK(sdk applesdk.SDK) SDK {
	rec := SDK{
		Path:     sdk.Path(),
		Platform: sdk.Platform().FilesystemName(),
		Symlink:  sdk.IsSymlink(),
	}
	if v, ok := sdk.Version(); ok {
		rec.Version = v.String()
	}
	if named, ok := sdk.(interface{ CanonicalName() string }); ok {
		rec.CanonicalName = named.CanonicalName()
	}
	return rec
}

// FromSDKs converts sdks, preserving order. The result is never nil.
func FromSDKs[T applesdk.SDK](sdks []T) []SDK {
	res := make([]SDK, 0, len(sdks))
	for _, sdk := range sdks {
		res = append(res, FromSDK(sdk))
	}
	return res
}

// FromRoots converts search roots.
func FromRoots(roots []applesdk.SearchRoot) []Root {
	res := make([]Root, 0, len(roots))
	for _, r := range roots {
		res = append(res, Root{Kind: r.Kind.String(), Path: r.Path})
	}
	return res
}

// WriteSDKTable writes sdks as a PLATFORM / VERSION / PATH table. Symlinked
// entries are dimmed.
func WriteSDKTable(w io.Writer, sdks []SDK) error {
	t := NewTable(w, "PLATFORM", "VERSION", "PATH")
	for _, s := range sdks {
		path := s.Path
		if s.Symlink {
			path = Dim(path + " -> " + filepath.Base(resolve(s.Path)))
		}
		t.Row(s.Platform, orDash(s.Version), path)
	}
	return t.Flush()
}

// WriteRoots writes the resolved search roots, one per line.
func WriteRoots(w io.Writer, roots []Root) error {
	t := NewTable(w, "ROOT", "PATH")
	for _, r := range roots {
		t.Row(r.Kind, r.Path)
	}
	return t.Flush()
}

func resolve(path string) string {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return target
}
