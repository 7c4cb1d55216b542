package applesdk

import (
	"log/slog"
	"path/filepath"
	"slices"
)

// RootKind says how a search root is expanded into SDK directories.
type RootKind int

const (
	// RootDeveloper is a developer directory whose Platforms/*.platform
	// children hold Developer/SDKs directories.
	RootDeveloper RootKind = iota

	// RootSDKs is a directory holding *.sdk entries directly.
	RootSDKs
)

// String implements fmt.Stringer.
func (k RootKind) String() string {
	switch k {
	case RootDeveloper:
		return "developer"
	case RootSDKs:
		return "sdks"
	default:
		return "unknown"
	}
}

// SearchRoot is one candidate location considered by a search.
type SearchRoot struct {
	Kind RootKind
	Path string
}

// sdkDirs expands the root into directories that directly contain SDKs.
func (r SearchRoot) sdkDirs(platform *Platform) ([]string, error) {
	if r.Kind == RootSDKs {
		return []string{filepath.Clean(r.Path)}, nil
	}

	platforms, err := FindPlatformDirectories(r.Path)
	if err != nil {
		return nil, err
	}

	res := make([]string, 0, len(platforms))
	for _, dir := range platforms {
		if platform != nil && !dir.Platform().Equal(*platform) {
			continue
		}
		res = append(res, dir.SDKsPath())
	}
	return res, nil
}

// SdkSearch describes a search for Apple SDKs.
//
// Build one with NewSdkSearch and the chained setters, then run it with
// Search. Roots are searched in this order, each only if enabled:
//
//  1. the active developer directory (DeveloperDir)
//  2. the Command Line Tools SDKs directory (CommandLineTools)
//  3. the default Xcode application (DefaultSystemXcode)
//  4. every Xcode application in /Applications (SystemXcodes)
//  5. AdditionalDeveloperDir entries, in the order added
//  6. AdditionalSDKsDir entries, in the order added
//
// Setters return a modified copy; an SdkSearch is never mutated in place.
type SdkSearch struct {
	searchDeveloperDir       bool
	searchCommandLineTools   bool
	searchDefaultSystemXcode bool
	searchSystemXcodes       bool
	additionalDeveloperDirs  []string
	additionalSDKsDirs       []string
	platform                 *Platform
	minimumVersion           *SdkVersion
	maximumVersion           *SdkVersion
	env                      Environment
	logger                   *slog.Logger
}

// NewSdkSearch returns a search of the active developer directory only.
func NewSdkSearch() SdkSearch {
	return SdkSearch{
		searchDeveloperDir: true,
		env:                DefaultEnvironment(),
		logger:             slog.New(slog.DiscardHandler),
	}
}

// DeveloperDir sets whether to search the active developer directory, as
// resolved from DEVELOPER_DIR or xcode-select. Default true.
func (s SdkSearch) DeveloperDir(v bool) SdkSearch {
	s.searchDeveloperDir = v
	return s
}

// CommandLineTools sets whether to search the Command Line Tools SDKs
// directory. Default false.
func (s SdkSearch) CommandLineTools(v bool) SdkSearch {
	s.searchCommandLineTools = v
	return s
}

// DefaultSystemXcode sets whether to search the default Xcode application.
// Default false.
func (s SdkSearch) DefaultSystemXcode(v bool) SdkSearch {
	s.searchDefaultSystemXcode = v
	return s
}

// SystemXcodes sets whether to search every installed Xcode application.
// CI machines and developers running betas commonly have several.
// Default false.
func (s SdkSearch) SystemXcodes(v bool) SdkSearch {
	s.searchSystemXcodes = v
	return s
}

// AdditionalDeveloperDir registers another developer directory to search.
func (s SdkSearch) AdditionalDeveloperDir(path string) SdkSearch {
	s.additionalDeveloperDirs = append(slices.Clone(s.additionalDeveloperDirs), path)
	return s
}

// AdditionalSDKsDir registers a directory holding *.sdk entries to search.
func (s SdkSearch) AdditionalSDKsDir(path string) SdkSearch {
	s.additionalSDKsDirs = append(slices.Clone(s.additionalSDKsDirs), path)
	return s
}

// Platform restricts developer directory searches to one platform. Without
// it, SDKs for all platforms are returned.
//
// SDKs directories (Command Line Tools, AdditionalSDKsDir) are not filtered.
func (s SdkSearch) Platform(p Platform) SdkSearch {
	s.platform = &p
	return s
}

// MinimumVersion imposes a >= filter. SDKs without a known version are
// excluded.
func (s SdkSearch) MinimumVersion(v SdkVersion) SdkSearch {
	s.minimumVersion = &v
	return s
}

// MaximumVersion imposes a <= filter. SDKs without a known version are
// excluded.
func (s SdkSearch) MaximumVersion(v SdkVersion) SdkSearch {
	s.maximumVersion = &v
	return s
}

// WithEnvironment replaces the environment used to locate roots.
func (s SdkSearch) WithEnvironment(env Environment) SdkSearch {
	s.env = env
	return s
}

// WithLogger sets the logger that receives debug output about roots and
// skipped locations.
func (s SdkSearch) WithLogger(logger *slog.Logger) SdkSearch {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Roots resolves the configured roots in search order, dropping duplicates.
// Paths are cleaned, so "/x/SDKs/" and "/x/SDKs" are the same root.
// Locators that fail or find nothing contribute no roots.
func (s SdkSearch) Roots() []SearchRoot {
	log := s.log()
	var roots []SearchRoot

	add := func(root SearchRoot) {
		if root.Path != "" {
			root.Path = filepath.Clean(root.Path)
		}
		if slices.Contains(roots, root) {
			log.Debug("skipping duplicate search root", "kind", root.Kind, "path", root.Path)
			return
		}
		roots = append(roots, root)
	}

	if s.searchDeveloperDir {
		if dir, err := s.env.DeveloperDirectory(); err == nil {
			add(SearchRoot{Kind: RootDeveloper, Path: dir})
		} else {
			log.Debug("no active developer directory", "error", err)
		}
	}

	if s.searchCommandLineTools {
		if dir, ok := s.env.CommandLineToolsSDKsDirectory(); ok {
			add(SearchRoot{Kind: RootSDKs, Path: dir})
		} else {
			log.Debug("command line tools not installed")
		}
	}

	if s.searchDefaultSystemXcode {
		if dir, ok := s.env.DefaultXcodeDeveloperDirectory(); ok {
			add(SearchRoot{Kind: RootDeveloper, Path: dir})
		} else {
			log.Debug("default Xcode application not installed")
		}
	}

	if s.searchSystemXcodes {
		if dirs, err := s.env.SystemXcodeDeveloperDirectories(); err == nil {
			for _, dir := range dirs {
				add(SearchRoot{Kind: RootDeveloper, Path: dir})
			}
		} else {
			log.Debug("unable to list Xcode applications", "error", err)
		}
	}

	for _, dir := range s.additionalDeveloperDirs {
		add(SearchRoot{Kind: RootDeveloper, Path: dir})
	}

	for _, dir := range s.additionalSDKsDirs {
		add(SearchRoot{Kind: RootSDKs, Path: dir})
	}

	return roots
}

// Search runs the search, returning matching SDKs in search order: by root,
// then by directory listing within a root. Results are not sorted by version;
// callers wanting a preferred SDK must sort them.
//
// Locations that do not exist are treated as empty. Other I/O failures and
// malformed version bounds abort the search.
func Search[T SDK](s SdkSearch, load Loader[T]) ([]T, error) {
	sdks, _, err := SearchWithRoots(s, load)
	return sdks, err
}

// SearchWithRoots is Search, also returning the roots it resolved. Callers
// reporting roots should use these rather than call Roots again, which may
// consult xcode-select a second time.
func SearchWithRoots[T SDK](s SdkSearch, load Loader[T]) ([]T, []SearchRoot, error) {
	if err := s.validateBounds(); err != nil {
		return nil, nil, err
	}

	log := s.log()
	roots := s.Roots()
	searched := make(map[string]struct{})
	var res []T

	for _, root := range roots {
		dirs, err := root.sdkDirs(s.platform)
		if err != nil {
			return nil, nil, err
		}

		for _, dir := range dirs {
			if _, ok := searched[dir]; ok {
				log.Debug("skipping already searched SDKs directory", "path", dir)
				continue
			}
			searched[dir] = struct{}{}

			log.Debug("searching SDKs directory", "path", dir, "root", root.Path)

			sdks, err := FindSDKsInDirectory(dir, load)
			if err != nil {
				return nil, nil, err
			}

			for _, sdk := range sdks {
				if s.matches(sdk) {
					res = append(res, sdk)
				}
			}
		}
	}

	return res, roots, nil
}

// matches applies the version bounds.
func (s SdkSearch) matches(sdk SDK) bool {
	if s.minimumVersion == nil && s.maximumVersion == nil {
		return true
	}

	version, ok := sdk.Version()
	if !ok {
		return false
	}

	if s.minimumVersion != nil && version.Less(*s.minimumVersion) {
		return false
	}
	if s.maximumVersion != nil && s.maximumVersion.Less(version) {
		return false
	}

	return true
}

func (s SdkSearch) validateBounds() error {
	for _, bound := range []*SdkVersion{s.minimumVersion, s.maximumVersion} {
		if bound == nil {
			continue
		}
		if _, err := bound.SemanticVersion(); err != nil {
			return err
		}
	}
	return nil
}

func (s SdkSearch) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}
