package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/xcsdk/internal/config"
	"github.com/thoreinstein/xcsdk/internal/selection"
	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

// Check categories.
const (
	CategoryToolchain = "toolchain"
	CategorySDK       = "sdk"
	CategoryConfig    = "config"
)

// DefaultChecks returns the checks `xcsdk doctor` runs, in order.
func DefaultChecks(cfg *config.Config, configFile string, loadErr error) []Check {
	env := applesdk.DefaultEnvironment()
	search := applesdk.NewSdkSearch()
	if cfg != nil {
		if e, err := cfg.Environment(); err == nil {
			env = e
		}
		if s, err := cfg.Search(); err == nil {
			search = s
		}
	}

	return []Check{
		NewConfigCheck(cfg, configFile, loadErr),
		NewDeveloperDirCheck(env),
		NewCommandLineToolsCheck(env),
		NewXcodeAppsCheck(env),
		NewSDKDiscoveryCheck(search),
	}
}

// DeveloperDirCheck verifies the active developer directory resolves and
// exists.
type DeveloperDirCheck struct {
	env applesdk.Environment
}

var _ Check = (*DeveloperDirCheck)(nil)

// NewDeveloperDirCheck creates a developer directory check for env.
func NewDeveloperDirCheck(env applesdk.Environment) *DeveloperDirCheck {
	return &DeveloperDirCheck{env: env}
}

// Name returns the unique identifier for this check.
func (c *DeveloperDirCheck) Name() string {
	return "developer-directory"
}

// Category returns the grouping for this check.
func (c *DeveloperDirCheck) Category() string {
	return CategoryToolchain
}

// Run resolves the developer directory and lists its platforms.
func (c *DeveloperDirCheck) Run() *CheckResult {
	source := "xcode-select"
	if c.env.LookupEnv != nil {
		if _, ok := c.env.LookupEnv(applesdk.DeveloperDirEnv); ok {
			source = applesdk.DeveloperDirEnv
		}
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"source": source},
	}

	dir, err := c.env.DeveloperDirectory()
	switch {
	case errors.Is(err, applesdk.ErrXcodeSelectRun):
		result.Status = SeverityError
		result.Message = "xcode-select could not be run"
		result.FixHint = "install the Command Line Tools: xcode-select --install"
		return result
	case errors.Is(err, applesdk.ErrXcodeSelectStatus):
		result.Status = SeverityError
		result.Message = "xcode-select did not report a developer directory"
		result.FixHint = "select one: sudo xcode-select --switch /Applications/Xcode.app"
		return result
	case err != nil:
		result.Status = SeverityError
		result.Message = err.Error()
		return result
	}
	result.Details["path"] = dir

	if _, err := os.Stat(dir); err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("developer directory %s does not exist", dir)
		if source == applesdk.DeveloperDirEnv {
			result.FixHint = "unset DEVELOPER_DIR or point it at an installed Xcode"
		} else {
			result.FixHint = "sudo xcode-select --reset"
		}
		return result
	}

	platforms, err := applesdk.FindPlatformDirectories(dir)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot list platforms: %v", err)
		return result
	}

	names := make([]string, 0, len(platforms))
	for _, p := range platforms {
		names = append(names, p.Platform().FilesystemName())
	}
	result.Details["platforms"] = names

	if len(platforms) == 0 {
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("%s has no platforms (Command Line Tools selected)", dir)
		result.FixHint = "SDKs are found with --command-line-tools; select Xcode for device SDKs"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%s (%d platforms, from %s)", dir, len(platforms), source)
	return result
}

// CommandLineToolsCheck reports the Command Line Tools installation.
type CommandLineToolsCheck struct {
	env applesdk.Environment
}

var _ Check = (*CommandLineToolsCheck)(nil)

// NewCommandLineToolsCheck creates a Command Line Tools check for env.
func NewCommandLineToolsCheck(env applesdk.Environment) *CommandLineToolsCheck {
	return &CommandLineToolsCheck{env: env}
}

// Name returns the unique identifier for this check.
func (c *CommandLineToolsCheck) Name() string {
	return "command-line-tools"
}

// Category returns the grouping for this check.
func (c *CommandLineToolsCheck) Category() string {
	return CategoryToolchain
}

// Run lists the SDKs the Command Line Tools provide.
func (c *CommandLineToolsCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	sdks, ok, err := applesdk.FindCommandLineToolsSDKs(c.env, applesdk.LoadUnparsedSDK)
	switch {
	case !ok:
		result.Status = SeverityInfo
		result.Message = "Command Line Tools not installed"
		result.FixHint = "xcode-select --install"
		return result
	case err != nil:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot list Command Line Tools SDKs: %v", err)
		return result
	}

	result.Details = map[string]any{"sdks": sdkNames(sdks)}
	if len(sdks) == 0 {
		result.Status = SeverityWarning
		result.Message = "Command Line Tools installed without SDKs"
		result.FixHint = "reinstall: sudo rm -rf /Library/Developer/CommandLineTools && xcode-select --install"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d SDK(s) installed", len(sdks))
	return result
}

// XcodeAppsCheck lists installed Xcode applications.
type XcodeAppsCheck struct {
	env applesdk.Environment
}

var _ Check = (*XcodeAppsCheck)(nil)

// NewXcodeAppsCheck creates an Xcode applications check for env.
func NewXcodeAppsCheck(env applesdk.Environment) *XcodeAppsCheck {
	return &XcodeAppsCheck{env: env}
}

// Name returns the unique identifier for this check.
func (c *XcodeAppsCheck) Name() string {
	return "xcode-applications"
}

// Category returns the grouping for this check.
func (c *XcodeAppsCheck) Category() string {
	return CategoryToolchain
}

// Run finds Xcode*.app bundles and flags those without a developer directory.
func (c *XcodeAppsCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	apps, err := c.env.SystemXcodeApplications()
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot list applications: %v", err)
		return result
	}

	var incomplete []string
	for _, app := range apps {
		if _, err := os.Stat(filepath.Join(app, applesdk.XcodeAppRelativePathDeveloper)); err != nil {
			incomplete = append(incomplete, app)
		}
	}
	result.Details = map[string]any{"applications": apps}

	switch {
	case len(apps) == 0:
		result.Status = SeverityInfo
		result.Message = "no Xcode applications installed"
	case len(incomplete) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d of %d Xcode application(s) have no developer directory", len(incomplete), len(apps))
		result.Details["incomplete"] = incomplete
		result.FixHint = "reinstall or remove the listed applications"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d Xcode application(s) installed", len(apps))
	}
	return result
}

// SDKDiscoveryCheck runs the configured search and verifies each SDK's
// settings file decodes.
type SDKDiscoveryCheck struct {
	search applesdk.SdkSearch
}

var _ Check = (*SDKDiscoveryCheck)(nil)

// NewSDKDiscoveryCheck creates a discovery check for search.
func NewSDKDiscoveryCheck(search applesdk.SdkSearch) *SDKDiscoveryCheck {
	return &SDKDiscoveryCheck{search: search}
}

// Name returns the unique identifier for this check.
func (c *SDKDiscoveryCheck) Name() string {
	return "sdk-discovery"
}

// Category returns the grouping for this check.
func (c *SDKDiscoveryCheck) Category() string {
	return CategorySDK
}

// Run searches for SDKs and loads their settings.
func (c *SDKDiscoveryCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	sdks, roots, err := applesdk.SearchWithRoots(c.search, applesdk.LoadUnparsedSDK)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("search failed: %v", err)
		return result
	}

	rootPaths := make([]string, len(roots))
	for i, root := range roots {
		rootPaths[i] = root.Path
	}
	result.Details = map[string]any{
		"roots": rootPaths,
		"sdks":  sdkNames(sdks),
	}

	if len(sdks) == 0 {
		result.Status = SeverityError
		result.Message = "no SDKs found"
		result.FixHint = "widen the search: xcsdk search --system-xcodes --command-line-tools --explain"
		return result
	}

	var damaged, noSettings []string
	for _, sdk := range selection.WithoutSymlinks(sdks) {
		_, err := applesdk.LoadParsedSDK(sdk.Path())
		switch {
		case errors.Is(err, applesdk.ErrSettingsParse):
			damaged = append(damaged, sdk.Path())
		case errors.Is(err, applesdk.ErrPathNotSDK):
			noSettings = append(noSettings, sdk.Path())
		}
	}
	if len(noSettings) > 0 {
		result.Details["without_settings"] = noSettings
	}

	if len(damaged) > 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d SDK(s) have unreadable settings", len(damaged))
		result.Details["damaged"] = damaged
		result.FixHint = "reinstall the Xcode or Command Line Tools that provide them"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d SDK(s) found", len(sdks))
	if best, ok := selection.Best(sdks); ok {
		if v, ok := best.Version(); ok {
			result.Message += fmt.Sprintf(", newest %s %s", best.Platform(), v)
		}
	}
	return result
}

// ConfigCheck validates the loaded configuration.
type ConfigCheck struct {
	cfg     *config.Config
	file    string
	loadErr error
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check over cfg as loaded from file. loadErr is
// the error Load returned, if any.
func NewConfigCheck(cfg *config.Config, file string, loadErr error) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, file: file, loadErr: loadErr}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return CategoryConfig
}

// Run reports load and validation failures.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	if c.file != "" {
		result.Details = map[string]any{"file": c.file}
	}

	if c.loadErr != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("config could not be loaded: %v", c.loadErr)
		result.FixHint = "fix the file or regenerate it with: xcsdk config init --force"
		return result
	}

	if errs := config.Validate(c.cfg); len(errs) > 0 {
		problems := make([]string, len(errs))
		for i, err := range errs {
			problems[i] = err.Error()
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d configuration problem(s)", len(errs))
		if result.Details == nil {
			result.Details = map[string]any{}
		}
		result.Details["problems"] = problems
		result.FixHint = "edit the config file: xcsdk config path"
		return result
	}

	result.Status = SeverityPass
	if c.file == "" {
		result.Message = "no config file, using defaults"
	} else {
		result.Message = c.file + " is valid"
	}
	return result
}

func sdkNames[T applesdk.SDK](sdks []T) []string {
	names := make([]string, len(sdks))
	for i, sdk := range sdks {
		names[i] = filepath.Base(sdk.Path())
	}
	return names
}
