package applesdk

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Conventional install locations.
const (
	// CommandLineToolsDefaultPath is where the Xcode Command Line Tools install.
	CommandLineToolsDefaultPath = "/Library/Developer/CommandLineTools"

	// XcodeAppDefaultPath is the default Xcode application path.
	XcodeAppDefaultPath = "/Applications/Xcode.app"

	// ApplicationsDefaultPath is the system applications directory.
	ApplicationsDefaultPath = "/Applications"

	// XcodeAppRelativePathDeveloper is the developer directory inside an
	// Xcode application bundle.
	XcodeAppRelativePathDeveloper = "Contents/Developer"

	// DeveloperDirEnv overrides the active developer directory.
	DeveloperDirEnv = "DEVELOPER_DIR"

	defaultXcodeAppName = "Xcode.app"
)

// RunResult is the outcome of a helper process that started successfully.
type RunResult struct {
	Stdout   []byte
	ExitCode int
}

// Runner runs a helper program. It returns an error only when the program
// could not be started; a non-zero exit is reported through RunResult.
type Runner interface {
	Run(name string, args ...string) (RunResult, error)
}

// ExecRunner runs programs with os/exec. Stderr is discarded.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(name string, args ...string) (RunResult, error) {
	cmd := exec.Command(name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return RunResult{Stdout: stdout.Bytes(), ExitCode: exitErr.ExitCode()}, nil
		}
		return RunResult{}, err
	}
	return RunResult{Stdout: stdout.Bytes()}, nil
}

// Environment describes where to look for developer directories and how to
// consult the process environment. The zero value is not usable; start from
// DefaultEnvironment.
type Environment struct {
	// LookupEnv reads environment variables.
	LookupEnv func(key string) (string, bool)

	// Runner invokes xcode-select.
	Runner Runner

	// XcodeAppPath is the default Xcode application bundle.
	XcodeAppPath string

	// ApplicationsDir is scanned for Xcode*.app bundles.
	ApplicationsDir string

	// CommandLineToolsDir is the Command Line Tools install root.
	CommandLineToolsDir string
}

// DefaultEnvironment returns the environment of the current process with the
// conventional macOS locations.
func DefaultEnvironment() Environment {
	return Environment{
		LookupEnv:           os.LookupEnv,
		Runner:              ExecRunner{},
		XcodeAppPath:        XcodeAppDefaultPath,
		ApplicationsDir:     ApplicationsDefaultPath,
		CommandLineToolsDir: CommandLineToolsDefaultPath,
	}
}

// withDefaults fills unset fields from DefaultEnvironment.
func (e Environment) withDefaults() Environment {
	def := DefaultEnvironment()
	if e.LookupEnv == nil {
		e.LookupEnv = def.LookupEnv
	}
	if e.Runner == nil {
		e.Runner = def.Runner
	}
	if e.XcodeAppPath == "" {
		e.XcodeAppPath = def.XcodeAppPath
	}
	if e.ApplicationsDir == "" {
		e.ApplicationsDir = def.ApplicationsDir
	}
	if e.CommandLineToolsDir == "" {
		e.CommandLineToolsDir = def.CommandLineToolsDir
	}
	return e
}

// DeveloperDirectory returns the active developer directory.
//
// DEVELOPER_DIR is used verbatim when set. Otherwise `xcode-select
// --print-path` is consulted. The returned path is not checked for existence.
func (e Environment) DeveloperDirectory() (string, error) {
	e = e.withDefaults()

	if dir, ok := e.LookupEnv(DeveloperDirEnv); ok {
		return dir, nil
	}

	res, err := e.Runner.Run("xcode-select", "--print-path")
	if err != nil {
		return "", withKind(ErrXcodeSelectRun, err)
	}
	if res.ExitCode != 0 {
		return "", errors.Wrapf(ErrXcodeSelectStatus, "exit status %d", res.ExitCode)
	}

	return strings.TrimSpace(string(res.Stdout)), nil
}

// DefaultXcodeDeveloperDirectory returns the developer directory of the
// default Xcode application if it exists.
func (e Environment) DefaultXcodeDeveloperDirectory() (string, bool) {
	e = e.withDefaults()
	return existingPath(filepath.Join(e.XcodeAppPath, XcodeAppRelativePathDeveloper))
}

// CommandLineToolsSDKsDirectory returns the SDKs directory of the Command
// Line Tools if it exists.
func (e Environment) CommandLineToolsSDKsDirectory() (string, bool) {
	e = e.withDefaults()
	return existingPath(filepath.Join(e.CommandLineToolsDir, "SDKs"))
}

// SystemXcodeApplications returns the Xcode applications in ApplicationsDir.
func (e Environment) SystemXcodeApplications() ([]string, error) {
	e = e.withDefaults()
	return FindXcodeApps(e.ApplicationsDir)
}

// SystemXcodeDeveloperDirectories returns the developer directories of every
// Xcode application in ApplicationsDir, dropping those without one.
func (e Environment) SystemXcodeDeveloperDirectories() ([]string, error) {
	apps, err := e.SystemXcodeApplications()
	if err != nil {
		return nil, err
	}

	res := make([]string, 0, len(apps))
	for _, app := range apps {
		if dir, ok := existingPath(filepath.Join(app, XcodeAppRelativePathDeveloper)); ok {
			res = append(res, dir)
		}
	}
	return res, nil
}

// FindXcodeApps returns the `Xcode*.app` entries of an applications directory.
//
// No attempt is made to verify the entries are working Xcode installs. Results
// are sorted by path except that Xcode.app always comes first. A missing
// directory yields an empty result.
func FindXcodeApps(applicationsDir string) ([]string, error) {
	entries, err := readDirIfExists(applicationsDir)
	if err != nil {
		return nil, err
	}

	var res []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "Xcode") && strings.HasSuffix(name, ".app") {
			res = append(res, filepath.Join(applicationsDir, name))
		}
	}

	slices.SortFunc(res, compareXcodeApps)

	return res, nil
}

func compareXcodeApps(a, b string) int {
	aDefault := filepath.Base(a) == defaultXcodeAppName
	bDefault := filepath.Base(b) == defaultXcodeAppName
	switch {
	case aDefault && !bDefault:
		return -1
	case bDefault && !aDefault:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func existingPath(path string) (string, bool) {
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// DefaultDeveloperDirectory is Environment.DeveloperDirectory for the current
// process.
func DefaultDeveloperDirectory() (string, error) {
	return DefaultEnvironment().DeveloperDirectory()
}

// DefaultXcodeDeveloperDirectory is Environment.DefaultXcodeDeveloperDirectory
// for the conventional locations.
func DefaultXcodeDeveloperDirectory() (string, bool) {
	return DefaultEnvironment().DefaultXcodeDeveloperDirectory()
}

// CommandLineToolsSDKsDirectory is Environment.CommandLineToolsSDKsDirectory
// for the conventional locations.
func CommandLineToolsSDKsDirectory() (string, bool) {
	return DefaultEnvironment().CommandLineToolsSDKsDirectory()
}

// FindSystemXcodeApplications finds Xcode applications under /Applications.
func FindSystemXcodeApplications() ([]string, error) {
	return DefaultEnvironment().SystemXcodeApplications()
}

// FindSystemXcodeDeveloperDirectories finds developer directories of Xcode
// applications under /Applications.
func FindSystemXcodeDeveloperDirectories() ([]string, error) {
	return DefaultEnvironment().SystemXcodeDeveloperDirectories()
}
