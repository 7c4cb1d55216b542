package applesdk

import (
	"os"
	"path/filepath"
	"testing"
)

// mkdirs creates the directory formed by joining parts and returns it.
func mkdirs(t *testing.T, parts ...string) string {
	t.Helper()
	p := filepath.Join(parts...)
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatalf("MkdirAll(%q): %v", p, err)
	}
	return p
}

// writeFile writes content to the file formed by joining parts.
func writeFile(t *testing.T, content string, parts ...string) string {
	t.Helper()
	p := filepath.Join(parts...)
	mkdirs(t, filepath.Dir(p))
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): %v", p, err)
	}
	return p
}

// makeDeveloperDir builds a fake developer directory under root. platforms
// maps a platform name (without .platform) to the SDK directory names to
// create under its Developer/SDKs directory.
func makeDeveloperDir(t *testing.T, root string, platforms map[string][]string) string {
	t.Helper()
	for platform, sdks := range platforms {
		sdkDir := mkdirs(t, root, "Platforms", platform+".platform", "Developer", "SDKs")
		for _, sdk := range sdks {
			mkdirs(t, sdkDir, sdk)
		}
	}
	mkdirs(t, root, "Platforms")
	return root
}

// noEnv is a LookupEnv that never finds anything.
func noEnv(string) (string, bool) {
	return "", false
}

// hermeticEnvironment returns an environment rooted in a temp dir with no
// DEVELOPER_DIR and an xcode-select that fails to start.
func hermeticEnvironment(t *testing.T) Environment {
	t.Helper()
	root := t.TempDir()
	return Environment{
		LookupEnv:           noEnv,
		Runner:              failingRunner{},
		XcodeAppPath:        filepath.Join(root, "Applications", "Xcode.app"),
		ApplicationsDir:     filepath.Join(root, "Applications"),
		CommandLineToolsDir: filepath.Join(root, "CommandLineTools"),
	}
}

type failingRunner struct{}

func (failingRunner) Run(string, ...string) (RunResult, error) {
	return RunResult{}, os.ErrNotExist
}

// sdkPaths returns the paths of sdks, in order.
func sdkPaths[T SDK](sdks []T) []string {
	res := make([]string, len(sdks))
	for i, sdk := range sdks {
		res[i] = sdk.Path()
	}
	return res
}
