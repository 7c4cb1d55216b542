// Package editor launches the user's text editor on a file.
package editor

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// EnvOverride takes precedence over EDITOR and VISUAL for xcsdk only.
const EnvOverride = "XCSDK_EDITOR"

// Detect returns the editor command line, program first. Variables may carry
// arguments, e.g. EDITOR="code --wait". Fallback chain: $XCSDK_EDITOR →
// $EDITOR → $VISUAL → nano → vi. Empty variables count as unset.
func Detect() []string {
	for _, key := range []string{EnvOverride, "EDITOR", "VISUAL"} {
		if fields := strings.Fields(os.Getenv(key)); len(fields) > 0 {
			return fields
		}
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return []string{"nano"}
	}

	return []string{"vi"}
}

// Command builds the editor process for path, attached to the terminal.
func Command(ctx context.Context, path string) *exec.Cmd {
	argv := append(Detect(), path)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// Open runs the editor on path and waits for it to exit.
func Open(ctx context.Context, path string) error {
	cmd := Command(ctx, path)
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", cmd.Path)
	}
	return nil
}
