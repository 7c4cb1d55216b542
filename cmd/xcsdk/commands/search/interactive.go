package search

import (
	"fmt"
	"io"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/xcsdk/cmd/xcsdk/commands/output"
	"github.com/thoreinstein/xcsdk/internal/errors"
)

func runInteractiveSearch(w io.Writer, sdks []output.SDK) error {
	if len(sdks) == 0 {
		fmt.Fprintln(w, "No SDKs found.")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		sdks,
		func(i int) string {
			return fmt.Sprintf("%s %s (%s)", sdks[i].Platform, versionOrUnknown(sdks[i].Version), sdks[i].Path)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return preview(sdks[i])
		}),
	)

	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive search failed")
	}

	fmt.Fprintln(w, sdks[idx].Path)
	return nil
}

func preview(s output.SDK) string {
	text := fmt.Sprintf("Platform: %s\nVersion:  %s\nPath:     %s\nSymlink:  %t",
		s.Platform, versionOrUnknown(s.Version), s.Path, s.Symlink)
	if s.CanonicalName != "" {
		text += "\nName:     " + s.CanonicalName
	}
	return text
}

func versionOrUnknown(v string) string {
	if v == "" {
		return "(unversioned)"
	}
	return v
}
