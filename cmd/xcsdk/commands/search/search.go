// Package search provides the search command for finding SDKs.
package search

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thoreinstein/xcsdk/cmd/xcsdk/commands/flags"
	"github.com/thoreinstein/xcsdk/cmd/xcsdk/commands/output"
	"github.com/thoreinstein/xcsdk/internal/config"
	"github.com/thoreinstein/xcsdk/internal/errors"
	"github.com/thoreinstein/xcsdk/internal/logging"
	"github.com/thoreinstein/xcsdk/internal/selection"
	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

var (
	platform         string
	minVersion       string
	maxVersion       string
	developerDirs    []string
	sdksDirs         []string
	noDeveloperDir   bool
	commandLineTools bool
	defaultXcode     bool
	systemXcodes     bool
	parsed           bool
	skipSymlinks     bool
	sortOrder        string
	constraint       string
	first            bool
	explain          bool
	interactive      bool
	outputFormat     string
)

func init() {
	f := Cmd.Flags()
	f.StringVarP(&platform, "platform", "p", "", "only SDKs for this platform (e.g. MacOSX, iPhoneOS)")
	f.StringVar(&minVersion, "min", "", "minimum SDK version, inclusive")
	f.StringVar(&maxVersion, "max", "", "maximum SDK version, inclusive")
	f.StringArrayVar(&developerDirs, "developer-dir", nil, "additional developer directory to search (repeatable)")
	f.StringArrayVar(&sdksDirs, "sdks-dir", nil, "additional directory of *.sdk entries to search (repeatable)")
	f.BoolVar(&noDeveloperDir, "no-developer-dir", false, "do not search the active developer directory")
	f.BoolVar(&commandLineTools, "command-line-tools", false, "search the Command Line Tools")
	f.BoolVar(&defaultXcode, "default-xcode", false, "search /Applications/Xcode.app")
	f.BoolVar(&systemXcodes, "system-xcodes", false, "search every Xcode*.app in /Applications")
	f.BoolVar(&parsed, "parsed", false, "read each SDK's settings file; SDKs without one are skipped")
	f.BoolVar(&skipSymlinks, "skip-symlinks", false, "omit versionless symlinks such as MacOSX.sdk")
	f.StringVar(&sortOrder, "sort", "", "result order: search, asc, desc")
	f.StringVar(&constraint, "constraint", "", `semver constraint, e.g. ">= 14, < 15"`)
	f.BoolVar(&first, "first", false, "print only the first result")
	f.BoolVar(&explain, "explain", false, "show the resolved search roots")
	f.BoolVarP(&interactive, "interactive", "i", false, "pick an SDK with a fuzzy finder")
	f.StringVarP(&outputFormat, "output", "o", "text", "output format: text, json, yaml, toml")
}

// Cmd is the search command.
var Cmd = &cobra.Command{
	Use:   "search",
	Short: "Search for installed SDKs",
	Long: `Search for Apple SDKs.

Roots are searched in a fixed order: the active developer directory
(DEVELOPER_DIR or xcode-select), the Command Line Tools, the default Xcode,
every installed Xcode, then --developer-dir and --sdks-dir entries. Results
keep that order unless --sort is given.

Flags override the search section of the config file.`,
	Example: `  # SDKs in the active developer directory
  xcsdk search

  # Newest iOS SDK from any installed Xcode
  xcsdk search --system-xcodes -p iPhoneOS --sort desc --first

  # macOS SDKs between 13 and 14.x, as JSON
  xcsdk search -p MacOSX --constraint ">= 13, < 15" -o json

  # Show which roots were searched
  xcsdk search --command-line-tools --explain`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flags.ConfigFile())
	if err != nil {
		return errors.NewConfigError(err)
	}
	return runSearchWithWriter(cmd.Context(), cmd.OutOrStdout(), cmd.Flags(), cfg)
}

// runSearchWithWriter allows injecting a writer for testing.
func runSearchWithWriter(ctx context.Context, w io.Writer, fs *pflag.FlagSet, cfg *config.Config) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	if interactive && (first || format != output.FormatText) {
		return errors.NewUserError(errors.New("--interactive cannot be combined with --first or --output"), "")
	}

	applyFlags(fs, cfg)
	if err := config.Check(cfg); err != nil {
		return errors.NewUserError(err, "Run: xcsdk search --help")
	}

	s, err := cfg.Search()
	if err != nil {
		return err
	}
	s = s.WithLogger(logging.FromContext(ctx))

	order, err := selection.ParseOrder(cfg.Search.Sort)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	opts := selection.Options{
		Constraint:   constraint,
		SkipSymlinks: cfg.Search.SkipSymlinks,
		Order:        order,
	}

	if parsed {
		return find(w, format, s, opts, applesdk.LoadParsedSDK)
	}
	return find(w, format, s, opts, applesdk.LoadUnparsedSDK)
}

// applyFlags overlays explicitly set flags on the configured search.
func applyFlags(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("no-developer-dir") {
		cfg.Search.DeveloperDir = !noDeveloperDir
	}
	if fs.Changed("command-line-tools") {
		cfg.Search.CommandLineTools = commandLineTools
	}
	if fs.Changed("default-xcode") {
		cfg.Search.DefaultSystemXcode = defaultXcode
	}
	if fs.Changed("system-xcodes") {
		cfg.Search.SystemXcodes = systemXcodes
	}
	if fs.Changed("skip-symlinks") {
		cfg.Search.SkipSymlinks = skipSymlinks
	}
	if fs.Changed("platform") {
		cfg.Search.Platform = platform
	}
	if fs.Changed("min") {
		cfg.Search.MinimumVersion = minVersion
	}
	if fs.Changed("max") {
		cfg.Search.MaximumVersion = maxVersion
	}
	if fs.Changed("sort") {
		cfg.Search.Sort = sortOrder
	}
	cfg.Search.DeveloperDirs = append(cfg.Search.DeveloperDirs, developerDirs...)
	cfg.Search.SDKsDirs = append(cfg.Search.SDKsDirs, sdksDirs...)
}

func find[T applesdk.SDK](w io.Writer, format output.Format, s applesdk.SdkSearch, opts selection.Options, load applesdk.Loader[T]) error {
	sdks, roots, err := applesdk.SearchWithRoots(s, load)
	if err != nil {
		return err
	}

	sdks, err = selection.Apply(sdks, opts)
	if err != nil {
		return errors.NewUserError(err, `Constraints look like ">= 14" or "~14.2"`)
	}

	if interactive {
		return runInteractiveSearch(w, output.FromSDKs(sdks))
	}

	doc := output.SDKList{SDKs: output.FromSDKs(sdks)}
	if explain {
		doc.Roots = output.FromRoots(roots)
	}

	if first {
		if len(doc.SDKs) == 0 {
			return errors.ErrNoSDKFound
		}
		doc.SDKs = doc.SDKs[:1]
		return output.Write(w, format, doc.SDKs[0], func(w io.Writer) error {
			_, err := fmt.Fprintln(w, doc.SDKs[0].Path)
			return err
		})
	}

	return output.Write(w, format, doc, func(w io.Writer) error {
		return writeText(w, doc)
	})
}

func writeText(w io.Writer, doc output.SDKList) error {
	if doc.Roots != nil {
		if err := output.WriteRoots(w, doc.Roots); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(doc.SDKs) == 0 {
		fmt.Fprintln(w, "No SDKs found.")
		return nil
	}
	return output.WriteSDKTable(w, doc.SDKs)
}
