package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/thoreinstein/xcsdk/internal/paths"
	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

// EnvPrefix prefixes environment overrides, e.g. XCSDK_SEARCH_PLATFORM.
const EnvPrefix = "XCSDK"

// CurrentVersion is the config schema version written by `xcsdk config init`.
const CurrentVersion = 1

// Config represents the top-level configuration structure.
type Config struct {
	Version   int             `mapstructure:"version" yaml:"version" toml:"version" json:"version"`
	Search    SearchConfig    `mapstructure:"search" yaml:"search" toml:"search" json:"search"`
	Locations LocationsConfig `mapstructure:"locations" yaml:"locations" toml:"locations" json:"locations"`
}

// SearchConfig holds the default SDK search.
type SearchConfig struct {
	DeveloperDir       bool     `mapstructure:"developer_dir" yaml:"developer_dir" toml:"developer_dir" json:"developer_dir"`
	CommandLineTools   bool     `mapstructure:"command_line_tools" yaml:"command_line_tools" toml:"command_line_tools" json:"command_line_tools"`
	DefaultSystemXcode bool     `mapstructure:"default_system_xcode" yaml:"default_system_xcode" toml:"default_system_xcode" json:"default_system_xcode"`
	SystemXcodes       bool     `mapstructure:"system_xcodes" yaml:"system_xcodes" toml:"system_xcodes" json:"system_xcodes"`
	DeveloperDirs      []string `mapstructure:"developer_dirs" yaml:"developer_dirs" toml:"developer_dirs" json:"developer_dirs"`
	SDKsDirs           []string `mapstructure:"sdks_dirs" yaml:"sdks_dirs" toml:"sdks_dirs" json:"sdks_dirs"`
	Platform           string   `mapstructure:"platform" yaml:"platform" toml:"platform" json:"platform"`
	MinimumVersion     string   `mapstructure:"minimum_version" yaml:"minimum_version" toml:"minimum_version" json:"minimum_version"`
	MaximumVersion     string   `mapstructure:"maximum_version" yaml:"maximum_version" toml:"maximum_version" json:"maximum_version"`
	SkipSymlinks       bool     `mapstructure:"skip_symlinks" yaml:"skip_symlinks" toml:"skip_symlinks" json:"skip_symlinks"`
	Sort               string   `mapstructure:"sort" yaml:"sort" toml:"sort" json:"sort"`
}

// LocationsConfig overrides the conventional macOS install locations.
type LocationsConfig struct {
	ApplicationsDir  string `mapstructure:"applications_dir" yaml:"applications_dir" toml:"applications_dir" json:"applications_dir"`
	XcodeApp         string `mapstructure:"xcode_app" yaml:"xcode_app" toml:"xcode_app" json:"xcode_app"`
	CommandLineTools string `mapstructure:"command_line_tools" yaml:"command_line_tools" toml:"command_line_tools" json:"command_line_tools"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Search: SearchConfig{
			DeveloperDir:  true,
			DeveloperDirs: []string{},
			SDKsDirs:      []string{},
			Sort:          "search",
		},
		Locations: LocationsConfig{
			ApplicationsDir:  applesdk.ApplicationsDefaultPath,
			XcodeApp:         applesdk.XcodeAppDefaultPath,
			CommandLineTools: applesdk.CommandLineToolsDefaultPath,
		},
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")

	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	def := Default()
	viper.SetDefault("version", def.Version)
	viper.SetDefault("search.developer_dir", def.Search.DeveloperDir)
	viper.SetDefault("search.command_line_tools", def.Search.CommandLineTools)
	viper.SetDefault("search.default_system_xcode", def.Search.DefaultSystemXcode)
	viper.SetDefault("search.system_xcodes", def.Search.SystemXcodes)
	viper.SetDefault("search.developer_dirs", def.Search.DeveloperDirs)
	viper.SetDefault("search.sdks_dirs", def.Search.SDKsDirs)
	viper.SetDefault("search.platform", def.Search.Platform)
	viper.SetDefault("search.minimum_version", def.Search.MinimumVersion)
	viper.SetDefault("search.maximum_version", def.Search.MaximumVersion)
	viper.SetDefault("search.skip_symlinks", def.Search.SkipSymlinks)
	viper.SetDefault("search.sort", def.Search.Sort)
	viper.SetDefault("locations.applications_dir", def.Locations.ApplicationsDir)
	viper.SetDefault("locations.xcode_app", def.Locations.XcodeApp)
	viper.SetDefault("locations.command_line_tools", def.Locations.CommandLineTools)
}

// Load reads the configuration file.
//
// With an explicit path the file must exist. Otherwise the search paths from
// Init are tried and defaults are used when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		expanded, err := paths.ExpandHome(path)
		if err != nil {
			return nil, err
		}
		viper.SetConfigFile(expanded)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// Implicit load with no file: defaults apply.
		case path != "":
			return nil, errors.Wrapf(err, "reading config file %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}

// FileUsed returns the config file Load read, or "" when defaults were used.
func FileUsed() string {
	return viper.ConfigFileUsed()
}

// Environment returns the applesdk.Environment described by Locations, with
// "~/" expanded.
func (c *Config) Environment() (applesdk.Environment, error) {
	env := applesdk.DefaultEnvironment()

	for _, loc := range []struct {
		value string
		dst   *string
	}{
		{c.Locations.ApplicationsDir, &env.ApplicationsDir},
		{c.Locations.XcodeApp, &env.XcodeAppPath},
		{c.Locations.CommandLineTools, &env.CommandLineToolsDir},
	} {
		if loc.value == "" {
			continue
		}
		expanded, err := paths.ExpandHome(loc.value)
		if err != nil {
			return applesdk.Environment{}, err
		}
		*loc.dst = expanded
	}

	return env, nil
}

// Search returns the applesdk.SdkSearch described by the search section,
// bound to Environment.
func (c *Config) Search() (applesdk.SdkSearch, error) {
	env, err := c.Environment()
	if err != nil {
		return applesdk.SdkSearch{}, err
	}

	s := applesdk.NewSdkSearch().
		WithEnvironment(env).
		DeveloperDir(c.Search.DeveloperDir).
		CommandLineTools(c.Search.CommandLineTools).
		DefaultSystemXcode(c.Search.DefaultSystemXcode).
		SystemXcodes(c.Search.SystemXcodes)

	developerDirs, err := paths.ExpandHomeAll(c.Search.DeveloperDirs)
	if err != nil {
		return applesdk.SdkSearch{}, err
	}
	for _, dir := range developerDirs {
		s = s.AdditionalDeveloperDir(dir)
	}

	sdksDirs, err := paths.ExpandHomeAll(c.Search.SDKsDirs)
	if err != nil {
		return applesdk.SdkSearch{}, err
	}
	for _, dir := range sdksDirs {
		s = s.AdditionalSDKsDir(dir)
	}

	if c.Search.Platform != "" {
		s = s.Platform(applesdk.ParsePlatform(c.Search.Platform))
	}
	if c.Search.MinimumVersion != "" {
		s = s.MinimumVersion(applesdk.NewSdkVersion(c.Search.MinimumVersion))
	}
	if c.Search.MaximumVersion != "" {
		s = s.MaximumVersion(applesdk.NewSdkVersion(c.Search.MaximumVersion))
	}

	return s, nil
}
