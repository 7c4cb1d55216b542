// Package config loads xcsdk's configuration with Viper.
//
// The file lives at <XDG config home>/xcsdk/config.yaml (a config.yaml or
// config.toml in the working directory takes precedence) and every key can
// be overridden with an XCSDK_ environment variable, dots becoming
// underscores:
//
//	version: 1
//	search:
//	  developer_dir: true        # DEVELOPER_DIR / xcode-select
//	  command_line_tools: false
//	  default_system_xcode: false
//	  system_xcodes: false
//	  developer_dirs: []         # extra developer directories
//	  sdks_dirs: []              # extra directories holding *.sdk
//	  platform: ""               # e.g. MacOSX, iPhoneOS
//	  minimum_version: ""
//	  maximum_version: ""
//	  skip_symlinks: false
//	  sort: search               # search, asc, desc
//	locations:
//	  applications_dir: /Applications
//	  xcode_app: /Applications/Xcode.app
//	  command_line_tools: /Library/Developer/CommandLineTools
//
//	XCSDK_SEARCH_PLATFORM=iPhoneOS xcsdk search
//
// [Config.Search] and [Config.Environment] translate a loaded Config into the
// pkg/applesdk values that drive a search.
package config
