// Package flags provides shared flag accessors for CLI commands.
// This package exists to avoid import cycles between the root command
// and command subpackages such as search.
package flags

// configFile holds the value of the --config flag.
var configFile string

// ConfigFile returns the --config value, or "" when the default search paths
// apply.
func ConfigFile() string {
	return configFile
}

// SetConfigFile records the --config value after flag parsing.
func SetConfigFile(path string) {
	configFile = path
}
