// Package paths resolves where xcsdk keeps its own files and expands
// user-supplied paths.
//
// The config directory follows the XDG Base Directory layout through
// github.com/adrg/xdg: $XDG_CONFIG_HOME/xcsdk when set, otherwise the
// platform default (~/Library/Application Support/xcsdk on macOS).
//
// Paths read from flags and config files may start with "~/"; [ExpandHome]
// rewrites them against the user's home directory before they reach the SDK
// search.
package paths
