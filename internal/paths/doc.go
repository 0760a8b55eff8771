// Package paths resolves the directories tigen reads configuration from and
// creates output directories on demand.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory compliance.
// On Linux the user configuration lives under ~/.config/tigen; on macOS and
// Windows xdg picks the platform equivalent.
//
// The TIGEN_CONFIG_DIR environment variable overrides the configuration
// directory entirely, which keeps tests and CI runs hermetic:
//
//	TIGEN_CONFIG_DIR=/tmp/tigen tigen config
package paths
