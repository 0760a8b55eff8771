// Package config provides configuration management for the tigen CLI.
//
// # Configuration File
//
// Settings are read from config.yaml in the current directory or in the
// tigen configuration directory (~/.config/tigen on Linux, overridable with
// TIGEN_CONFIG_DIR). Every key can also be set through a TIGEN_ prefixed
// environment variable, for example TIGEN_COLORS=16.
//
//	version: 1
//	colors: 256
//	rgb_bits: 8
//	language: c
//	constant: terminfo_capabilities
//	guard: "#pragma once"
//	package: terminfo
//	resolve: single-pass
//	watch:
//	  debounce: 200ms
//
// # Loading Configuration
//
// Call [Init] once at startup, then [Load] with an optional explicit path:
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return errors.Wrap(err, "loading config")
//	}
//
// [Load] validates the result; [Validate] is exposed for callers that build
// a [Config] by hand.
package config
