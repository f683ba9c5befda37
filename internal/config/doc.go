// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/prj/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/prj/config.cue on macOS, %APPDATA%\prj\config.cue
// on Windows). The package provides type-safe configuration access for the default
// execution runtime, UI settings, and the test target picker.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
