// Package config loads panicreport settings from a YAML file.
//
// The file lives in the platform configuration directory:
//
//   - Linux: $XDG_CONFIG_HOME/panicreport/config.yaml or ~/.config/panicreport/config.yaml
//   - macOS: ~/.config/panicreport/config.yaml
//   - Windows: %LOCALAPPDATA%\panicreport\config.yaml
//
// A missing file is not an error; defaults apply. Environment variables
// override file values:
//
//	PANICREPORT_ENDPOINT   report collector base URL
//	PANICREPORT_ENGINE     path to the engine binary
//
// Example file:
//
//	version: 1
//	endpoint: https://reports.example.com/v1
//	timeout: 30s
//	engine:
//	  path: /usr/local/bin/query-engine
//	  timeout: 10m
//	  version_args: ["--version"]
//
// Past reports are never written here.
package config
