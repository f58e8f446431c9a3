package config

import (
	"time"

	"github.com/muurk/panicreport/internal/urls"
)

// CurrentVersion is the only file format version understood.
const CurrentVersion = 1

// Config is the user configuration file.
type Config struct {
	Version  int           `yaml:"version"`
	Endpoint string        `yaml:"endpoint,omitempty"` // Report collector base URL
	Timeout  time.Duration `yaml:"timeout,omitempty"`  // Bound on the HTTP request, not the dialog
	Engine   Engine        `yaml:"engine,omitempty"`
}

// Engine describes how to run the backend engine binary.
type Engine struct {
	Path        string        `yaml:"path,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
	VersionArgs []string      `yaml:"version_args,omitempty"`
}

// Defaults
const (
	DefaultTimeout       = 30 * time.Second
	DefaultEnginePath    = "query-engine"
	DefaultEngineTimeout = 30 * time.Minute
)

// New returns a Config populated with defaults.
func New() *Config {
	c := &Config{Version: CurrentVersion}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = CurrentVersion
	}
	if c.Endpoint == "" {
		c.Endpoint = urls.DefaultReportEndpoint
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Engine.Path == "" {
		c.Engine.Path = DefaultEnginePath
	}
	if c.Engine.Timeout <= 0 {
		c.Engine.Timeout = DefaultEngineTimeout
	}
	if len(c.Engine.VersionArgs) == 0 {
		c.Engine.VersionArgs = []string{"--version"}
	}
}
