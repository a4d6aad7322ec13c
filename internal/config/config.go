// Package config builds the run configuration from the environment.
package config

import (
	"os"
	"strings"
)

const (
	// DefaultAccount is used when USERNAME is not set.
	DefaultAccount = "ok406lhq"
	// DefaultOutputPath is where the badge is written unless overridden.
	DefaultOutputPath = "images/stats.svg"
)

// Config is read once at startup and passed to the gateway and the use case.
type Config struct {
	Token      string
	Account    string
	OutputPath string
	Verbose    bool
	JSON       bool
}

// HasCredential reports whether authenticated endpoints should be used.
func (c Config) HasCredential() bool {
	return c.Token != ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name  string
	Desc  string
	apply func(*Config, string)
}

var supportedEnvVars = []EnvVar{
	{
		Name:  "GH_README_STATS_TOKEN",
		Desc:  "GitHub token. Enables private repositories and the authenticated profile. Default: None",
		apply: func(c *Config, s string) { c.Token = s },
	},
	{
		Name:  "USERNAME",
		Desc:  "GitHub account to summarize. Default: " + DefaultAccount,
		apply: func(c *Config, s string) { c.Account = s },
	},
}

// SupportedEnvVars returns the environment variables Load understands.
func SupportedEnvVars() []EnvVar {
	return supportedEnvVars
}

// Load returns the defaults overridden by any non-blank environment values.
// A nil getenv falls back to os.Getenv.
func Load(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Config{
		Account:    DefaultAccount,
		OutputPath: DefaultOutputPath,
	}
	for _, v := range supportedEnvVars {
		if value := strings.TrimSpace(getenv(v.Name)); value != "" {
			v.apply(&cfg, value)
		}
	}
	return cfg
}
