// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and persists the ZWS configuration. Configuration is
// layered: defaults, then the zws.yaml config file, then ZWS_* environment
// variables, then command-line flags.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the complete ZWS configuration.
type Config struct {
	Site     SiteConfig     `mapstructure:"site" yaml:"site"`
	Paths    PathsConfig    `mapstructure:"paths" yaml:"paths"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Deploy   []DeployConfig `mapstructure:"deploy" yaml:"deploy"`
	Language string         `mapstructure:"language" yaml:"language"`
}

// SiteConfig holds the site metadata rendered into every page and the SEO
// artifacts.
type SiteConfig struct {
	Title       string `mapstructure:"title" yaml:"title"`
	BaseURL     string `mapstructure:"base_url" yaml:"base_url"`
	Description string `mapstructure:"description" yaml:"description"`
	Author      string `mapstructure:"author" yaml:"author"`
	Language    string `mapstructure:"language" yaml:"language"`
}

// PathsConfig locates the source and output trees, relative to the working
// directory unless absolute.
type PathsConfig struct {
	Content   string `mapstructure:"content" yaml:"content"`
	Static    string `mapstructure:"static" yaml:"static"`
	Templates string `mapstructure:"templates" yaml:"templates"`
	Output    string `mapstructure:"output" yaml:"output"`
}

// DatabaseConfig selects the content-index backend.
type DatabaseConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

// ServerConfig controls the dev server.
type ServerConfig struct {
	Host    string `mapstructure:"host" yaml:"host"`
	PortMin int    `mapstructure:"port_min" yaml:"port_min"`
	PortMax int    `mapstructure:"port_max" yaml:"port_max"`
}

// DeployConfig describes one named deploy target in the config file.
type DeployConfig struct {
	Name       string `mapstructure:"name" yaml:"name"`
	Host       string `mapstructure:"host" yaml:"host"`
	User       string `mapstructure:"user" yaml:"user"`
	RemoteRoot string `mapstructure:"remote_root" yaml:"remote_root"`
	KeyPath    string `mapstructure:"key_path" yaml:"key_path"`
}

// ValidateBaseURL checks that a base URL is an absolute http(s) URL.
// Builds require one so sitemap and feed locations come out absolute.
func ValidateBaseURL(baseURL string) error {
	if baseURL == "" {
		return fmt.Errorf("site.base_url is not set; configure it before building")
	}
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("site.base_url must be an absolute http(s) URL, got %q", baseURL)
	}
	return nil
}

// Validate checks the fields other packages cannot sensibly default. An
// unset base URL passes here so commands that never emit URLs still run on
// a fresh config; Run in the build package enforces it.
func (c *Config) Validate() error {
	if c.Site.BaseURL != "" {
		if err := ValidateBaseURL(c.Site.BaseURL); err != nil {
			return err
		}
	}
	if c.Server.PortMin > c.Server.PortMax {
		return fmt.Errorf("server.port_min (%d) must not exceed server.port_max (%d)", c.Server.PortMin, c.Server.PortMax)
	}
	if c.Server.PortMin < 0 || c.Server.PortMax > 65535 {
		return fmt.Errorf("server port range %d-%d is outside 0-65535", c.Server.PortMin, c.Server.PortMax)
	}
	return nil
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "ZWS")
		default: // Linux, macOS, etc.
			configDir = "/etc/zws"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "zws")
	}

	return filepath.Join(configDir, "zws.yaml"), nil
}

// LoadConfig builds the layered configuration and unmarshals it into T.
// An explicit config file path (from the --config flag) takes precedence
// over the standard search locations.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, additionalConfigFilePath *string) (T, error) {
	var c T
	v := viper.New()

	// 1. Set defaults
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. Set up file search paths
	v.SetConfigName("zws")
	v.SetConfigType("yaml")

	// 3. Add explicit config file path if provided via --config flag.
	// This has the highest precedence for file-based configuration.
	if additionalConfigFilePath != nil {
		v.SetConfigFile(*additionalConfigFilePath)
	}

	// 4. Add standard config locations
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".") // Look for zws.yaml in current dir

	// 5. Read in the primary config file.
	if err := v.ReadInConfig(); err != nil {
		// It's okay if the file is not found, but other errors are fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	// 6. Read from environment variables
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("zws")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 7. Bind command-line flags
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// WriteConfigFile persists the configuration as YAML to the standard
// location, creating the directory if needed.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: deploy targets may reference key material.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}

	return nil
}
