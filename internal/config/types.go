// Package config provides drover's tool configuration: where to find
// vagrant, default provider and output settings, and the MCP server
// section.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// ToolConfig is the top-level configuration structure for drover.
type ToolConfig struct {
	Vagrant VagrantConfig `yaml:"vagrant"`
	Output  OutputConfig  `yaml:"output"`
	MCP     MCPConfig     `yaml:"mcp"`
}

// VagrantConfig controls how drover invokes the vagrant binary.
type VagrantConfig struct {
	// Executable is an explicit path to the vagrant binary. Empty means
	// resolve via the DROVER_VAGRANT environment variable or PATH.
	Executable string `yaml:"executable,omitempty"`

	// DefaultProvider is used when a command does not name a provider.
	DefaultProvider string `yaml:"default_provider,omitempty"`

	// EnvPassthrough lists host environment variables forwarded to the
	// vagrant subprocess, e.g. VAGRANT_HOME or VAGRANT_LOG.
	EnvPassthrough []string `yaml:"env_passthrough,omitempty"`

	// QuietStderr suppresses mirroring of vagrant's stderr to the
	// terminal. Pointer to distinguish unset (default true) from false.
	QuietStderr *bool `yaml:"quiet_stderr,omitempty"`
}

// OutputConfig holds default presentation settings for the CLI.
type OutputConfig struct {
	Format    string `yaml:"format,omitempty" validate:"omitempty,oneof=table json yaml"`
	NoHeaders bool   `yaml:"no_headers,omitempty"`
}

// MCPConfig holds network and authentication settings for drover-mcp.
type MCPConfig struct {
	Port      int         `yaml:"port" validate:"omitempty,min=1,max=65535"`
	AuthToken string      `yaml:"auth_token,omitempty"`
	Audit     AuditConfig `yaml:"audit"`
}

// AuditConfig controls audit logging of MCP tool invocations.
type AuditConfig struct {
	Enabled   bool   `yaml:"enabled"`
	LogPath   string `yaml:"log_path,omitempty"`
	MaxSizeMB int    `yaml:"max_size_mb,omitempty" validate:"omitempty,min=1"`
}

// DefaultConfig returns a new ToolConfig populated with sensible default
// values. Each call returns a distinct instance.
func DefaultConfig() *ToolConfig {
	return &ToolConfig{
		Output: OutputConfig{
			Format: "table",
		},
		MCP: MCPConfig{
			Port: 8080,
			Audit: AuditConfig{
				Enabled: false,
				LogPath: "drover-mcp-audit.log",
			},
		},
	}
}

// DefaultPath returns the default configuration file location, honoring
// the DROVER_CONFIG environment variable when set. Empty means no
// location could be determined.
func DefaultPath() string {
	if p := os.Getenv("DROVER_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "drover", "config.yaml")
}

// Load reads the configuration from path, falling back to DefaultPath()
// when path is empty and to defaults when no file exists. Environment
// overrides are applied after the file is read, so they always win.
func Load(path string) (*ToolConfig, error) {
	if path == "" {
		path = DefaultPath()
	}

	var cfg *ToolConfig
	if path == "" {
		cfg = DefaultConfig()
	} else {
		loaded, err := LoadFromFile(path)
		if errors.Is(err, os.ErrNotExist) {
			loaded = DefaultConfig()
		} else if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	ApplyEnvOverrides(cfg)

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFromFile loads a drover configuration from a YAML file.
func LoadFromFile(path string) (*ToolConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Normalize user input before validation
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ApplyEnvOverrides updates cfg in place with values from environment
// variables. Recognized variables:
//   - DROVER_VAGRANT overrides cfg.Vagrant.Executable
//   - DROVER_PROVIDER overrides cfg.Vagrant.DefaultProvider
//   - DROVER_MCP_AUTH_TOKEN overrides cfg.MCP.AuthToken
func ApplyEnvOverrides(cfg *ToolConfig) {
	if exe := os.Getenv("DROVER_VAGRANT"); exe != "" {
		cfg.Vagrant.Executable = exe
	}
	if provider := os.Getenv("DROVER_PROVIDER"); provider != "" {
		cfg.Vagrant.DefaultProvider = provider
	}
	if token := os.Getenv("DROVER_MCP_AUTH_TOKEN"); token != "" {
		cfg.MCP.AuthToken = token
	}
}

// Normalize sanitizes user input to consistent formats.
// This is called automatically by Load and LoadFromFile before validation.
func (c *ToolConfig) Normalize() {
	c.Vagrant.Executable = strings.TrimSpace(c.Vagrant.Executable)
	c.Vagrant.DefaultProvider = strings.ToLower(strings.TrimSpace(c.Vagrant.DefaultProvider))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))

	// Drop blank passthrough entries
	kept := c.Vagrant.EnvPassthrough[:0]
	for _, name := range c.Vagrant.EnvPassthrough {
		name = strings.TrimSpace(name)
		if name != "" {
			kept = append(kept, name)
		}
	}
	c.Vagrant.EnvPassthrough = kept

	if c.Output.Format == "" {
		c.Output.Format = "table"
	}
	if c.MCP.Port == 0 {
		c.MCP.Port = 8080
	}
	if c.MCP.Audit.Enabled && c.MCP.Audit.LogPath == "" {
		c.MCP.Audit.LogPath = "drover-mcp-audit.log"
	}
}

// Validate checks the configuration for errors. It does not verify that
// the vagrant executable exists; the runner resolves that at call time.
func (c *ToolConfig) Validate() error {
	if c.Vagrant.DefaultProvider != "" {
		// Provider names as vagrant spells them: virtualbox, libvirt,
		// vmware_desktop, hyperv, docker, parallels
		providerPattern := `^[a-z][a-z0-9_]*$`
		matched, err := regexp.MatchString(providerPattern, c.Vagrant.DefaultProvider)
		if err != nil {
			return fmt.Errorf("default_provider validation error: %w", err)
		}
		if !matched {
			return fmt.Errorf("default_provider must be a lowercase provider name such as virtualbox or libvirt, got %q", c.Vagrant.DefaultProvider)
		}
	}

	for i, name := range c.Vagrant.EnvPassthrough {
		namePattern := `^[A-Za-z_][A-Za-z0-9_]*$`
		matched, err := regexp.MatchString(namePattern, name)
		if err != nil {
			return fmt.Errorf("env_passthrough[%d] validation error: %w", i, err)
		}
		if !matched {
			return fmt.Errorf("env_passthrough[%d] is not a valid environment variable name: %q", i, name)
		}
	}

	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("field %s failed %s validation", e.Namespace(), e.Tag())
		}
		return fmt.Errorf("validation: %w", err)
	}

	return nil
}

// QuietStderrOrDefault reports whether vagrant's stderr should be kept
// off the terminal. Unset means quiet.
func (c *ToolConfig) QuietStderrOrDefault() bool {
	if c.Vagrant.QuietStderr == nil {
		return true
	}
	return *c.Vagrant.QuietStderr
}

// PassthroughEnv resolves the configured passthrough names against the
// host environment, returning KEY=VALUE pairs for variables that are
// set. Unset variables are skipped.
func (c *ToolConfig) PassthroughEnv() []string {
	var pairs []string
	for _, name := range c.Vagrant.EnvPassthrough {
		if value, ok := os.LookupEnv(name); ok {
			pairs = append(pairs, name+"="+value)
		}
	}
	return pairs
}

// EnsureAuthToken generates a random auth token and sets it on cfg if
// cfg.MCP.AuthToken is empty. It returns the token (existing or
// generated) and any error encountered during generation.
func EnsureAuthToken(cfg *ToolConfig) (string, error) {
	if cfg.MCP.AuthToken != "" {
		return cfg.MCP.AuthToken, nil
	}
	token, err := GenerateRandomToken()
	if err != nil {
		return "", fmt.Errorf("generate auth token: %w", err)
	}
	cfg.MCP.AuthToken = token
	return token, nil
}

// GenerateRandomToken returns a 32-character hex-encoded
// cryptographically random token string.
func GenerateRandomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return hex.EncodeToString(b), nil
}
