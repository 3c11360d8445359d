package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.Format != "table" {
		t.Errorf("Expected default format 'table', got %s", cfg.Output.Format)
	}
	if cfg.MCP.Port != 8080 {
		t.Errorf("Expected default MCP port 8080, got %d", cfg.MCP.Port)
	}
	if cfg.MCP.Audit.Enabled {
		t.Error("Expected audit logging to be disabled by default")
	}

	// Each call returns a distinct instance
	other := DefaultConfig()
	other.MCP.Port = 9999
	if cfg.MCP.Port == 9999 {
		t.Error("DefaultConfig() instances must be independent")
	}
}

func TestLoadFromFile_Valid(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	content := `
vagrant:
  executable: /opt/vagrant/bin/vagrant
  default_provider: libvirt
  env_passthrough:
    - VAGRANT_HOME
    - VAGRANT_LOG
output:
  format: json
  no_headers: true
mcp:
  port: 9090
  auth_token: secret
  audit:
    enabled: true
    log_path: /var/log/drover-audit.log
`

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Vagrant.Executable != "/opt/vagrant/bin/vagrant" {
		t.Errorf("Expected executable override, got %s", cfg.Vagrant.Executable)
	}
	if cfg.Vagrant.DefaultProvider != "libvirt" {
		t.Errorf("Expected provider 'libvirt', got %s", cfg.Vagrant.DefaultProvider)
	}
	if len(cfg.Vagrant.EnvPassthrough) != 2 {
		t.Errorf("Expected 2 passthrough entries, got %d", len(cfg.Vagrant.EnvPassthrough))
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Expected format 'json', got %s", cfg.Output.Format)
	}
	if !cfg.Output.NoHeaders {
		t.Error("Expected no_headers true")
	}
	if cfg.MCP.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.MCP.Port)
	}
	if cfg.MCP.AuthToken != "secret" {
		t.Errorf("Expected auth token 'secret', got %s", cfg.MCP.AuthToken)
	}
	if !cfg.MCP.Audit.Enabled || cfg.MCP.Audit.LogPath != "/var/log/drover-audit.log" {
		t.Error("Expected audit section to be loaded")
	}
}

func TestLoadFromFile_PartialKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	content := `
vagrant:
  default_provider: virtualbox
`

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Vagrant.DefaultProvider != "virtualbox" {
		t.Errorf("Expected provider 'virtualbox', got %s", cfg.Vagrant.DefaultProvider)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("Expected default format to survive partial config, got %s", cfg.Output.Format)
	}
	if cfg.MCP.Port != 8080 {
		t.Errorf("Expected default port to survive partial config, got %d", cfg.MCP.Port)
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadFromFile_NonExistent(t *testing.T) {
	if _, err := LoadFromFile("/non/existent/config.yaml"); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Format != "table" {
		t.Errorf("Expected defaults for missing file, got format %s", cfg.Output.Format)
	}
}

func TestLoad_EnvOverridesBeatFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	content := `
vagrant:
  default_provider: virtualbox
`

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	t.Setenv("DROVER_PROVIDER", "libvirt")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Vagrant.DefaultProvider != "libvirt" {
		t.Errorf("Expected env override to win, got %s", cfg.Vagrant.DefaultProvider)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DROVER_VAGRANT", "/usr/local/bin/vagrant")
	t.Setenv("DROVER_MCP_AUTH_TOKEN", "from-env")

	cfg := DefaultConfig()
	ApplyEnvOverrides(cfg)

	if cfg.Vagrant.Executable != "/usr/local/bin/vagrant" {
		t.Errorf("Expected executable from env, got %s", cfg.Vagrant.Executable)
	}
	if cfg.MCP.AuthToken != "from-env" {
		t.Errorf("Expected auth token from env, got %s", cfg.MCP.AuthToken)
	}
}

func TestNormalize(t *testing.T) {
	cfg := &ToolConfig{
		Vagrant: VagrantConfig{
			Executable:      "  /usr/bin/vagrant  ",
			DefaultProvider: " LibVirt ",
			EnvPassthrough:  []string{" VAGRANT_HOME ", "", "VAGRANT_LOG"},
		},
		Output: OutputConfig{Format: " JSON "},
	}

	cfg.Normalize()

	if cfg.Vagrant.Executable != "/usr/bin/vagrant" {
		t.Errorf("Expected executable trimmed, got %q", cfg.Vagrant.Executable)
	}
	if cfg.Vagrant.DefaultProvider != "libvirt" {
		t.Errorf("Expected provider lowercased, got %q", cfg.Vagrant.DefaultProvider)
	}
	if len(cfg.Vagrant.EnvPassthrough) != 2 {
		t.Fatalf("Expected blank passthrough entries dropped, got %v", cfg.Vagrant.EnvPassthrough)
	}
	if cfg.Vagrant.EnvPassthrough[0] != "VAGRANT_HOME" || cfg.Vagrant.EnvPassthrough[1] != "VAGRANT_LOG" {
		t.Errorf("Expected passthrough entries trimmed, got %v", cfg.Vagrant.EnvPassthrough)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Expected format lowercased, got %q", cfg.Output.Format)
	}
	if cfg.MCP.Port != 8080 {
		t.Errorf("Expected default port applied, got %d", cfg.MCP.Port)
	}
}

func TestValidate_InvalidProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Vagrant.DefaultProvider = "Virtual Box"

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for invalid provider name")
	}
}

func TestValidate_InvalidPassthroughName(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"leading digit", "1BAD"},
		{"hyphen", "BAD-NAME"},
		{"equals sign", "NAME=VALUE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Vagrant.EnvPassthrough = []string{tt.entry}

			if err := cfg.Validate(); err == nil {
				t.Errorf("Expected error for passthrough entry %q", tt.entry)
			}
		})
	}
}

func TestValidate_InvalidFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = "xml"

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for unsupported output format")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MCP.Port = 70000

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for out-of-range port")
	}
}

func TestQuietStderrOrDefault(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.QuietStderrOrDefault() {
		t.Error("Expected quiet stderr by default")
	}

	loud := false
	cfg.Vagrant.QuietStderr = &loud
	if cfg.QuietStderrOrDefault() {
		t.Error("Expected explicit false to disable quiet stderr")
	}
}

func TestPassthroughEnv(t *testing.T) {
	t.Setenv("DROVER_TEST_PRESENT", "yes")

	cfg := DefaultConfig()
	cfg.Vagrant.EnvPassthrough = []string{"DROVER_TEST_PRESENT", "DROVER_TEST_ABSENT_VAR"}

	pairs := cfg.PassthroughEnv()
	if len(pairs) != 1 {
		t.Fatalf("Expected 1 resolved pair, got %v", pairs)
	}
	if pairs[0] != "DROVER_TEST_PRESENT=yes" {
		t.Errorf("Expected KEY=VALUE pair, got %q", pairs[0])
	}
}

func TestEnsureAuthToken_Existing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MCP.AuthToken = "already-set"

	token, err := EnsureAuthToken(cfg)
	if err != nil {
		t.Fatalf("EnsureAuthToken() error = %v", err)
	}
	if token != "already-set" {
		t.Errorf("Expected existing token to be kept, got %s", token)
	}
}

func TestEnsureAuthToken_Generated(t *testing.T) {
	cfg := DefaultConfig()

	token, err := EnsureAuthToken(cfg)
	if err != nil {
		t.Fatalf("EnsureAuthToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("Expected a generated token")
	}
	if cfg.MCP.AuthToken != token {
		t.Error("Expected generated token to be stored on the config")
	}
}

func TestGenerateRandomToken(t *testing.T) {
	a, err := GenerateRandomToken()
	if err != nil {
		t.Fatalf("GenerateRandomToken() error = %v", err)
	}
	if len(a) != 32 {
		t.Errorf("Expected 32-character token, got %d", len(a))
	}

	b, err := GenerateRandomToken()
	if err != nil {
		t.Fatalf("GenerateRandomToken() error = %v", err)
	}
	if a == b {
		t.Error("Expected distinct tokens across calls")
	}
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("DROVER_CONFIG", "/etc/drover/config.yaml")

	if got := DefaultPath(); got != "/etc/drover/config.yaml" {
		t.Errorf("Expected DROVER_CONFIG to win, got %s", got)
	}
}
