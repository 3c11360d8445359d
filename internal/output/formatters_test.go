package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jbweber/drover/api/v1alpha1"
	"github.com/jbweber/drover/internal/fleet"
	"github.com/jbweber/drover/internal/status"
	"github.com/jbweber/drover/internal/vagrant"
)

func testStatuses() []vagrant.MachineStatus {
	return []vagrant.MachineStatus{
		{Name: "web", State: status.StateRunning, Provider: "virtualbox"},
		{Name: "db", State: status.StatePoweroff, Provider: "virtualbox"},
	}
}

func testBoxes() []vagrant.Box {
	return []vagrant.Box{
		{Name: "generic/alpine316", Provider: "virtualbox", Version: "4.3.12"},
		{Name: "generic/rocky9", Provider: "libvirt", Version: "0"},
	}
}

func testReport() *fleet.Report {
	return &fleet.Report{
		Name:     "test-env",
		Dir:      "/envs/test-env",
		Phase:    v1alpha1.EnvPhaseRunning,
		Machines: testStatuses(),
	}
}

func TestTableFormatter_FormatStatuses(t *testing.T) {
	tests := []struct {
		name      string
		statuses  []vagrant.MachineStatus
		noHeaders bool
		wantCount int
		wantText  string
	}{
		{
			name:     "empty list",
			statuses: []vagrant.MachineStatus{},
			wantText: "No machines found",
		},
		{
			name:      "with headers",
			statuses:  testStatuses(),
			wantCount: 3,
			wantText:  "NAME",
		},
		{
			name:      "without headers",
			statuses:  testStatuses(),
			noHeaders: true,
			wantCount: 2,
			wantText:  "web",
		},
		{
			name:      "missing provider shows placeholder",
			statuses:  []vagrant.MachineStatus{{Name: "default", State: status.StateNotCreated}},
			noHeaders: true,
			wantCount: 1,
			wantText:  "-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TableFormatter{NoHeaders: tt.noHeaders}
			result, err := f.FormatStatuses(tt.statuses)
			if err != nil {
				t.Fatalf("FormatStatuses() error = %v", err)
			}

			if !strings.Contains(result, tt.wantText) {
				t.Errorf("FormatStatuses() = %q, want it to contain %q", result, tt.wantText)
			}

			if tt.wantCount > 0 {
				lines := strings.Split(strings.TrimSpace(result), "\n")
				if len(lines) != tt.wantCount {
					t.Errorf("FormatStatuses() produced %d lines, want %d", len(lines), tt.wantCount)
				}
			}
		})
	}
}

func TestTableFormatter_FormatBoxes(t *testing.T) {
	f := &TableFormatter{}
	result, err := f.FormatBoxes(testBoxes())
	if err != nil {
		t.Fatalf("FormatBoxes() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 3 {
		t.Errorf("FormatBoxes() produced %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "NAME") || !strings.Contains(lines[0], "VERSION") {
		t.Errorf("FormatBoxes() header = %q, want NAME and VERSION columns", lines[0])
	}
	if !strings.Contains(result, "generic/alpine316") {
		t.Errorf("FormatBoxes() = %q, want it to contain box name", result)
	}
}

func TestTableFormatter_FormatBoxesEmpty(t *testing.T) {
	f := &TableFormatter{}
	result, err := f.FormatBoxes(nil)
	if err != nil {
		t.Fatalf("FormatBoxes() error = %v", err)
	}
	if result != "No boxes found\n" {
		t.Errorf("FormatBoxes() = %q, want %q", result, "No boxes found\n")
	}
}

func TestTableFormatter_FormatPlugins(t *testing.T) {
	plugins := []vagrant.Plugin{
		{Name: "vagrant-libvirt", Version: "0.12.2"},
		{Name: "vagrant-share", Version: "2.0.0", System: true},
	}

	f := &TableFormatter{}
	result, err := f.FormatPlugins(plugins)
	if err != nil {
		t.Fatalf("FormatPlugins() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 3 {
		t.Errorf("FormatPlugins() produced %d lines, want 3", len(lines))
	}
	if !strings.Contains(result, "true") || !strings.Contains(result, "false") {
		t.Errorf("FormatPlugins() = %q, want system column values", result)
	}
}

func TestTableFormatter_FormatSSHConfig(t *testing.T) {
	cfg := vagrant.SSHConfig{
		"User":     "vagrant",
		"HostName": "127.0.0.1",
		"Port":     "2222",
	}

	f := &TableFormatter{}
	result, err := f.FormatSSHConfig(cfg)
	if err != nil {
		t.Fatalf("FormatSSHConfig() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 4 {
		t.Errorf("FormatSSHConfig() produced %d lines, want 4", len(lines))
	}

	// Rows come out sorted by key regardless of map iteration order.
	hostIdx := strings.Index(result, "HostName")
	portIdx := strings.Index(result, "Port")
	userIdx := strings.Index(result, "User")
	if hostIdx > portIdx || portIdx > userIdx {
		t.Errorf("FormatSSHConfig() rows not sorted by key:\n%s", result)
	}
}

func TestTableFormatter_FormatSSHConfigEmpty(t *testing.T) {
	f := &TableFormatter{}
	result, err := f.FormatSSHConfig(vagrant.SSHConfig{})
	if err != nil {
		t.Fatalf("FormatSSHConfig() error = %v", err)
	}
	if result != "No ssh configuration found\n" {
		t.Errorf("FormatSSHConfig() = %q, want %q", result, "No ssh configuration found\n")
	}
}

func TestTableFormatter_FormatSnapshots(t *testing.T) {
	tests := []struct {
		name      string
		snapshots []string
		noHeaders bool
		wantCount int
		wantText  string
	}{
		{
			name:     "empty list",
			wantText: "No snapshots found",
		},
		{
			name:      "with headers",
			snapshots: []string{"clean", "provisioned"},
			wantCount: 3,
			wantText:  "NAME",
		},
		{
			name:      "without headers",
			snapshots: []string{"clean"},
			noHeaders: true,
			wantCount: 1,
			wantText:  "clean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TableFormatter{NoHeaders: tt.noHeaders}
			result, err := f.FormatSnapshots(tt.snapshots)
			if err != nil {
				t.Fatalf("FormatSnapshots() error = %v", err)
			}

			if !strings.Contains(result, tt.wantText) {
				t.Errorf("FormatSnapshots() = %q, want it to contain %q", result, tt.wantText)
			}

			if tt.wantCount > 0 {
				lines := strings.Split(strings.TrimSpace(result), "\n")
				if len(lines) != tt.wantCount {
					t.Errorf("FormatSnapshots() produced %d lines, want %d", len(lines), tt.wantCount)
				}
			}
		})
	}
}

func TestTableFormatter_FormatMachineInfos(t *testing.T) {
	infos := []fleet.MachineInfo{
		{Name: "default", State: status.StateRunning, Provider: "libvirt", ID: "demo_default", IndexUUID: "11bf83b8"},
		{Name: "ghost", Provider: "libvirt", ID: "demo_ghost"},
	}

	f := &TableFormatter{}
	result, err := f.FormatMachineInfos(infos)
	if err != nil {
		t.Fatalf("FormatMachineInfos() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 3 {
		t.Errorf("FormatMachineInfos() produced %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "INDEX") {
		t.Errorf("FormatMachineInfos() header = %q, want INDEX column", lines[0])
	}

	// The disk-only machine has no live state or index uuid.
	if !strings.Contains(lines[2], "-") {
		t.Errorf("FormatMachineInfos() row = %q, want placeholders for missing values", lines[2])
	}
}

func TestTableFormatter_FormatReport(t *testing.T) {
	f := &TableFormatter{}
	result, err := f.FormatReport(testReport())
	if err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 3 {
		t.Errorf("FormatReport() produced %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "ENVIRONMENT") || !strings.Contains(lines[0], "PHASE") {
		t.Errorf("FormatReport() header = %q, want ENVIRONMENT and PHASE columns", lines[0])
	}
	for _, line := range lines[1:] {
		if !strings.Contains(line, "test-env") || !strings.Contains(line, "Running") {
			t.Errorf("FormatReport() row = %q, want environment name and phase on every row", line)
		}
	}
}

func TestTableFormatter_FormatReportNoMachines(t *testing.T) {
	report := &fleet.Report{Name: "test-env", Phase: v1alpha1.EnvPhaseStopped}

	f := &TableFormatter{NoHeaders: true}
	result, err := f.FormatReport(report)
	if err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 1 {
		t.Errorf("FormatReport() produced %d lines, want 1", len(lines))
	}
	if !strings.Contains(lines[0], "test-env") || !strings.Contains(lines[0], "-") {
		t.Errorf("FormatReport() = %q, want placeholder machine row", lines[0])
	}
}

func TestTableFormatter_FormatReportNil(t *testing.T) {
	f := &TableFormatter{}
	if _, err := f.FormatReport(nil); err == nil {
		t.Error("FormatReport(nil) expected error, got nil")
	}
}

func TestJSONFormatter_FormatStatuses(t *testing.T) {
	f := &JSONFormatter{}
	result, err := f.FormatStatuses(testStatuses())
	if err != nil {
		t.Fatalf("FormatStatuses() error = %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal([]byte(result), &decoded); err != nil {
		t.Fatalf("FormatStatuses() produced invalid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("FormatStatuses() decoded %d entries, want 2", len(decoded))
	}

	requiredFields := []string{"\"name\"", "\"state\"", "\"provider\""}
	for _, field := range requiredFields {
		if !strings.Contains(result, field) {
			t.Errorf("FormatStatuses() missing field %s in output:\n%s", field, result)
		}
	}
}

func TestJSONFormatter_EmptyCollections(t *testing.T) {
	f := &JSONFormatter{}

	tests := []struct {
		name string
		got  func() (string, error)
		want string
	}{
		{"statuses", func() (string, error) { return f.FormatStatuses(nil) }, "[]\n"},
		{"boxes", func() (string, error) { return f.FormatBoxes(nil) }, "[]\n"},
		{"plugins", func() (string, error) { return f.FormatPlugins(nil) }, "[]\n"},
		{"snapshots", func() (string, error) { return f.FormatSnapshots(nil) }, "[]\n"},
		{"machine infos", func() (string, error) { return f.FormatMachineInfos(nil) }, "[]\n"},
		{"ssh config", func() (string, error) { return f.FormatSSHConfig(nil) }, "{}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.got()
			if err != nil {
				t.Fatalf("format error = %v", err)
			}
			if result != tt.want {
				t.Errorf("format = %q, want %q", result, tt.want)
			}
		})
	}
}

func TestJSONFormatter_FormatReport(t *testing.T) {
	f := &JSONFormatter{}
	result, err := f.FormatReport(testReport())
	if err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}

	requiredFields := []string{"\"name\"", "\"dir\"", "\"phase\"", "\"machines\""}
	for _, field := range requiredFields {
		if !strings.Contains(result, field) {
			t.Errorf("FormatReport() missing field %s in output:\n%s", field, result)
		}
	}

	if _, err := f.FormatReport(nil); err == nil {
		t.Error("FormatReport(nil) expected error, got nil")
	}
}

func TestYAMLFormatter_FormatStatuses(t *testing.T) {
	f := &YAMLFormatter{}
	result, err := f.FormatStatuses(testStatuses())
	if err != nil {
		t.Fatalf("FormatStatuses() error = %v", err)
	}

	requiredFields := []string{"name: web", "state: running", "provider: virtualbox", "name: db"}
	for _, field := range requiredFields {
		if !strings.Contains(result, field) {
			t.Errorf("FormatStatuses() missing %q in output:\n%s", field, result)
		}
	}
}

func TestYAMLFormatter_FormatReport(t *testing.T) {
	f := &YAMLFormatter{}
	result, err := f.FormatReport(testReport())
	if err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}

	requiredFields := []string{"name: test-env", "phase: Running", "machines:"}
	for _, field := range requiredFields {
		if !strings.Contains(result, field) {
			t.Errorf("FormatReport() missing %q in output:\n%s", field, result)
		}
	}
}

func TestYAMLFormatter_EmptyStatuses(t *testing.T) {
	f := &YAMLFormatter{}
	result, err := f.FormatStatuses(nil)
	if err != nil {
		t.Fatalf("FormatStatuses() error = %v", err)
	}
	if result != "[]\n" {
		t.Errorf("FormatStatuses() = %q, want %q", result, "[]\n")
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{"table format", FormatTable, false},
		{"yaml format", FormatYAML, false},
		{"json format", FormatJSON, false},
		{"invalid format", Format("xml"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFormatter(Options{Format: tt.format})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFormatter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && f == nil {
				t.Error("NewFormatter() returned nil formatter")
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"table is valid", "table", false},
		{"yaml is valid", "yaml", false},
		{"json is valid", "json", false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}
