package vagrant

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

const sshConfigFixture = `Host default
  HostName 127.0.0.1
  User vagrant
  Port 2222
  UserKnownHostsFile /dev/null
  StrictHostKeyChecking no
  PasswordAuthentication no
  IdentityFile "/home/user/.vagrant.d/insecure private key"
  IdentitiesOnly yes
  LogLevel FATAL
`

func TestParseSSHConfig(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   SSHConfig
	}{
		{
			name:   "typical block",
			output: sshConfigFixture,
			want: SSHConfig{
				"HostName":               "127.0.0.1",
				"User":                   "vagrant",
				"Port":                   "2222",
				"UserKnownHostsFile":     "/dev/null",
				"StrictHostKeyChecking":  "no",
				"PasswordAuthentication": "no",
				"IdentityFile":           "/home/user/.vagrant.d/insecure private key",
				"IdentitiesOnly":         "yes",
				"LogLevel":               "FATAL",
			},
		},
		{
			name: "banner noise before the host block is dropped",
			output: "Bringing machine 'default' up with 'virtualbox' provider...\n" +
				"Some other warning text\n" +
				"Host default\n" +
				"  HostName 192.168.33.10\n" +
				"  Port 22\n",
			want: SSHConfig{
				"HostName": "192.168.33.10",
				"Port":     "22",
			},
		},
		{
			name: "comments and blank lines skipped",
			output: "Host default\n" +
				"\n" +
				"  # injected by a plugin\n" +
				"  HostName 10.0.0.5\n" +
				"\n",
			want: SSHConfig{
				"HostName": "10.0.0.5",
			},
		},
		{
			name: "repeated key keeps last value",
			output: "Host default\n" +
				"  HostName 10.0.0.1\n" +
				"  HostName 10.0.0.2\n",
			want: SSHConfig{
				"HostName": "10.0.0.2",
			},
		},
		{
			name: "later host lines parse as directives",
			output: "Host default\n" +
				"  HostName 10.0.0.1\n" +
				"Host other\n",
			want: SSHConfig{
				"HostName": "10.0.0.1",
				"Host":     "other",
			},
		},
		{
			name:   "no host block yields empty config",
			output: "No vagrant machines are running.\n",
			want:   SSHConfig{},
		},
		{
			name:   "tab separated directive",
			output: "Host default\n\tHostName\t10.1.1.1\n",
			want: SSHConfig{
				"HostName": "10.1.1.1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSSHConfig(tt.output)
			if err != nil {
				t.Fatalf("parseSSHConfig() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseSSHConfig() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSSHConfigMalformed(t *testing.T) {
	output := "Host default\n" +
		"  HostName 10.0.0.1\n" +
		"  Lonesome\n"

	_, err := parseSSHConfig(output)
	if err == nil {
		t.Fatal("parseSSHConfig() expected error, got nil")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("parseSSHConfig() error = %v, want *ParseError", err)
	}
	if parseErr.Line != "  Lonesome" {
		t.Errorf("ParseError.Line = %q, want %q", parseErr.Line, "  Lonesome")
	}
}

func TestUnquoteValue(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "quoted path", value: `"/a/b/key"`, want: "/a/b/key"},
		{name: "unquoted path", value: "/a/b/key", want: "/a/b/key"},
		{name: "unbalanced leading quote", value: `"half`, want: `"half`},
		{name: "unbalanced trailing quote", value: `half"`, want: `half"`},
		{name: "lone quote", value: `"`, want: `"`},
		{name: "empty quotes", value: `""`, want: ""},
		{name: "interior quotes kept", value: `"a "b" c"`, want: `a "b" c`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unquoteValue(tt.value); got != tt.want {
				t.Errorf("unquoteValue(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestSSHConfigAccessors(t *testing.T) {
	tests := []struct {
		name             string
		conf             SSHConfig
		hostname         string
		userHostname     string
		userHostnamePort string
	}{
		{
			name: "all fields present",
			conf: SSHConfig{
				"HostName": "127.0.0.1",
				"User":     "vagrant",
				"Port":     "2222",
			},
			hostname:         "127.0.0.1",
			userHostname:     "vagrant@127.0.0.1",
			userHostnamePort: "vagrant@127.0.0.1:2222",
		},
		{
			name: "no user",
			conf: SSHConfig{
				"HostName": "127.0.0.1",
				"Port":     "2222",
			},
			hostname:         "127.0.0.1",
			userHostname:     "127.0.0.1",
			userHostnamePort: "127.0.0.1:2222",
		},
		{
			name: "no port",
			conf: SSHConfig{
				"HostName": "127.0.0.1",
				"User":     "vagrant",
			},
			hostname:         "127.0.0.1",
			userHostname:     "vagrant@127.0.0.1",
			userHostnamePort: "vagrant@127.0.0.1",
		},
		{
			name:             "empty config",
			conf:             SSHConfig{},
			hostname:         "",
			userHostname:     "",
			userHostnamePort: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.Hostname(); got != tt.hostname {
				t.Errorf("Hostname() = %q, want %q", got, tt.hostname)
			}
			if got := tt.conf.UserHostname(); got != tt.userHostname {
				t.Errorf("UserHostname() = %q, want %q", got, tt.userHostname)
			}
			if got := tt.conf.UserHostnamePort(); got != tt.userHostnamePort {
				t.Errorf("UserHostnamePort() = %q, want %q", got, tt.userHostnamePort)
			}
		})
	}
}

func TestClientSSHConfigCaching(t *testing.T) {
	m := newMockRunnerWithOutput(sshConfigFixture)
	c := New("/tmp/env", WithRunner(m))
	ctx := context.Background()

	first, err := c.SSHConfig(ctx, "web")
	if err != nil {
		t.Fatalf("SSHConfig() error = %v", err)
	}
	second, err := c.SSHConfig(ctx, "web")
	if err != nil {
		t.Fatalf("SSHConfig() error = %v", err)
	}

	if len(m.runCalls) != 1 {
		t.Errorf("expected 1 subprocess call for repeated SSHConfig, got %d", len(m.runCalls))
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached config %v differs from first %v", second, first)
	}

	want := []string{"ssh-config", "web"}
	if !reflect.DeepEqual(m.runCalls[0], want) {
		t.Errorf("SSHConfig() ran %v, want %v", m.runCalls[0], want)
	}
}

func TestClientSSHConfigCachePerTarget(t *testing.T) {
	m := newMockRunnerWithOutput(sshConfigFixture)
	c := New("/tmp/env", WithRunner(m))
	ctx := context.Background()

	if _, err := c.SSHConfig(ctx, "web"); err != nil {
		t.Fatalf("SSHConfig(web) error = %v", err)
	}
	if _, err := c.SSHConfig(ctx, "db"); err != nil {
		t.Fatalf("SSHConfig(db) error = %v", err)
	}
	if _, err := c.SSHConfig(ctx, "web"); err != nil {
		t.Fatalf("SSHConfig(web) error = %v", err)
	}

	if len(m.runCalls) != 2 {
		t.Errorf("expected one subprocess call per target, got %d calls", len(m.runCalls))
	}
}

func TestClientInvalidateSSHConfig(t *testing.T) {
	m := newMockRunnerWithOutput(sshConfigFixture)
	c := New("/tmp/env", WithRunner(m))
	ctx := context.Background()

	if _, err := c.SSHConfig(ctx, "web"); err != nil {
		t.Fatalf("SSHConfig() error = %v", err)
	}
	c.InvalidateSSHConfig("web")
	if _, err := c.SSHConfig(ctx, "web"); err != nil {
		t.Fatalf("SSHConfig() error = %v", err)
	}

	if len(m.runCalls) != 2 {
		t.Errorf("expected invalidation to force a second subprocess call, got %d calls", len(m.runCalls))
	}
}

func TestClientSSHConfigParseErrorNotCached(t *testing.T) {
	m := newMockRunnerWithOutput("Host default\n  Lonesome\n")
	c := New("/tmp/env", WithRunner(m))
	ctx := context.Background()

	if _, err := c.SSHConfig(ctx, "web"); err == nil {
		t.Fatal("SSHConfig() expected parse error, got nil")
	}
	if _, err := c.SSHConfig(ctx, "web"); err == nil {
		t.Fatal("SSHConfig() expected parse error on retry, got nil")
	}

	if len(m.runCalls) != 2 {
		t.Errorf("expected failed parses to stay uncached, got %d calls", len(m.runCalls))
	}
}

func TestClientConfAccessors(t *testing.T) {
	m := newMockRunnerWithOutput(sshConfigFixture)
	c := New("/tmp/env", WithRunner(m))
	ctx := context.Background()

	tests := []struct {
		name string
		call func() (string, error)
		want string
	}{
		{name: "hostname", call: func() (string, error) { return c.Hostname(ctx, "") }, want: "127.0.0.1"},
		{name: "user", call: func() (string, error) { return c.User(ctx, "") }, want: "vagrant"},
		{name: "port", call: func() (string, error) { return c.Port(ctx, "") }, want: "2222"},
		{name: "keyfile", call: func() (string, error) { return c.Keyfile(ctx, "") }, want: "/home/user/.vagrant.d/insecure private key"},
		{name: "user hostname", call: func() (string, error) { return c.UserHostname(ctx, "") }, want: "vagrant@127.0.0.1"},
		{name: "user hostname port", call: func() (string, error) { return c.UserHostnamePort(ctx, "") }, want: "vagrant@127.0.0.1:2222"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.call()
			if err != nil {
				t.Fatalf("%s error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("%s = %q, want %q", tt.name, got, tt.want)
			}
		})
	}

	// every accessor reads through the same cached entry
	if len(m.runCalls) != 1 {
		t.Errorf("expected a single subprocess call across accessors, got %d", len(m.runCalls))
	}
}

func TestClientConfAccessorMissingKey(t *testing.T) {
	m := newMockRunnerWithOutput("Host default\n  HostName 127.0.0.1\n")
	c := New("/tmp/env", WithRunner(m))

	got, err := c.User(context.Background(), "")
	if err != nil {
		t.Fatalf("User() error = %v", err)
	}
	if got != "" {
		t.Errorf("User() = %q, want empty for missing key", got)
	}
}
