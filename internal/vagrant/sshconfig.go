package vagrant

import (
	"context"
	"strings"
	"unicode"
)

// SSHConfig holds the per-machine settings reported by
// `vagrant ssh-config`, keyed exactly as OpenSSH spells them, e.g.
// "HostName", "User", "Port", "IdentityFile".
type SSHConfig map[string]string

// Hostname returns the HostName entry, or "" when absent.
func (c SSHConfig) Hostname() string { return c["HostName"] }

// User returns the User entry, or "" when absent.
func (c SSHConfig) User() string { return c["User"] }

// Port returns the Port entry, or "" when absent.
func (c SSHConfig) Port() string { return c["Port"] }

// IdentityFile returns the IdentityFile entry, or "" when absent.
func (c SSHConfig) IdentityFile() string { return c["IdentityFile"] }

// UserHostname returns "user@hostname", or just the hostname when no
// User entry is present.
func (c SSHConfig) UserHostname() string {
	if user := c.User(); user != "" {
		return user + "@" + c.Hostname()
	}
	return c.Hostname()
}

// UserHostnamePort returns "user@hostname:port", dropping the user
// prefix and port suffix when the corresponding entries are absent.
func (c SSHConfig) UserHostnamePort() string {
	s := c.UserHostname()
	if port := c.Port(); port != "" {
		s += ":" + port
	}
	return s
}

// SSHConfig returns the ssh settings for target, which may be empty in
// a single-machine environment. Results are cached per target until a
// lifecycle operation invalidates them.
func (c *Client) SSHConfig(ctx context.Context, target string) (SSHConfig, error) {
	if conf, ok := c.cache.get(target); ok {
		return conf, nil
	}

	output, err := c.runner.Run(ctx, c.dir, "ssh-config", target)
	if err != nil {
		return nil, err
	}
	conf, err := parseSSHConfig(output)
	if err != nil {
		return nil, err
	}
	c.cache.put(target, conf)
	return conf, nil
}

// Hostname returns the hostname ssh uses to reach target, or "" when
// vagrant reports none.
func (c *Client) Hostname(ctx context.Context, target string) (string, error) {
	conf, err := c.SSHConfig(ctx, target)
	if err != nil {
		return "", err
	}
	return conf.Hostname(), nil
}

// User returns the ssh login user for target, or "" when vagrant
// reports none.
func (c *Client) User(ctx context.Context, target string) (string, error) {
	conf, err := c.SSHConfig(ctx, target)
	if err != nil {
		return "", err
	}
	return conf.User(), nil
}

// Port returns the ssh port for target, or "" when vagrant reports
// none.
func (c *Client) Port(ctx context.Context, target string) (string, error) {
	conf, err := c.SSHConfig(ctx, target)
	if err != nil {
		return "", err
	}
	return conf.Port(), nil
}

// Keyfile returns the ssh private key path for target, or "" when
// vagrant reports none.
func (c *Client) Keyfile(ctx context.Context, target string) (string, error) {
	conf, err := c.SSHConfig(ctx, target)
	if err != nil {
		return "", err
	}
	return conf.IdentityFile(), nil
}

// UserHostname returns "user@hostname" for target.
func (c *Client) UserHostname(ctx context.Context, target string) (string, error) {
	conf, err := c.SSHConfig(ctx, target)
	if err != nil {
		return "", err
	}
	return conf.UserHostname(), nil
}

// UserHostnamePort returns "user@hostname:port" for target.
func (c *Client) UserHostnamePort(ctx context.Context, target string) (string, error) {
	conf, err := c.SSHConfig(ctx, target)
	if err != nil {
		return "", err
	}
	return conf.UserHostnamePort(), nil
}

// parseSSHConfig reads the OpenSSH host block that `vagrant ssh-config`
// prints. Lines before the first "Host " line are banner noise and are
// dropped, as is that first line itself. Blank lines and comments are
// skipped. Each remaining line splits at its first whitespace run into
// a key and a value; a line with no value is a ParseError. Repeated
// keys keep the last value.
func parseSSHConfig(output string) (SSHConfig, error) {
	lines := strings.Split(output, "\n")

	i := 0
	for ; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "Host ") {
			i++
			break
		}
	}

	conf := SSHConfig{}
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := splitKeyValue(trimmed)
		if !ok {
			return nil, &ParseError{Line: lines[i], Output: output}
		}
		conf[key] = unquoteValue(value)
	}
	return conf, nil
}

// splitKeyValue splits an ssh-config line at its first whitespace run.
func splitKeyValue(line string) (key, value string, ok bool) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return "", "", false
	}
	return line[:i], strings.TrimSpace(line[i:]), true
}

// unquoteValue strips one pair of surrounding double quotes, as ssh
// puts around values containing spaces. Anything else passes through
// untouched.
func unquoteValue(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
