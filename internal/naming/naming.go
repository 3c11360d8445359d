// Package naming provides naming conventions shared across drover:
// machine and environment name validation, hostname checks, and derived
// snapshot names.
//
// These rules are version-independent and shared across all API
// versions.
package naming

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// DefaultMachineName is the name vagrant gives the only machine of a
// single-machine environment.
const DefaultMachineName = "default"

// ValidateMachineName checks a machine or environment name.
// Must start and end with alphanumeric, can contain alphanumeric,
// hyphens, underscores. Matches what vagrant accepts for machine
// definitions.
func ValidateMachineName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}

	namePattern := `^[a-z0-9][a-z0-9_-]*[a-z0-9]$`
	if len(name) == 1 {
		// Single character names just need to be alphanumeric
		namePattern = `^[a-z0-9]$`
	}
	matched, err := regexp.MatchString(namePattern, name)
	if err != nil {
		return fmt.Errorf("name validation error: %w", err)
	}
	if !matched {
		return fmt.Errorf("name must start and end with alphanumeric characters and contain only alphanumeric, hyphens, or underscores, got %q", name)
	}
	return nil
}

// ValidateHostname checks a guest hostname. Labels follow RFC 952/1123:
// alphanumeric and hyphens, 1-63 chars, start/end with alphanumeric.
// A single label without dots is allowed; guests do not need a domain.
func ValidateHostname(hostname string) error {
	if hostname == "" {
		return fmt.Errorf("hostname is required")
	}

	hostnamePattern := `^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)*$`
	matched, err := regexp.MatchString(hostnamePattern, hostname)
	if err != nil {
		return fmt.Errorf("hostname validation error: %w", err)
	}
	if !matched {
		return fmt.Errorf("hostname must be a valid RFC 1123 name (e.g., web or web.example.com), got %q", hostname)
	}
	return nil
}

// SnapshotName derives a unique snapshot name from a prefix.
// Format: {prefix}-{8 hex digits}
//
// Example: prefix "clean" → clean-3f2a9c1d
func SnapshotName(prefix string) string {
	if prefix == "" {
		prefix = "snap"
	}
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// SanitizeMachineName folds a free-form name into one
// ValidateMachineName accepts: lowercased, disallowed characters
// replaced with hyphens, leading and trailing separators trimmed.
// A name with nothing salvageable becomes DefaultMachineName.
func SanitizeMachineName(name string) string {
	lowered := strings.ToLower(name)
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '-'
		}
	}, lowered)
	sanitized = strings.Trim(sanitized, "-_")
	if sanitized == "" {
		return DefaultMachineName
	}
	return sanitized
}
