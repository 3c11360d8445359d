package vagrant

import (
	"errors"
	"fmt"
)

// ErrNoPushedSnapshot is returned by SnapshotPop when no snapshot has
// been pushed onto the stack.
var ErrNoPushedSnapshot = errors.New("no pushed snapshot found")

// ParseError reports vagrant output that did not match the expected
// textual grammar. The full raw output is retained for diagnosis; a
// shape change in vagrant's output should fail loudly here rather than
// be masked by a default.
type ParseError struct {
	// Line is the offending line.
	Line string

	// Output is the complete raw output the line came from.
	Output string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse vagrant output line %q", e.Line)
}
