package vagrant

import (
	"context"
	"strings"
)

// Markers vagrant prints on snapshot edge conditions. Both arrive on
// stdout with a zero exit, so they are detected by content.
const (
	snapshotNonePushed = "No pushed snapshot found!"
	snapshotNoneTaken  = "No snapshots have been taken yet!"
)

// SnapshotPush takes a snapshot and pushes it onto the snapshot stack.
func (c *Client) SnapshotPush(ctx context.Context) error {
	return c.run(ctx, "snapshot", "push")
}

// SnapshotPop restores the most recently pushed snapshot and removes
// it from the stack. Returns ErrNoPushedSnapshot when the stack is
// empty.
func (c *Client) SnapshotPop(ctx context.Context) error {
	output, err := c.runner.Run(ctx, c.dir, "snapshot", "pop")
	if err != nil {
		return err
	}
	if strings.Contains(output, snapshotNonePushed) {
		return ErrNoPushedSnapshot
	}
	return nil
}

// SnapshotSave takes a named snapshot.
func (c *Client) SnapshotSave(ctx context.Context, name string) error {
	return c.run(ctx, "snapshot", "save", name)
}

// SnapshotRestore restores the named snapshot.
func (c *Client) SnapshotRestore(ctx context.Context, name string) error {
	return c.run(ctx, "snapshot", "restore", name)
}

// SnapshotList returns the names of saved snapshots. An environment
// with no snapshots yields an empty slice, never an error.
func (c *Client) SnapshotList(ctx context.Context) ([]string, error) {
	output, err := c.runner.Run(ctx, c.dir, "snapshot", "list")
	if err != nil {
		return nil, err
	}
	if strings.Contains(output, snapshotNoneTaken) {
		return []string{}, nil
	}

	names := []string{}
	for _, line := range strings.Split(output, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names, nil
}

// SnapshotDelete deletes the named snapshot.
func (c *Client) SnapshotDelete(ctx context.Context, name string) error {
	return c.run(ctx, "snapshot", "delete", name)
}
