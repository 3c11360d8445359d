package vagrant

import "context"

// Box is one entry from `vagrant box list`.
type Box struct {
	// Name is the box name, e.g. "hashicorp/precise64".
	Name string `json:"name" yaml:"name"`

	// Provider the box was packaged for, e.g. "virtualbox".
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`

	// Version is the box version, "0" for unversioned boxes.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// BoxAddOptions control BoxAdd.
type BoxAddOptions struct {
	// Provider restricts the add to boxes packaged for one provider.
	Provider string

	// Force re-downloads the box even when one with the same name is
	// already installed.
	Force bool
}

func (o *BoxAddOptions) args() []string {
	if o == nil {
		return nil
	}
	var args []string
	if o.Force {
		args = append(args, "--force")
	}
	if o.Provider != "" {
		args = append(args, "--provider", o.Provider)
	}
	return args
}

// BoxAdd installs the box at url under the given name. An empty url
// fetches the box from the public catalog by name alone.
func (c *Client) BoxAdd(ctx context.Context, name, url string, opts *BoxAddOptions) error {
	args := []string{"box", "add", name}
	if url != "" {
		args = append(args, url)
	}
	args = append(args, opts.args()...)
	return c.run(ctx, args...)
}

// BoxList returns the boxes known to this vagrant installation. The
// listing is global, not scoped to the client's environment.
func (c *Client) BoxList(ctx context.Context) ([]Box, error) {
	output, err := c.runner.Run(ctx, c.dir, "box", "list", "--machine-readable")
	if err != nil {
		return nil, err
	}
	return parseBoxList(output)
}

// BoxUpdate updates the named box for one provider to its latest
// version.
func (c *Client) BoxUpdate(ctx context.Context, name, provider string) error {
	return c.run(ctx, "box", "update", name, provider)
}

// BoxRemove deletes the named box for one provider.
func (c *Client) BoxRemove(ctx context.Context, name, provider string) error {
	return c.run(ctx, "box", "remove", "--force", name, provider)
}

// parseBoxList assembles boxes from box-name, box-provider and
// box-version records. A box-name record opens a new box, so the one
// in progress is flushed when the next name arrives and again at end
// of input.
func parseBoxList(output string) ([]Box, error) {
	records, err := decodeMachineReadable(output)
	if err != nil {
		return nil, err
	}

	boxes := []Box{}
	var current Box
	started := false
	for _, r := range records {
		switch r.kind {
		case "box-name":
			if started {
				boxes = append(boxes, current)
			}
			current = Box{Name: DecodeData(r.data)}
			started = true
		case "box-provider":
			current.Provider = r.data
		case "box-version":
			current.Version = r.data
		}
	}
	if started {
		boxes = append(boxes, current)
	}
	return boxes, nil
}
