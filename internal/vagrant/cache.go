package vagrant

import (
	"sync"
)

// configCache memoizes parsed ssh configuration per target name. The
// empty target key holds the single-machine default. Lifecycle
// operations that change machine state invalidate the affected target;
// the cache never expires entries on its own.
type configCache struct {
	mu      sync.Mutex
	entries map[string]SSHConfig
}

func newConfigCache() *configCache {
	return &configCache{
		entries: make(map[string]SSHConfig),
	}
}

func (c *configCache) get(target string) (SSHConfig, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	conf, ok := c.entries[target]
	return conf, ok
}

func (c *configCache) put(target string, conf SSHConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[target] = conf
}

func (c *configCache) invalidate(target string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, target)
}

func (c *configCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]SSHConfig)
}

// InvalidateSSHConfig drops the memoized ssh configuration for target.
// Useful when something outside this Client changed machine state.
func (c *Client) InvalidateSSHConfig(target string) {
	c.cache.invalidate(target)
}

// InvalidateAllSSHConfig drops every memoized ssh configuration.
func (c *Client) InvalidateAllSSHConfig() {
	c.cache.invalidateAll()
}
