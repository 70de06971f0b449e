// Package config loads node configuration from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tontinelabs/tontine/types"
)

// Config is the on-disk node configuration.
type Config struct {
	// Network selects the gossip topic namespace.
	Network string `yaml:"network"`
	// Listen holds libp2p listen multiaddrs.
	Listen []string `yaml:"listen"`
	// Bootnodes holds bootnode multiaddrs.
	Bootnodes []string `yaml:"bootnodes"`
	// DataDir is the pebble database directory. Empty means in-memory.
	DataDir string `yaml:"data_dir"`
	// Mirror runs the node as a read-only replica with no local ledger.
	Mirror bool `yaml:"mirror"`
	// Reap enables the reaper sweep that kills lapsed participants.
	Reap bool `yaml:"reap"`
	// Keepers lists hex addresses the node heartbeats automatically every
	// epoch.
	Keepers []string `yaml:"keepers"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Load reads a Config from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// KeeperAddresses parses the keeper entries into addresses.
func (c *Config) KeeperAddresses() ([]types.Address, error) {
	out := make([]types.Address, 0, len(c.Keepers))
	for i, s := range c.Keepers {
		addr, err := types.ParseAddress(s)
		if err != nil {
			return nil, fmt.Errorf("keeper %d: %w", i, err)
		}
		out = append(out, addr)
	}
	return out, nil
}

// bootnodeEntry represents a bootnode with named fields (legacy format).
type bootnodeEntry struct {
	Multiaddr string `yaml:"multiaddr"`
}

// LoadBootnodes loads a standalone nodes.yaml file and returns raw bootnode
// strings. Supports both formats:
//   - Named:  [{multiaddr: "/ip4/..."}]
//   - Plain:  ["/ip4/..."]
func LoadBootnodes(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nodes: %w", err)
	}

	// Try the named struct format first.
	var entries []bootnodeEntry
	if err := yaml.Unmarshal(data, &entries); err == nil && len(entries) > 0 && entries[0].Multiaddr != "" {
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Multiaddr != "" {
				out = append(out, e.Multiaddr)
			}
		}
		return out, nil
	}

	// Fall back to a plain string list.
	var strs []string
	if err := yaml.Unmarshal(data, &strs); err != nil {
		return nil, fmt.Errorf("parse nodes: %w", err)
	}
	return strs, nil
}
