// Package params holds the launcher's tunables. Defaults are compiled
// in as YAML; an optional YAML file overlays them.
package params

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	db "conflaunch/debug"
)

var defaults = `
node:
  binary: conflux
  config_file: conflux.conf
  flamegraph_file: conflux.svg
  log_file: nohup.out
  env:
    - RUST_BACKTRACE=1

throttle:
  script: ./throttle_bitcoin_bandwidth.sh
  default_bandwidth: 20

cgroup:
  prefix: limit
  controllers: net_cls
  exec: cgexec

rlimit:
  nofile: 65536

profiler:
  sudo: true
  flamegraph:
    packages:
      - linux-tools-common
      - linux-tools-generic
    cargo_install: flamegraph
    perf_event_paranoid: -1
  heaptrack:
    packages:
      - heaptrack
`

type Config struct {
	Node struct {
		// Node binary, looked up in PATH unless absolute.
		BINARY string `yaml:"binary"`
		// Per-node file names, relative to the node's working directory.
		CONFIG_FILE     string `yaml:"config_file"`
		FLAMEGRAPH_FILE string `yaml:"flamegraph_file"`
		LOG_FILE        string `yaml:"log_file"`
		// Extra environment for every node.
		ENV []string `yaml:"env"`
	} `yaml:"node"`
	Throttle struct {
		// Invoked once as `SCRIPT <bandwidth> <num_nodes>`.
		SCRIPT            string `yaml:"script"`
		DEFAULT_BANDWIDTH int    `yaml:"default_bandwidth"`
	} `yaml:"throttle"`
	Cgroup struct {
		PREFIX      string `yaml:"prefix"`
		CONTROLLERS string `yaml:"controllers"`
		EXEC        string `yaml:"exec"`
	} `yaml:"cgroup"`
	Rlimit struct {
		// Soft RLIMIT_NOFILE inherited by the nodes; 0 leaves it alone.
		NOFILE uint64 `yaml:"nofile"`
	} `yaml:"rlimit"`
	Profiler struct {
		SUDO       bool `yaml:"sudo"`
		Flamegraph struct {
			PACKAGES            []string `yaml:"packages"`
			CARGO_INSTALL       string   `yaml:"cargo_install"`
			PERF_EVENT_PARANOID int      `yaml:"perf_event_paranoid"`
		} `yaml:"flamegraph"`
		Heaptrack struct {
			PACKAGES []string `yaml:"packages"`
		} `yaml:"heaptrack"`
	} `yaml:"profiler"`
}

// Default returns a fresh copy of the compiled-in configuration.
func Default() *Config {
	config, err := decode(&Config{}, defaults)
	if err != nil {
		db.DFatalf("Yaml decode defaults err %v", err)
	}
	return config
}

func decode(config *Config, s string) (*Config, error) {
	d := yaml.NewDecoder(strings.NewReader(s))
	d.KnownFields(true)
	// An empty document leaves config untouched.
	if err := d.Decode(config); err != nil && err != io.EOF {
		return nil, err
	}
	return config, nil
}

// ReadConfig overlays the YAML in s onto the defaults.
func ReadConfig(s string) (*Config, error) {
	config, err := decode(Default(), s)
	if err != nil {
		return nil, fmt.Errorf("Yaml decode err %v", err)
	}
	if err := config.check(); err != nil {
		return nil, err
	}
	return config, nil
}

// ReadConfigFile overlays the YAML file at pn onto the defaults. An
// empty pn yields the defaults.
func ReadConfigFile(pn string) (*Config, error) {
	if pn == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(pn)
	if err != nil {
		return nil, fmt.Errorf("Read config %v err %v", pn, err)
	}
	config, err := ReadConfig(string(b))
	if err != nil {
		return nil, fmt.Errorf("Config %v: %v", pn, err)
	}
	db.DPrintf(db.PARAMS, "Read config %v: %v", pn, config)
	return config, nil
}

func (config *Config) check() error {
	if config.Node.BINARY == "" {
		return fmt.Errorf("node.binary not set")
	}
	if config.Node.CONFIG_FILE == "" {
		return fmt.Errorf("node.config_file not set")
	}
	if config.Cgroup.PREFIX == "" || config.Cgroup.CONTROLLERS == "" {
		return fmt.Errorf("cgroup prefix and controllers must be set")
	}
	if config.Cgroup.EXEC == "" {
		return fmt.Errorf("cgroup.exec not set")
	}
	if config.Throttle.DEFAULT_BANDWIDTH <= 0 {
		return fmt.Errorf("throttle.default_bandwidth must be positive")
	}
	return nil
}

func (config *Config) String() string {
	b, err := yaml.Marshal(config)
	if err != nil {
		db.DFatalf("Marshal config: %v", err)
	}
	return string(b)
}
