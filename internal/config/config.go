package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.json"

// ErrNoConfigFile is returned alongside the defaults when the config file
// does not exist.
var ErrNoConfigFile = errors.New("config file not found")

type Configuration struct {
	LogLevel string `json:"logLevel" yaml:"logLevel" toml:"logLevel"`
	Dev      bool   `json:"dev" yaml:"dev" toml:"dev"`

	// Server
	Addr     string `json:"addr" yaml:"addr" toml:"addr"`
	TickRate int    `json:"tickRate" yaml:"tickRate" toml:"tickRate"`
	Seed     uint64 `json:"seed" yaml:"seed" toml:"seed"`

	// Client
	Server string `json:"server" yaml:"server" toml:"server"`
	Codec  string `json:"codec" yaml:"codec" toml:"codec"`
}

func Default() Configuration {
	return Configuration{
		LogLevel: "info",
		Addr:     "127.0.0.1:8080",
		TickRate: 60,
		Server:   "ws://127.0.0.1:8080/ws",
		Codec:    "proto",
	}
}

// LoadConfig reads the file at path, or config.json when path is empty, on
// top of the defaults. The format follows the extension: .yaml/.yml, .toml,
// anything else is JSON. A missing file yields the defaults and
// ErrNoConfigFile.
func LoadConfig(path string) (Configuration, error) {
	c := Default()
	if path == "" {
		path = DefaultPath
	}

	cf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, fmt.Errorf("%w: %s", ErrNoConfigFile, path)
	}
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(cf, &c)
	case ".toml":
		err = toml.Unmarshal(cf, &c)
	default:
		err = json.Unmarshal(cf, &c)
	}
	if err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.TickRate <= 0 {
		c.TickRate = Default().TickRate
	}
	return c, nil
}
