package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config for TOML, with pointers for booleans so an
// absent key is distinguishable from false.
type FileConfig struct {
	Address    string `toml:"address"`
	Port       int    `toml:"port"`
	MaxPayload int    `toml:"max_payload"`
	AcceptGzip *bool  `toml:"accept_gzip"`
	LogLevel   string `toml:"log_level"`
	Pretty     *bool  `toml:"pretty"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.dbgcast/config.toml if the user home
// directory is accessible, else "".
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".dbgcast", "config.toml")
	}
	return ""
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// ApplyFileConfig applies file values onto cfg, skipping any setting
// whose flag was set explicitly.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("address", fc.Address, &cfg.Address)
	s.setInt("port", fc.Port, &cfg.Port)
	s.setInt("max-payload", fc.MaxPayload, &cfg.MaxPayload)
	s.setBool("gzip", fc.AcceptGzip, &cfg.AcceptGzip)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setBool("pretty", fc.Pretty, &cfg.Pretty)
}
