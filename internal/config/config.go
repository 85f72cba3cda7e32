// Package config loads the daemon/CLI's TOML configuration file, the way
// cmd/tqw loads world-data TOML via BurntSushi/toml.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration for cmajd and cmajc.
type Config struct {
	// CacheDir is where cmajd's grammar store persists compiled grammars
	// between runs.
	CacheDir string `toml:"cache_dir"`

	// ServerAddr is the address cmajd listens on, e.g. ":8080".
	ServerAddr string `toml:"server_addr"`

	// AuthSecretFile names a file holding an HMAC secret for JWTs. cmajd does
	// not read this field; its token secret comes from --secret,
	// CMAJ_TOKEN_SECRET, or a generated random value.
	AuthSecretFile string `toml:"auth_secret_file"`

	// DefaultMatcherSet names a built-in lexical.Matcher set (see
	// internal/langmatchers). Neither cmajd nor cmajc reads this field; both
	// always scan input with langmatchers.Matchers().
	DefaultMatcherSet string `toml:"default_matcher_set"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		CacheDir:          "./cmaj-cache",
		ServerAddr:        ":8484",
		AuthSecretFile:    "",
		DefaultMatcherSet: "lang",
	}
}

// Load reads and parses a TOML config file at path, filling in Default()
// for any field the file doesn't set.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}

	return cfg, nil
}
