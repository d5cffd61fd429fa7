// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Store    StoreConfig    `toml:"store"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Mode            *string `toml:"mode"`
	Set             *string `toml:"set"`
	BasicCount      *int    `toml:"basic-count"`
	DakuonCount     *int    `toml:"dakuon-count"`
	Order           *string `toml:"order"`
	Options         *int    `toml:"options"`
	FeedbackDelayMs *int    `toml:"feedback-delay-ms"`
}

// StoreConfig maps persistence settings.
type StoreConfig struct {
	Backend        *string `toml:"backend"`
	Path           *string `toml:"path"`
	RedisAddr      *string `toml:"redis-addr"`
	RedisPassword  *string `toml:"redis-password"`
	RedisDB        *int    `toml:"redis-db"`
	RedisKeyPrefix *string `toml:"redis-key-prefix"`
}

// ServerConfig maps HTTP API settings.
type ServerConfig struct {
	Addr           *string  `toml:"addr"`
	AllowedOrigins []string `toml:"allowed-origins"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Template is written by `kanadrill config` when no file exists yet.
const Template = `# kanadrill configuration. Command-line flags take precedence.

[practice]
# match: romaji-hiragana | romaji-katakana | hiragana-katakana
# quiz and type: hiragana | katakana | both
# mode = "romaji-hiragana"
# set = "basic"            # basic | dakuon | all | custom
# basic-count = 10         # used when set = "custom"
# dakuon-count = 5
# order = "shuffled"       # shuffled | sequential
# options = 5              # quiz choices per question
# feedback-delay-ms = 1500

[store]
# backend = "sqlite"       # sqlite | redis | memory
# path = "~/.local/share/kanadrill/kanadrill.db"
# redis-addr = "localhost:6379"
# redis-password = ""
# redis-db = 0
# redis-key-prefix = "kanadrill:"

[server]
# addr = ":8080"
# allowed-origins = ["http://localhost:3000"]

[log]
# level = "info"           # debug | info | warn | error
# format = "text"          # text | json
`
