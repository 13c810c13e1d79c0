// Package config loads the client's TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/pandalink/internal/client"
	"github.com/danmuck/pandalink/internal/logging"
	"github.com/danmuck/pandalink/internal/protocol/session"
)

var ErrInvalidLogLevel = errors.New("config: invalid log level")

// Config is a resolved configuration: file values over built-in defaults.
type Config struct {
	Client   client.Config
	LogLevel string
}

type fileConfig struct {
	Network            string      `toml:"network"`
	Address            string      `toml:"address"`
	ConnectTimeout     string      `toml:"connect_timeout"`
	ReadTimeout        string      `toml:"read_timeout"`
	WriteTimeout       string      `toml:"write_timeout"`
	MaxConnectAttempts int         `toml:"max_connect_attempts"`
	Backoff            fileBackoff `toml:"backoff"`
	Limits             fileLimits  `toml:"limits"`
	Log                fileLog     `toml:"log"`
}

type fileBackoff struct {
	Initial    string  `toml:"initial"`
	Multiplier float64 `toml:"multiplier"`
	Max        string  `toml:"max"`
	Jitter     bool    `toml:"jitter"`
}

type fileLimits struct {
	MaxStringBytes uint32 `toml:"max_string_bytes"`
	MaxBlobBytes   uint32 `toml:"max_blob_bytes"`
	MaxChunkBytes  uint32 `toml:"max_chunk_bytes"`
	MaxListCount   uint32 `toml:"max_list_count"`
}

type fileLog struct {
	Level string `toml:"level"`
}

func Default() Config {
	return Config{Client: client.DefaultConfig(), LogLevel: "info"}
}

// Load reads path and applies every key it defines over Default.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: unknown keys in %s: %v", path, undecoded)
	}
	return apply(Default(), raw, meta)
}

// Decode is Load for an in-memory document.
func Decode(doc string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(doc, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: unknown keys: %v", undecoded)
	}
	return apply(Default(), raw, meta)
}

func apply(cfg Config, raw fileConfig, meta toml.MetaData) (Config, error) {
	sess := &cfg.Client.Session
	limits := &cfg.Client.Limits

	if meta.IsDefined("network") {
		sess.Network = session.NormalizeNetwork(session.Network(raw.Network))
		if !meta.IsDefined("address") && sess.Network == session.NetworkAbstract {
			sess.Address = session.DefaultAbstractName
		}
	}
	if meta.IsDefined("address") {
		sess.Address = strings.TrimSpace(raw.Address)
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"connect_timeout", raw.ConnectTimeout, &sess.ConnectTimeout},
		{"read_timeout", raw.ReadTimeout, &sess.ReadTimeout},
		{"write_timeout", raw.WriteTimeout, &sess.WriteTimeout},
		{"backoff.initial", raw.Backoff.Initial, &sess.Backoff.InitialDelay},
		{"backoff.max", raw.Backoff.Max, &sess.Backoff.MaxDelay},
	}
	for _, d := range durations {
		if !meta.IsDefined(strings.Split(d.key, ".")...) {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", d.key, err)
		}
		*d.dst = v
	}

	if meta.IsDefined("max_connect_attempts") {
		sess.MaxConnectAttempts = raw.MaxConnectAttempts
	}
	if meta.IsDefined("backoff", "multiplier") {
		sess.Backoff.Multiplier = raw.Backoff.Multiplier
	}
	if meta.IsDefined("backoff", "jitter") {
		sess.Backoff.Jitter = raw.Backoff.Jitter
	}

	if meta.IsDefined("limits", "max_string_bytes") {
		limits.MaxStringBytes = raw.Limits.MaxStringBytes
	}
	if meta.IsDefined("limits", "max_blob_bytes") {
		limits.MaxBlobBytes = raw.Limits.MaxBlobBytes
	}
	if meta.IsDefined("limits", "max_chunk_bytes") {
		limits.MaxChunkBytes = raw.Limits.MaxChunkBytes
	}
	if meta.IsDefined("limits", "max_list_count") {
		limits.MaxListCount = raw.Limits.MaxListCount
	}

	if meta.IsDefined("log", "level") {
		cfg.LogLevel = strings.TrimSpace(raw.Log.Level)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if err := cfg.Client.Session.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.LogLevel)
	}
	return nil
}
