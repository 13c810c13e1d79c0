package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/danmuck/pandalink/internal/protocol"
	"github.com/danmuck/pandalink/internal/protocol/session"
	"github.com/danmuck/pandalink/internal/testutil/testlog"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	testlog.Start(t)
	cfg, err := Load(filepath.Join("testdata", "pandalink.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	sess := cfg.Client.Session
	if sess.Network != session.NetworkTCP || sess.Address != "10.0.0.7:9999" {
		t.Fatalf("unexpected endpoint: %s %s", sess.Network, sess.Address)
	}
	if sess.ReadTimeout != 3*time.Second {
		t.Fatalf("unexpected read timeout: %v", sess.ReadTimeout)
	}
	if sess.WriteTimeout != 10*time.Second {
		t.Fatalf("write timeout must keep its default: %v", sess.WriteTimeout)
	}
	if sess.MaxConnectAttempts != 4 {
		t.Fatalf("unexpected attempts: %d", sess.MaxConnectAttempts)
	}
	if sess.Backoff.InitialDelay != 100*time.Millisecond || sess.Backoff.Jitter {
		t.Fatalf("unexpected backoff: %+v", sess.Backoff)
	}
	if sess.Backoff.Multiplier != 2.0 {
		t.Fatalf("multiplier must keep its default: %v", sess.Backoff.Multiplier)
	}
	def := protocol.DefaultLimits()
	if cfg.Client.Limits.MaxBlobBytes != 1<<20 || cfg.Client.Limits.MaxStringBytes != def.MaxStringBytes {
		t.Fatalf("unexpected limits: %+v", cfg.Client.Limits)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
}

func TestAbstractNetworkDefaultsSocketName(t *testing.T) {
	testlog.Start(t)
	cfg, err := Decode(`network = "abstract"`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Client.Session.Address != session.DefaultAbstractName {
		t.Fatalf("unexpected address: %q", cfg.Client.Session.Address)
	}
}

func TestTemplatesDecode(t *testing.T) {
	testlog.Start(t)
	for _, kind := range []string{"tcp", "abstract"} {
		doc, err := Template(kind)
		if err != nil {
			t.Fatalf("%s template: %v", kind, err)
		}
		if _, err := Decode(doc); err != nil {
			t.Fatalf("%s template does not decode: %v", kind, err)
		}
	}
	if _, err := Template("serial"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestWriteTemplateRefusesOverwrite(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "pandalink.toml")
	if err := WriteTemplate(path, "tcp", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteTemplate(path, "tcp", false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := WriteTemplate(path, "abstract", true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load written template: %v", err)
	}
	if cfg.Client.Session.Network != session.NetworkAbstract {
		t.Fatalf("unexpected network: %s", cfg.Client.Session.Network)
	}
}

func TestDecodeRejectsBadValues(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"bad duration": `read_timeout = "soon"`,
		"bad network":  `network = "serial"`,
		"bad level":    "[log]\nlevel = \"loud\"",
		"unknown key":  `adress = "127.0.0.1:1"`,
		"missing port": `address = "127.0.0.1"`,
	}
	for name, doc := range cases {
		if _, err := Decode(doc); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	_, err := Decode("[log]\nlevel = \"loud\"")
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Fatalf("log level error got=%v", err)
	}
}
