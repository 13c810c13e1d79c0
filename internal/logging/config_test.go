package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]struct {
		want zerolog.Level
		ok   bool
	}{
		"":         {zerolog.InfoLevel, false},
		"DEBUG":    {zerolog.DebugLevel, true},
		" warning": {zerolog.WarnLevel, true},
		"off":      {zerolog.Disabled, true},
		"loud":     {zerolog.InfoLevel, false},
	}
	for raw, tc := range cases {
		got, ok := ParseLevel(raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLevel(%q)=(%v,%v) want (%v,%v)", raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestEnvOverridesWinOverProfile(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "true")
	t.Setenv(EnvLogNoColor, "1")
	t.Setenv(EnvLogBypass, "nope")

	cfg := defaultConfig(ProfileTest)
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel {
		t.Fatalf("level got=%v want=error", cfg.Level)
	}
	if !cfg.Timestamp || !cfg.NoColor {
		t.Fatalf("bool overrides not applied: %+v", cfg)
	}
	if cfg.Bypass {
		t.Fatalf("unparseable bypass must be ignored")
	}
}

func TestSetLevelIgnoresUnknown(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	if !SetLevel("warn") || zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("SetLevel(warn) not applied")
	}
	if SetLevel("shouting") {
		t.Fatalf("unknown level accepted")
	}
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("unknown level changed global level")
	}
}
