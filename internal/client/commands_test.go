package client

import "testing"

func TestCommandNames(t *testing.T) {
	if got := CmdCPUUsage.String(); got != "cpu_usage" {
		t.Fatalf("CmdCPUUsage.String()=%q", got)
	}
	if got := Command(9999).String(); got != "cmd_9999" {
		t.Fatalf("unknown command name=%q", got)
	}
	if Command(100).Known() {
		t.Fatalf("shell command must not be in the table")
	}
	if !CmdScreenshot.Known() {
		t.Fatalf("screenshot must be in the table")
	}
}

func TestWiFiStateLabels(t *testing.T) {
	if WiFiEnabled.String() != "ENABLED" || WiFiState(9).String() != "UNKNOWN(9)" {
		t.Fatalf("unexpected labels %q %q", WiFiEnabled, WiFiState(9))
	}
}
