package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	before := testutil.ToFloat64(commandCalls.WithLabelValues("cpu_usage", OutcomeOK))
	RecordCommand("cpu_usage", OutcomeOK, 3*time.Millisecond)
	RecordCommand("wifi_info", OutcomeRemoteError, 5*time.Millisecond)
	RecordSession("tcp")

	after := testutil.ToFloat64(commandCalls.WithLabelValues("cpu_usage", OutcomeOK))
	if after != before+1 {
		t.Fatalf("cpu_usage ok counter got=%v want=%v", after, before+1)
	}
}

func TestOutcomeFor(t *testing.T) {
	cases := []struct {
		remote, fatal bool
		want          string
	}{
		{false, false, OutcomeOK},
		{true, false, OutcomeRemoteError},
		{false, true, OutcomeFatal},
	}
	for _, tc := range cases {
		if got := OutcomeFor(tc.remote, tc.fatal); got != tc.want {
			t.Fatalf("OutcomeFor(%v,%v)=%q want %q", tc.remote, tc.fatal, got, tc.want)
		}
	}
}

func TestLogCommandWritesSessionOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("session", "s-1").Logger()

	LogCommand(logger, "cpu_usage", OutcomeRemoteError, 2*time.Millisecond, errors.New("bad uid"))

	line := buf.String()
	if n := strings.Count(line, `"session"`); n != 1 {
		t.Fatalf("session key count got=%d want=1: %s", n, line)
	}
	if !strings.Contains(line, `"command":"cpu_usage"`) || !strings.Contains(line, `"level":"info"`) {
		t.Fatalf("unexpected log line: %s", line)
	}
}
