package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Command outcomes used as metric labels.
const (
	OutcomeOK          = "ok"
	OutcomeRemoteError = "remote_error"
	OutcomeFatal       = "fatal"
)

var (
	registerOnce sync.Once

	commandCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pandalink",
			Subsystem: "client",
			Name:      "commands_total",
			Help:      "Total commands issued to the device service.",
		},
		[]string{"command", "outcome"},
	)
	commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pandalink",
			Subsystem: "client",
			Name:      "command_duration_seconds",
			Help:      "Command round-trip duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"command"},
	)
	sessionsOpened = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pandalink",
			Subsystem: "client",
			Name:      "sessions_total",
			Help:      "Connections opened to the device service.",
		},
		[]string{"network"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(commandCalls, commandDuration, sessionsOpened)
	})
}

func RecordCommand(command, outcome string, duration time.Duration) {
	RegisterMetrics()
	commandCalls.WithLabelValues(command, outcome).Inc()
	commandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

func RecordSession(network string) {
	RegisterMetrics()
	sessionsOpened.WithLabelValues(network).Inc()
}
