package observability

import (
	"time"

	"github.com/rs/zerolog"
)

// OutcomeFor maps an error classification onto a metric outcome label.
func OutcomeFor(remote, fatal bool) string {
	switch {
	case fatal:
		return OutcomeFatal
	case remote:
		return OutcomeRemoteError
	default:
		return OutcomeOK
	}
}

// LogCommand writes one completion line per command: debug when it
// succeeded, info for a remote error, warn when the connection was lost.
// logger is expected to carry the session id already.
func LogCommand(logger zerolog.Logger, command, outcome string, elapsed time.Duration, err error) {
	event := logger.Debug()
	switch outcome {
	case OutcomeFatal:
		event = logger.Warn()
	case OutcomeRemoteError:
		event = logger.Info()
	}
	event.
		Str("command", command).
		Str("outcome", outcome).
		Dur("elapsed", elapsed).
		Err(err).
		Msg("command")
}
