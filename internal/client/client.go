package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danmuck/pandalink/internal/observability"
	"github.com/danmuck/pandalink/internal/protocol"
	"github.com/danmuck/pandalink/internal/protocol/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrClosed = errors.New("client: closed")
	ErrBroken = errors.New("client: connection broken")
	// ErrUnacked marks a reply abandoned before its acknowledgement. The
	// service is still waiting on the ack, so the stream offset is lost.
	ErrUnacked = errors.New("client: reply abandoned before acknowledgement")
)

// Config is everything needed to open a Client.
type Config struct {
	Session session.Config
	Limits  protocol.Limits
}

func DefaultConfig() Config {
	return Config{
		Session: session.DefaultConfig(),
		Limits:  protocol.DefaultLimits(),
	}
}

// Client runs commands against one service connection, strictly one at a
// time. After a fatal error the connection is closed and every later call
// fails with ErrBroken.
type Client struct {
	t      *session.Transport
	logger zerolog.Logger
	stats  *latencyStats

	closed atomic.Bool

	mu     sync.Mutex
	broken error
}

// Connect dials the configured endpoint and returns a ready Client.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	t, err := session.Dial(ctx, cfg.Session, cfg.Limits)
	if err != nil {
		return nil, err
	}
	observability.RecordSession(string(session.NormalizeNetwork(cfg.Session.Network)))
	return New(t), nil
}

// New takes ownership of an established transport.
func New(t *session.Transport) *Client {
	return &Client{
		t:      t,
		logger: log.Logger.With().Str("session", t.ID()).Logger(),
		stats:  newLatencyStats(),
	}
}

func (c *Client) ID() string { return c.t.ID() }

func (c *Client) Endpoint() string { return c.t.Endpoint() }

// Err returns the fatal error that broke the connection, if any.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.broken
}

// Close releases the connection. It is safe to call more than once and
// from another goroutine, where it fails the call in flight.
func (c *Client) Close() error {
	c.closed.Store(true)
	return c.t.Close()
}

// Stats summarizes call latencies per command observed on this Client.
func (c *Client) Stats() map[string]LatencySummary {
	return c.stats.snapshot()
}

// Do runs one command. Remote errors come back as *protocol.ProtocolError
// and leave the Client usable; anything else is fatal. So is any error on a
// command whose reply must be acknowledged, remote or not.
func Do[T any](ctx context.Context, c *Client, op Op[T]) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return zero, ErrClosed
	}
	if c.broken != nil {
		return zero, fmt.Errorf("%w: %w", ErrBroken, c.broken)
	}
	if err := ctx.Err(); err != nil {
		return zero, contextError(err, nil)
	}

	release := c.t.Bind(ctx)
	start := time.Now()
	v, err := exchange(c.t.Writer(), c.t.Reader(), op)
	elapsed := time.Since(start)
	release()

	if err != nil && !protocol.IsRemote(err) && ctx.Err() != nil {
		err = contextError(ctx.Err(), err)
	}

	fatal := protocol.IsFatal(err)
	if err != nil && len(op.Ack) > 0 && !fatal {
		err = fmt.Errorf("%w: %w", ErrUnacked, err)
		fatal = true
	}

	name := op.Cmd.String()
	outcome := observability.OutcomeFor(protocol.IsRemote(err), fatal)
	observability.RecordCommand(name, outcome, elapsed)
	observability.LogCommand(c.logger, name, outcome, elapsed, err)
	c.stats.record(name, elapsed)

	if fatal {
		c.broken = err
		_ = c.t.Close()
		return zero, err
	}
	if err != nil {
		return zero, err
	}
	return v, nil
}

// contextError maps a finished context onto the protocol taxonomy: a
// deadline is a timeout, a cancel is a closed connection.
func contextError(ctxErr, cause error) error {
	sentinel := protocol.ErrConnectionClosed
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		sentinel = protocol.ErrTimeout
	}
	if cause == nil {
		return fmt.Errorf("%w: %w", sentinel, ctxErr)
	}
	if errors.Is(cause, sentinel) {
		return cause
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
