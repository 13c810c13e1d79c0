package session

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danmuck/pandalink/internal/protocol"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const readBufferSize = 32 * 1024

// Transport owns one duplex byte stream to the service. Reads and writes
// are exact: they deliver every requested byte or fail.
type Transport struct {
	id     string
	cfg    Config
	conn   net.Conn
	reader *protocol.Reader
	writer *protocol.Writer

	mu          sync.Mutex
	ctxDeadline time.Time

	closeOnce sync.Once
	closed    atomic.Bool
	closeErr  error
}

// Dial connects to the configured endpoint, retrying with backoff up to
// MaxConnectAttempts. Retries only happen before any byte is exchanged.
func Dial(ctx context.Context, cfg Config, limits protocol.Limits) (*Transport, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	network, addr := cfg.dialTarget()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var attempt int
	for {
		attempt++
		dialer := net.Dialer{Timeout: cfg.ConnectTimeout}
		conn, err := dialer.DialContext(ctx, network, addr)
		if err == nil {
			t := NewTransport(conn, cfg, limits)
			log.Info().Str("session", t.id).Str("endpoint", cfg.Endpoint()).Int("attempt", attempt).Msg("session connected")
			return t, nil
		}
		log.Warn().Str("endpoint", cfg.Endpoint()).Int("attempt", attempt).Err(err).Msg("session dial failed")
		if ctx.Err() != nil || !shouldRetry(cfg, attempt) {
			return nil, fmt.Errorf("session: dial %s: %w", cfg.Endpoint(), err)
		}
		if err := sleepBackoff(ctx, cfg.Backoff, attempt, rng); err != nil {
			return nil, err
		}
	}
}

func shouldRetry(cfg Config, attempt int) bool {
	if cfg.MaxConnectAttempts <= 0 {
		return true
	}
	return attempt < cfg.MaxConnectAttempts
}

// NewTransport wraps an established connection.
func NewTransport(conn net.Conn, cfg Config, limits protocol.Limits) *Transport {
	t := &Transport{
		id:   uuid.NewString(),
		cfg:  cfg,
		conn: conn,
	}
	t.reader = protocol.NewReader(bufio.NewReaderSize(connReader{t}, readBufferSize), limits)
	t.writer = protocol.NewWriter(connWriter{t})
	return t
}

func (t *Transport) ID() string { return t.id }

func (t *Transport) Endpoint() string { return t.cfg.Endpoint() }

// Reader decodes from the stream. It is only valid while the caller holds
// the connection exclusively.
func (t *Transport) Reader() *protocol.Reader { return t.reader }

// Writer encodes into the stream; bytes are sent on Flush.
func (t *Transport) Writer() *protocol.Writer { return t.writer }

// ReadExact blocks until n bytes arrive or the stream fails.
func (t *Transport) ReadExact(n int) ([]byte, error) {
	return t.reader.ReadExact(n)
}

// WriteAll blocks until every byte of b is accepted or the stream fails.
// Anything already pending on Writer is sent first.
func (t *Transport) WriteAll(b []byte) error {
	t.writer.WriteRaw(b...)
	return t.writer.Flush()
}

// Bind ties one call to ctx: its deadline caps every I/O deadline and its
// cancellation closes the transport. The returned func must be called when
// the call completes.
func (t *Transport) Bind(ctx context.Context) func() {
	dl, _ := ctx.Deadline()
	t.mu.Lock()
	t.ctxDeadline = dl
	t.mu.Unlock()
	stop := context.AfterFunc(ctx, func() {
		log.Debug().Str("session", t.id).Err(ctx.Err()).Msg("session cancelled, closing transport")
		_ = t.Close()
	})
	return func() {
		stop()
		t.mu.Lock()
		t.ctxDeadline = time.Time{}
		t.mu.Unlock()
	}
}

func (t *Transport) deadline(timeout time.Duration) time.Time {
	t.mu.Lock()
	dl := t.ctxDeadline
	t.mu.Unlock()
	if timeout <= 0 {
		return dl
	}
	op := time.Now().Add(timeout)
	if dl.IsZero() || op.Before(dl) {
		return op
	}
	return dl
}

// Closed reports whether Close has run.
func (t *Transport) Closed() bool { return t.closed.Load() }

// Close releases the stream. Only the first call closes; later calls are
// no-ops returning nil.
func (t *Transport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		t.closeErr = t.conn.Close()
		err = t.closeErr
		log.Info().Str("session", t.id).Msg("session closed")
	})
	return err
}

type connReader struct{ t *Transport }

func (r connReader) Read(p []byte) (int, error) {
	if r.t.closed.Load() {
		return 0, protocol.ErrConnectionClosed
	}
	if err := r.t.conn.SetReadDeadline(r.t.deadline(r.t.cfg.ReadTimeout)); err != nil {
		return 0, err
	}
	return r.t.conn.Read(p)
}

type connWriter struct{ t *Transport }

func (w connWriter) Write(p []byte) (int, error) {
	if w.t.closed.Load() {
		return 0, protocol.ErrConnectionClosed
	}
	if err := w.t.conn.SetWriteDeadline(w.t.deadline(w.t.cfg.WriteTimeout)); err != nil {
		return 0, err
	}
	return w.t.conn.Write(p)
}
