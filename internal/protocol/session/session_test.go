package session

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"net"
	"runtime"
	"testing"
	"time"

	"github.com/danmuck/pandalink/internal/protocol"
	"github.com/danmuck/pandalink/internal/testutil/testlog"
	"github.com/google/uuid"
)

func TestNextBackoffDelayDeterministicNoJitter(t *testing.T) {
	testlog.Start(t)
	cfg := BackoffConfig{
		InitialDelay: 250 * time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     5 * time.Second,
		Jitter:       false,
	}
	if got := NextBackoffDelay(cfg, 1, nil); got != 250*time.Millisecond {
		t.Fatalf("attempt1 got=%v", got)
	}
	if got := NextBackoffDelay(cfg, 2, nil); got != 500*time.Millisecond {
		t.Fatalf("attempt2 got=%v", got)
	}
	if got := NextBackoffDelay(cfg, 3, nil); got != time.Second {
		t.Fatalf("attempt3 got=%v", got)
	}
	if got := NextBackoffDelay(cfg, 6, nil); got != 5*time.Second {
		t.Fatalf("attempt6 got=%v", got)
	}
}

func TestNextBackoffDelayJitterBounds(t *testing.T) {
	testlog.Start(t)
	cfg := BackoffConfig{InitialDelay: 100 * time.Millisecond, Multiplier: 2.0, Jitter: true}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		got := NextBackoffDelay(cfg, 3, rng)
		if got < 200*time.Millisecond || got > 600*time.Millisecond {
			t.Fatalf("jittered delay out of range: %v", got)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"tcp ok", Config{Network: "TCP", Address: "127.0.0.1:9999"}, nil},
		{"abstract ok", Config{Network: NetworkAbstract, Address: "panda-1.1.0"}, nil},
		{"bad network", Config{Network: "udp", Address: "x:1"}, ErrInvalidNetwork},
		{"empty address", Config{Network: NetworkTCP, Address: " "}, ErrAddressRequired},
		{"missing port", Config{Network: NetworkTCP, Address: "localhost"}, ErrInvalidAddress},
		{"empty port", Config{Network: NetworkTCP, Address: "localhost:"}, ErrInvalidAddress},
		{"negative timeout", Config{Network: NetworkTCP, Address: "h:1", ReadTimeout: -time.Second}, ErrNegativeTimeout},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if tc.want == nil && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s: got=%v want=%v", tc.name, err, tc.want)
		}
	}
}

func TestWithDefaultsPicksAddressPerNetwork(t *testing.T) {
	testlog.Start(t)
	if got := (Config{}).WithDefaults(); got.Address != DefaultTCPAddress || got.Network != NetworkTCP {
		t.Fatalf("tcp defaults got=%+v", got)
	}
	got := Config{Network: NetworkAbstract}.WithDefaults()
	if got.Address != DefaultAbstractName {
		t.Fatalf("abstract default address got=%q", got.Address)
	}
	if got.Endpoint() != "abstract:"+DefaultAbstractName {
		t.Fatalf("endpoint got=%q", got.Endpoint())
	}
	network, addr := got.dialTarget()
	if network != "unix" || addr != "@"+DefaultAbstractName {
		t.Fatalf("dial target got=%s %s", network, addr)
	}
}

func TestWithDefaultsConnectAttempts(t *testing.T) {
	testlog.Start(t)
	if got := (Config{}).WithDefaults().MaxConnectAttempts; got != 1 {
		t.Fatalf("zero attempts got=%d want=1", got)
	}
	if got := (Config{MaxConnectAttempts: -1}).WithDefaults().MaxConnectAttempts; got != -1 {
		t.Fatalf("negative attempts got=%d want=-1", got)
	}
}

func TestDialTCPExactIO(t *testing.T) {
	testlog.Start(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 4)
		if _, err := io.ReadFull(conn, buf); err != nil {
			return
		}
		// echo back one byte at a time
		for _, b := range buf {
			if _, err := conn.Write([]byte{b}); err != nil {
				return
			}
		}
	}()

	cfg := Config{Network: NetworkTCP, Address: ln.Addr().String(), ReadTimeout: 2 * time.Second}
	tr, err := Dial(context.Background(), cfg, protocol.DefaultLimits())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer tr.Close()
	if tr.ID() == "" {
		t.Fatalf("expected session id")
	}

	if err := tr.WriteAll([]byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := tr.ReadExact(4)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != string([]byte{1, 2, 3, 4}) {
		t.Fatalf("echo got=% x", got)
	}

	_, err = tr.ReadExact(1)
	if !errors.Is(err, protocol.ErrConnectionClosed) {
		t.Fatalf("read after peer close got=%v", err)
	}
}

func TestDialAbstractSocket(t *testing.T) {
	testlog.Start(t)
	if runtime.GOOS != "linux" {
		t.Skip("abstract sockets are linux-only")
	}
	name := "pandalink-test-" + uuid.NewString()
	ln, err := net.Listen("unix", "@"+name)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			_, _ = conn.Write([]byte{0, 0, 0, 7})
			_ = conn.Close()
		}
	}()

	tr, err := Dial(context.Background(), Config{Network: NetworkAbstract, Address: name}, protocol.DefaultLimits())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer tr.Close()
	v, err := tr.Reader().ReadU32()
	if err != nil || v != 7 {
		t.Fatalf("read got=%d err=%v", v, err)
	}
}

func TestDialRetriesThenFails(t *testing.T) {
	testlog.Start(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	cfg := Config{
		Network:            NetworkTCP,
		Address:            addr,
		MaxConnectAttempts: 3,
		Backoff:            BackoffConfig{InitialDelay: time.Millisecond, Multiplier: 1},
	}
	start := time.Now()
	_, err = Dial(context.Background(), cfg, protocol.DefaultLimits())
	if err == nil {
		t.Fatalf("expected dial failure")
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("retries took too long")
	}
}

func TestDialHonorsCancelledContext(t *testing.T) {
	testlog.Start(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Dial(ctx, Config{Network: NetworkTCP, Address: "127.0.0.1:1", MaxConnectAttempts: -1}, protocol.DefaultLimits())
	if err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	testlog.Start(t)
	client, server := net.Pipe()
	defer server.Close()
	tr := NewTransport(client, DefaultConfig(), protocol.DefaultLimits())

	if err := tr.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if !tr.Closed() {
		t.Fatalf("expected closed")
	}
	if _, err := tr.ReadExact(4); !errors.Is(err, protocol.ErrConnectionClosed) {
		t.Fatalf("read after close got=%v", err)
	}
	if err := tr.WriteAll([]byte{1}); !errors.Is(err, protocol.ErrConnectionClosed) {
		t.Fatalf("write after close got=%v", err)
	}
}

func TestBindCancelClosesTransport(t *testing.T) {
	testlog.Start(t)
	client, server := net.Pipe()
	defer server.Close()
	tr := NewTransport(client, DefaultConfig(), protocol.DefaultLimits())

	ctx, cancel := context.WithCancel(context.Background())
	release := tr.Bind(ctx)
	defer release()

	errCh := make(chan error, 1)
	go func() {
		_, err := tr.ReadExact(4)
		errCh <- err
	}()
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, protocol.ErrConnectionClosed) {
			t.Fatalf("blocked read got=%v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("blocked read did not fail after cancel")
	}
	if !tr.Closed() {
		t.Fatalf("expected transport closed after cancel")
	}
}

func TestReadTimeoutIsClassified(t *testing.T) {
	testlog.Start(t)
	client, server := net.Pipe()
	defer server.Close()
	cfg := DefaultConfig()
	cfg.ReadTimeout = 20 * time.Millisecond
	tr := NewTransport(client, cfg, protocol.DefaultLimits())
	defer tr.Close()

	if _, err := tr.ReadExact(1); !errors.Is(err, protocol.ErrTimeout) {
		t.Fatalf("read timeout got=%v", err)
	}
}
