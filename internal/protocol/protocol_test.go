package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/danmuck/pandalink/internal/testutil/testlog"
)

// chunkReader hands out at most n bytes per Read.
type chunkReader struct {
	src io.Reader
	n   int
}

func (c chunkReader) Read(p []byte) (int, error) {
	if len(p) > c.n {
		p = p[:c.n]
	}
	return c.src.Read(p)
}

func encode(t *testing.T, fn func(w *Writer)) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	fn(w)
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return buf.Bytes()
}

func TestStringAndBytesRoundTrip(t *testing.T) {
	testlog.Start(t)
	for n := 0; n <= 300; n += 37 {
		s := strings.Repeat("é", n/2) + strings.Repeat("a", n%2)
		b := bytes.Repeat([]byte{0xFE}, n)
		wire := encode(t, func(w *Writer) {
			w.WriteString(s)
			w.WriteBytes(b)
		})
		r := NewReader(bytes.NewReader(wire), DefaultLimits())
		gotS, err := r.ReadString()
		if err != nil || gotS != s {
			t.Fatalf("n=%d string got=%q err=%v", n, gotS, err)
		}
		gotB, err := r.ReadBytes()
		if err != nil || !bytes.Equal(gotB, b) {
			t.Fatalf("n=%d bytes got=%d err=%v", n, len(gotB), err)
		}
		if r.Consumed() != int64(len(wire)) {
			t.Fatalf("n=%d consumed=%d want=%d", n, r.Consumed(), len(wire))
		}
	}
}

func TestScalarEncoding(t *testing.T) {
	testlog.Start(t)
	wire := encode(t, func(w *Writer) {
		w.WriteU32(200)
		w.WriteI32(-2)
		w.WriteU64(1 << 40)
		w.WriteF32(50.0)
		w.WriteBool(true)
	})
	want := []byte{
		0x00, 0x00, 0x00, 0xC8,
		0xFF, 0xFF, 0xFF, 0xFE,
		0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x42, 0x48, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x01,
	}
	if !bytes.Equal(wire, want) {
		t.Fatalf("wire got=% x\nwant=% x", wire, want)
	}

	r := NewReader(bytes.NewReader(wire), DefaultLimits())
	if v, _ := r.ReadU32(); v != 200 {
		t.Fatalf("u32 got=%d", v)
	}
	if v, _ := r.ReadI32(); v != -2 {
		t.Fatalf("i32 got=%d", v)
	}
	if v, _ := r.ReadU64(); v != 1<<40 {
		t.Fatalf("u64 got=%d", v)
	}
	if v, _ := r.ReadF32(); v != 50.0 {
		t.Fatalf("f32 got=%v", v)
	}
	if v, _ := r.ReadBool(); !v {
		t.Fatalf("bool got=false")
	}
}

func TestReadBoolAnyNonzeroIsTrue(t *testing.T) {
	testlog.Start(t)
	r := NewReader(bytes.NewReader([]byte{0, 0, 0, 0, 0, 0, 0x01, 0x00}), DefaultLimits())
	if v, err := r.ReadBool(); err != nil || v {
		t.Fatalf("zero got=%v err=%v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || !v {
		t.Fatalf("256 got=%v err=%v", v, err)
	}
}

func TestSentinelConsumesCodeAndMessageOnly(t *testing.T) {
	testlog.Start(t)
	wire := []byte{0xFF, 0xFF, 0xFF, 0xFE, 0x00, 0x00, 0x00, 0x07}
	wire = append(wire, "bad uid"...)
	wire = append(wire, 0x00, 0x00, 0x00, 0x2A)

	r := NewReader(bytes.NewReader(wire), DefaultLimits())
	_, err := r.ReadString()
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if perr.Code != -2 || perr.Message != "bad uid" {
		t.Fatalf("unexpected error %+v", perr)
	}
	if IsFatal(err) || !IsRemote(err) {
		t.Fatalf("remote error misclassified")
	}
	if r.Consumed() != 4+4+7 {
		t.Fatalf("consumed=%d want=%d", r.Consumed(), 4+4+7)
	}
	if v, err := r.ReadU32(); err != nil || v != 42 {
		t.Fatalf("next value got=%d err=%v", v, err)
	}
}

func TestEmptyStringIsNotSentinel(t *testing.T) {
	testlog.Start(t)
	r := NewReader(bytes.NewReader([]byte{0, 0, 0, 0}), DefaultLimits())
	s, err := r.ReadString()
	if err != nil || s != "" {
		t.Fatalf("got=%q err=%v", s, err)
	}
}

func TestFragmentationInvariance(t *testing.T) {
	testlog.Start(t)
	wire := encode(t, func(w *Writer) {
		w.WriteU32(3)
		w.WriteString("wlan-ß")
		w.WriteU64(99)
		w.WriteBytes([]byte{1, 2, 3, 4, 5})
		w.WriteI32(-7)
	})

	decode := func(src io.Reader) string {
		r := NewReader(src, DefaultLimits())
		n, err := r.ReadCount()
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		s, err := r.ReadString()
		if err != nil {
			t.Fatalf("string: %v", err)
		}
		u, err := r.ReadU64()
		if err != nil {
			t.Fatalf("u64: %v", err)
		}
		b, err := r.ReadBytes()
		if err != nil {
			t.Fatalf("bytes: %v", err)
		}
		i, err := r.ReadI32()
		if err != nil {
			t.Fatalf("i32: %v", err)
		}
		return fmt.Sprintf("%d|%s|%d|%x|%d", n, s, u, b, i)
	}

	want := decode(bytes.NewReader(wire))
	readers := map[string]io.Reader{
		"one":       iotest.OneByteReader(bytes.NewReader(wire)),
		"three":     chunkReader{src: bytes.NewReader(wire), n: 3},
		"half":      iotest.HalfReader(bytes.NewReader(wire)),
		"unbounded": bytes.NewReader(wire),
	}
	for name, src := range readers {
		if got := decode(src); got != want {
			t.Fatalf("%s: got=%q want=%q", name, got, want)
		}
	}
}

func TestInvalidUTF8IsFormatError(t *testing.T) {
	testlog.Start(t)
	r := NewReader(bytes.NewReader([]byte{0, 0, 0, 2, 0xC3, 0x28}), DefaultLimits())
	_, err := r.ReadString()
	if !errors.Is(err, ErrInvalidUTF8) || !errors.Is(err, ErrFormat) {
		t.Fatalf("got=%v", err)
	}
	if !IsFatal(err) {
		t.Fatalf("format errors must be fatal")
	}
}

func TestLimitsRejectOversizedPrefixes(t *testing.T) {
	testlog.Start(t)
	limits := Limits{MaxStringBytes: 4, MaxBlobBytes: 4, MaxListCount: 2}
	cases := map[string]func(r *Reader) error{
		"string": func(r *Reader) error { _, err := r.ReadString(); return err },
		"blob":   func(r *Reader) error { _, err := r.ReadBytes(); return err },
		"count":  func(r *Reader) error { _, err := r.ReadCount(); return err },
	}
	for name, read := range cases {
		r := NewReader(bytes.NewReader([]byte{0, 0, 0, 5}), limits)
		if err := read(r); !errors.Is(err, ErrTooLarge) || !errors.Is(err, ErrFormat) {
			t.Fatalf("%s: got=%v", name, err)
		}
	}
	r := NewReader(bytes.NewReader([]byte{0, 0, 0, 5, 'a', 'b', 'c', 'd', 'e'}), Limits{})
	if s, err := r.ReadString(); err != nil || s != "abcde" {
		t.Fatalf("zero limits must not cap: got=%q err=%v", s, err)
	}
}

func TestTruncatedStreamIsConnectionClosed(t *testing.T) {
	testlog.Start(t)
	r := NewReader(bytes.NewReader([]byte{0, 0, 0, 9, 'a', 'b'}), DefaultLimits())
	_, err := r.ReadString()
	if !errors.Is(err, ErrConnectionClosed) {
		t.Fatalf("got=%v", err)
	}
	if !IsFatal(err) {
		t.Fatalf("closed connection must be fatal")
	}
}

func TestReadStatus(t *testing.T) {
	testlog.Start(t)
	wire := []byte{0, 0, 0, 0, 0, 0, 0, 3, 0, 0, 0, 4}
	wire = append(wire, "busy"...)
	r := NewReader(bytes.NewReader(wire), DefaultLimits())
	if err := r.ReadStatus(); err != nil {
		t.Fatalf("ok status got=%v", err)
	}
	err := r.ReadStatus()
	var perr *ProtocolError
	if !errors.As(err, &perr) || perr.Code != 3 || perr.Message != "busy" {
		t.Fatalf("error status got=%v", err)
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestFlushClassifiesWriteErrors(t *testing.T) {
	testlog.Start(t)
	w := NewWriter(failingWriter{err: io.ErrClosedPipe})
	w.WriteU32(1)
	if err := w.Flush(); !errors.Is(err, ErrConnectionClosed) {
		t.Fatalf("closed pipe got=%v", err)
	}
	if w.Buffered() != 0 {
		t.Fatalf("buffer must reset after failed flush")
	}

	w = NewWriter(failingWriter{err: errors.New("disk on fire")})
	w.WriteU32(1)
	err := w.Flush()
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "write" {
		t.Fatalf("generic failure got=%v", err)
	}
	if !IsFatal(err) {
		t.Fatalf("io errors must be fatal")
	}
}
