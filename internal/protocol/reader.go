package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// Reader decodes big-endian wire primitives from a byte stream. Every read
// either returns exactly the requested bytes or fails; there are no partial
// results.
type Reader struct {
	src      io.Reader
	limits   Limits
	consumed int64
	scratch  [8]byte
}

func NewReader(src io.Reader, limits Limits) *Reader {
	return &Reader{src: src, limits: limits}
}

// Consumed returns the number of bytes read so far.
func (r *Reader) Consumed() int64 { return r.consumed }

func (r *Reader) Limits() Limits { return r.limits }

// ReadExact blocks until n bytes are read.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, n)
	if err := r.fill(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (r *Reader) fill(buf []byte) error {
	n, err := io.ReadFull(r.src, buf)
	r.consumed += int64(n)
	if err != nil {
		return classify("read", err)
	}
	return nil
}

func (r *Reader) ReadU32() (uint32, error) {
	if err := r.fill(r.scratch[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(r.scratch[:4]), nil
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *Reader) ReadU64() (uint64, error) {
	if err := r.fill(r.scratch[:8]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(r.scratch[:8]), nil
}

// ReadF32 reads an IEEE-754 single precision value.
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadBool reads a 4-byte integer; nonzero is true.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadU32()
	return v != 0, err
}

// ReadCount reads an unsigned list count.
func (r *Reader) ReadCount() (int, error) {
	n, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	if exceeds(n, r.limits.MaxListCount) {
		return 0, fmt.Errorf("%w: count %d", ErrTooLarge, n)
	}
	return int(n), nil
}

// ReadString reads a signed length-prefixed UTF-8 string. A negative length
// is an error code followed by one ordinary string holding the message; the
// pair is returned as *ProtocolError.
func (r *Reader) ReadString() (string, error) {
	length, err := r.ReadI32()
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", r.ReadRemoteError(length)
	}
	return r.readUTF8(uint32(length))
}

// ReadRemoteError reads the message string that follows an error code the
// caller has already consumed and returns both as *ProtocolError.
func (r *Reader) ReadRemoteError(code int32) error {
	length, err := r.ReadU32()
	if err != nil {
		return err
	}
	msg, err := r.readUTF8(length)
	if err != nil {
		return err
	}
	return &ProtocolError{Code: code, Message: msg}
}

// ReadStringBody reads a string whose length prefix the caller has already
// consumed. Used where the prefix doubles as a status flag.
func (r *Reader) ReadStringBody(length uint32) (string, error) {
	return r.readUTF8(length)
}

func (r *Reader) readUTF8(length uint32) (string, error) {
	if length == 0 {
		return "", nil
	}
	if exceeds(length, r.limits.MaxStringBytes) {
		return "", fmt.Errorf("%w: string of %d bytes", ErrTooLarge, length)
	}
	buf, err := r.ReadExact(int(length))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", ErrInvalidUTF8
	}
	return string(buf), nil
}

// ReadBytes reads an unsigned length-prefixed opaque blob.
func (r *Reader) ReadBytes() ([]byte, error) {
	length, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if exceeds(length, r.limits.MaxBlobBytes) {
		return nil, fmt.Errorf("%w: blob of %d bytes", ErrTooLarge, length)
	}
	return r.ReadExact(int(length))
}

// ReadStatus reads a status word: zero is success, anything else is
// followed by a message string and returned as *ProtocolError.
func (r *Reader) ReadStatus() error {
	code, err := r.ReadI32()
	if err != nil {
		return err
	}
	if code == 0 {
		return nil
	}
	return r.ReadRemoteError(code)
}
