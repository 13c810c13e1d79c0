package protocol

import (
	"encoding/binary"
	"io"
	"math"
)

// Writer encodes wire primitives into a pending buffer. Nothing reaches the
// stream until Flush, which hands the whole buffer to the sink in one call.
type Writer struct {
	dst io.Writer
	buf []byte
}

func NewWriter(dst io.Writer) *Writer {
	return &Writer{dst: dst, buf: make([]byte, 0, 64)}
}

// Buffered returns the number of bytes waiting for Flush.
func (w *Writer) Buffered() int { return len(w.buf) }

func (w *Writer) WriteU32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteI32(v int32) {
	w.WriteU32(uint32(v))
}

func (w *Writer) WriteU64(v uint64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

func (w *Writer) WriteF32(v float32) {
	w.WriteU32(math.Float32bits(v))
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteU32(1)
		return
	}
	w.WriteU32(0)
}

// WriteString writes u32(len(utf8 bytes)) followed by the bytes.
func (w *Writer) WriteString(s string) {
	w.WriteU32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *Writer) WriteBytes(b []byte) {
	w.WriteU32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// WriteRaw appends bytes with no framing.
func (w *Writer) WriteRaw(b ...byte) {
	w.buf = append(w.buf, b...)
}

// Flush writes every pending byte or fails.
func (w *Writer) Flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	pending := w.buf
	for len(pending) > 0 {
		n, err := w.dst.Write(pending)
		pending = pending[n:]
		if err != nil {
			w.buf = w.buf[:0]
			return classify("write", err)
		}
		if n == 0 {
			w.buf = w.buf[:0]
			return classify("write", io.ErrShortWrite)
		}
	}
	w.buf = w.buf[:0]
	return nil
}
