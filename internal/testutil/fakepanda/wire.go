package fakepanda

import (
	"encoding/binary"
	"math"
)

// Wire builds canned replies in the service's big-endian encoding.
type Wire struct {
	buf []byte
}

func (w *Wire) Bytes() []byte { return w.buf }

func (w *Wire) U32(v uint32) *Wire {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
	return w
}

func (w *Wire) I32(v int32) *Wire { return w.U32(uint32(v)) }

func (w *Wire) U64(v uint64) *Wire {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
	return w
}

func (w *Wire) F32(v float32) *Wire { return w.U32(math.Float32bits(v)) }

func (w *Wire) Bool(v bool) *Wire {
	if v {
		return w.U32(1)
	}
	return w.U32(0)
}

func (w *Wire) Str(s string) *Wire {
	w.U32(uint32(len(s)))
	w.buf = append(w.buf, s...)
	return w
}

func (w *Wire) Blob(b []byte) *Wire {
	w.U32(uint32(len(b)))
	w.buf = append(w.buf, b...)
	return w
}

// RemoteError writes the negative-length sentinel followed by its message.
func (w *Wire) RemoteError(code int32, msg string) *Wire {
	return w.I32(code).Str(msg)
}

func (w *Wire) Raw(b ...byte) *Wire {
	w.buf = append(w.buf, b...)
	return w
}
