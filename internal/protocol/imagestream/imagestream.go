// Package imagestream decodes the self-delimited chunked image container the
// service emits for screenshots and wallpapers. The payload has no length
// prefix; the decoder reads chunk by chunk until it has consumed the
// terminal chunk, and never reads past it.
package imagestream

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/danmuck/pandalink/internal/protocol"
)

const (
	SignatureLen   = 8
	chunkHeaderLen = 8
	chunkCRCLen    = 4
)

var (
	// Signature is the fixed 8-byte PNG file signature.
	Signature = [SignatureLen]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	// TerminalType ends the decode loop.
	TerminalType = [4]byte{'I', 'E', 'N', 'D'}
)

// Chunk describes one decoded chunk. Data aliases the decoder output.
type Chunk struct {
	Type [4]byte
	Data []byte
	CRC  uint32
}

func (c Chunk) TypeString() string { return string(c.Type[:]) }

// Valid reports whether CRC matches the checksum over type and data.
// Decode does not check it; the bytes are returned verbatim either way.
func (c Chunk) Valid() bool {
	return ChunkCRC(c.Type, c.Data) == c.CRC
}

// Image is the verbatim byte sequence plus a chunk index over it.
type Image struct {
	Raw    []byte
	Chunks []Chunk
}

// Decode reads one image from r: the signature, then every chunk up to and
// including the terminal chunk, appended verbatim.
func Decode(r *protocol.Reader) (Image, error) {
	sig, err := r.ReadExact(SignatureLen)
	if err != nil {
		return Image{}, err
	}
	if !bytes.Equal(sig, Signature[:]) {
		return Image{}, fmt.Errorf("%w: % x", protocol.ErrBadSignature, sig)
	}

	var out bytes.Buffer
	out.Write(sig)
	type span struct {
		typ        [4]byte
		start, end int
		crc        uint32
	}
	var spans []span
	limit := r.Limits().MaxChunkBytes

	for {
		head, err := r.ReadExact(chunkHeaderLen)
		if err != nil {
			return Image{}, err
		}
		length := binary.BigEndian.Uint32(head[0:4])
		if limit != 0 && length > limit {
			return Image{}, fmt.Errorf("%w: chunk of %d bytes", protocol.ErrTooLarge, length)
		}
		var typ [4]byte
		copy(typ[:], head[4:8])

		data, err := r.ReadExact(int(length))
		if err != nil {
			return Image{}, err
		}
		crc, err := r.ReadExact(chunkCRCLen)
		if err != nil {
			return Image{}, err
		}

		out.Write(head)
		start := out.Len()
		out.Write(data)
		end := out.Len()
		out.Write(crc)
		spans = append(spans, span{typ: typ, start: start, end: end, crc: binary.BigEndian.Uint32(crc)})

		if typ == TerminalType {
			break
		}
	}

	raw := out.Bytes()
	chunks := make([]Chunk, len(spans))
	for i, s := range spans {
		chunks[i] = Chunk{Type: s.typ, Data: raw[s.start:s.end:s.end], CRC: s.crc}
	}
	return Image{Raw: raw, Chunks: chunks}, nil
}

// Corrupt returns the types of chunks whose checksum does not match.
func (img Image) Corrupt() []string {
	var bad []string
	for _, c := range img.Chunks {
		if !c.Valid() {
			bad = append(bad, c.TypeString())
		}
	}
	return bad
}

// ChunkCRC computes the checksum AppendChunk callers normally want.
func ChunkCRC(typ [4]byte, data []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write(typ[:])
	h.Write(data)
	return h.Sum32()
}

// AppendChunk encodes one chunk the way Decode expects to read it.
func AppendChunk(dst []byte, typ [4]byte, data []byte, crc uint32) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(data)))
	dst = append(dst, typ[:]...)
	dst = append(dst, data...)
	return binary.BigEndian.AppendUint32(dst, crc)
}
