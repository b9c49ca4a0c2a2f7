package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"hash"
)

// drawSize is the number of stream bytes behind one draw.
const drawSize = 8

// Stream is the deterministic source of one tile. It is the concatenation of
// blocks HMAC-SHA256(seed, salt 0x00 index block), with index and block as
// big-endian uint64, and hands out 8 bytes per draw: four draws per block.
type Stream struct {
	mac    hash.Hash
	prefix []byte
	block  uint64
	buf    [sha256.Size]byte
	pos    int
}

// NewStream returns the stream for (seed, salt, index). Streams with any
// field different are independent.
func NewStream(seed, salt string, index uint64) *Stream {
	prefix := make([]byte, 0, len(salt)+1+drawSize)
	prefix = append(prefix, salt...)
	prefix = append(prefix, 0)
	prefix = binary.BigEndian.AppendUint64(prefix, index)

	return &Stream{
		mac:    hmac.New(sha256.New, []byte(seed)),
		prefix: prefix,
		pos:    sha256.Size,
	}
}

func (s *Stream) refill() {
	var counter [drawSize]byte
	binary.BigEndian.PutUint64(counter[:], s.block)

	s.mac.Reset()
	s.mac.Write(s.prefix)
	s.mac.Write(counter[:])
	s.mac.Sum(s.buf[:0])

	s.block++
	s.pos = 0
}

// Uint64 returns the next 8 stream bytes as a big-endian integer.
func (s *Stream) Uint64() uint64 {
	if s.pos+drawSize > len(s.buf) {
		s.refill()
	}
	v := binary.BigEndian.Uint64(s.buf[s.pos:])
	s.pos += drawSize
	return v
}

// Float64 returns the top 53 bits of the next draw scaled into [0, 1).
func (s *Stream) Float64() float64 {
	return unitFloat(s.Uint64())
}

func unitFloat(u uint64) float64 {
	return float64(u>>11) / (1 << 53)
}
