package engine

import (
	"crypto/rand"
	"encoding/binary"
)

// Source yields uniform floats in [0, 1).
type Source interface {
	Float64() float64
}

// SourceMode selects where tile randomness comes from.
type SourceMode string

const (
	// SourceModeSeeded derives every draw from a per-tile Stream keyed by a
	// user seed. Runs with the same seed are identical.
	SourceModeSeeded SourceMode = "seeded"

	// SourceModeEntropy draws from crypto/rand. Runs are not reproducible.
	SourceModeEntropy SourceMode = "entropy"
)

// SelectionSalt keys the stream used to pick the sample selection.
const SelectionSalt = "select"

// Sources hands out one Source per tile index plus one for the sample
// selection.
type Sources interface {
	ForTile(index int) Source
	ForSelection() Source
	Mode() SourceMode
}

// NewSources returns seeded sources when seed is non-empty and entropy
// sources otherwise. salt namespaces the per-tile streams, usually the tile
// type name.
func NewSources(seed, salt string) Sources {
	if seed == "" {
		return entropySources{}
	}
	return &seededSources{seed: seed, salt: salt}
}

type seededSources struct {
	seed string
	salt string
}

func (s *seededSources) ForTile(index int) Source {
	return NewStream(s.seed, s.salt, uint64(index))
}

func (s *seededSources) ForSelection() Source {
	return NewStream(s.seed, SelectionSalt, 0)
}

func (s *seededSources) Mode() SourceMode { return SourceModeSeeded }

type entropySources struct{}

func (entropySources) ForTile(int) Source   { return Entropy{} }
func (entropySources) ForSelection() Source { return Entropy{} }
func (entropySources) Mode() SourceMode     { return SourceModeEntropy }

// Entropy reads crypto/rand.
type Entropy struct{}

// Float64 returns 53 random bits scaled into [0, 1).
func (Entropy) Float64() float64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("engine: crypto/rand unavailable: " + err.Error())
	}
	return unitFloat(binary.BigEndian.Uint64(b[:]))
}
