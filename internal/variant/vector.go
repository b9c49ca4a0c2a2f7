// Package variant models the binary design space of a tile: six on/off
// toggles, one per hex edge, and the integer IDs derived from them.
package variant

import (
	"errors"
	"fmt"
	"strings"
)

// FlagCount is the number of toggles in a Vector.
const FlagCount = 6

// SpaceSize is the number of distinct vectors.
const SpaceSize = 1 << FlagCount

// IDOffset keeps every ID at seven digits and out of the range of any bare
// digit-packed value.
const IDOffset = 1_000_000

// ErrInvalidID is returned by Decode for integers outside the encoding's image.
var ErrInvalidID = errors.New("invalid combination id")

// Vector is an ordered set of binary flags.
type Vector [FlagCount]uint8

// ID is the digit-packed encoding of a Vector.
type ID int

// Enumerate returns every vector in lexicographic product order: the first
// flag varies slowest, so index 1 is [0 0 0 0 0 1].
func Enumerate() []Vector {
	out := make([]Vector, SpaceSize)
	for i := range out {
		out[i] = AtIndex(i)
	}
	return out
}

// AtIndex returns the vector at position i of Enumerate.
func AtIndex(i int) Vector {
	if i < 0 || i >= SpaceSize {
		panic(fmt.Sprintf("variant: index %d out of range [0, %d)", i, SpaceSize))
	}
	var v Vector
	for j := 0; j < FlagCount; j++ {
		v[j] = uint8(i>>(FlagCount-1-j)) & 1
	}
	return v
}

// Index is the inverse of AtIndex.
func (v Vector) Index() int {
	i := 0
	for j := 0; j < FlagCount; j++ {
		i = i<<1 | int(v[j])
	}
	return i
}

// Encode packs flag j into decimal digit j and adds IDOffset.
// A flag other than 0 or 1 is a programming error and panics.
func Encode(v Vector) ID {
	id := IDOffset
	pow := 1
	for j, f := range v {
		if f > 1 {
			panic(fmt.Sprintf("variant: flag %d has non-binary value %d", j, f))
		}
		id += int(f) * pow
		pow *= 10
	}
	return ID(id)
}

// Decode reverses Encode.
func Decode(id ID) (Vector, error) {
	var v Vector
	rest := int(id) - IDOffset
	if rest < 0 {
		return v, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	for j := 0; j < FlagCount; j++ {
		d := rest % 10
		if d > 1 {
			return Vector{}, fmt.Errorf("%w: %d", ErrInvalidID, id)
		}
		v[j] = uint8(d)
		rest /= 10
	}
	if rest != 0 {
		return Vector{}, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return v, nil
}

// Rotate shifts flags by steps positions, the same index offset a tile
// rotation applies to its per-direction edge types.
func (v Vector) Rotate(steps int) Vector {
	steps = ((steps % FlagCount) + FlagCount) % FlagCount
	var out Vector
	for j := range v {
		out[(j+steps)%FlagCount] = v[j]
	}
	return out
}

// Canonical returns the rotation of v with the smallest index.
func (v Vector) Canonical() Vector {
	best := v
	for s := 1; s < FlagCount; s++ {
		if r := v.Rotate(s); r.Index() < best.Index() {
			best = r
		}
	}
	return best
}

// IsCanonical reports whether v is the representative of its rotation class.
func (v Vector) IsCanonical() bool {
	return v.Canonical() == v
}

// Ints returns the flags as ints, for JSON and script bindings.
func (v Vector) Ints() []int {
	out := make([]int, FlagCount)
	for j, f := range v {
		out[j] = int(f)
	}
	return out
}

func (v Vector) String() string {
	var b strings.Builder
	for _, f := range v {
		b.WriteByte('0' + f)
	}
	return b.String()
}
