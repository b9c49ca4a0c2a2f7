package engine

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned when a sample request cannot be satisfied.
var ErrInvalidArgument = errors.New("invalid argument")

// Uniform maps one draw from src onto [low, high). A degenerate range
// yields low.
func Uniform(src Source, low, high float64) float64 {
	v := low + src.Float64()*(high-low)
	if high > low && v >= high {
		// low + f*(high-low) can round up to high for f close to 1.
		v = math.Nextafter(high, low)
	}
	return v
}

// Intn returns a draw in [0, n). n must be positive.
func Intn(src Source, n int) int {
	idx := int(src.Float64() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// SampleIndices picks k distinct indices from [0, n) without replacement.
// Indices are returned in the order they were picked.
func SampleIndices(src Source, n, k int) ([]int, error) {
	if n < 0 || k < 0 {
		return nil, fmt.Errorf("%w: negative size (n=%d, k=%d)", ErrInvalidArgument, n, k)
	}
	if k > n {
		return nil, fmt.Errorf("%w: sample count %d exceeds space size %d", ErrInvalidArgument, k, n)
	}

	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}

	picks := make([]int, k)

	// Fisher-Yates selection
	for i := 0; i < k; i++ {
		idx := Intn(src, len(pool))
		picks[i] = pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)
	}

	return picks, nil
}
