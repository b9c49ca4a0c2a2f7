// Package params holds the named continuous parameters sampled for every
// tile and the ranges they are drawn from.
package params

import (
	"errors"
	"fmt"
	"math"

	"github.com/MJE43/tile-variations-go/internal/engine"
)

// ErrInvalidRange is returned when a range configuration is unusable.
var ErrInvalidRange = errors.New("invalid parameter range")

// Binding names the modifier input a parameter drives in the scene.
type Binding struct {
	Modifier string `json:"modifier" mapstructure:"modifier"`
	Socket   string `json:"socket" mapstructure:"socket"`
}

// IsZero reports whether the binding is unset.
func (b Binding) IsZero() bool {
	return b.Modifier == "" && b.Socket == ""
}

// Range is a named uniform interval [Low, High).
type Range struct {
	Name    string  `json:"name" mapstructure:"name"`
	Low     float64 `json:"low" mapstructure:"low"`
	High    float64 `json:"high" mapstructure:"high"`
	Binding Binding `json:"binding,omitempty" mapstructure:"binding"`
}

// Ranges is ordered; the order is the field order of generated filenames.
type Ranges []Range

// Validate checks names and bounds.
func (rs Ranges) Validate() error {
	seen := make(map[string]bool, len(rs))
	for i, r := range rs {
		if r.Name == "" {
			return fmt.Errorf("%w: range %d has no name", ErrInvalidRange, i)
		}
		if seen[r.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidRange, r.Name)
		}
		seen[r.Name] = true

		if math.IsNaN(r.Low) || math.IsInf(r.Low, 0) || math.IsNaN(r.High) || math.IsInf(r.High, 0) {
			return fmt.Errorf("%w: %q has non-finite bounds", ErrInvalidRange, r.Name)
		}
		if r.Low > r.High {
			return fmt.Errorf("%w: %q low %g > high %g", ErrInvalidRange, r.Name, r.Low, r.High)
		}
		if (r.Binding.Modifier == "") != (r.Binding.Socket == "") {
			return fmt.Errorf("%w: %q binding needs both modifier and socket", ErrInvalidRange, r.Name)
		}
	}
	return nil
}

// Value is one sampled parameter.
type Value struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// Bundle is the ordered set of values sampled for one tile.
type Bundle []Value

// Get returns the value named name.
func (b Bundle) Get(name string) (float64, bool) {
	for _, v := range b {
		if v.Name == name {
			return v.Value, true
		}
	}
	return 0, false
}

// Sample draws one value per range, in order, from src.
func Sample(src engine.Source, rs Ranges) Bundle {
	out := make(Bundle, len(rs))
	for i, r := range rs {
		out[i] = Value{Name: r.Name, Value: engine.Uniform(src, r.Low, r.High)}
	}
	return out
}
