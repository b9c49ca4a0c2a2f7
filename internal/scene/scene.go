// Package scene is the boundary to the 3D content tool. Callers set named
// modifier inputs on a scene object and save the current state to a file.
// Implementations hold mutable state and must be driven from one goroutine.
package scene

import (
	"errors"
	"fmt"
)

// ErrSave is returned when the current state cannot be written to a path.
var ErrSave = errors.New("scene save failed")

// ErrUnsupportedValue is returned for parameter values that are neither int
// nor float64.
var ErrUnsupportedValue = errors.New("unsupported parameter value")

// Scene is the asset-saving collaborator.
type Scene interface {
	// SetParameter assigns value (int or float64) to input key of modifier
	// on object.
	SetParameter(object, modifier, key string, value any) error
	// SaveTo writes the current state to path.
	SaveTo(path string) error
}

func checkValue(value any) error {
	switch value.(type) {
	case int, float64:
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
}

// Assignment is one recorded SetParameter call.
type Assignment struct {
	Object   string `json:"object"`
	Modifier string `json:"modifier"`
	Key      string `json:"key"`
	Value    any    `json:"value"`
}
