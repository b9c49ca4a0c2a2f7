package scene

import (
	"errors"
	"fmt"
)

var errReadOnly = errors.New("path is not writable")

// SaveError carries the path of a failed save. It matches ErrSave.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrSave) true for every SaveError.
func (e *SaveError) Is(target error) bool { return target == ErrSave }
