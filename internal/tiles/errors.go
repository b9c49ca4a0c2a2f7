package tiles

import "errors"

var (
	ErrInvalidMode  = errors.New("invalid generation mode")
	ErrEmptySpace   = errors.New("no tiles left after filtering")
	ErrInvalidCount = errors.New("invalid tile count")
)
