package engine

import "errors"

// Layout errors.
var (
	ErrIndexOutOfRange = errors.New("item index out of range")
	ErrStaleGeneration = errors.New("correction targets a discarded layout generation")
	ErrInvalidHeight   = errors.New("invalid item height")
)
