package physics

import (
	"errors"
)

// Sentinel errors
var (
	// ErrInvalidArgument marks construction parameters that can never produce valid physics
	ErrInvalidArgument = errors.New("invalid argument")
)
