package handle

import "errors"

// ErrNullHandle is returned when the caller passed types.NullHandle to an
// operation that requires a live resource.
var ErrNullHandle = errors.New("handle: null handle")

// ErrInvalidHandle is returned when a handle's index is in range but its
// generation doesn't match the slot's current generation, or the slot's
// payload has already been destroyed.
var ErrInvalidHandle = errors.New("handle: invalid or stale handle")
