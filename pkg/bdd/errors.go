package bdd

import "errors"

// ErrOutOfMemory is returned by any operation that needed to intern a new
// node but the node store has reached its configured capacity. Every
// intermediate result the failing call built is released before the error
// is returned; the operand edges the caller passed in are borrowed and
// stay owned by the caller. Releasing other edges frees store capacity;
// MaxNodes itself is fixed when the Manager is created.
var ErrOutOfMemory = errors.New("bdd: node store out of memory")
