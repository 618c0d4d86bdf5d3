package network

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch indicates the SMILES and label sequences differ in length.
	ErrShapeMismatch = errors.New("structure and label sequences differ in length")
	// ErrIncompatibleNetwork indicates a snapshot decoded to something
	// that is not a valid network (dangling edges, non-dense ids, ...).
	ErrIncompatibleNetwork = errors.New("incompatible network snapshot")
)

// ShapeMismatchError carries both input lengths so the caller can see
// which side is short.
type ShapeMismatchError struct {
	Structures int
	Labels     int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%d structures but %d labels: %s",
		e.Structures, e.Labels, ErrShapeMismatch)
}

func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }
