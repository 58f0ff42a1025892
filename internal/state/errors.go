package state

import "errors"

// Sentinel errors returned by state operations and composition functions.
// Callers match them with errors.Is; the wrapped message carries the
// offending values.
var (
	// ErrShapeMismatch reports operands whose qubit counts or buffer
	// layouts are incompatible.
	ErrShapeMismatch = errors.New("state: shape mismatch")

	// ErrQubitOutOfRange reports a qubit index outside [0, QubitCount).
	ErrQubitOutOfRange = errors.New("state: qubit index out of range")

	// ErrBasisOutOfRange reports a basis index outside [0, Dim).
	ErrBasisOutOfRange = errors.New("state: basis index out of range")

	// ErrInvalidPermutation reports a qubit order that is not a
	// permutation of 0..QubitCount-1.
	ErrInvalidPermutation = errors.New("state: invalid qubit permutation")

	// ErrLengthMismatch reports an argument sequence whose length does not
	// match what the operation requires.
	ErrLengthMismatch = errors.New("state: length mismatch")

	// ErrUnsupported reports an operation the state's layout cannot
	// perform, such as structural composition of a partitioned buffer.
	ErrUnsupported = errors.New("state: operation not supported for this layout")
)
