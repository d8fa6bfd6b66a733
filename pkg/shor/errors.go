package shor

import (
	"errors"
	"fmt"
)

var (
	// ErrPeriodNotFound indicates that neither the measured candidate nor any of
	// its small multiples is a period of the base. Callers may retry with a
	// different base.
	ErrPeriodNotFound = errors.New("shor: period not found")

	// ErrOddPeriod indicates the recovered period is odd, so a^(r/2) is not
	// defined and the factoring attempt for this base is abandoned.
	ErrOddPeriod = errors.New("shor: odd period")

	// ErrInverseNotFound indicates gcd(a, b) != 1, so no modular inverse exists.
	ErrInverseNotFound = errors.New("shor: modular inverse not found")

	// ErrDegenerateFactor indicates a derived factor equals 1 or N.
	ErrDegenerateFactor = errors.New("shor: degenerate factor")

	// ErrInvalidParameter indicates an argument outside its documented range.
	ErrInvalidParameter = errors.New("shor: invalid parameter")

	// ErrModulusTooLarge indicates N >= MaxModulus.
	ErrModulusTooLarge = errors.New("shor: modulus too large")
)

// Error wraps an underlying error with the operation that produced it.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf wraps err for op with extra context. The sentinel stays reachable via
// errors.Is.
func Errorf(op string, err error, format string, args ...any) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)),
	}
}

// Wrap attaches op to err. A nil err returns nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
