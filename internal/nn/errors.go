package nn

import (
	"github.com/pkg/errors"
)

// ErrDimensionMismatch is the cause of every shape violation reported by this
// package. Layer methods panic with an error wrapping it; recover and test
// with errors.Is.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// CheckDimensions returns nil when got == want, otherwise an error wrapping
// ErrDimensionMismatch that names the operation and both sizes.
func CheckDimensions(op string, got, want int) error {
	if got == want {
		return nil
	}
	return errors.Wrapf(ErrDimensionMismatch, "%s: got %d, want %d", op, got, want)
}

// mustMatch panics when got != want.
func mustMatch(op string, got, want int) {
	if err := CheckDimensions(op, got, want); err != nil {
		panic(err)
	}
}
