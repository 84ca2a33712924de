// Package errors defines the error kinds reported by the quotation
// generator. Every failure a user can see is marked with one of the
// sentinels below and carries a hint with the message to show.
package errors

import (
	"github.com/cockroachdb/errors"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrCalculation = errors.New("calculation error")
	ErrImage       = errors.New("image error")
	ErrRender      = errors.New("render error")
	ErrStorage     = errors.New("storage error")
	ErrOpen        = errors.New("open error")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsCalculation checks if an error is a calculation error
func IsCalculation(err error) bool {
	return errors.Is(err, ErrCalculation)
}

// DisplayMessage returns the user-facing message of err: its first hint
// when one was attached, the error text otherwise.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		return hints[0]
	}
	return err.Error()
}
