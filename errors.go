package percept

import "fmt"

// Error is a wrapper for specific types of errors for which there is no
// additional information necessary. These errors are defined as global
// variables.
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be returned or panicked.
var (
	ErrRegisterTaken     = Error{"Name is already registered"}
	ErrRegisterNilReturn = Error{"Function return is nil"}
	ErrNotFinalized      = Error{"Network has not been finalized"}
	ErrFinalized         = Error{"Network has already been finalized"}
)

// NilArgError documents errors resulting from certain arguments provided to a
// function being nil.
type NilArgError struct{ string }

func (err NilArgError) Error() string {
	return err.string + " is nil"
}

// SizeMismatchError documents errors where the dimensions of two values that
// must line up do not.
type SizeMismatchError struct {
	Expected, Got int
	What          string
}

func (err SizeMismatchError) Error() string {
	return fmt.Sprintf("size mismatch for %s: expected %d, got %d", err.What, err.Expected, err.Got)
}
