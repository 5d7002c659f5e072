package mock

import "errors"

var (
	// ErrInvalidArgument is returned when a declaration is given an unknown function, a negative
	// index or ID, or an argument list that does not match the function's arity.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoExpectation is returned when an expectation is configured before any was declared.
	ErrNoExpectation = errors.New("no expectation has been declared")

	// ErrBadArgIndex is returned when an argument index is outside the arity of the expectation.
	ErrBadArgIndex = errors.New("argument index out of range")

	// ErrSaveArgExists is returned when a saved argument ID is declared twice.
	ErrSaveArgExists = errors.New("saved argument ID already exists")

	// ErrNoSaveArg is returned when a saved argument ID has not been declared.
	ErrNoSaveArg = errors.New("saved argument ID does not exist")

	// ErrBadAddress is returned by an Arena for an access outside of any mapped region.
	ErrBadAddress = errors.New("address is not mapped")

	// ErrValidation is wrapped by Report.Err when the recorded calls did not meet expectations.
	ErrValidation = errors.New("mock validation failed")
)
