package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Dispatch pipeline errors
	ErrNotFound         = fmt.Errorf("entity not found")
	ErrMalformedRequest = fmt.Errorf("malformed request")
	ErrStoreFailure     = fmt.Errorf("store failure")
	ErrUnknownOperation = fmt.Errorf("unknown operation")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
