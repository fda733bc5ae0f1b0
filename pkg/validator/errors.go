package validator

import "errors"

// Input errors returned by the JSON entry point. The web layer maps these to
// 400 responses.
var (
	ErrNilWorkflow       = errors.New("workflow cannot be nil")
	ErrMalformedJSON     = errors.New("workflow JSON is malformed")
	ErrInvalidShape      = errors.New("workflow shape is invalid")
	ErrUnknownProfile    = errors.New("unknown validation profile")
	ErrUnknownFixType    = errors.New("unknown fix type")
	ErrWorkflowTooLarge  = errors.New("workflow exceeds the supported size")
	ErrValidationAborted = errors.New("validation aborted")
)

// IsInputError checks if an error describes bad caller input rather than an
// engine failure.
func IsInputError(err error) bool {
	return errors.Is(err, ErrNilWorkflow) ||
		errors.Is(err, ErrMalformedJSON) ||
		errors.Is(err, ErrInvalidShape) ||
		errors.Is(err, ErrUnknownProfile) ||
		errors.Is(err, ErrUnknownFixType) ||
		errors.Is(err, ErrWorkflowTooLarge)
}
