package domain

import "errors"

// Error kinds returned by the service layer. Handlers translate these to
// transport statuses with errors.Is; nothing below the handler layer knows
// about HTTP.
var (
	// ErrNotFound: a referenced user, tenant or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation: malformed input to a log or report operation.
	ErrValidation = errors.New("validation failed")

	// ErrExternalService: the generative-AI call failed or is not
	// configured.
	ErrExternalService = errors.New("external service failure")

	// ErrPersistence: a commit failed; the in-progress write was rolled
	// back.
	ErrPersistence = errors.New("persistence failure")
)
