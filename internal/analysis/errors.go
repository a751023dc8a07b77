package analysis

import "errors"

var (
	// ErrSchemaNotSupported indicates the service rejected the structured
	// output request (responseSchema). Callers fall back to a plain request.
	ErrSchemaNotSupported = errors.New("response schema not supported by model")

	// ErrEmptyResponse indicates the service returned no completion text.
	ErrEmptyResponse = errors.New("no completion returned")

	// ErrNoAPIKey indicates the client was built without credentials.
	ErrNoAPIKey = errors.New("API key not configured")
)
