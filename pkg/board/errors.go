package board

import "errors"

// Error taxonomy for board operations. Callers match with errors.Is; the
// wrapped message carries the human-readable detail.
var (
	// ErrInvalidID means the message id string is malformed or addresses a
	// semantically-zero tab key.
	ErrInvalidID = errors.New("invalid message id format")
	// ErrNotFound means a well-formed id references a tab or index that does
	// not exist in the document.
	ErrNotFound = errors.New("message not found")
	// ErrMissingField means a required argument was absent.
	ErrMissingField = errors.New("missing required field")
	// ErrTooLarge means the message content exceeds the configured limit.
	ErrTooLarge = errors.New("content too large")
	// ErrPersistence wraps document load/save failures.
	ErrPersistence = errors.New("persistence failure")
)
