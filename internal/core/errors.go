package core

import "errors"

// Error classes shared by every stage of a run. Callers wrap them with
// context and test with errors.Is.
var (
	// ErrInvalidParameter rejects a run before any output is produced.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrResourceUnavailable means a results sink could not be opened or written.
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrRandomSource means the random generator produced an unusable draw.
	ErrRandomSource = errors.New("random source failure")
)
