package progress

import "errors"

var (
	// ErrInvalidInput is returned for malformed counters and negative values.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptySession is returned when a session has no outcomes.
	ErrEmptySession = errors.New("empty session")

	// ErrUnknownWord is returned when an outcome references a word that is not
	// part of the evaluated word set.
	ErrUnknownWord = errors.New("unknown word")
)
