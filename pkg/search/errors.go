package search

import "errors"

var (
	// ErrNotFound signals a producer found nothing; the aggregator recovers
	// by trying the next producer and never surfaces it on its own.
	ErrNotFound = errors.New("not found")

	// ErrUnexpected signals a contract violation, surfaced as a server error.
	ErrUnexpected = errors.New("unexpected state")

	// ErrEngineUnavailable means a required index failed to load at startup.
	// It is fatal and aborts process start.
	ErrEngineUnavailable = errors.New("engine unavailable")
)
