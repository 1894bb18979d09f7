// Package schedule implements the dispatch scheduling core: the job
// assignment state machine, time-grid geometry, technician availability,
// drag-and-drop placement and interactive resize.
package schedule

import "errors"

// errors
var (
	// ErrMalformedPayload is returned when a drag payload is not a job
	// transfer or is missing its item.
	ErrMalformedPayload = errors.New("malformed drag payload")

	// ErrStalePayload is returned when a drag payload is older than the
	// drop freshness window.
	ErrStalePayload = errors.New("stale drag payload")

	// ErrInvalidTransition is returned when a state-machine operation is
	// not valid from the job's current state, e.g. assigning a locked job.
	ErrInvalidTransition = errors.New("invalid job state transition")

	// ErrInvalidDuration is returned when a resize would produce a
	// duration below the minimum slot.
	ErrInvalidDuration = errors.New("duration below minimum")

	// ErrPreconditionFailed is returned when an operation's precondition
	// does not hold, e.g. locking a job without a scheduled time.
	ErrPreconditionFailed = errors.New("operation precondition failed")

	// ErrNotFound is returned for unknown job or technician ids.
	ErrNotFound = errors.New("not found")
)
