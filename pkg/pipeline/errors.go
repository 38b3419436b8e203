package pipeline

import "errors"

var (
	// ErrDuplicateStep is returned by Pipeline.AddStep when a step with
	// the same name already exists.
	ErrDuplicateStep = errors.New("duplicate step name")

	// ErrUnknownStepRef is returned when a reference names a step that
	// has no committed output. This covers misspelled names and
	// references to steps declared later in the sequence.
	ErrUnknownStepRef = errors.New("unknown step reference")

	// ErrMissingField is returned when a reference path names a field
	// that does not exist on the referenced output.
	ErrMissingField = errors.New("missing field")

	// ErrNotIndexable is returned when a reference path descends into a
	// value that is not a field mapping.
	ErrNotIndexable = errors.New("value is not indexable")

	// ErrStepTimeout is returned when a step exceeds the configured
	// per-step timeout.
	ErrStepTimeout = errors.New("step timed out")

	// ErrCancelled is returned when the run is cancelled by the caller,
	// either between steps or while an action is in flight.
	ErrCancelled = errors.New("run cancelled")

	// ErrAlreadyRun is returned by Runner.Run on re-entry. A Runner
	// executes its pipeline exactly once.
	ErrAlreadyRun = errors.New("runner already used")
)
