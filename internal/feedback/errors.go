package feedback

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse marks a completion that came back blank.
var ErrEmptyResponse = errors.New("empty completion")

// StageError is a failed stage call: the completion capability errored, was
// cancelled, or returned no text. It carries enough context to retry the
// stage on its own.
type StageError struct {
	Stage      Stage
	SourceText string
	Err        error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// AsStageError returns the StageError in err's chain, if any.
func AsStageError(err error) (*StageError, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IncompleteRecordError means a record was about to be built with a field
// that was never assigned. It indicates an aggregation bug, not an API
// problem.
type IncompleteRecordError struct {
	Field string
}

func (e *IncompleteRecordError) Error() string {
	return fmt.Sprintf("incomplete feedback record: field %q was not set", e.Field)
}

// IsIncompleteRecord reports whether err wraps an IncompleteRecordError.
func IsIncompleteRecord(err error) bool {
	var ir *IncompleteRecordError
	return errors.As(err, &ir)
}
