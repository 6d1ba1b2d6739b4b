package advisor

import (
	"errors"
	"fmt"
)

// Error taxonomy.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("invalid farm request")
	ErrCompletion    = errors.New("completion failed")
	ErrExtraction    = errors.New("no JSON object in response")
	ErrParse         = errors.New("response JSON is malformed")
	ErrSchema        = errors.New("response does not match recommendation schema")
	ErrCancelled     = errors.New("recommendation cancelled")
)

// FailureKind classifies a failed attempt.
type FailureKind string

// Failure kinds.
const (
	FailureTransport  FailureKind = "transport"
	FailureExtraction FailureKind = "extraction"
	FailureSchema     FailureKind = "schema"
)

// Failure is a single failed attempt. All kinds are retried the same way;
// the kind only tells callers which stage gave up.
type Failure struct {
	Kind    FailureKind
	Attempt int
	Err     error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("attempt %d: %s failure: %v", f.Attempt, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// classify maps a pipeline error onto its failure kind.
func classify(err error) FailureKind {
	switch {
	case errors.Is(err, ErrSchema):
		return FailureSchema
	case errors.Is(err, ErrExtraction), errors.Is(err, ErrParse):
		return FailureExtraction
	default:
		return FailureTransport
	}
}

// ValidationError lists every problem found in a farm request.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrValidation, e.Problems)
}

// Is makes errors.Is(err, ErrValidation) match.
func (*ValidationError) Is(target error) bool {
	return target == ErrValidation
}
