package eval

import "errors"

var (
	// ErrNoDescriptor indicates that an experiment directory contained no
	// JSON run descriptor.
	ErrNoDescriptor = errors.New("eval: no run descriptor")

	// ErrAmbiguousDescriptor indicates that an experiment directory
	// contained more than one JSON run descriptor.
	ErrAmbiguousDescriptor = errors.New("eval: ambiguous run descriptor")

	// ErrRetriesExhausted indicates that the center-computation oracle kept
	// producing NaN/Inf coordinates for the full retry budget.
	ErrRetriesExhausted = errors.New("eval: center recovery retries exhausted")

	// ErrZeroCost indicates that a distortion ratio was requested for a
	// zero coreset or real cost, for which the metric is undefined.
	ErrZeroCost = errors.New("eval: distortion undefined for zero cost")
)
