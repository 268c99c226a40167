package param

import "errors"

var (
	// ErrInvalidRange is returned when min is not strictly below max.
	ErrInvalidRange = errors.New("param: min must be less than max")
	// ErrDefaultOutOfRange is returned when the default lies outside [min, max].
	ErrDefaultOutOfRange = errors.New("param: default outside range")
	// ErrTooManyLabels is returned when a stepped parameter gets more labels than steps.
	ErrTooManyLabels = errors.New("param: more labels than steps")
	// ErrStepOutOfRange is returned for a step outside [0, nSteps-1].
	ErrStepOutOfRange = errors.New("param: step out of range")
	// ErrNoLabel is returned when a value has no label to display.
	ErrNoLabel = errors.New("param: no label for value")
	// ErrDuplicateTag is returned when a registry already holds the tag.
	ErrDuplicateTag = errors.New("param: duplicate serialization tag")
)

// NoLabel is what UIString shows when a stepped value has no label.
const NoLabel = "n/a"
