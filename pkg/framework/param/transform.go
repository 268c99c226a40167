package param

import (
	"fmt"
	"math"
)

// ValueTransform maps between the raw value the audio thread reads and the
// value the UI and host see.
type ValueTransform interface {
	// ToUI converts a raw value to its UI representation.
	ToUI(raw float64) float64
	// FromUI converts a UI value to a raw candidate.
	FromUI(ui float64) float64
	// Validate reports whether a raw candidate may be stored.
	Validate(raw, min, max float64) bool
	// Describe formats a raw value for display.
	Describe(raw float64) (string, error)
}

// Labeled is implemented by transforms that carry a label table.
type Labeled interface {
	Labels() []string
}

// Linear is the identity transform of a plain parameter.
type Linear struct {
	format func(float64) string
}

func (Linear) ToUI(raw float64) float64  { return raw }
func (Linear) FromUI(ui float64) float64 { return ui }

func (Linear) Validate(raw, min, max float64) bool {
	return raw >= min && raw <= max
}

func (t Linear) Describe(raw float64) (string, error) {
	if t.format != nil {
		return t.format(raw), nil
	}
	return fmt.Sprintf("%.2f", raw), nil
}

// Decibel stores linear amplitude and shows decibels.
type Decibel struct{}

func (Decibel) ToUI(raw float64) float64  { return ToDb(raw) }
func (Decibel) FromUI(ui float64) float64 { return FromDb(ui) }

// Validate checks the converted linear value. The dB round trip can land an
// ulp above max, so the top bound gets a relative tolerance.
func (Decibel) Validate(raw, min, max float64) bool {
	return raw >= min && raw <= max+math.Abs(max)*1e-12
}

func (Decibel) Describe(raw float64) (string, error) {
	return DecibelFormatter(ToDb(raw)), nil
}

// Steps quantizes to the indices of a closed enumeration.
type Steps struct {
	count  int
	labels []string
}

// NewSteps creates a stepped transform with count steps. Missing trailing
// labels stay empty.
func NewSteps(count int, labels ...string) (Steps, error) {
	if count < 1 {
		return Steps{}, fmt.Errorf("%w: %d steps", ErrInvalidRange, count)
	}
	if len(labels) > count {
		return Steps{}, fmt.Errorf("%w: %d labels for %d steps", ErrTooManyLabels, len(labels), count)
	}
	t := Steps{count: count}
	if len(labels) > 0 {
		t.labels = make([]string, count)
		copy(t.labels, labels)
	}
	return t, nil
}

func (Steps) ToUI(raw float64) float64  { return raw }
func (Steps) FromUI(ui float64) float64 { return ui }

// Validate checks the rounded index, not the raw value.
func (t Steps) Validate(raw, _, _ float64) bool {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return false
	}
	i := roundHalfUp(raw)
	return i >= 0 && i < t.count
}

func (t Steps) Describe(raw float64) (string, error) {
	i := roundHalfUp(raw)
	if t.labels == nil {
		if i < 0 || i >= t.count {
			return "", fmt.Errorf("%w: step %d of %d", ErrStepOutOfRange, i, t.count)
		}
		return fmt.Sprintf("%d", i), nil
	}
	if i < 0 || i >= len(t.labels) || t.labels[i] == "" {
		return "", fmt.Errorf("%w: step %d", ErrNoLabel, i)
	}
	return t.labels[i], nil
}

// Labels returns the label table, or nil when none was given.
func (t Steps) Labels() []string {
	return t.labels
}

// Count returns the number of steps.
func (t Steps) Count() int {
	return t.count
}
