package param

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Stepped is a parameter over a closed enumeration E. The enumeration's
// members are 0..nSteps-1 and nSteps is its sentinel count member.
//
//	type Wave int
//	const (
//		Sine Wave = iota
//		Square
//		NumWaves
//	)
//	p, err := param.NewStepped("LFO Wave", "lfo1wave", Sine, NumWaves, "sine", "square")
type Stepped[E constraints.Integer] struct {
	*Param
}

// NewStepped creates a stepped parameter with range [0, nSteps-1].
// Fewer labels than steps leave the rest empty.
func NewStepped[E constraints.Integer](name, tag string, def, nSteps E, labels ...string) (*Stepped[E], error) {
	t, err := NewSteps(int(nSteps), labels...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	p, err := newParam(name, tag, "", 0, float64(nSteps)-1, float64(def), int(nSteps), t)
	if err != nil {
		return nil, err
	}
	return &Stepped[E]{Param: p}, nil
}

// Step returns the current member. Safe on the audio thread.
func (s *Stepped[E]) Step() E {
	return E(s.step.Load())
}

// SetStep stores a member and its raw value. A member outside the
// enumeration is rejected and nothing is stored.
func (s *Stepped[E]) SetStep(v E) error {
	i := int64(v)
	if i < 0 || i >= int64(s.steps) {
		return fmt.Errorf("%s: %w: %d", s.tag, ErrStepOutOfRange, i)
	}
	s.Set(float64(v))
	return nil
}
