package param

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// SmoothingType selects how a Smoother moves toward its target.
type SmoothingType int

const (
	// LinearSmoothing reaches the target in a fixed number of samples
	LinearSmoothing SmoothingType = iota
	// ExponentialSmoothing is a one-pole lowpass
	ExponentialSmoothing
	// LogarithmicSmoothing interpolates in log space, for frequencies
	LogarithmicSmoothing
)

const logFloor = 0.001

// Smoother removes zipper noise from stepwise parameter changes.
// It belongs to the audio thread and is not safe for concurrent use.
type Smoother struct {
	kind      SmoothingType
	rate      float64 // samples for linear/log, pole for exponential
	threshold float64

	current float64
	target  float64
	step    float64
	active  bool
}

// NewSmoother creates a smoother. rate is a sample count for linear and
// logarithmic smoothing and a pole in (0, 1) for exponential smoothing.
func NewSmoother(kind SmoothingType, rate float64) *Smoother {
	return &Smoother{
		kind:      kind,
		rate:      rate,
		threshold: 1e-4,
	}
}

// SetTarget starts a move to target. Changes below the threshold are ignored.
func (s *Smoother) SetTarget(target float64) {
	if math.Abs(target-s.target) < s.threshold {
		return
	}
	s.target = target
	s.active = true

	if s.rate <= 0 {
		s.Reset(target)
		return
	}
	switch s.kind {
	case LinearSmoothing:
		s.step = (target - s.current) / s.rate
	case LogarithmicSmoothing:
		s.step = (math.Log(math.Max(target, logFloor)) - math.Log(math.Max(s.current, logFloor))) / s.rate
	}
}

// Next advances one sample and returns the smoothed value.
func (s *Smoother) Next() float64 {
	if !s.active {
		return s.current
	}

	switch s.kind {
	case ExponentialSmoothing:
		s.current += (s.target - s.current) * (1.0 - s.rate)
		if math.Abs(s.current-s.target) < s.threshold {
			s.finish()
		}
	case LinearSmoothing:
		s.current += s.step
		if (s.step >= 0 && s.current >= s.target) || (s.step < 0 && s.current <= s.target) {
			s.finish()
		}
	case LogarithmicSmoothing:
		next := math.Exp(math.Log(math.Max(s.current, logFloor)) + s.step)
		goal := math.Max(s.target, logFloor)
		if (s.step >= 0 && next >= goal) || (s.step < 0 && next <= goal) {
			s.finish()
		} else {
			s.current = next
		}
	}

	return s.current
}

func (s *Smoother) finish() {
	s.current = s.target
	s.active = false
}

// IsSmoothing reports whether a move is in progress.
func (s *Smoother) IsSmoothing() bool {
	return s.active
}

// Reset jumps to value.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.active = false
}

// SetRate updates the smoothing rate for the next target.
func (s *Smoother) SetRate(rate float64) {
	s.rate = rate
}

// SetThreshold sets the distance at which a move counts as finished.
func (s *Smoother) SetThreshold(threshold float64) {
	s.threshold = threshold
}

// SmoothedParam follows a Param on the audio thread. It reads the parameter
// once per block and ramps toward it sample by sample.
type SmoothedParam struct {
	param    *Param
	smoother *Smoother
	ramp     []float64
}

// NewSmoothedParam creates a follower for p. maxBlock sizes the ramp buffer;
// longer blocks are processed in chunks.
func NewSmoothedParam(p *Param, kind SmoothingType, rate float64, maxBlock int) *SmoothedParam {
	if maxBlock < 1 {
		maxBlock = 1
	}
	sp := &SmoothedParam{
		param:    p,
		smoother: NewSmoother(kind, rate),
		ramp:     make([]float64, maxBlock),
	}
	sp.smoother.Reset(p.Get())
	return sp
}

// SetTime configures the smoothing duration for a sample rate.
func (sp *SmoothedParam) SetTime(sampleRate, ms float64) {
	samples := sampleRate * ms / 1000.0
	switch sp.smoother.kind {
	case ExponentialSmoothing:
		// -60dB after ms
		if samples > 0 {
			sp.smoother.SetRate(math.Exp(-6.908 / samples))
		}
	default:
		sp.smoother.SetRate(samples)
	}
}

// Next returns the next smoothed value, picking up parameter changes.
func (sp *SmoothedParam) Next() float64 {
	sp.smoother.SetTarget(sp.param.Get())
	return sp.smoother.Next()
}

// Fill writes smoothed values into dst.
func (sp *SmoothedParam) Fill(dst []float64) {
	sp.smoother.SetTarget(sp.param.Get())
	for i := range dst {
		dst[i] = sp.smoother.Next()
	}
}

// Apply multiplies buf by the smoothed parameter, treating it as a linear
// gain. It does not allocate.
func (sp *SmoothedParam) Apply(buf []float64) {
	for len(buf) > 0 {
		n := min(len(buf), len(sp.ramp))
		ramp := sp.ramp[:n]
		sp.Fill(ramp)
		vecmath.MulBlockInPlace(buf[:n], ramp)
		buf = buf[n:]
	}
}

// Current returns the last smoothed value without advancing.
func (sp *SmoothedParam) Current() float64 {
	return sp.smoother.current
}
