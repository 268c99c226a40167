package param

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Param is a synth parameter shared between the audio thread and the
// control thread.
//
// The audio thread uses Get and Set only. Both are single atomic operations
// and never lock or allocate. The UI calls SetUI, UI, UIString and IsUIDirty.
// Host automation calls SetHost.
type Param struct {
	// Atomic value for lock-free access in audio thread
	value atomic.Uint64 // float64 bits
	step  atomic.Int32  // rounded index, stepped params only

	uiDirty atomic.Bool

	name  string
	tag   string
	unit  string
	min   float64
	max   float64
	def   float64
	steps int

	transform ValueTransform
	listeners listenerSet
}

// NewParam creates a plain parameter whose UI value is its raw value.
func NewParam(name, tag, unit string, min, max, def float64) (*Param, error) {
	return newParam(name, tag, unit, min, max, def, 0, Linear{})
}

// NewDb creates a parameter that stores linear amplitude and shows decibels.
// min, max and def are linear.
func NewDb(name, tag, unit string, min, max, def float64) (*Param, error) {
	return newParam(name, tag, unit, min, max, def, 0, Decibel{})
}

func newParam(name, tag, unit string, min, max, def float64, steps int, t ValueTransform) (*Param, error) {
	if math.IsNaN(min) || math.IsNaN(max) || !(min < max) {
		logrus.WithFields(logrus.Fields{
			"function": "newParam",
			"tag":      tag,
			"min":      min,
			"max":      max,
		}).Error("Rejected parameter with invalid range")
		return nil, fmt.Errorf("%s: %w (min=%g max=%g)", tag, ErrInvalidRange, min, max)
	}
	if !(def >= min && def <= max) {
		logrus.WithFields(logrus.Fields{
			"function": "newParam",
			"tag":      tag,
			"default":  def,
		}).Error("Rejected parameter with default outside range")
		return nil, fmt.Errorf("%s: %w (default=%g range=[%g, %g])", tag, ErrDefaultOutOfRange, def, min, max)
	}

	p := &Param{
		name:      name,
		tag:       tag,
		unit:      unit,
		min:       min,
		max:       max,
		def:       def,
		steps:     steps,
		transform: t,
	}
	p.Set(def)
	return p, nil
}

// Name returns the display name.
func (p *Param) Name() string { return p.name }

// Tag returns the serialization tag that identifies the parameter in saved state.
func (p *Param) Tag() string { return p.tag }

// Unit returns the unit label.
func (p *Param) Unit() string { return p.unit }

// Min returns the lower raw bound.
func (p *Param) Min() float64 { return p.min }

// Max returns the upper raw bound.
func (p *Param) Max() float64 { return p.max }

// Default returns the raw default.
func (p *Param) Default() float64 { return p.def }

// NumSteps returns 0 for continuous parameters.
func (p *Param) NumSteps() int { return p.steps }

// Transform returns the value transform.
func (p *Param) Transform() ValueTransform { return p.transform }

// UIRange returns the bounds in UI units.
func (p *Param) UIRange() (lo, hi float64) {
	return p.transform.ToUI(p.min), p.transform.ToUI(p.max)
}

// Get returns the raw value. Safe on the audio thread.
func (p *Param) Get() float64 {
	return math.Float64frombits(p.value.Load())
}

// Set stores a raw value without validation. Safe on the audio thread.
func (p *Param) Set(v float64) {
	p.value.Store(math.Float64bits(v))
	if p.steps > 0 {
		p.step.Store(int32(p.clampStep(roundHalfUp(v))))
	}
}

func (p *Param) clampStep(i int) int {
	if i < 0 {
		return 0
	}
	if i >= p.steps {
		return p.steps - 1
	}
	return i
}

// SetUI converts a UI value and stores it. A value that fails validation
// resets the parameter to its default. When notifyHost is set every listener
// is called once.
func (p *Param) SetUI(v float64, notifyHost bool) {
	p.setValidated(p.transform.FromUI(v))
	if notifyHost {
		p.listeners.notify(p)
	}
}

// setValidated stores raw, or the default when raw fails validation.
func (p *Param) setValidated(raw float64) {
	if p.transform.Validate(raw, p.min, p.max) {
		p.Set(raw)
	} else {
		p.Set(p.def)
	}
}

// SetHost applies an automation value. It validates like SetUI but never
// calls listeners, since the host already knows the value. It marks the UI
// dirty instead.
func (p *Param) SetHost(v float64) {
	p.SetUI(v, false)
	p.uiDirty.Store(true)
}

// SetHostRaw is SetHost for a value already in raw units, such as one read
// back from saved state. It skips the UI conversion so the value is restored
// bit for bit.
func (p *Param) SetHostRaw(raw float64) {
	p.setValidated(raw)
	p.uiDirty.Store(true)
}

// IsUIDirty reports whether the host wrote a value since the last call, and
// clears the flag. Several host writes between two polls give one signal, so
// the UI must re-read UI() rather than trust the flag to carry a value.
func (p *Param) IsUIDirty() bool {
	return p.uiDirty.Swap(false)
}

// UI returns the current value in UI units.
func (p *Param) UI() float64 {
	return p.transform.ToUI(p.Get())
}

// FormatValue describes a raw value for display.
func (p *Param) FormatValue(raw float64) (string, error) {
	return p.transform.Describe(raw)
}

// UIString describes the current value. A missing label yields NoLabel.
func (p *Param) UIString() string {
	raw := p.Get()
	if p.steps > 0 {
		raw = float64(p.step.Load())
	}
	s, err := p.transform.Describe(raw)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "UIString",
			"tag":      p.tag,
			"error":    err.Error(),
		}).Warn("No display string for current value")
		return NoLabel
	}
	return s
}

// HasLabels reports whether the parameter has a label table with at least
// one entry.
func (p *Param) HasLabels() bool {
	l, ok := p.transform.(Labeled)
	return ok && l.Labels() != nil
}

// Labels returns a copy of the label table, or nil.
func (p *Param) Labels() []string {
	l, ok := p.transform.(Labeled)
	if !ok || l.Labels() == nil {
		return nil
	}
	out := make([]string, len(l.Labels()))
	copy(out, l.Labels())
	return out
}

// AddListener registers l for UI-originated changes.
func (p *Param) AddListener(l Listener) ListenerHandle {
	return p.listeners.add(l)
}

// RemoveListener drops a registration. It reports whether h was registered.
func (p *Param) RemoveListener(h ListenerHandle) bool {
	return p.listeners.remove(h)
}

// NumListeners returns the number of registrations.
func (p *Param) NumListeners() int {
	return p.listeners.len()
}

func (p *Param) String() string {
	return fmt.Sprintf("%s(%s)=%s", p.name, p.tag, p.UIString())
}
