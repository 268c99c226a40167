package midi

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/justyntemme/synthparam/pkg/framework/param"
)

// OmniChannel binds a controller on every channel.
const OmniChannel uint8 = 0xFF

// Mapping selects how a 7-bit controller value spreads over a parameter's
// UI range.
type Mapping int

const (
	// MapLinear spreads 0..127 evenly from the bottom to the top of the range.
	MapLinear Mapping = iota
	// MapPan is MapLinear with 64 on the exact center and 0 and 1 both at the bottom.
	MapPan
)

func (m Mapping) String() string {
	switch m {
	case MapLinear:
		return "linear"
	case MapPan:
		return "pan"
	default:
		return fmt.Sprintf("Mapping(%d)", int(m))
	}
}

type bindKey struct {
	kind       EventType
	channel    uint8
	controller uint8
}

type binding struct {
	param   *param.Param
	mapping Mapping
}

// Bindings routes controller and pitch bend events to parameters through
// their host path (SetHost). Binding is for the control thread; Handle reads
// an immutable snapshot without locking and does not allocate or log, so it
// may run on the audio thread.
type Bindings struct {
	mu    sync.Mutex
	table atomic.Pointer[map[bindKey]binding]
}

// NewBindings creates an empty binding table.
func NewBindings() *Bindings {
	b := &Bindings{}
	empty := map[bindKey]binding{}
	b.table.Store(&empty)
	return b
}

// BindCC routes controller on channel to p. channel may be OmniChannel.
// A later binding for the same controller replaces the earlier one.
func (b *Bindings) BindCC(channel, controller uint8, p *param.Param, m Mapping) error {
	if controller > 127 {
		return fmt.Errorf("midi: controller %d out of range", controller)
	}
	if channel > 15 && channel != OmniChannel {
		return fmt.Errorf("midi: channel %d out of range", channel)
	}
	b.store(bindKey{EventTypeControlChange, channel, controller}, binding{p, m})

	logrus.WithFields(logrus.Fields{
		"function":   "BindCC",
		"channel":    channel,
		"controller": controller,
		"tag":        p.Tag(),
		"mapping":    m.String(),
	}).Debug("Controller bound")
	return nil
}

// BindPitchBend routes pitch bend on channel to p, center to center.
func (b *Bindings) BindPitchBend(channel uint8, p *param.Param) error {
	if channel > 15 && channel != OmniChannel {
		return fmt.Errorf("midi: channel %d out of range", channel)
	}
	b.store(bindKey{EventTypePitchBend, channel, 0}, binding{p, MapPan})

	logrus.WithFields(logrus.Fields{
		"function": "BindPitchBend",
		"channel":  channel,
		"tag":      p.Tag(),
	}).Debug("Pitch bend bound")
	return nil
}

// UnbindCC removes a controller binding.
func (b *Bindings) UnbindCC(channel, controller uint8) bool {
	return b.delete(bindKey{EventTypeControlChange, channel, controller})
}

// UnbindPitchBend removes a pitch bend binding.
func (b *Bindings) UnbindPitchBend(channel uint8) bool {
	return b.delete(bindKey{EventTypePitchBend, channel, 0})
}

func (b *Bindings) store(k bindKey, v binding) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cur := *b.table.Load()
	next := make(map[bindKey]binding, len(cur)+1)
	for key, val := range cur {
		next[key] = val
	}
	next[k] = v
	b.table.Store(&next)
}

func (b *Bindings) delete(k bindKey) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	cur := *b.table.Load()
	if _, ok := cur[k]; !ok {
		return false
	}
	next := make(map[bindKey]binding, len(cur))
	for key, val := range cur {
		if key != k {
			next[key] = val
		}
	}
	b.table.Store(&next)
	return true
}

// Len returns the number of bindings.
func (b *Bindings) Len() int {
	return len(*b.table.Load())
}

func (b *Bindings) lookup(kind EventType, channel, controller uint8) (binding, bool) {
	table := *b.table.Load()
	if bd, ok := table[bindKey{kind, channel, controller}]; ok {
		return bd, true
	}
	bd, ok := table[bindKey{kind, OmniChannel, controller}]
	return bd, ok
}

// Handle applies ev to its bound parameter. It reports whether a binding matched.
func (b *Bindings) Handle(ev Event) bool {
	switch e := ev.(type) {
	case ControlChangeEvent:
		bd, ok := b.lookup(EventTypeControlChange, e.EventChannel, e.Controller)
		if !ok {
			return false
		}
		var u float64
		if bd.mapping == MapPan {
			u = param.BipolarToUnipolar(param.MidiToPanValue(int(e.Value)))
		} else {
			u = param.MidiToUnipolar(int(e.Value))
		}
		setUnipolar(bd.param, u)
		return true

	case PitchBendEvent:
		bd, ok := b.lookup(EventTypePitchBend, e.EventChannel, 0)
		if !ok {
			return false
		}
		setUnipolar(bd.param, param.BipolarToUnipolar(e.NormalizedValue()))
		return true
	}
	return false
}

// HandleAll applies every event and returns how many matched a binding.
func (b *Bindings) HandleAll(events []Event) int {
	n := 0
	for _, ev := range events {
		if b.Handle(ev) {
			n++
		}
	}
	return n
}

func setUnipolar(p *param.Param, u float64) {
	lo, hi := p.UIRange()
	v := lo + u*(hi-lo)
	if v > hi {
		v = hi
	} else if v < lo {
		v = lo
	}
	p.SetHost(v)
}
