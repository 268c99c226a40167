package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/synthparam/pkg/framework/param"
)

func cc(channel, controller, value uint8) ControlChangeEvent {
	return ControlChangeEvent{
		BaseEvent:  BaseEvent{EventChannel: channel},
		Controller: controller,
		Value:      value,
	}
}

func TestBindCCLinear(t *testing.T) {
	freq := param.New("LFO Freq", "lfo1freq").Range(0.01, 50).Default(1).MustBuild()
	b := NewBindings()
	require.NoError(t, b.BindCC(0, CCModWheel, freq, MapLinear))

	notified := 0
	freq.AddListener(param.ListenerFunc(func(*param.Param) { notified++ }))

	assert.True(t, b.Handle(cc(0, CCModWheel, 0)))
	assert.Equal(t, 0.01, freq.Get())

	assert.True(t, b.Handle(cc(0, CCModWheel, 127)))
	assert.InDelta(t, 50.0, freq.Get(), 1e-9)

	// Automation goes through the host path.
	assert.Equal(t, 0, notified)
	assert.True(t, freq.IsUIDirty())

	assert.False(t, b.Handle(cc(1, CCModWheel, 10)))
	assert.False(t, b.Handle(cc(0, CCVolume, 10)))
	assert.InDelta(t, 50.0, freq.Get(), 1e-9)
}

func TestBindCCPanCenter(t *testing.T) {
	pan := param.New("Pan", "pan").Range(-1, 1).Default(0).MustBuild()
	b := NewBindings()
	require.NoError(t, b.BindCC(OmniChannel, CCPan, pan, MapPan))

	tests := []struct {
		value uint8
		want  float64
	}{
		{64, 0},
		{0, -1},
		{1, -1},
		{127, 1},
	}
	for _, tt := range tests {
		require.True(t, b.Handle(cc(5, CCPan, tt.value)))
		assert.InDelta(t, tt.want, pan.Get(), 1e-12, "cc value %d", tt.value)
	}
	// Exact, not approximately, centered.
	b.Handle(cc(3, CCPan, 64))
	assert.Equal(t, 0.0, pan.Get())
}

func TestBindCCDecibel(t *testing.T) {
	vol := param.New("Volume", "vol").Range(0, 2).Default(1).Decibel().MustBuild()
	b := NewBindings()
	require.NoError(t, b.BindCC(0, CCVolume, vol, MapLinear))

	b.Handle(cc(0, CCVolume, 0))
	assert.Equal(t, 0.0, vol.Get())

	b.Handle(cc(0, CCVolume, 127))
	assert.InDelta(t, 2.0, vol.Get(), 1e-9)
}

func TestBindCCStepped(t *testing.T) {
	wave, err := param.NewStepped("LFO Wave", "lfo1wave", 0, 4, "sine", "tri", "square", "saw")
	require.NoError(t, err)

	b := NewBindings()
	require.NoError(t, b.BindCC(0, 20, wave.Param, MapLinear))

	b.Handle(cc(0, 20, 127))
	assert.Equal(t, 3, wave.Step())
	b.Handle(cc(0, 20, 64)) // 1.51
	assert.Equal(t, 2, wave.Step())
	assert.Equal(t, "square", wave.UIString())
}

func TestBindPitchBend(t *testing.T) {
	detune := param.New("Detune", "detune").Range(-100, 100).Default(0).Formatter(param.CentFormatter).MustBuild()
	b := NewBindings()
	require.NoError(t, b.BindPitchBend(0, detune))

	assert.True(t, b.Handle(PitchBendEvent{Value: 4096}))
	assert.InDelta(t, 50.0, detune.Get(), 1e-9)
	assert.True(t, b.Handle(PitchBendEvent{Value: 0}))
	assert.Equal(t, 0.0, detune.Get())

	assert.True(t, b.UnbindPitchBend(0))
	assert.False(t, b.Handle(PitchBendEvent{Value: 4096}))
}

func TestBindingsValidation(t *testing.T) {
	p := param.New("X", "x").MustBuild()
	b := NewBindings()

	assert.Error(t, b.BindCC(0, 128, p, MapLinear))
	assert.Error(t, b.BindCC(16, 1, p, MapLinear))
	assert.Error(t, b.BindPitchBend(16, p))
	assert.Equal(t, 0, b.Len())
}

func TestBindingsReplaceAndUnbind(t *testing.T) {
	a := param.New("A", "a").MustBuild()
	c := param.New("C", "c").MustBuild()
	b := NewBindings()

	require.NoError(t, b.BindCC(0, 1, a, MapLinear))
	require.NoError(t, b.BindCC(0, 1, c, MapLinear))
	assert.Equal(t, 1, b.Len())

	b.Handle(cc(0, 1, 127))
	assert.Equal(t, 0.0, a.Get())
	assert.Equal(t, 1.0, c.Get())

	assert.True(t, b.UnbindCC(0, 1))
	assert.False(t, b.UnbindCC(0, 1))
	assert.Equal(t, 0, b.Len())
}

func TestHandleAll(t *testing.T) {
	a := param.New("A", "a").MustBuild()
	b := NewBindings()
	require.NoError(t, b.BindCC(0, 1, a, MapLinear))

	n := b.HandleAll([]Event{
		cc(0, 1, 10),
		cc(0, 2, 10),
		PitchBendEvent{},
		cc(0, 1, 127),
	})
	assert.Equal(t, 2, n)
	assert.Equal(t, 1.0, a.Get())
}

func TestHandleDoesNotAllocate(t *testing.T) {
	freq := param.New("LFO Freq", "lfo1freq").Range(0.01, 50).Default(1).MustBuild()
	b := NewBindings()
	require.NoError(t, b.BindCC(0, CCModWheel, freq, MapLinear))

	var inRange, unbound Event = cc(0, CCModWheel, 100), cc(0, CCVolume, 100)
	allocs := testing.AllocsPerRun(100, func() {
		b.Handle(inRange)
		b.Handle(unbound)
	})
	assert.Zero(t, allocs)
}
