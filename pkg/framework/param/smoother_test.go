package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoother(t *testing.T) {
	t.Run("LinearSmoothing", func(t *testing.T) {
		s := NewSmoother(LinearSmoothing, 10)
		s.Reset(0)
		s.SetTarget(1)

		for i := 0; i < 10; i++ {
			assert.InDelta(t, float64(i+1)*0.1, s.Next(), 1e-9, "sample %d", i)
		}
		assert.Equal(t, 1.0, s.Next())
		assert.False(t, s.IsSmoothing())
	})

	t.Run("ExponentialSmoothing", func(t *testing.T) {
		s := NewSmoother(ExponentialSmoothing, 0.9)
		s.Reset(0)
		s.SetTarget(1)

		prev := 0.0
		for i := 0; i < 50; i++ {
			v := s.Next()
			require.Greater(t, v, prev)
			require.Less(t, v, 1.0)
			prev = v
		}
		for i := 0; i < 200; i++ {
			s.Next()
		}
		assert.False(t, s.IsSmoothing())
	})

	t.Run("LogarithmicSmoothing", func(t *testing.T) {
		s := NewSmoother(LogarithmicSmoothing, 10)
		s.Reset(100)
		s.SetTarget(1000)

		values := make([]float64, 0, 9)
		for i := 0; i < 9; i++ {
			values = append(values, s.Next())
		}
		ratio := values[1] / values[0]
		for i := 2; i < len(values); i++ {
			assert.InDelta(t, ratio, values[i]/values[i-1], 0.01)
		}
		assert.InDelta(t, 1000.0, s.Next(), 1e-6)
		s.Next()
		assert.False(t, s.IsSmoothing())
		assert.Equal(t, 1000.0, s.Next())
	})

	t.Run("SmallChangeIgnored", func(t *testing.T) {
		s := NewSmoother(LinearSmoothing, 10)
		s.Reset(0.5)
		s.SetTarget(0.50001)
		assert.False(t, s.IsSmoothing())
	})
}

func TestSmoothedParamFollowsParam(t *testing.T) {
	p, err := New("Volume", "vol").Default(1).Build()
	require.NoError(t, err)

	sp := NewSmoothedParam(p, LinearSmoothing, 4, 8)
	assert.Equal(t, 1.0, sp.Next())

	p.SetUI(0, false)
	ramp := make([]float64, 4)
	sp.Fill(ramp)
	assert.InDeltaSlice(t, []float64{0.75, 0.5, 0.25, 0}, ramp, 1e-9)
	assert.Equal(t, 0.0, sp.Current())
}

func TestSmoothedParamApply(t *testing.T) {
	p, err := New("Volume", "vol").Default(0.5).Build()
	require.NoError(t, err)

	// Block longer than the ramp buffer is processed in chunks.
	sp := NewSmoothedParam(p, LinearSmoothing, 1, 3)
	buf := []float64{1, 1, 1, 1, 1, 1, 1}
	sp.Apply(buf)
	for i, v := range buf {
		assert.InDelta(t, 0.5, v, 1e-9, "sample %d", i)
	}

	p.Set(1)
	buf = []float64{2, 2}
	sp.Apply(buf)
	assert.InDeltaSlice(t, []float64{2, 2}, buf, 1e-9)
}

func TestSmoothedParamSetTime(t *testing.T) {
	p, err := New("Cutoff", "cutoff").Range(20, 20000).Default(1000).Build()
	require.NoError(t, err)

	sp := NewSmoothedParam(p, LinearSmoothing, 1, 16)
	sp.SetTime(48000, 1) // 48 samples
	p.SetUI(2000, false)

	for i := 0; i < 47; i++ {
		sp.Next()
	}
	assert.Less(t, sp.Current(), 2000.0)
	assert.InDelta(t, 2000.0, sp.Next(), 1e-6)
}

func TestSmoothedParamApplyRampAcrossChunks(t *testing.T) {
	p, err := New("Volume", "vol").Default(0).Build()
	require.NoError(t, err)

	// Four-sample ramp through a three-sample buffer.
	sp := NewSmoothedParam(p, LinearSmoothing, 4, 3)
	p.Set(1)

	buf := []float64{2, 2, 2, 2, 2, 2}
	sp.Apply(buf)
	assert.InDeltaSlice(t, []float64{0.5, 1, 1.5, 2, 2, 2}, buf, 1e-12)
	assert.False(t, sp.smoother.IsSmoothing())

	// Ramp back down, with a block shorter than the ramp.
	p.Set(0)
	buf = []float64{4, 4}
	sp.Apply(buf)
	assert.InDeltaSlice(t, []float64{3, 2}, buf, 1e-12)
	assert.InDelta(t, 0.5, sp.Current(), 1e-12)
}
