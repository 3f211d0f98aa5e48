package inputs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleFiresOnlyOnRisingEdge(t *testing.T) {
	b := NewBridge(0)

	b.Set(Props{RippleRequested: true, TextAnimationRequested: true})
	s := b.Sample()
	assert.True(t, s.Ripple)
	assert.True(t, s.Text)

	// the host re-renders with the same values
	for i := 0; i < 3; i++ {
		s = b.Sample()
		assert.False(t, s.Ripple)
		assert.False(t, s.Text)
	}

	b.Set(Props{})
	assert.Equal(t, Props{}, b.Props())
	assert.False(t, b.Sample().Ripple)

	b.Set(Props{RippleRequested: true})
	assert.True(t, b.Sample().Ripple)
}

func TestSampleDropsUnobservedPulse(t *testing.T) {
	b := NewBridge(0)
	b.Set(Props{RippleRequested: true})
	b.Set(Props{RippleRequested: false})

	assert.False(t, b.Sample().Ripple)
}

func TestSampleCarriesCompletionFlag(t *testing.T) {
	b := NewBridge(0)
	b.Set(Props{RippleRequested: true, IsCompletionRipple: true})

	s := b.Sample()
	assert.True(t, s.Ripple)
	assert.True(t, s.CompletionRipple)
}

func TestSampleSanitizesLevels(t *testing.T) {
	tests := []struct {
		name  string
		props Props
		want  Signals
	}{
		{"defaults", Props{}, Signals{Progress: 0, CurrentStep: 1, TotalSteps: 1}},
		{"in range", Props{Progress: 0.5, CurrentStep: 2, TotalSteps: 4}, Signals{Progress: 0.5, CurrentStep: 2, TotalSteps: 4}},
		{"clamped", Props{Progress: 1.5, CurrentStep: -3, TotalSteps: 0}, Signals{Progress: 1, CurrentStep: 1, TotalSteps: 1}},
		{"negative progress", Props{Progress: -1, CurrentStep: 3, TotalSteps: 3}, Signals{Progress: 0, CurrentStep: 3, TotalSteps: 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBridge(0)
			b.Set(tc.props)
			assert.Equal(t, tc.want, b.Sample())
		})
	}
}

func TestOpacityEasesTowardTarget(t *testing.T) {
	b := NewBridge(0.25)
	assert.Equal(t, float32(1), b.Opacity())

	b.Set(Props{FadeOutRequested: true})
	assert.Equal(t, float32(0), b.TargetOpacity())

	want := []float32{0.75, 0.5, 0.25, 0, 0}
	for _, w := range want {
		b.Sample()
		assert.InDelta(t, w, b.Opacity(), 1e-6)
	}

	b.Set(Props{})
	b.Sample()
	assert.InDelta(t, 0.25, b.Opacity(), 1e-6)
}

func TestOpacityWithoutFadeStepJumps(t *testing.T) {
	b := NewBridge(0)
	b.Set(Props{FadeOutRequested: true})
	b.Sample()
	assert.Equal(t, float32(0), b.Opacity())
}

func TestSetIsSafeFromOtherGoroutines(t *testing.T) {
	b := NewBridge(0.1)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b.Set(Props{Progress: float64(j) / 100, CurrentStep: n, TotalSteps: 4})
			}
		}(i)
	}
	for j := 0; j < 100; j++ {
		s := b.Sample()
		assert.GreaterOrEqual(t, s.Progress, float32(0))
		assert.LessOrEqual(t, s.Progress, float32(1))
	}
	wg.Wait()
}

func TestApplyPropsLeavesTimeFieldsAlone(t *testing.T) {
	u := NewUniforms(640, 480)
	u.Time = 3
	u.FreezeTime = 2

	u.ApplyProps(Signals{Progress: 0.7, CurrentStep: 3, TotalSteps: 5})

	assert.Equal(t, float32(0.7), u.Progress)
	assert.Equal(t, float32(3), u.CurrentStep)
	assert.Equal(t, float32(5), u.TotalSteps)
	assert.Equal(t, float32(3), u.Time)
	assert.True(t, u.Frozen())
	assert.Equal(t, float32(2), u.PatternTime())
	assert.Equal(t, [2]int{640, 480}, u.Resolution)
}
