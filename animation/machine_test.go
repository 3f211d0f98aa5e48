package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/goshaderbg/inputs"
)

func idle() inputs.Signals {
	return inputs.Signals{CurrentStep: 1, TotalSteps: 1}
}

func ripple(completion bool) inputs.Signals {
	s := idle()
	s.Ripple = true
	s.CompletionRipple = completion
	return s
}

func testConfig() Config {
	return Config{AmbientStep: 0.01, RippleAcceleration: 2, RippleFrames: 10, TextStep: 0.5}
}

func TestAmbientTimeAdvances(t *testing.T) {
	cfg := testConfig()
	m := New(cfg)
	u := inputs.NewUniforms(800, 600)

	for i := 0; i < 5; i++ {
		m.Advance(u, idle())
	}

	assert.InDelta(t, 5*cfg.AmbientStep, u.Time, 1e-6)
	assert.Equal(t, float32(0), u.IsRippling)
	assert.Equal(t, float32(0), u.FreezeTime)
	assert.Equal(t, Normal, m.State())
}

func TestRippleRunsForFixedFramesThenReturnsToNormal(t *testing.T) {
	cfg := testConfig()
	m := New(cfg)
	u := inputs.NewUniforms(800, 600)

	m.Advance(u, ripple(false))
	require.Equal(t, Rippling, m.State())
	require.Equal(t, float32(1), u.IsRippling)

	prev := u.RippleTime
	for i := 1; i < cfg.RippleFrames; i++ {
		m.Advance(u, idle())
		assert.Equal(t, float32(1), u.IsRippling)
		assert.Greater(t, u.RippleTime, prev)
		prev = u.RippleTime
	}
	assert.Equal(t, float32(1), u.RippleTime)

	m.Advance(u, idle())
	assert.Equal(t, Normal, m.State())
	assert.Equal(t, float32(0), u.IsRippling)
	assert.Equal(t, float32(0), u.RippleTime)
	assert.Equal(t, float32(0), u.FreezeTime)
}

func TestRippleAcceleratesAmbientTime(t *testing.T) {
	cfg := testConfig()
	m := New(cfg)
	u := inputs.NewUniforms(800, 600)

	m.Advance(u, ripple(false))
	assert.InDelta(t, cfg.AmbientStep*cfg.RippleAcceleration, u.Time, 1e-6)
}

func TestRippleRequestWhileRipplingIsDropped(t *testing.T) {
	m := New(testConfig())
	u := inputs.NewUniforms(800, 600)

	m.Advance(u, ripple(false))
	m.Advance(u, idle())
	m.Advance(u, idle())
	before := u.RippleTime

	m.Advance(u, ripple(true))
	assert.Greater(t, u.RippleTime, before, "in-flight ripple must not restart")

	// the dropped request must not have turned this ripple into the completion one
	for m.State() == Rippling {
		m.Advance(u, idle())
	}
	assert.Equal(t, Normal, m.State())
	assert.Equal(t, float32(0), u.FreezeTime)
}

func TestCompletionRippleFreezesTime(t *testing.T) {
	cfg := testConfig()
	m := New(cfg)
	u := inputs.NewUniforms(800, 600)

	m.Advance(u, idle())
	m.Advance(u, ripple(true))
	for i := 1; i < cfg.RippleFrames; i++ {
		m.Advance(u, idle())
	}
	atCompletion := u.Time

	m.Advance(u, idle())
	require.Equal(t, Frozen, m.State())
	assert.True(t, m.Completed())
	assert.Equal(t, atCompletion, u.FreezeTime)
	assert.Equal(t, float32(0), u.IsRippling)

	for i := 0; i < 10; i++ {
		m.Advance(u, idle())
		assert.Equal(t, atCompletion, u.Time)
	}
}

func TestFrozenIgnoresRipples(t *testing.T) {
	m := New(testConfig())
	u := inputs.NewUniforms(800, 600)

	m.Advance(u, ripple(true))
	for m.State() != Frozen {
		m.Advance(u, idle())
	}
	frozenAt := u.FreezeTime

	m.Advance(u, ripple(false))
	m.Advance(u, ripple(true))
	assert.Equal(t, Frozen, m.State())
	assert.Equal(t, float32(0), u.IsRippling)
	assert.Equal(t, frozenAt, u.FreezeTime)
	assert.Equal(t, frozenAt, u.Time)
}

func TestTextTimerIsIndependent(t *testing.T) {
	cfg := testConfig()
	m := New(cfg)
	u := inputs.NewUniforms(800, 600)

	m.Advance(u, idle())
	assert.Equal(t, float32(0), u.TextTime)

	s := idle()
	s.Text = true
	m.Advance(u, s)
	assert.Equal(t, float32(1), u.IsTextAnimating)
	assert.InDelta(t, cfg.TextStep, u.TextTime, 1e-6)

	m.Advance(u, ripple(true))
	for m.State() != Frozen {
		m.Advance(u, idle())
	}
	text := u.TextTime
	m.Advance(u, idle())
	assert.InDelta(t, text+cfg.TextStep, u.TextTime, 1e-6, "text timer keeps running while frozen")
}

func TestTextTimerCanStartWhileFrozen(t *testing.T) {
	m := New(testConfig())
	u := inputs.NewUniforms(800, 600)

	m.Advance(u, ripple(true))
	for m.State() != Frozen {
		m.Advance(u, idle())
	}

	s := idle()
	s.Text = true
	m.Advance(u, s)
	assert.Equal(t, float32(1), u.IsTextAnimating)
	assert.Greater(t, u.TextTime, float32(0))
}

func TestNewSanitizesConfig(t *testing.T) {
	m := New(Config{AmbientStep: 0.01})
	assert.Equal(t, 1, m.Config().RippleFrames)
	assert.Equal(t, float32(1), m.Config().RippleAcceleration)
	assert.Equal(t, DefaultConfig().TextStep, m.Config().TextStep)
}

func TestNonPositiveStepsStillFreeze(t *testing.T) {
	for _, step := range []float32{0, -0.5} {
		m := New(Config{AmbientStep: step, TextStep: step, RippleFrames: 2, RippleAcceleration: 1})
		assert.Equal(t, DefaultConfig().AmbientStep, m.Config().AmbientStep)

		u := inputs.NewUniforms(10, 10)
		last := u.Time
		m.Advance(u, ripple(true))
		for m.State() == Rippling {
			assert.Greater(t, u.Time, last)
			last = u.Time
			m.Advance(u, idle())
		}
		require.Equal(t, Frozen, m.State())
		assert.True(t, u.Frozen(), "step %v", step)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "normal", Normal.String())
	assert.Equal(t, "rippling", Rippling.String())
	assert.Equal(t, "frozen", Frozen.String())
	assert.Equal(t, "unknown", State(42).String())
}
