// Package animation advances the time-based uniforms of the background and
// owns the NORMAL / RIPPLING / FROZEN state machine.
package animation

import (
	"log"

	"github.com/richinsley/goshaderbg/inputs"
)

type State int

const (
	Normal State = iota
	Rippling
	Frozen
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case Rippling:
		return "rippling"
	case Frozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// Config holds the per-tick rates. All rates are per tick, not per second,
// so a ripple always lasts RippleFrames display frames.
type Config struct {
	AmbientStep        float32 // Time increment per tick
	RippleAcceleration float32 // multiplier on AmbientStep while rippling
	RippleFrames       int     // ticks for RippleTime to go from 0 to 1
	TextStep           float32 // TextTime increment per tick
}

func DefaultConfig() Config {
	return Config{
		AmbientStep:        0.01,
		RippleAcceleration: 3,
		RippleFrames:       60,
		TextStep:           1.0 / 60.0,
	}
}

// Machine is the per-instance animation state. The zero value is not usable;
// create one with New for every mount.
type Machine struct {
	cfg   Config
	state State

	rippleFrame int
	completion  bool // the in-flight ripple ends in Frozen

	textRunning bool
}

// New returns a machine in Normal. Non-positive rates fall back to the
// defaults so Time only ever moves forward.
func New(cfg Config) *Machine {
	def := DefaultConfig()
	if cfg.AmbientStep <= 0 {
		cfg.AmbientStep = def.AmbientStep
	}
	if cfg.TextStep <= 0 {
		cfg.TextStep = def.TextStep
	}
	if cfg.RippleFrames < 1 {
		cfg.RippleFrames = 1
	}
	if cfg.RippleAcceleration <= 0 {
		cfg.RippleAcceleration = 1
	}
	return &Machine{cfg: cfg, state: Normal}
}

func (m *Machine) State() State { return m.state }

// Completed reports whether the completion ripple has finished.
func (m *Machine) Completed() bool { return m.state == Frozen }

func (m *Machine) Config() Config { return m.cfg }

// Advance runs one tick against u using the signals sampled for this tick.
func (m *Machine) Advance(u *inputs.Uniforms, sig inputs.Signals) {
	if sig.Ripple {
		m.startRipple(u, sig.CompletionRipple)
	}
	if sig.Text {
		m.textRunning = true
		u.IsTextAnimating = 1
		u.TextTime = 0
	}

	if m.state == Rippling {
		m.advanceRipple(u)
	}

	if m.state != Frozen {
		step := m.cfg.AmbientStep
		if m.state == Rippling {
			step *= m.cfg.RippleAcceleration
		}
		u.Time += step
	}

	if m.textRunning {
		u.TextTime += m.cfg.TextStep
	}
}

func (m *Machine) startRipple(u *inputs.Uniforms, completion bool) {
	// At most one ripple in flight, and nothing revives a frozen background.
	if m.state != Normal {
		return
	}
	m.state = Rippling
	m.rippleFrame = 0
	m.completion = completion
	u.IsRippling = 1
	u.RippleTime = 0
	log.Printf("Ripple started (completion=%v)", completion)
}

func (m *Machine) advanceRipple(u *inputs.Uniforms) {
	if m.rippleFrame >= m.cfg.RippleFrames {
		m.finishRipple(u)
		return
	}
	m.rippleFrame++
	u.RippleTime = float32(m.rippleFrame) / float32(m.cfg.RippleFrames)
}

func (m *Machine) finishRipple(u *inputs.Uniforms) {
	u.IsRippling = 0
	u.RippleTime = 0
	m.rippleFrame = 0
	if !m.completion {
		m.state = Normal
		log.Println("Ripple finished")
		return
	}
	m.state = Frozen
	u.FreezeTime = u.Time
	if u.FreezeTime == 0 {
		// 0 means "not frozen" to the shader.
		u.FreezeTime = m.cfg.AmbientStep
		u.Time = u.FreezeTime
	}
	log.Printf("Completion ripple finished, frozen at t=%.3f", u.FreezeTime)
}
