package inputs

import "sync"

// Props is the declarative state a host supplies, possibly on every re-render.
// The request flags are level values; only their false to true transitions
// are turned into events.
type Props struct {
	Progress    float64
	CurrentStep int
	TotalSteps  int

	RippleRequested    bool
	IsCompletionRipple bool // read together with RippleRequested

	TextAnimationRequested bool

	// FadeOutRequested is a compositing hint for the host. It only drives Opacity.
	FadeOutRequested bool
}

// Signals is one tick's view of the host props.
type Signals struct {
	Progress    float32
	CurrentStep float32
	TotalSteps  float32

	Ripple           bool // RippleRequested went false -> true since the last sample
	CompletionRipple bool
	Text             bool // TextAnimationRequested went false -> true since the last sample
	FadeOut          bool
}

// Bridge converts host props into per-tick Signals. Set may be called from
// any goroutine; Sample is called by the render loop once per tick.
type Bridge struct {
	mu    sync.Mutex
	props Props

	lastRipple bool
	lastText   bool

	fadeStep float32
	opacity  float32
}

// NewBridge returns a bridge whose eased opacity moves by fadeStep per sample.
// A non-positive fadeStep makes the opacity follow its target immediately.
func NewBridge(fadeStep float32) *Bridge {
	return &Bridge{
		props:    Props{CurrentStep: 1, TotalSteps: 1},
		fadeStep: fadeStep,
		opacity:  1,
	}
}

// Set replaces the current host props.
func (b *Bridge) Set(p Props) {
	b.mu.Lock()
	b.props = p
	b.mu.Unlock()
}

// Props returns the last props given to Set.
func (b *Bridge) Props() Props {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.props
}

// Sample snapshots the props and latches edge-triggered requests. A request
// raised and lowered again between two samples is never observed.
func (b *Bridge) Sample() Signals {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.props
	s := Signals{
		Progress:         clamp01(float32(p.Progress)),
		CurrentStep:      atLeastOne(p.CurrentStep),
		TotalSteps:       atLeastOne(p.TotalSteps),
		Ripple:           p.RippleRequested && !b.lastRipple,
		CompletionRipple: p.IsCompletionRipple,
		Text:             p.TextAnimationRequested && !b.lastText,
		FadeOut:          p.FadeOutRequested,
	}
	b.lastRipple = p.RippleRequested
	b.lastText = p.TextAnimationRequested

	b.opacity = approach(b.opacity, targetOpacity(p.FadeOutRequested), b.fadeStep)
	return s
}

// TargetOpacity is 0 while a fade out is requested and 1 otherwise.
func (b *Bridge) TargetOpacity() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return targetOpacity(b.props.FadeOutRequested)
}

// Opacity is the eased opacity as of the last sample.
func (b *Bridge) Opacity() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opacity
}

func targetOpacity(fadeOut bool) float32 {
	if fadeOut {
		return 0
	}
	return 1
}

func approach(cur, target, step float32) float32 {
	if step <= 0 {
		return target
	}
	switch {
	case cur < target:
		cur += step
		if cur > target {
			cur = target
		}
	case cur > target:
		cur -= step
		if cur < target {
			cur = target
		}
	}
	return cur
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func atLeastOne(n int) float32 {
	if n < 1 {
		return 1
	}
	return float32(n)
}
