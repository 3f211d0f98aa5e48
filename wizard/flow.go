// Package wizard models the onboarding flow hosting the background: it turns
// step navigation into the level-valued props the background consumes.
package wizard

import (
	"github.com/richinsley/goshaderbg/animation"
	"github.com/richinsley/goshaderbg/inputs"
)

// Flow tracks the wizard position. Request flags stay raised until Settle,
// the way a UI holds a prop for a render before clearing it.
type Flow struct {
	step      int
	total     int
	completed bool

	ripple     bool
	completion bool
	text       bool
	fadeOut    bool
}

func NewFlow(totalSteps int) *Flow {
	if totalSteps < 1 {
		totalSteps = 1
	}
	return &Flow{step: 1, total: totalSteps}
}

// Next moves to the following step and requests a ripple. On the last step
// it completes the flow instead. It returns false once the flow is complete.
func (f *Flow) Next() bool {
	if f.completed {
		return false
	}
	if f.step >= f.total {
		f.Complete()
		return true
	}
	f.step++
	f.ripple = true
	return true
}

// Complete requests the completion ripple and the closing text cue.
func (f *Flow) Complete() {
	if f.completed {
		return
	}
	f.step = f.total
	f.completed = true
	f.ripple = true
	f.completion = true
	f.text = true
}

// ShowText requests the text reveal timer.
func (f *Flow) ShowText() {
	f.text = true
}

// FadeOut asks the host to fade the background away.
func (f *Flow) FadeOut() {
	f.fadeOut = true
}

// Settle lowers the one-shot request flags.
func (f *Flow) Settle() {
	f.ripple = false
	f.text = false
}

// Sync is called once per rendered frame with the background's state. It
// lowers requests that have been sampled, and re-raises the completion
// ripple while the background is back in Normal without having frozen, which
// happens when the request arrived during the previous step's ripple.
// It reports whether the props changed.
func (f *Flow) Sync(state animation.State) bool {
	if f.ripple || f.text {
		f.Settle()
		return true
	}
	if f.completed && state == animation.Normal {
		f.ripple = true
		return true
	}
	return false
}

func (f *Flow) Step() int       { return f.step }
func (f *Flow) TotalSteps() int { return f.total }
func (f *Flow) Completed() bool { return f.completed }

// Progress is 0 on the first step and 1 once the flow is complete.
func (f *Flow) Progress() float64 {
	if f.completed {
		return 1
	}
	if f.total <= 1 {
		return 0
	}
	return float64(f.step-1) / float64(f.total-1)
}

func (f *Flow) Props() inputs.Props {
	return inputs.Props{
		Progress:               f.Progress(),
		CurrentStep:            f.step,
		TotalSteps:             f.total,
		RippleRequested:        f.ripple,
		IsCompletionRipple:     f.completion,
		TextAnimationRequested: f.text,
		FadeOutRequested:       f.fadeOut,
	}
}
