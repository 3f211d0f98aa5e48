package wizard

import "github.com/richinsley/goshaderbg/animation"

// Script walks a Flow on a fixed frame schedule, used when recording.
type Script struct {
	Flow       *Flow
	StepFrames int // frames between two steps
	FadeFrames int // frames after completion before fading out

	completedAt int
}

func NewScript(flow *Flow, stepFrames, fadeFrames int) *Script {
	if stepFrames < 1 {
		stepFrames = 1
	}
	return &Script{Flow: flow, StepFrames: stepFrames, FadeFrames: fadeFrames, completedAt: -1}
}

// Advance updates the flow for the given frame and reports whether the
// props changed. state is the background's state after the last tick.
// Requests are raised on one frame and settled on the next; the fade starts
// FadeFrames after the background froze.
func (s *Script) Advance(frame int, state animation.State) bool {
	f := s.Flow
	if f.Sync(state) {
		return true
	}
	if !f.Completed() {
		if frame > 0 && frame%s.StepFrames == 0 {
			f.Next()
			return true
		}
		return false
	}
	if s.completedAt < 0 && state == animation.Frozen {
		s.completedAt = frame
	}
	if !f.fadeOut && s.completedAt >= 0 && frame-s.completedAt >= s.FadeFrames {
		f.FadeOut()
		return true
	}
	return false
}
