package inputs

// Uniforms holds every value fed to the background shader each frame.
// It is plain data: the scheduler copies host props into it, the animation
// machine advances its time fields and the surface reads it when drawing.
type Uniforms struct {
	Time       float32
	Resolution [2]int // drawable size in device pixels

	Progress    float32 // 0..1
	CurrentStep float32 // >= 1
	TotalSteps  float32 // >= 1

	IsRippling float32 // 0 or 1
	RippleTime float32 // 0..1

	// The text timer is exposed to the shader but has no mandated visual effect.
	IsTextAnimating float32
	TextTime        float32

	// FreezeTime is 0 until the completion ripple finishes. Afterwards the
	// pattern is evaluated at this fixed time instead of Time.
	FreezeTime float32
}

// NewUniforms returns a store sized to the given surface with step counters at 1.
func NewUniforms(width, height int) *Uniforms {
	return &Uniforms{
		Resolution:  [2]int{width, height},
		CurrentStep: 1,
		TotalSteps:  1,
	}
}

// ApplyProps copies the level values of a host snapshot into the store.
func (u *Uniforms) ApplyProps(s Signals) {
	u.Progress = s.Progress
	u.CurrentStep = s.CurrentStep
	u.TotalSteps = s.TotalSteps
}

// Frozen reports whether the pattern has been captured as a still frame.
func (u *Uniforms) Frozen() bool {
	return u.FreezeTime != 0
}

// PatternTime is the time value the ambient pattern is evaluated at.
func (u *Uniforms) PatternTime() float32 {
	if u.Frozen() {
		return u.FreezeTime
	}
	return u.Time
}
