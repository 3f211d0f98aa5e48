package options

type BackgroundOptions struct {
	Help       *bool
	Title      *string
	Mode       *string // "interactive" or "record"
	Width      *int
	Height     *int
	VSync      *bool
	TotalSteps *int

	// Record mode
	Duration    *float64
	FPS         *int
	StepSeconds *float64 // seconds between scripted wizard steps
	OutputFile  *string
	FFMPEGPath  *string
	Codec       *string

	// Animation tunables, all per rendered frame
	AmbientStep        *float64
	RippleFrames       *int
	RippleAcceleration *float64
	TextStep           *float64
	FadeStep           *float64
}
