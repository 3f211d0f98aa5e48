package graphics

// Display is the refresh source a render loop waits on between frames.
type Display interface {
	ShouldClose() bool
	// EndFrame presents the frame and pumps pending window events.
	EndFrame()
}

// Context defines the interface for an OpenGL context hosting the background.
type Context interface {
	Display
	MakeCurrent()
	Shutdown()
	GetFramebufferSize() (int, int)
	// OnResize registers fn for framebuffer size changes and returns a
	// function that removes it.
	OnResize(fn func(width, height int)) (remove func())
	Time() float64
}
