package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/goshaderbg/graphics"
	options "github.com/richinsley/goshaderbg/options"
)

var _ graphics.Context = (*Context)(nil)

// Context wraps a GLFW window and its OpenGL 4.1 core context.
type Context struct {
	window *glfw.Window
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()

	resizeListeners map[int]func(width, height int)
	nextListenerID  int
}

// New creates and initializes a new GLFW window and returns a Context object.
// The window's context is made current on the calling thread.
func New(opts *options.BackgroundOptions, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(*opts.Width, *opts.Height, *opts.Title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:          win,
		keyCallbacks:    make(map[glfw.Key]func()),
		resizeListeners: make(map[int]func(width, height int)),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	// Framebuffer size rather than window size: the two differ on high-DPI displays.
	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)

	win.MakeContextCurrent()
	if *opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return c, nil
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

func (c *Context) glfwFramebufferSizeCallback(_ *glfw.Window, width, height int) {
	for _, fn := range c.resizeListeners {
		fn(width, height)
	}
}

// OnResize registers fn to run on framebuffer size changes. Callbacks fire
// from glfw.PollEvents, i.e. inside EndFrame on the render thread.
func (c *Context) OnResize(fn func(width, height int)) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.resizeListeners[id] = fn
	return func() {
		delete(c.resizeListeners, id)
	}
}

// SetOpacity applies a whole-window opacity, used for the fade out hint.
func (c *Context) SetOpacity(opacity float32) {
	if c.window == nil {
		return
	}
	if c.window.GetOpacity() != opacity {
		c.window.SetOpacity(opacity)
	}
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	if c.window == nil {
		return
	}
	c.resizeListeners = make(map[int]func(width, height int))
	c.window.Destroy()
	c.window = nil
}

func (c *Context) ShouldClose() bool {
	return c.window == nil || c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
