package renderer

import (
	"errors"
	"fmt"
	"log"

	"github.com/richinsley/goshaderbg/inputs"
	"github.com/richinsley/goshaderbg/shader"
)

// Target is the draw target a Surface covers, typically a window.
type Target interface {
	GetFramebufferSize() (int, int)
	OnResize(fn func(width, height int)) (remove func())
}

// Surface owns the shader program and the full-viewport quad for one mount.
type Surface struct {
	backend  Backend
	uniforms *inputs.Uniforms

	program  uint32
	quadVAO  uint32
	quadVBO  uint32
	locs     UniformLocations
	unlisten func()

	initialized bool
	disposed    bool
	err         error // fatal build error, sticky
}

func NewSurface(backend Backend) *Surface {
	return &Surface{backend: backend}
}

// Initialize builds the program and quad, sizes the surface to target and
// binds u as the uniform source for every draw. On ErrBackendUnavailable no
// state is kept and Initialize may be called again.
func (s *Surface) Initialize(target Target, u *inputs.Uniforms) error {
	switch {
	case s.disposed:
		return ErrDisposed
	case s.err != nil:
		return s.err
	case s.initialized:
		return nil
	}

	if err := s.backend.Init(); err != nil {
		if !errors.Is(err, ErrBackendUnavailable) {
			err = fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
		return err
	}

	program, locs, err := s.backend.CompileProgram(shader.GenerateVertexShader(), shader.GetBackgroundFragmentShader(), uniformNames)
	if err != nil {
		s.err = fmt.Errorf("%w: %v", ErrShaderCompile, err)
		return s.err
	}
	s.program = program
	s.locs = locationsFrom(locs)
	s.quadVAO, s.quadVBO = s.backend.CreateQuad()
	s.uniforms = u

	width, height := target.GetFramebufferSize()
	s.initialized = true
	s.Resize(width, height)
	s.unlisten = target.OnResize(s.Resize)

	log.Printf("Background surface initialized at %dx%d", width, height)
	return nil
}

// Resize applies a new drawable size to the viewport and the resolution
// uniform together, so the next draw never sees one without the other.
func (s *Surface) Resize(width, height int) {
	if !s.initialized || s.disposed {
		return
	}
	if width <= 0 || height <= 0 {
		// minimized
		return
	}
	s.backend.Viewport(width, height)
	s.uniforms.Resolution = [2]int{width, height}
}

// DrawFrame issues one draw call with the current uniforms.
func (s *Surface) DrawFrame() {
	if !s.initialized || s.disposed {
		return
	}
	s.backend.Draw(s.program, s.quadVAO, s.locs, s.uniforms)
}

// Dispose releases the program and quad, then removes the resize listener.
// It is idempotent and safe after a failed Initialize.
func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.initialized = false

	if s.program != 0 {
		s.backend.DeleteProgram(s.program)
		s.program = 0
	}
	if s.quadVAO != 0 || s.quadVBO != 0 {
		s.backend.DeleteQuad(s.quadVAO, s.quadVBO)
		s.quadVAO, s.quadVBO = 0, 0
	}
	if s.unlisten != nil {
		s.unlisten()
		s.unlisten = nil
	}
	log.Println("Background surface disposed")
}

func (s *Surface) Initialized() bool { return s.initialized }

func (s *Surface) Disposed() bool { return s.disposed }

// Size returns the drawable size last applied.
func (s *Surface) Size() (int, int) {
	if s.uniforms == nil {
		return 0, 0
	}
	return s.uniforms.Resolution[0], s.uniforms.Resolution[1]
}
