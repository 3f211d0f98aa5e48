package renderer

import (
	"errors"

	"github.com/richinsley/goshaderbg/inputs"
	"github.com/richinsley/goshaderbg/shader"
)

var (
	// ErrBackendUnavailable means the GL backend or its context is not ready
	// yet. Nothing was created and initialization can be retried.
	ErrBackendUnavailable = errors.New("render backend unavailable")
	// ErrShaderCompile is fatal for a surface: it never draws afterwards.
	ErrShaderCompile = errors.New("shader program failed to build")
	ErrDisposed      = errors.New("background already disposed")
	ErrNotMounted    = errors.New("background not mounted")
)

// Backend is the GPU API a Surface draws through. GLBackend is the OpenGL
// implementation; all methods must be called on the thread owning the context.
type Backend interface {
	// Init loads the API entry points. It returns an error wrapping
	// ErrBackendUnavailable when no usable context is current.
	Init() error
	// CompileProgram builds a program from desktop GLSL vertex source and
	// WebGL2 fragment source, and resolves the named uniforms. Uniforms the
	// compiler dropped resolve to -1.
	CompileProgram(vertex, fragment string, uniforms []string) (uint32, map[string]int32, error)
	// CreateQuad uploads the full-viewport quad.
	CreateQuad() (vao, vbo uint32)
	Viewport(width, height int)
	// Draw issues exactly one draw call of the quad with the given uniform values.
	Draw(program, vao uint32, loc UniformLocations, u *inputs.Uniforms)
	DeleteProgram(program uint32)
	DeleteQuad(vao, vbo uint32)
}

// UniformLocations caches the program's uniform locations; -1 means unused.
type UniformLocations struct {
	Resolution      int32
	Time            int32
	Progress        int32
	CurrentStep     int32
	TotalSteps      int32
	IsRippling      int32
	RippleTime      int32
	IsTextAnimating int32
	TextTime        int32
	FreezeTime      int32
}

var uniformNames = []string{
	shader.UniformResolution,
	shader.UniformTime,
	shader.UniformProgress,
	shader.UniformCurrentStep,
	shader.UniformTotalSteps,
	shader.UniformIsRippling,
	shader.UniformRippleTime,
	shader.UniformIsTextAnimating,
	shader.UniformTextTime,
	shader.UniformFreezeTime,
}

func locationsFrom(m map[string]int32) UniformLocations {
	get := func(name string) int32 {
		if loc, ok := m[name]; ok {
			return loc
		}
		return -1
	}
	return UniformLocations{
		Resolution:      get(shader.UniformResolution),
		Time:            get(shader.UniformTime),
		Progress:        get(shader.UniformProgress),
		CurrentStep:     get(shader.UniformCurrentStep),
		TotalSteps:      get(shader.UniformTotalSteps),
		IsRippling:      get(shader.UniformIsRippling),
		RippleTime:      get(shader.UniformRippleTime),
		IsTextAnimating: get(shader.UniformIsTextAnimating),
		TextTime:        get(shader.UniformTextTime),
		FreezeTime:      get(shader.UniformFreezeTime),
	}
}
