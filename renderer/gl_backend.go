package renderer

import (
	"fmt"
	"log"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/goshaderbg/inputs"
	xlate "github.com/richinsley/goshaderbg/translator"
)

var (
	glInitMu   sync.Mutex
	glInitDone bool
)

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// GLBackend draws through OpenGL 4.1 core on the context current on the
// calling thread.
type GLBackend struct{}

func NewGLBackend() *GLBackend {
	return &GLBackend{}
}

func (b *GLBackend) Init() error {
	if glfw.GetCurrentContext() == nil {
		return fmt.Errorf("%w: no current OpenGL context", ErrBackendUnavailable)
	}
	glInitMu.Lock()
	defer glInitMu.Unlock()
	if glInitDone {
		return nil
	}
	// Function pointers are process-wide; a failure is left retryable.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("%w: failed to initialize OpenGL: %v", ErrBackendUnavailable, err)
	}
	glInitDone = true
	log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))
	return nil
}

func (b *GLBackend) CompileProgram(vertex, fragment string, uniforms []string) (uint32, map[string]int32, error) {
	fsCode, mapped, err := xlate.TranslateFragment(fragment)
	if err != nil {
		return 0, nil, err
	}
	program, err := newProgram(vertex, fsCode)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	gl.UseProgram(program)
	locs := make(map[string]int32, len(uniforms))
	for _, name := range uniforms {
		locs[name] = -1
		if m := mapped.Mapped(name); m != "" {
			locs[name] = gl.GetUniformLocation(program, gl.Str(m+"\x00"))
		}
	}
	gl.UseProgram(0)
	return program, locs, nil
}

func (b *GLBackend) CreateQuad() (uint32, uint32) {
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

func (b *GLBackend) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (b *GLBackend) Draw(program, vao uint32, loc UniformLocations, u *inputs.Uniforms) {
	gl.UseProgram(program)
	updateUniforms(loc, u)
	gl.BindVertexArray(vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (b *GLBackend) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (b *GLBackend) DeleteQuad(vao, vbo uint32) {
	if vbo != 0 {
		gl.DeleteBuffers(1, &vbo)
	}
	if vao != 0 {
		gl.DeleteVertexArrays(1, &vao)
	}
}

// Clear fills the default framebuffer, used as the plain fallback background.
func (b *GLBackend) Clear(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// ReadPixels reads the bottom-up RGBA8 contents of the default framebuffer.
func (b *GLBackend) ReadPixels(width, height int, dst []byte) {
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&dst[0]))
}

func updateUniforms(loc UniformLocations, u *inputs.Uniforms) {
	if loc.Resolution != -1 {
		gl.Uniform3f(loc.Resolution, float32(u.Resolution[0]), float32(u.Resolution[1]), 0)
	}
	set1f := func(l int32, v float32) {
		if l != -1 {
			gl.Uniform1f(l, v)
		}
	}
	set1f(loc.Time, u.Time)
	set1f(loc.Progress, u.Progress)
	set1f(loc.CurrentStep, u.CurrentStep)
	set1f(loc.TotalSteps, u.TotalSteps)
	set1f(loc.IsRippling, u.IsRippling)
	set1f(loc.RippleTime, u.RippleTime)
	set1f(loc.IsTextAnimating, u.IsTextAnimating)
	set1f(loc.TextTime, u.TextTime)
	set1f(loc.FreezeTime, u.FreezeTime)
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
