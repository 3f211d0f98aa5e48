package renderer

import (
	"github.com/richinsley/goshaderbg/inputs"
)

type drawCall struct {
	program  uint32
	viewport [2]int
	uniforms inputs.Uniforms
}

// fakeBackend records GL work instead of doing it.
type fakeBackend struct {
	initErr    error
	compileErr error
	panicDraw  bool

	nextName uint32
	viewport [2]int
	draws    []drawCall

	livePrograms    int
	liveQuads       int
	deletedPrograms int
	deletedQuads    int
	compiledSources []string
}

func (f *fakeBackend) name() uint32 {
	f.nextName++
	return f.nextName
}

func (f *fakeBackend) Init() error { return f.initErr }

func (f *fakeBackend) CompileProgram(vertex, fragment string, uniforms []string) (uint32, map[string]int32, error) {
	if f.compileErr != nil {
		return 0, nil, f.compileErr
	}
	f.compiledSources = append(f.compiledSources, fragment)
	locs := make(map[string]int32, len(uniforms))
	for i, n := range uniforms {
		locs[n] = int32(i)
	}
	f.livePrograms++
	return f.name(), locs, nil
}

func (f *fakeBackend) CreateQuad() (uint32, uint32) {
	f.liveQuads++
	return f.name(), f.name()
}

func (f *fakeBackend) Viewport(width, height int) {
	f.viewport = [2]int{width, height}
}

func (f *fakeBackend) Draw(program, vao uint32, loc UniformLocations, u *inputs.Uniforms) {
	if f.panicDraw {
		panic("lost context")
	}
	f.draws = append(f.draws, drawCall{program: program, viewport: f.viewport, uniforms: *u})
}

func (f *fakeBackend) DeleteProgram(program uint32) {
	f.livePrograms--
	f.deletedPrograms++
}

func (f *fakeBackend) DeleteQuad(vao, vbo uint32) {
	f.liveQuads--
	f.deletedQuads++
}

func (f *fakeBackend) ReadPixels(width, height int, dst []byte) {
	for i := range dst {
		dst[i] = 0xff
	}
}

func (f *fakeBackend) lastDraw() drawCall {
	return f.draws[len(f.draws)-1]
}

type fakeTarget struct {
	width, height int
	listeners     map[int]func(int, int)
	nextID        int
}

func newFakeTarget(width, height int) *fakeTarget {
	return &fakeTarget{width: width, height: height, listeners: map[int]func(int, int){}}
}

func (t *fakeTarget) GetFramebufferSize() (int, int) { return t.width, t.height }

func (t *fakeTarget) OnResize(fn func(width, height int)) func() {
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	return func() { delete(t.listeners, id) }
}

// resize mimics a window resize event delivered between two frames.
func (t *fakeTarget) resize(width, height int) {
	t.width, t.height = width, height
	for _, fn := range t.listeners {
		fn(width, height)
	}
}

type fakeDisplay struct {
	closeAfter int // frames presented before ShouldClose reports true
	presented  int
	onEndFrame func(frame int)
}

func (d *fakeDisplay) ShouldClose() bool { return d.presented >= d.closeAfter }

func (d *fakeDisplay) EndFrame() {
	frame := d.presented
	d.presented++
	if d.onEndFrame != nil {
		d.onEndFrame(frame)
	}
}

type fakeSink struct {
	captures int
	err      error
}

func (s *fakeSink) Capture() error {
	if s.err != nil {
		return s.err
	}
	s.captures++
	return nil
}
