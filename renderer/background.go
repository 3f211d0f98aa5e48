package renderer

import (
	"context"
	"errors"
	"log"

	"github.com/richinsley/goshaderbg/animation"
	"github.com/richinsley/goshaderbg/graphics"
	"github.com/richinsley/goshaderbg/inputs"
)

type Config struct {
	Animation animation.Config
	FadeStep  float32 // opacity change per frame for the fade out hint
}

func DefaultConfig() Config {
	return Config{
		Animation: animation.DefaultConfig(),
		FadeStep:  1.0 / 60.0,
	}
}

// Background is one mounted instance of the animated background: it owns
// the surface, the uniforms, the animation state and the frame scheduler.
// Apart from SetProps, its methods must be called on the render thread.
type Background struct {
	cfg     Config
	backend Backend
	bridge  *inputs.Bridge

	uniforms  *inputs.Uniforms
	machine   *animation.Machine
	surface   *Surface
	scheduler *Scheduler
	frameHook func(frame int64)

	mounted   bool
	unmounted bool
	err       error // fatal mount error
}

func NewBackground(backend Backend, cfg Config) *Background {
	return &Background{
		cfg:     cfg,
		backend: backend,
		bridge:  inputs.NewBridge(cfg.FadeStep),
	}
}

// Mount initializes the surface on target and starts the scheduler. An
// error wrapping ErrBackendUnavailable leaves the background unmounted and
// Mount may be retried; any other error is permanent.
func (b *Background) Mount(target Target) error {
	switch {
	case b.unmounted:
		return ErrDisposed
	case b.err != nil:
		return b.err
	case b.mounted:
		return nil
	}

	uniforms := inputs.NewUniforms(0, 0)
	surface := NewSurface(b.backend)
	if err := surface.Initialize(target, uniforms); err != nil {
		surface.Dispose()
		if !errors.Is(err, ErrBackendUnavailable) {
			b.err = err
		}
		return err
	}

	b.uniforms = uniforms
	b.surface = surface
	b.machine = animation.New(b.cfg.Animation)
	b.scheduler = NewScheduler(b.bridge, b.machine, b.uniforms, b.surface)
	b.scheduler.afterDraw = b.frameHook
	b.mounted = true
	return nil
}

// SetProps hands the latest host state to the next tick. Safe from any goroutine.
func (b *Background) SetProps(p inputs.Props) {
	b.bridge.Set(p)
}

// OnFrame registers fn to run at the end of every tick.
func (b *Background) OnFrame(fn func(frame int64)) {
	b.frameHook = fn
	if b.scheduler != nil {
		b.scheduler.afterDraw = fn
	}
}

// Resize applies a new drawable size. It is a no-op before mount and after unmount.
func (b *Background) Resize(width, height int) {
	if !b.mounted || b.unmounted {
		return
	}
	b.surface.Resize(width, height)
}

// Tick runs a single frame outside of Run.
func (b *Background) Tick() error {
	if !b.mounted {
		return ErrNotMounted
	}
	return b.scheduler.Tick()
}

// Run drives ticks from display until it closes, ctx is done or Unmount is called.
func (b *Background) Run(ctx context.Context, display graphics.Display) error {
	if !b.mounted {
		return ErrNotMounted
	}
	return b.scheduler.Run(ctx, display)
}

// Unmount stops the tick stream, then disposes the surface, which removes
// its resize listener last. Calling it again is a no-op.
func (b *Background) Unmount() {
	if b.unmounted {
		return
	}
	b.unmounted = true
	if !b.mounted {
		return
	}
	b.scheduler.Stop()
	b.surface.Dispose()
	log.Println("Background unmounted")
}

func (b *Background) Mounted() bool { return b.mounted && !b.unmounted }

// Opacity is the eased opacity derived from the fade out hint.
func (b *Background) Opacity() float32 { return b.bridge.Opacity() }

// Uniforms returns a copy of the current uniform values.
func (b *Background) Uniforms() inputs.Uniforms {
	if b.uniforms == nil {
		return inputs.Uniforms{}
	}
	return *b.uniforms
}

func (b *Background) State() animation.State {
	if b.machine == nil {
		return animation.Normal
	}
	return b.machine.State()
}

// Frames returns the number of ticks run since mount.
func (b *Background) Frames() int64 {
	if b.scheduler == nil {
		return 0
	}
	return b.scheduler.Frames()
}
