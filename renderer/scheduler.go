package renderer

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/richinsley/goshaderbg/animation"
	"github.com/richinsley/goshaderbg/graphics"
	"github.com/richinsley/goshaderbg/inputs"
)

// Scheduler runs the per-frame tick. Ticks run one after another on the
// render goroutine; the next one starts only when the previous returned.
type Scheduler struct {
	bridge   *inputs.Bridge
	machine  *animation.Machine
	uniforms *inputs.Uniforms
	surface  *Surface

	// afterDraw runs at the end of every tick, e.g. for the host to update props.
	afterDraw func(frame int64)

	stopped atomic.Bool
	frames  int64
}

func NewScheduler(bridge *inputs.Bridge, machine *animation.Machine, uniforms *inputs.Uniforms, surface *Surface) *Scheduler {
	return &Scheduler{
		bridge:   bridge,
		machine:  machine,
		uniforms: uniforms,
		surface:  surface,
	}
}

// Tick samples the host props, advances the animation, draws once and runs
// the frame hook. It does nothing once the scheduler is stopped. A panic
// inside the tick stops the scheduler and is returned as an error.
func (s *Scheduler) Tick() (err error) {
	if s.stopped.Load() {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			s.Stop()
			err = fmt.Errorf("frame %d: tick panicked: %v", s.frames, r)
			log.Printf("Error: %v", err)
		}
	}()

	sig := s.bridge.Sample()
	s.uniforms.ApplyProps(sig)
	s.machine.Advance(s.uniforms, sig)
	s.surface.DrawFrame()

	frame := s.frames
	s.frames++
	if s.afterDraw != nil {
		s.afterDraw(frame)
	}
	return nil
}

// Run ticks once per display refresh until the display closes, ctx is
// cancelled or Stop is called. Window events, including resizes, are
// processed by EndFrame between two ticks.
func (s *Scheduler) Run(ctx context.Context, display graphics.Display) error {
	for {
		if s.stopped.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if display.ShouldClose() {
			return nil
		}
		if err := s.Tick(); err != nil {
			return err
		}
		display.EndFrame()
	}
}

// Stop ends the tick stream for good.
func (s *Scheduler) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		log.Printf("Frame scheduler stopped after %d frames", s.frames)
	}
}

func (s *Scheduler) Stopped() bool { return s.stopped.Load() }

// Frames returns the number of completed ticks.
func (s *Scheduler) Frames() int64 { return s.frames }
