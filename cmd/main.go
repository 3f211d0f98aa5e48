package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/goshaderbg/animation"
	"github.com/richinsley/goshaderbg/glfwcontext"
	"github.com/richinsley/goshaderbg/graphics"
	"github.com/richinsley/goshaderbg/options"
	"github.com/richinsley/goshaderbg/renderer"
	"github.com/richinsley/goshaderbg/wizard"
)

const mountAttempts = 3

func init() {
	runtime.LockOSThread()
}

func backgroundConfig(opts *options.BackgroundOptions) renderer.Config {
	return renderer.Config{
		Animation: animation.Config{
			AmbientStep:        float32(*opts.AmbientStep),
			RippleAcceleration: float32(*opts.RippleAcceleration),
			RippleFrames:       *opts.RippleFrames,
			TextStep:           float32(*opts.TextStep),
		},
		FadeStep: float32(*opts.FadeStep),
	}
}

// mount retries while the GL backend is not ready, pumping window events
// between attempts.
func mount(bg *renderer.Background, ctx *glfwcontext.Context) error {
	var err error
	for i := 0; i < mountAttempts; i++ {
		ctx.MakeCurrent()
		if err = bg.Mount(ctx); err == nil || !errors.Is(err, renderer.ErrBackendUnavailable) {
			return err
		}
		log.Printf("Render backend not ready (attempt %d/%d): %v", i+1, mountAttempts, err)
		glfw.PollEvents()
	}
	return err
}

func runInteractive(sigctx context.Context, opts *options.BackgroundOptions) error {
	ctx, err := glfwcontext.New(opts, true)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer ctx.Shutdown()

	backend := renderer.NewGLBackend()
	bg := renderer.NewBackground(backend, backgroundConfig(opts))
	defer bg.Unmount()

	flow := wizard.NewFlow(*opts.TotalSteps)
	bg.SetProps(flow.Props())

	if err := mount(bg, ctx); err != nil {
		log.Printf("Animated background unavailable, using plain background: %v", err)
		return runFallback(sigctx, ctx, backend)
	}

	update := func() { bg.SetProps(flow.Props()) }
	ctx.RegisterKeyCallback(glfw.KeyRight, func() { flow.Next(); update() })
	ctx.RegisterKeyCallback(glfw.KeySpace, func() { flow.Next(); update() })
	ctx.RegisterKeyCallback(glfw.KeyEnter, func() { flow.Complete(); update() })
	ctx.RegisterKeyCallback(glfw.KeyT, func() { flow.ShowText(); update() })
	ctx.RegisterKeyCallback(glfw.KeyF, func() { flow.FadeOut(); update() })

	bg.OnFrame(func(frame int64) {
		ctx.SetOpacity(bg.Opacity())
		if flow.Sync(bg.State()) {
			update()
		}
	})

	log.Println("Starting interactive render loop (Right/Space: next step, Enter: finish, T: text, F: fade, Esc: quit)...")
	err = bg.Run(sigctx, ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type clearer interface {
	Init() error
	Clear(r, g, b, a float32)
}

// runFallback keeps the window up when the animated background cannot be
// built. It clears to a plain colour when GL is usable, and otherwise only
// keeps the window responsive without drawing.
func runFallback(sigctx context.Context, display graphics.Display, backend clearer) error {
	canClear := true
	if err := backend.Init(); err != nil {
		log.Printf("Plain background unavailable, keeping window open without drawing: %v", err)
		canClear = false
	}
	for !display.ShouldClose() && sigctx.Err() == nil {
		if canClear {
			backend.Clear(0.08, 0.10, 0.22, 1)
		}
		display.EndFrame()
	}
	return nil
}

func runRecord(sigctx context.Context, opts *options.BackgroundOptions) error {
	// Frames are paced by the encoder, not the display.
	noVSync := false
	opts.VSync = &noVSync
	ctx, err := glfwcontext.New(opts, false)
	if err != nil {
		return fmt.Errorf("failed to create hidden window: %w", err)
	}
	defer ctx.Shutdown()

	backend := renderer.NewGLBackend()
	bg := renderer.NewBackground(backend, backgroundConfig(opts))
	defer bg.Unmount()

	flow := wizard.NewFlow(*opts.TotalSteps)
	stepFrames := int(*opts.StepSeconds * float64(*opts.FPS))
	script := wizard.NewScript(flow, stepFrames, *opts.FPS)
	bg.SetProps(flow.Props())

	if err := mount(bg, ctx); err != nil {
		return fmt.Errorf("failed to mount background: %w", err)
	}
	bg.OnFrame(func(frame int64) {
		if script.Advance(int(frame)+1, bg.State()) {
			bg.SetProps(flow.Props())
		}
	})

	width, height := ctx.GetFramebufferSize()
	rec, err := renderer.NewRecorder(backend, width, height, opts)
	if err != nil {
		return err
	}

	totalFrames := int(*opts.Duration * float64(*opts.FPS))
	recErr := bg.Record(sigctx, ctx, rec, totalFrames)
	closeErr := rec.Close()
	if recErr != nil {
		return recErr
	}
	if closeErr != nil {
		return fmt.Errorf("encoder failed: %w", closeErr)
	}
	log.Printf("Successfully rendered %d frames to %s", totalFrames, *opts.OutputFile)
	return nil
}

func main() {
	defaults := renderer.DefaultConfig()
	opts := &options.BackgroundOptions{
		Help:       flag.Bool("help", false, "Show help message"),
		Title:      flag.String("title", "goshaderbg", "Window title"),
		Mode:       flag.String("mode", "interactive", "Mode: interactive or record"),
		Width:      flag.Int("width", 1280, "Width of the window or recording"),
		Height:     flag.Int("height", 720, "Height of the window or recording"),
		VSync:      flag.Bool("vsync", true, "Tick once per display refresh"),
		TotalSteps: flag.Int("steps", 4, "Number of wizard steps"),

		Duration:    flag.Float64("duration", 12.0, "Duration to record in seconds"),
		FPS:         flag.Int("fps", 60, "Frames per second for recording"),
		StepSeconds: flag.Float64("step-seconds", 2.0, "Seconds between scripted wizard steps when recording"),
		OutputFile:  flag.String("output", "background.mp4", "Output file name for recording"),
		FFMPEGPath:  flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		Codec:       flag.String("codec", "h264", "Video codec to use for recording (h264 or hevc)"),

		AmbientStep:        flag.Float64("ambient-step", float64(defaults.Animation.AmbientStep), "Pattern time advance per frame"),
		RippleFrames:       flag.Int("ripple-frames", defaults.Animation.RippleFrames, "Frames a ripple lasts"),
		RippleAcceleration: flag.Float64("ripple-accel", float64(defaults.Animation.RippleAcceleration), "Pattern speed multiplier while rippling"),
		TextStep:           flag.Float64("text-step", float64(defaults.Animation.TextStep), "Text timer advance per frame"),
		FadeStep:           flag.Float64("fade-step", float64(defaults.FadeStep), "Opacity change per frame when fading out"),
	}
	flag.Parse()

	if *opts.Help {
		fmt.Println("Onboarding background renderer")
		flag.PrintDefaults()
		return
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	sigctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch *opts.Mode {
	case "interactive":
		err = runInteractive(sigctx, opts)
	case "record":
		err = runRecord(sigctx, opts)
	default:
		err = fmt.Errorf("unknown mode %q", *opts.Mode)
	}
	if err != nil {
		log.Printf("Error: %v", err)
		glfwcontext.TerminateGraphics()
		os.Exit(1)
	}
}
