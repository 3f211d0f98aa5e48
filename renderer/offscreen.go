package renderer

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync/atomic"

	"github.com/richinsley/goshaderbg/graphics"
	options "github.com/richinsley/goshaderbg/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame represents a single rendered frame's data, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// PixelReader reads back the RGBA8 contents of the drawn frame.
type PixelReader interface {
	ReadPixels(width, height int, dst []byte)
}

// FrameSink consumes the frame that was just drawn.
type FrameSink interface {
	Capture() error
}

const numBuffers = 3

// Recorder encodes drawn frames to a video file through an ffmpeg process.
// Capture runs on the render thread; encoding runs on its own goroutine.
type Recorder struct {
	reader PixelReader
	width  int
	height int

	frames chan *Frame
	done   chan error
	failed atomic.Bool
	pts    int64
}

// NewRecorder starts ffmpeg reading raw frames of width x height.
func NewRecorder(reader PixelReader, width, height int, opts *options.BackgroundOptions) (*Recorder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid record size %dx%d", width, height)
	}
	r := &Recorder{
		reader: reader,
		width:  width,
		height: height,
		frames: make(chan *Frame, numBuffers),
		done:   make(chan error, 1),
	}
	go r.runEncoder(opts)
	return r, nil
}

func recordArgs(width, height int, opts *options.BackgroundOptions) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": *opts.FPS,
	}

	// glReadPixels returns rows bottom-up.
	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}
	if *opts.Codec == "hevc" {
		outputArgs["c:v"] = "libx265"
	} else {
		outputArgs["c:v"] = "libx264"
	}
	return inputArgs, outputArgs
}

func (r *Recorder) runEncoder(opts *options.BackgroundOptions) {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := recordArgs(r.width, r.height, opts)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if *opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock pending writes if ffmpeg exits early.
		if err != nil {
			pipeReader.CloseWithError(err)
		} else {
			pipeReader.Close()
		}
		errc <- err
	}()

	var writeErr error
	for frame := range r.frames {
		if writeErr != nil {
			continue
		}
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, err)
			r.failed.Store(true)
			log.Printf("Error: %v", writeErr)
		}
	}
	pipeWriter.Close()

	runErr := <-errc
	if writeErr != nil {
		r.done <- writeErr
		return
	}
	r.done <- runErr
}

// Capture reads back the current frame and queues it for encoding.
func (r *Recorder) Capture() error {
	if r.failed.Load() {
		return fmt.Errorf("recorder failed at frame %d", r.pts)
	}
	pixels := make([]byte, r.width*r.height*4)
	r.reader.ReadPixels(r.width, r.height, pixels)
	r.frames <- &Frame{Pixels: pixels, PTS: r.pts}
	r.pts++
	return nil
}

// Close flushes the queued frames and waits for ffmpeg to exit.
func (r *Recorder) Close() error {
	close(r.frames)
	return <-r.done
}

// Record renders frames ticks back to back, handing each drawn frame to sink.
// Pacing comes from the fixed per-tick rates, not the wall clock.
func (b *Background) Record(ctx context.Context, display graphics.Display, sink FrameSink, frames int) error {
	if !b.mounted {
		return ErrNotMounted
	}
	log.Printf("Recording %d frames...", frames)
	for i := 0; i < frames; i++ {
		if b.scheduler.Stopped() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := b.scheduler.Tick(); err != nil {
			return err
		}
		if err := sink.Capture(); err != nil {
			return fmt.Errorf("failed to capture frame %d: %w", i, err)
		}
		display.EndFrame()
	}
	return nil
}
