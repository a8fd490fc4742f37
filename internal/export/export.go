// Package export renders a stage into a video file. Frames are drawn
// in parallel, reordered, and streamed as raw RGBA into a single
// ffmpeg process, so nothing intermediate touches the disk.
package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zinecanvas/engine/internal/config"
	"github.com/zinecanvas/engine/internal/playback"
	"github.com/zinecanvas/engine/internal/render"
	"github.com/zinecanvas/engine/internal/stage"
	"github.com/zinecanvas/engine/internal/system"
)

// Exporter turns one stage into one output file using the settings in
// cfg. It owns no process state between runs; Run may be called again
// after a failure.
type Exporter struct {
	cfg      *config.Config
	stage    *stage.Stage
	renderer *render.Renderer
	logger   *slog.Logger
}

func New(cfg *config.Config, st *stage.Stage, r *render.Renderer, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{cfg: cfg, stage: st, renderer: r, logger: logger}
}

type renderedFrame struct {
	index int
	buf   *image.RGBA
}

// plan computes how many frames the output needs and how a frame index
// maps onto stage time. In play mode the clock advances at Speed; in
// zine mode the viewport scrolls at ScrollSpeed pixels per second of
// video, and scroll offset converts to stage time.
func (e *Exporter) plan() (total int, timeAt func(int) float64) {
	duration := e.stage.Duration()
	fps := float64(e.cfg.FPS)

	if e.cfg.Mode == config.ModeZine {
		mapper := playback.NewScrollMapper(e.cfg.PixelsPerSecond)
		videoSeconds := mapper.Pixels(duration) / e.cfg.ScrollSpeed
		total = int(math.Ceil(videoSeconds * fps))
		timeAt = func(i int) float64 {
			t := mapper.Time(e.cfg.ScrollSpeed * float64(i) / fps)
			return math.Min(t, duration)
		}
		return total, timeAt
	}

	total = int(math.Ceil(duration / e.cfg.Speed * fps))
	timeAt = func(i int) float64 {
		return math.Min(float64(i)/fps*e.cfg.Speed, duration)
	}
	return total, timeAt
}

// Run renders every frame and blocks until ffmpeg has written the
// output file or any stage of the pipeline fails.
func (e *Exporter) Run(ctx context.Context) error {
	start := time.Now()

	total, timeAt := e.plan()
	if total == 0 {
		return fmt.Errorf("nothing to export: stage duration is zero")
	}

	frameBytes := uint64(e.cfg.Width) * uint64(e.cfg.Height) * 4
	workers := e.cfg.Workers
	if workers <= 0 {
		workers = system.Workers(frameBytes, e.logger)
	}
	if workers > total {
		workers = total
	}

	encoder := e.cfg.VideoEncoder
	if encoder == "" {
		encoder = system.BestEncoder()
	}

	e.logger.Info("export starting",
		slog.String("mode", e.cfg.Mode),
		slog.Int("frames", total),
		slog.Int("workers", workers),
		slog.String("encoder", encoder),
		slog.Float64("duration", e.stage.Duration()))

	args := buildFFmpegArgs(e.cfg, encoder)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var ffmpegLog bytes.Buffer
	cmd.Stdout = &ffmpegLog
	cmd.Stderr = &ffmpegLog

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start: %w", err)
	}

	werr := e.streamFrames(ctx, stdin, total, timeAt, workers)
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		if werr != nil {
			return fmt.Errorf("%w\nffmpeg log:\n%s", werr, ffmpegLog.String())
		}
		return fmt.Errorf("ffmpeg: %w\n%s", err, ffmpegLog.String())
	}
	if werr != nil {
		return werr
	}

	elapsed := time.Since(start)
	if e.cfg.ShowStats {
		e.logger.Info("export finished",
			slog.String("output", e.cfg.OutputVideo),
			slog.Int("frames", total),
			slog.Float64("seconds", elapsed.Seconds()),
			slog.Float64("effective_fps", float64(total)/elapsed.Seconds()))
	}
	return nil
}

// streamFrames renders frames concurrently and writes them to w in
// index order. ffmpeg consumes a flat stream, so a small reorder
// buffer bridges out-of-order completion.
func (e *Exporter) streamFrames(ctx context.Context, w io.Writer, total int, timeAt func(int) float64, workers int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	elements := e.stage.Elements()
	pool := system.NewFramePool(image.Rect(0, 0, e.cfg.Width, e.cfg.Height))

	results := make(chan renderedFrame, workers*2)
	writerDone := make(chan error, 1)

	go func() {
		var werr error
		pending := make(map[int]*image.RGBA, workers*2)
		next := 0
		for f := range results {
			pending[f.index] = f.buf
			for {
				buf, ok := pending[next]
				if !ok {
					break
				}
				if werr == nil {
					if _, err := w.Write(buf.Pix); err != nil {
						werr = fmt.Errorf("write frame %d: %w", next, err)
						cancel()
					}
				}
				pool.Put(buf)
				delete(pending, next)
				next++
			}
		}
		writerDone <- werr
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < total; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			buf := pool.Get()
			e.renderer.Frame(buf, elements, timeAt(i))
			// The writer drains results until close, so this never blocks.
			results <- renderedFrame{index: i, buf: buf}
			return nil
		})
	}

	gerr := g.Wait()
	close(results)
	werr := <-writerDone

	if werr != nil {
		return werr
	}
	return gerr
}

// buildFFmpegArgs assembles the single-process invocation: raw RGBA
// frames on stdin, optional audio track, encoder-specific quality
// flags.
func buildFFmpegArgs(cfg *config.Config, encoder string) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"-framerate", fmt.Sprintf("%d", cfg.FPS),
		"-i", "-",
	}

	if cfg.AudioPath != "" {
		args = append(args, "-i", cfg.AudioPath, "-map", "0:v", "-map", "1:a", "-c:a", "aac", "-shortest")
	}

	args = append(args, "-c:v", encoder)
	switch encoder {
	case "h264_videotoolbox":
		// VideoToolbox has spotty -q:v support; a bitrate is reliable.
		args = append(args, "-b:v", fmt.Sprintf("%dk", cfg.Quality*100))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", cfg.Quality))
	default:
		args = append(args, "-crf", fmt.Sprintf("%d", cfg.Quality), "-preset", "medium")
	}

	args = append(args,
		"-pix_fmt", "yuv420p",
		"-r", fmt.Sprintf("%d", cfg.FPS),
		cfg.OutputVideo,
	)
	return args
}
