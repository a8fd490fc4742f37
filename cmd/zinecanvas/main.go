package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/zinecanvas/engine/internal/asset"
	"github.com/zinecanvas/engine/internal/composer"
	"github.com/zinecanvas/engine/internal/config"
	"github.com/zinecanvas/engine/internal/export"
	"github.com/zinecanvas/engine/internal/render"
	"github.com/zinecanvas/engine/internal/system"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("export failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	system.InitResourceLimits(logger)

	configPtr := flag.String("config", "", "Path to a YAML settings file (flags override it)")
	inputPtr := flag.String("input", "", "PDF or image folder (default: newest file under input/)")
	outputPtr := flag.String("output", "", "Output video path (default: generated under output/)")
	audioPtr := flag.String("audio", "", "Audio track to mux (default: newest file under input/audio/)")
	modePtr := flag.String("mode", "", "Playback drive for export: play or zine")
	widthPtr := flag.Int("width", 0, "Canvas width")
	heightPtr := flag.Int("height", 0, "Canvas height")
	presetPtr := flag.String("preset", "", "Canvas preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	fpsPtr := flag.Int("fps", 0, "Output frame rate")
	dpiPtr := flag.Int("dpi", 0, "Page rasterization DPI")
	ppsPtr := flag.Float64("pps", 0, "Scroll mapping: timeline seconds per pixel is 1/pps")
	scrollSpeedPtr := flag.Float64("scroll-speed", 0, "Zine mode: scroll pixels per second of video")
	speedPtr := flag.Float64("speed", 0, "Play mode: playback speed multiplier")
	workersPtr := flag.Int("workers", 0, "Render workers (0 = autotune from CPU and memory)")
	qualityPtr := flag.Int("quality", 0, "Encoder quality (x264: CRF, VideoToolbox: bitrate = Q*100kbit/s)")
	titlePtr := flag.String("title", "", "Heading text drawn over the opening")
	linkPtr := flag.String("link", "", "URL rendered as a QR sticker at the end")
	statsPtr := flag.Bool("stats", false, "Log a performance summary")
	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags the user actually passed win over file and defaults.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = *inputPtr
		case "output":
			cfg.OutputVideo = *outputPtr
		case "audio":
			cfg.AudioPath = *audioPtr
		case "mode":
			cfg.Mode = *modePtr
		case "width":
			cfg.Width = *widthPtr
		case "height":
			cfg.Height = *heightPtr
		case "fps":
			cfg.FPS = *fpsPtr
		case "dpi":
			cfg.DPI = *dpiPtr
		case "pps":
			cfg.PixelsPerSecond = *ppsPtr
		case "scroll-speed":
			cfg.ScrollSpeed = *scrollSpeedPtr
		case "speed":
			cfg.Speed = *speedPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "quality":
			cfg.Quality = *qualityPtr
		case "title":
			cfg.Title = *titlePtr
		case "link":
			cfg.Link = *linkPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		}
	})

	switch *presetPtr {
	case "16:9":
		cfg.Width, cfg.Height = 1280, 720
	case "9:16":
		cfg.Width, cfg.Height = 720, 1280
	case "4:5":
		cfg.Width, cfg.Height = 1080, 1350
	}

	if cfg.InputPath == "" {
		latest, err := asset.FindLatest("input", []string{".pdf", ".jpg", ".jpeg", ".png"})
		if err != nil {
			return fmt.Errorf("no -input given and nothing usable under input/: %w", err)
		}
		cfg.InputPath = latest
		logger.Info("input discovered", slog.String("path", latest))
	}

	if cfg.AudioPath == "" {
		if latest, err := asset.FindLatest("input/audio", []string{".mp3", ".wav", ".m4a", ".aac"}); err == nil {
			cfg.AudioPath = latest
			logger.Info("audio discovered", slog.String("path", latest))
		}
	}

	if cfg.OutputVideo == "" || cfg.OutputVideo == config.Default().OutputVideo {
		base := strings.TrimSuffix(filepath.Base(cfg.InputPath), filepath.Ext(cfg.InputPath))
		base = strings.ReplaceAll(base, " ", "_")
		stamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputVideo = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", base, stamp))
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.OutputVideo), 0755); err != nil {
		return err
	}

	src, err := asset.Open(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	comp := composer.New(cfg.Width, cfg.Height, logger)
	comp.DPI = cfg.DPI
	st, err := comp.Compose(src, composer.Options{
		Title:     cfg.Title,
		Link:      cfg.Link,
		AudioPath: cfg.AudioPath,
	})
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := render.New(cfg.Width, cfg.Height, color.RGBA{R: 16, G: 16, B: 20, A: 255})
	exp := export.New(cfg, st, r, logger)
	if err := exp.Run(ctx); err != nil {
		return err
	}

	logger.Info("done", slog.String("output", cfg.OutputVideo))
	return nil
}
