// Package system holds the host-facing plumbing of the exporter:
// resource limits, encoder probing, and worker autotuning.
package system

import (
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file limit so a busy export does
// not trip NOFILE. Failures are logged and ignored; the export just
// runs with the smaller limit.
func InitResourceLimits(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		logger.Warn("could not read file limit", slog.String("error", err.Error()))
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}
	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		logger.Warn("could not raise file limit", slog.String("error", err.Error()))
		return
	}
	logger.Debug("file limit raised", slog.Uint64("limit", uint64(rLimit.Cur)))
}

// BestEncoder probes ffmpeg for hardware H.264 encoders, preferring
// VideoToolbox then NVENC, falling back to software x264.
func BestEncoder() string {
	candidates := []string{"h264_videotoolbox", "h264_nvenc"}

	out, err := exec.Command("ffmpeg", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, name := range candidates {
		if strings.Contains(string(out), name) {
			return name
		}
	}
	return "libx264"
}

// Workers picks a render worker count: one per physical core, capped
// so the frames in flight fit in a quarter of available memory. At
// least one worker always runs.
func Workers(frameBytes uint64, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}

	workers := runtime.NumCPU()
	if counts, err := cpu.Counts(false); err == nil && counts > 0 {
		workers = counts
	}

	if frameBytes > 0 {
		if vm, err := mem.VirtualMemory(); err == nil {
			budget := vm.Available / 4
			// Each in-flight frame costs roughly two buffers: one
			// rendering, one queued for the encoder.
			if limit := int(budget / (frameBytes * 2)); limit < workers {
				logger.Debug("worker count capped by memory",
					slog.Int("cpu", workers),
					slog.Int("memory_cap", limit))
				workers = limit
			}
		}
	}

	if workers < 1 {
		workers = 1
	}
	return workers
}
