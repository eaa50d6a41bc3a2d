package headless

import (
	"log/slog"

	"github.com/valerio/go-sfc/sfc"
	"github.com/valerio/go-sfc/sfc/backend"
)

const defaultProgressInterval = 60

// Backend runs without any output besides logs, for batch runs and
// benchmarks.
type Backend struct {
	config           backend.Config
	frameCount       int
	maxFrames        int
	progressInterval int
}

// New returns a backend that requests Quit after maxFrames frames (never if
// zero) and logs progress every progressInterval frames.
func New(maxFrames, progressInterval int) *Backend {
	if progressInterval <= 0 {
		progressInterval = defaultProgressInterval
	}
	return &Backend{
		maxFrames:        maxFrames,
		progressInterval: progressInterval,
	}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config
	h.frameCount = 0

	slog.Info("Running headless mode",
		"title", config.Title,
		"frames", h.maxFrames,
		"progress_interval", h.progressInterval)

	return nil
}

// Update counts the frame and requests Quit once the target is reached.
func (h *Backend) Update(stats sfc.Stats) ([]backend.Action, error) {
	h.frameCount++

	if h.frameCount%h.progressInterval == 0 {
		slog.Info("Frame progress",
			"completed", h.frameCount,
			"total", h.maxFrames,
			"clocks", stats.Clocks,
			"resumes", stats.Resumes)
	}

	if h.maxFrames > 0 && h.frameCount >= h.maxFrames {
		slog.Info("Headless execution completed",
			"frames", h.frameCount,
			"region", stats.Region,
			"clocks", stats.Clocks)
		return []backend.Action{backend.Quit}, nil
	}

	return nil, nil
}

// Frames returns the number of frames seen since Init.
func (h *Backend) Frames() int {
	return h.frameCount
}

func (h *Backend) Cleanup() error {
	return nil
}
