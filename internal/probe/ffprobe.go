// Package probe reads media metadata from local files before they are hosted.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ErrNoDuration is returned when the probed file reports no usable duration.
var ErrNoDuration = errors.New("media duration unavailable")

// Config holds configuration for the ffprobe-based prober.
type Config struct {
	// Timeout bounds a single ffprobe run when ctx carries no earlier deadline.
	// Default: 30s
	Timeout time.Duration
}

// DefaultConfig returns a Config with production-ready defaults.
func DefaultConfig() Config {
	return Config{Timeout: 30 * time.Second}
}

// probeFunc runs ffprobe and returns its JSON output.
type probeFunc func(path string, timeout time.Duration, args ffmpeg.KwArgs) (string, error)

// FFprobe reports media durations using the ffprobe binary through ffmpeg-go.
type FFprobe struct {
	config Config
	probe  probeFunc
}

// NewFFprobe creates a new ffprobe-based prober.
func NewFFprobe(cfg Config) *FFprobe {
	return &FFprobe{config: cfg, probe: ffmpeg.ProbeWithTimeout}
}

// Duration returns the container duration of the media file at path, in seconds.
func (p *FFprobe) Duration(ctx context.Context, path string) (float64, error) {
	if err := validateInput(path); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	timeout := p.config.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, context.DeadlineExceeded
		}
		if timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}

	out, err := p.probe(path, timeout, ffmpeg.KwArgs{})
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	return parseDuration(out)
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// parseDuration extracts format.duration from ffprobe JSON output.
func parseDuration(out string) (float64, error) {
	var parsed probeOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return 0, fmt.Errorf("decode ffprobe output: %w", err)
	}
	if parsed.Format.Duration == "" || parsed.Format.Duration == "N/A" {
		return 0, ErrNoDuration
	}

	d, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoDuration, parsed.Format.Duration)
	}
	return d, nil
}

// validateInput checks if the input file exists and is readable.
func validateInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", path)
		}
		return fmt.Errorf("failed to access input file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("input path is a directory, expected a file: %s", path)
	}

	return nil
}
