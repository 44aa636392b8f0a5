package probe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

func writeTempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("dummy"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	if got := DefaultConfig().Timeout; got != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", got)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    float64
		wantErr error
	}{
		{"valid duration", `{"format":{"duration":"12.345000"}}`, 12.345, nil},
		{"missing duration", `{"format":{}}`, 0, ErrNoDuration},
		{"not available", `{"format":{"duration":"N/A"}}`, 0, ErrNoDuration},
		{"garbage duration", `{"format":{"duration":"abc"}}`, 0, ErrNoDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDuration(tt.out)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parseDuration() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseDuration() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := parseDuration("not json"); err == nil {
		t.Error("parseDuration() expected error for invalid JSON")
	}
}

// lapsedContext reports a deadline in the past before its Err is set,
// as happens when the deadline passes between checks.
type lapsedContext struct {
	context.Context
	deadline time.Time
}

func (c lapsedContext) Deadline() (time.Time, bool) {
	return c.deadline, true
}

func TestFFprobe_Duration(t *testing.T) {
	t.Run("non-existent file returns error", func(t *testing.T) {
		p := NewFFprobe(DefaultConfig())
		if _, err := p.Duration(context.Background(), "/non/existent/file.mp4"); err == nil {
			t.Error("expected error for non-existent file")
		}
	})

	t.Run("directory returns error", func(t *testing.T) {
		p := NewFFprobe(DefaultConfig())
		if _, err := p.Duration(context.Background(), t.TempDir()); err == nil {
			t.Error("expected error when input is a directory")
		}
	})

	t.Run("uses ffprobe output", func(t *testing.T) {
		path := writeTempFile(t)
		p := NewFFprobe(DefaultConfig())
		var gotPath string
		p.probe = func(file string, timeout time.Duration, args ffmpeg.KwArgs) (string, error) {
			gotPath = file
			if timeout <= 0 {
				t.Errorf("timeout = %v, want positive", timeout)
			}
			return `{"format":{"duration":"61.5"}}`, nil
		}

		got, err := p.Duration(context.Background(), path)
		if err != nil {
			t.Fatalf("Duration() error = %v", err)
		}
		if got != 61.5 || gotPath != path {
			t.Errorf("Duration() = %v (path %q)", got, gotPath)
		}
	})

	t.Run("context deadline shortens timeout", func(t *testing.T) {
		path := writeTempFile(t)
		p := NewFFprobe(Config{Timeout: time.Hour})
		p.probe = func(_ string, timeout time.Duration, _ ffmpeg.KwArgs) (string, error) {
			if timeout > time.Minute {
				t.Errorf("timeout = %v, want bounded by ctx deadline", timeout)
			}
			return `{"format":{"duration":"1"}}`, nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := p.Duration(ctx, path); err != nil {
			t.Errorf("Duration() error = %v", err)
		}
	})

	t.Run("deadline already passed", func(t *testing.T) {
		path := writeTempFile(t)
		p := NewFFprobe(DefaultConfig())
		p.probe = func(string, time.Duration, ffmpeg.KwArgs) (string, error) {
			t.Error("probe should not run without time left")
			return "", nil
		}

		ctx := lapsedContext{Context: context.Background(), deadline: time.Now().Add(-time.Millisecond)}
		if _, err := p.Duration(ctx, path); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Duration() error = %v, want %v", err, context.DeadlineExceeded)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		path := writeTempFile(t)
		p := NewFFprobe(DefaultConfig())
		p.probe = func(string, time.Duration, ffmpeg.KwArgs) (string, error) {
			t.Error("probe should not run after cancellation")
			return "", nil
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := p.Duration(ctx, path); !errors.Is(err, context.Canceled) {
			t.Errorf("Duration() error = %v, want %v", err, context.Canceled)
		}
	})

	t.Run("probe failure", func(t *testing.T) {
		path := writeTempFile(t)
		p := NewFFprobe(DefaultConfig())
		p.probe = func(string, time.Duration, ffmpeg.KwArgs) (string, error) {
			return "", errors.New("exit status 1")
		}
		if _, err := p.Duration(context.Background(), path); err == nil {
			t.Error("expected error when ffprobe fails")
		}
	})
}
