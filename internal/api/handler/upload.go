package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before the parser spills to disk.
const multipartMemory = 32 << 20

// UploadConfig controls how multipart files are staged before hosting.
type UploadConfig struct {
	TempDir  string
	MaxBytes int64
}

// stagedFiles holds the local copies of uploaded files for one request.
type stagedFiles struct {
	paths map[string]string
}

// path returns the staged file for a form field, or "" if none was sent.
func (s *stagedFiles) path(field string) string {
	if s == nil {
		return ""
	}
	return s.paths[field]
}

// cleanup removes every staged file. Safe to call more than once.
func (s *stagedFiles) cleanup() {
	if s == nil {
		return
	}
	for field, p := range s.paths {
		_ = os.Remove(p)
		delete(s.paths, field)
	}
}

// stageUploads parses a multipart body and copies the named file fields into
// cfg.TempDir. Missing fields are skipped; callers decide which are required.
// The caller must call cleanup on the result whether or not the request succeeds.
func stageUploads(w http.ResponseWriter, r *http.Request, cfg UploadConfig, fields ...string) (*stagedFiles, error) {
	if cfg.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrUploadTooLarge
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	if err := os.MkdirAll(cfg.TempDir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	staged := &stagedFiles{paths: make(map[string]string, len(fields))}
	for _, field := range fields {
		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			continue
		}
		p, err := stageFile(cfg.TempDir, field, headers[0])
		if err != nil {
			staged.cleanup()
			return nil, err
		}
		staged.paths[field] = p
	}
	return staged, nil
}

func stageFile(dir, field string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", field, err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	dst, err := os.CreateTemp(dir, field+"-*"+ext)
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", field, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("stage %s: %w", field, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("stage %s: %w", field, err)
	}
	return dst.Name(), nil
}
