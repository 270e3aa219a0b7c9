package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// UploadOptions controls how multipart files are received.
type UploadOptions struct {
	TmpDir    string // spool directory, os.TempDir() when empty
	MaxMemory int64  // bytes kept in memory while parsing the form
}

// parseMultipart parses a multipart form. Requests that are not multipart are
// accepted and leave the form empty.
func parseMultipart(r *http.Request, opts UploadOptions) error {
	err := r.ParseMultipartForm(opts.MaxMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

// spoolFile copies the first file of field into the spool directory.
// It returns nil when the field carries no file.
func spoolFile(r *http.Request, field string, opts UploadOptions) (*models.UploadedFile, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, nil
	}
	header := r.MultipartForm.File[field][0]

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	defer src.Close()

	dst, err := os.CreateTemp(opts.TmpDir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		removeSpooled(&models.UploadedFile{Path: dst.Name()})
		return nil, fmt.Errorf("spool %s: %w", field, err)
	}

	return &models.UploadedFile{
		Path:        dst.Name(),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        size,
	}, nil
}

// removeSpooled deletes spooled files the media store did not consume.
func removeSpooled(files ...*models.UploadedFile) {
	for _, f := range files {
		if f == nil {
			continue
		}
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Log.Warnw("failed to remove spooled file", "path", f.Path, "err", err)
		}
	}
}

func cleanupForm(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}
