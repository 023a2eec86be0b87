// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mozillazg/go-unidecode"

	"github.com/olegiv/oblog-go/internal/imaging"
)

// ErrUnsupportedType is returned for uploads outside the image
// allowlist.
var ErrUnsupportedType = errors.New("unsupported file type")

// allowedImageTypes maps accepted upload MIME types to a canonical
// extension used when the original filename carries none.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var nonFilenameChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// MediaService stores uploaded images on the local filesystem under a
// single flat directory served at /uploads/.
type MediaService struct {
	uploadDir string
	processor *imaging.Processor
	logger    *slog.Logger
}

// NewMediaService creates a new media service writing into uploadDir.
func NewMediaService(uploadDir string, logger *slog.Logger) *MediaService {
	return &MediaService{
		uploadDir: uploadDir,
		processor: imaging.NewProcessor(uploadDir),
		logger:    logger,
	}
}

// Init ensures the upload directory exists.
func (s *MediaService) Init() error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return fmt.Errorf("creating upload directory: %w", err)
	}
	return nil
}

// Store saves an uploaded image and returns its public URL path.
//
// The stored name is the upload timestamp in milliseconds joined to the
// sanitized original filename with a hyphen, which keeps repeat uploads
// of the same file from clobbering each other. A thumbnail is generated
// best-effort; failures are logged and never fail the upload.
func (s *MediaService) Store(file multipart.File, header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(header.Filename, ext))
	path := filepath.Join(s.uploadDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}

	if s.processor.CanThumbnail(contentType) {
		if _, err := s.processor.Thumbnail(data, name); err != nil {
			s.logger.Warn("thumbnail generation failed", "file", name, "error", err)
		}
	}

	width, height, err := imaging.Dimensions(data)
	if err != nil {
		// A corrupt but correctly-typed file still gets stored.
		s.logger.Warn("could not read image dimensions", "file", name, "error", err)
	}

	s.logger.Info("image uploaded", "file", name, "size", len(data),
		"type", contentType, "width", width, "height", height)
	return "/uploads/" + name, nil
}

// Delete removes a stored image and its thumbnail, if any. The name is
// the bare filename, not a path.
func (s *MediaService) Delete(name string) error {
	name = filepath.Base(name)
	if err := os.Remove(filepath.Join(s.uploadDir, name)); err != nil {
		return fmt.Errorf("removing upload: %w", err)
	}
	// Thumbnail may not exist for every format.
	_ = os.Remove(filepath.Join(s.uploadDir, "thumb-"+name))
	return nil
}

// sanitizeFilename reduces an uploaded filename to lowercase ASCII
// letters, digits, dots, and hyphens. Path separators are stripped
// first so the name can never escape the upload directory. An empty
// result falls back to a random name with the type's extension.
func sanitizeFilename(original, fallbackExt string) string {
	name := filepath.Base(original)
	name = unidecode.Unidecode(name)
	name = strings.ToLower(name)
	name = strings.Join(strings.Fields(name), "-")
	name = nonFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "-")

	if name == "" || strings.TrimSuffix(name, filepath.Ext(name)) == "" {
		return uuid.NewString() + fallbackExt
	}
	return name
}
