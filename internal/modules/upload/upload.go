// Package upload stores multipart image uploads under the static directory.
package upload

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/inkpress/core/internal/pkg/apperror"
	"go.uber.org/zap"
)

// Kind selects the per-role static subdirectory.
type Kind string

const (
	KindPosts      Kind = "posts"
	KindCategories Kind = "categories"
	KindProfile    Kind = "profile"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Service saves and removes uploaded images.
type Service struct {
	baseDir string
	log     *zap.Logger
}

func NewService(baseDir string, log *zap.Logger) *Service {
	return &Service{baseDir: baseDir, log: log.Named("UploadService")}
}

// Dir returns the storage directory for a kind.
func (s *Service) Dir(kind Kind) string {
	return filepath.Join(s.baseDir, string(kind))
}

// Save validates the file extension, randomizes the filename, and writes the
// upload to disk. It returns the stored filename.
func (s *Service) Save(fh *multipart.FileHeader, kind Kind) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", apperror.BadRequest("File type is not supported")
	}

	dir := s.Dir(kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + ext

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// Remove deletes a stored file. Failure is logged, never propagated: image
// cleanup is best effort and must not fail the request that triggered it.
func (s *Service) Remove(kind Kind, filename string) {
	if filename == "" {
		return
	}
	path := filepath.Join(s.Dir(kind), filepath.Base(filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to delete image",
			zap.String("path", path),
			zap.Error(err),
		)
	}
}
