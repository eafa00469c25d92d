package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedType = errors.New("only PDF, DOC, and DOCX files are allowed")
)

// ResumeStore writes uploaded résumés into a single uploads directory under
// generated names, so a hostile original filename never reaches the
// filesystem.
type ResumeStore struct {
	dir     string
	maxSize int64
	allowed map[string]struct{}
}

func NewResumeStore(dir string, maxSize int64, extensions []string) (*ResumeStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &ResumeStore{dir: dir, maxSize: maxSize, allowed: allowed}, nil
}

// Store validates and persists one résumé upload. The name is derived from
// {user, job, timestamp}; nanosecond resolution keeps rapid re-submissions
// from colliding on the same path.
func (s *ResumeStore) Store(file *multipart.FileHeader, userID, jobID uuid.UUID) (string, error) {
	if file.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if _, ok := s.allowed[ext]; !ok {
		return "", ErrUnsupportedType
	}

	name := fmt.Sprintf("resume_%s_%s_%d.%s", userID, jobID, time.Now().UnixNano(), ext)
	dst := filepath.Join(s.dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to close %s: %w", dst, err)
	}

	return dst, nil
}

// Remove deletes a stored résumé. Callers invoke it when a write that
// followed the upload fails, so a missing file is not an error.
func (s *ResumeStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
