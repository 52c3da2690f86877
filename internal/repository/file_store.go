package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "cars-info-processing/internal/errors"
)

// FileStore reads input documents from and writes output documents to
// .json files.
type FileStore struct{}

func NewFileStore() *FileStore {
	return &FileStore{}
}

// CheckPath requires a non-empty file name with the .json extension and
// returns the absolute path.
func (s *FileStore) CheckPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", apperrors.NewEmptyInputError("file path is empty")
	}
	if strings.ContainsRune(path, 0) {
		return "", apperrors.NewFormatError("file path contains invalid characters")
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext != ".json" || strings.TrimSuffix(base, ext) == "" {
		return "", apperrors.NewFormatError(fmt.Sprintf("file %q must have a name and the .json extension", path))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	return abs, nil
}

func (s *FileStore) ReadInput(path string) (string, error) {
	abs, err := s.CheckPath(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NewNotFoundError(fmt.Sprintf("file %s not found", abs))
		}
		return "", fmt.Errorf("failed to read %s: %w", abs, err)
	}
	return string(data), nil
}

// WriteOutput creates or truncates the file and writes data followed by a
// newline.
func (s *FileStore) WriteOutput(path, data string) error {
	if data == "" {
		return apperrors.NewEmptyInputError("nothing to write")
	}
	abs, err := s.CheckPath(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(abs, []byte(data+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", abs, err)
	}
	return nil
}
