// Package filestore manages the provisioning working directory: timestamped
// copies of uploaded workbooks, generated result workbooks, and their
// best-effort delayed cleanup.
package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store is a working-directory file store.
type Store struct {
	dir    string
	logger zerolog.Logger
}

// NewStore creates the working directory if needed and returns a store.
func NewStore(dir string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create working directory %q: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the working directory path.
func (s *Store) Dir() string {
	return s.dir
}

// SaveUpload persists an uploaded file under a timestamped unique name and
// returns the stored name.
func (s *Store) SaveUpload(r io.Reader, originalName string) (string, error) {
	name := fmt.Sprintf("%s_%s_%s",
		time.Now().Format("20060102_150405"),
		uuid.New().String()[:8],
		SanitizeName(originalName),
	)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return name, nil
}

// Path resolves a stored name to an absolute path inside the working
// directory. Names carrying path separators or traversal elements are
// rejected so download handlers cannot be steered outside the store.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == ".." {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}

// Exists reports whether a stored file is present.
func (s *Store) Exists(name string) bool {
	path, err := s.Path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// RemoveAfter deletes a stored file after the given delay. Best effort:
// failures are logged, not returned.
func (s *Store) RemoveAfter(name string, delay time.Duration) {
	path, err := s.Path(name)
	if err != nil {
		return
	}
	time.AfterFunc(delay, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("file", name).Msg("Failed to clean up working file")
			return
		}
		s.logger.Debug().Str("file", name).Msg("Cleaned up working file")
	})
}

// Remove deletes a stored file immediately.
func (s *Store) Remove(name string) {
	path, err := s.Path(name)
	if err != nil {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn().Err(err).Str("file", name).Msg("Failed to remove working file")
	}
}

// SanitizeName strips path elements and whitespace from a client-supplied
// file name.
func SanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return "upload.xlsx"
	}
	return strings.ReplaceAll(name, " ", "_")
}
