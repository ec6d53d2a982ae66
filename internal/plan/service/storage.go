package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ============================================================
// File Storage
// ============================================================

var errBadID = errors.New("invalid document id")

var safeID = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// FileStorage keeps the source drawing of every stored document on disk.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) DocumentDir(docID string) string {
	return filepath.Join(s.root, docID)
}

func (s *FileStorage) SVGPath(docID string) string {
	return filepath.Join(s.DocumentDir(docID), "plan.svg")
}

// SaveSVG writes the source drawing of docID.
func (s *FileStorage) SaveSVG(docID string, data []byte) error {
	if !safeID.MatchString(docID) {
		return fmt.Errorf("%w: %q", errBadID, docID)
	}
	if err := os.MkdirAll(s.DocumentDir(docID), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(s.SVGPath(docID), data, 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// LoadSVG reads the source drawing of docID.
func (s *FileStorage) LoadSVG(docID string) ([]byte, error) {
	if !safeID.MatchString(docID) {
		return nil, fmt.Errorf("%w: %q", errBadID, docID)
	}
	return os.ReadFile(s.SVGPath(docID))
}

// Remove deletes everything stored for docID.
func (s *FileStorage) Remove(docID string) error {
	if !safeID.MatchString(docID) {
		return fmt.Errorf("%w: %q", errBadID, docID)
	}
	return os.RemoveAll(s.DocumentDir(docID))
}
