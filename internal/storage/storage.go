package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage handles the file system side of the wizard: generated documents land in the output
// directory, and record files are read from and written to arbitrary paths
type Storage struct {
	rootPath string
}

// NewStorage creates a storage rooted at the output directory. An empty path means the current
// working directory.
func NewStorage(rootPath string) *Storage {
	if rootPath == "" {
		rootPath = "."
	}
	return &Storage{rootPath: rootPath}
}

// GetBaseDir returns the output directory
func (s *Storage) GetBaseDir() string {
	return s.rootPath
}

// DocumentPath is where a document with the given file name is written
func (s *Storage) DocumentPath(fileName string) string {
	return filepath.Join(s.rootPath, filepath.Base(fileName))
}

// SaveDocument writes data under fileName in the output directory. The bytes go to a temporary
// file first and are renamed into place, so a reader never sees a half-written PDF and a failed
// write leaves any previous file untouched.
func (s *Storage) SaveDocument(fileName string, data []byte) (string, error) {
	if strings.TrimSpace(fileName) == "" {
		return "", fmt.Errorf("empty document file name")
	}
	if err := os.MkdirAll(s.rootPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	fullPath := s.DocumentPath(fileName)
	tmp, err := os.CreateTemp(s.rootPath, ".srs-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to set document permissions: %w", err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move document into place: %w", err)
	}

	return fullPath, nil
}

// LoadRecordFile reads a record from a YAML or JSON file, picking the format from the extension
func (s *Storage) LoadRecordFile(path string) (*RecordFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}

	format := FormatFromPath(path)
	record, err := DecodeRecord(content, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &RecordFile{Path: path, Format: format, Record: record}, nil
}

// SaveRecordFile writes a record in the format implied by the path's extension
func (s *Storage) SaveRecordFile(path string, file *RecordFile) error {
	content, err := EncodeRecord(file.Record, FormatFromPath(path))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write record file: %w", err)
	}

	file.Path = path
	return nil
}
