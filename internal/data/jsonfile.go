package data

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
)

// JSONFile keeps templates in <dir>/templates.json
type JSONFile struct {
	dir string
}

// NewJSONFile returns a Gateway rooted at dir. An empty dir means persistence is unavailable:
// Load returns nothing and Save fails with ErrUnavailable.
func NewJSONFile(dir string) *JSONFile {
	return &JSONFile{dir: dir}
}

// NewHostJSONFile resolves the data directory from env
func NewHostJSONFile(env Env) *JSONFile {
	dir, _ := DataDirectory(env)
	return NewJSONFile(dir)
}

func (j *JSONFile) Location() string { return j.dir }

// Path returns the document path, or "" if persistence is unavailable
func (j *JSONFile) Path() string {
	if j.dir == "" {
		return ""
	}
	return filepath.Join(j.dir, DataFileName)
}

func (j *JSONFile) Load() []string {
	path := j.Path()
	if path == "" {
		return []string{}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return []string{}
	}
	items, ok := Decode(string(raw))
	if !ok {
		return []string{}
	}
	return items
}

func (j *JSONFile) Save(items []string) error {
	if j.dir == "" {
		return ErrUnavailable
	}
	if err := os.MkdirAll(j.dir, dirPerms); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	content, err := Encode(items)
	if err != nil {
		return fmt.Errorf("failed to encode templates: %w", err)
	}

	path := j.Path()
	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, os.ErrNotExist)

	if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	// atomic.WriteFile creates new files 0600
	if isNew {
		if err := os.Chmod(path, filePerms); err != nil {
			return fmt.Errorf("failed to set permissions on %s: %w", path, err)
		}
	}
	return nil
}
