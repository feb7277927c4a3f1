// Package project provides session file handling and persistence. A session
// file carries the reviewed record collection between CLI invocations.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pricetag/internal/catalog"
)

// CurrentVersion is the session file format version written by Save.
const CurrentVersion = 1

// File represents a tag session file (tags.json).
type File struct {
	Version  int       `json:"version"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Catalog the records were last extracted from, relative to the session file
	SourcePath string `json:"source,omitempty"`

	Records []catalog.Record `json:"records"`
}

// New creates an empty session.
func New() *File {
	now := time.Now()
	return &File{
		Version:  CurrentVersion,
		Created:  now,
		Modified: now,
		Records:  []catalog.Record{},
	}
}

// Load loads a session from path. Records are renormalized so a hand-edited
// file can never carry stale missing-field flags.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	if f.Version > CurrentVersion {
		return nil, fmt.Errorf("session %s has format version %d, newer than supported %d", path, f.Version, CurrentVersion)
	}
	if f.Records == nil {
		f.Records = []catalog.Record{}
	}
	for i := range f.Records {
		catalog.Normalize(&f.Records[i])
	}
	return &f, nil
}

// LoadOrNew loads the session at path, or starts a new one if the file does
// not exist yet.
func LoadOrNew(path string) (*File, error) {
	f, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	return f, err
}

// Save saves the session to path.
func (f *File) Save(path string) error {
	f.Version = CurrentVersion
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// SetSource records the catalog path relative to the session file.
func (f *File) SetSource(sessionPath, catalogPath string) {
	rel, err := filepath.Rel(filepath.Dir(sessionPath), catalogPath)
	if err != nil {
		f.SourcePath = catalogPath
	} else {
		f.SourcePath = rel
	}
	f.Modified = time.Now()
}

// Source returns the absolute catalog path, or "" if none was recorded.
func (f *File) Source(sessionPath string) string {
	if f.SourcePath == "" {
		return ""
	}
	if filepath.IsAbs(f.SourcePath) {
		return f.SourcePath
	}
	return filepath.Join(filepath.Dir(sessionPath), f.SourcePath)
}
