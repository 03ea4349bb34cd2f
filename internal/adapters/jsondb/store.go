// Package jsondb persists the installed-package database as a single JSON file.
package jsondb

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.PackageDatabase on top of installed.json.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store backed by the file at path. The file is created on first save.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the database. A missing or empty file yields an empty database.
func (s *Store) Load() (*domain.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Update runs one load-modify-save cycle. Nothing is written when fn fails.
func (s *Store) Update(fn func(db *domain.Database) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(db); err != nil {
		return err
	}
	return s.save(db)
}

func (s *Store) load() (*domain.Database, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewDatabase(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDatabaseReadFailed.Error()), "path", s.path)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.NewDatabase(), nil
	}

	db := domain.NewDatabase()
	if err := json.Unmarshal(data, db); err != nil {
		return nil, errors.Join(domain.ErrDatabaseCorrupt, zerr.With(err, "path", s.path))
	}
	if err := db.Validate(); err != nil {
		return nil, zerr.With(err, "path", s.path)
	}
	return db, nil
}

func (s *Store) save(db *domain.Database) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrDatabaseWriteFailed.Error())
	}
	data = append(data, '\n')

	if err := atomicWriteFile(s.path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDatabaseWriteFailed.Error()), "path", s.path)
	}
	return nil
}

// atomicWriteFile writes data to a temp file next to path and renames it into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "installed-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
