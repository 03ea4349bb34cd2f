package config

import (
	"errors"
	"io/fs"
	"net/url"
	"sync"

	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SourceFile implements ports.SourceStore on top of sources.yaml.
type SourceFile struct {
	path string
	fs   FileSystem
	mu   sync.Mutex
}

// NewSourceFile creates a SourceFile at path.
func NewSourceFile(path string) *SourceFile {
	return &SourceFile{path: path, fs: NewOSFS()}
}

// Sources returns the configured sources. A missing file is seeded with the default source.
func (s *SourceFile) Sources() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// AddSource registers or replaces a source.
func (s *SourceFile) AddSource(name, rawURL string) error {
	if err := domain.ValidateSourceName(name); err != nil {
		return err
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return zerr.With(zerr.Wrap(domain.ErrSourceConfigInvalid, "source url must be http(s)"), "url", rawURL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sources, err := s.read()
	if err != nil {
		return err
	}
	sources[name] = rawURL
	return s.write(sources)
}

// RemoveSource deletes a source.
func (s *SourceFile) RemoveSource(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sources, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := sources[name]; !ok {
		return zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "cannot remove source"), "source", name)
	}
	delete(sources, name)
	return s.write(sources)
}

func (s *SourceFile) read() (map[string]string, error) {
	data, err := s.fs.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		seed := map[string]string{domain.DefaultSourceName: domain.DefaultSourceURL}
		if err := s.write(seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", s.path)
	}

	sources := make(map[string]string)
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", s.path)
	}
	for name := range sources {
		if err := domain.ValidateSourceName(name); err != nil {
			return nil, zerr.With(err, "path", s.path)
		}
	}
	return sources, nil
}

func (s *SourceFile) write(sources map[string]string) error {
	data, err := yaml.Marshal(sources)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigWriteFailed.Error())
	}
	if err := s.fs.WriteFile(s.path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigWriteFailed.Error()), "path", s.path)
	}
	return nil
}
