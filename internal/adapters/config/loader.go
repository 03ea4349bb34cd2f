// Package config loads ypms settings and manages the configured sources.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using an optional YAML file in the state directory.
type Loader struct {
	Logger ports.Logger
	dir    string
	fs     FileSystem
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(logger ports.Logger, dir string) *Loader {
	return &Loader{Logger: logger, dir: dir, fs: NewOSFS()}
}

// Load returns the defaults overlaid with ypms.yaml, then with environment overrides.
func (l *Loader) Load() (*domain.Settings, error) {
	settings := domain.DefaultSettings(l.dir)
	path := settings.ConfigPath()

	data, err := l.fs.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.Logger.Debug("no settings file", "path", path)
		return settings, nil
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Settingsfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if err := l.apply(settings, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	// The environment variable wins over the file.
	if v := os.Getenv("YPMS_ENVS_DIR"); v != "" {
		settings.EnvsDir = v
	}

	l.Logger.Debug("loaded settings", "path", path, "envs_dir", settings.EnvsDir)
	return settings, nil
}

func (l *Loader) apply(s *domain.Settings, f *Settingsfile) error {
	if f.EnvsDir != "" {
		s.EnvsDir = l.resolvePath(f.EnvsDir)
	}
	if f.CacheDir != "" {
		s.CacheDir = l.resolvePath(f.CacheDir)
	}
	if f.DefaultEnv != "" {
		s.DefaultEnv = f.DefaultEnv
	}
	if f.DefaultSource != "" {
		if err := domain.ValidateSourceName(f.DefaultSource); err != nil {
			return err
		}
		s.DefaultSource = f.DefaultSource
	}
	if f.HTTPTimeout != "" {
		d, err := time.ParseDuration(f.HTTPTimeout)
		if err != nil || d <= 0 {
			return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "invalid http_timeout"), "value", f.HTTPTimeout)
		}
		s.HTTPTimeout = d
	}
	if f.UserAgent != "" {
		s.UserAgent = f.UserAgent
	}
	if f.DependencyFetchLimit < 0 {
		return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "invalid dependency_fetch_limit"), "value", f.DependencyFetchLimit)
	}
	if f.DependencyFetchLimit > 0 {
		s.DependencyFetchLimit = f.DependencyFetchLimit
	}
	return nil
}

func (l *Loader) resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(l.dir, p)
}
