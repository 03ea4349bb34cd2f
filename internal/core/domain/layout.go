package domain

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// YpmsDirName is the name of the per-user state directory under $HOME.
	YpmsDirName = ".ypms"

	// EnvsDirName is the directory holding one sub-directory per environment.
	EnvsDirName = "envs"

	// CacheDirName is the directory holding cached registry responses.
	CacheDirName = "cache"

	// LogsDirName is the directory holding the rotating debug log.
	LogsDirName = "logs"

	// DatabaseFileName is the installed-package database file.
	DatabaseFileName = "installed.json"

	// SourcesFileName is the file mapping source names to ypms.json URLs.
	SourcesFileName = "sources.yaml"

	// ConfigFileName is the optional settings file.
	ConfigFileName = "ypms.yaml"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// DefaultEnv is the environment used when none is named.
	DefaultEnv = "default"

	// DefaultSourceName is preferred as the default source when configured.
	DefaultSourceName = "yopr"

	// DefaultSourceURL is the ypms.json URL seeded for the default source.
	DefaultSourceURL = "https://ypsh-dgc.github.io/YPMS/yopr/ypms.json"

	// DefaultUserAgent is sent with every registry request.
	DefaultUserAgent = "YPMS (+https://github.com/YPSH-DGC/YPMS/)"

	// DefaultHTTPTimeout bounds a single registry request.
	DefaultHTTPTimeout = 20 * time.Second

	// DefaultDependencyFetchLimit bounds concurrent metadata fetches in the dependency index.
	DefaultDependencyFetchLimit = 8

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the permission for state files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultYpmsDir returns the state directory, honouring $YPMS_DIR.
func DefaultYpmsDir() string {
	if dir := os.Getenv("YPMS_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return YpmsDirName
	}
	return filepath.Join(home, YpmsDirName)
}

// Settings holds the resolved runtime configuration.
type Settings struct {
	// Dir is the root state directory.
	Dir string
	// EnvsDir holds one directory per environment.
	EnvsDir string
	// CacheDir holds cached registry responses.
	CacheDir string
	// DefaultEnv is used when a command names no environment.
	DefaultEnv string
	// DefaultSource overrides the default source selection when set.
	DefaultSource string
	// HTTPTimeout bounds each registry request.
	HTTPTimeout time.Duration
	// UserAgent is sent with registry requests.
	UserAgent string
	// DependencyFetchLimit bounds concurrent fetches in the dependency index.
	DependencyFetchLimit int
}

// DatabasePath returns the path of the installed-package database.
func (s *Settings) DatabasePath() string {
	return filepath.Join(s.Dir, DatabaseFileName)
}

// SourcesPath returns the path of the sources file.
func (s *Settings) SourcesPath() string {
	return filepath.Join(s.Dir, SourcesFileName)
}

// ConfigPath returns the path of the optional settings file.
func (s *Settings) ConfigPath() string {
	return filepath.Join(s.Dir, ConfigFileName)
}

// DebugLogPath returns the path of the rotating debug log.
func (s *Settings) DebugLogPath() string {
	return filepath.Join(s.Dir, LogsDirName, DebugLogFile)
}

// EnvDir returns the installation directory of the named environment.
func (s *Settings) EnvDir(env string) string {
	return filepath.Join(s.EnvsDir, env)
}

// DefaultSettings returns settings rooted at dir with every other value defaulted.
func DefaultSettings(dir string) *Settings {
	envsDir := filepath.Join(dir, EnvsDirName)
	if v := os.Getenv("YPMS_ENVS_DIR"); v != "" {
		envsDir = v
	}
	return &Settings{
		Dir:                  dir,
		EnvsDir:              envsDir,
		CacheDir:             filepath.Join(dir, CacheDirName),
		DefaultEnv:           DefaultEnv,
		HTTPTimeout:          DefaultHTTPTimeout,
		UserAgent:            DefaultUserAgent,
		DependencyFetchLimit: DefaultDependencyFetchLimit,
	}
}
