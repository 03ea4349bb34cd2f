package domain

import "go.trai.ch/zerr"

var (
	// ErrSourceNotFound is returned when a source name is not configured.
	ErrSourceNotFound = zerr.New("source not found")

	// ErrNoSourcesConfigured is returned when a default source is needed but none exist.
	ErrNoSourcesConfigured = zerr.New("no sources configured")

	// ErrInvalidSourceName is returned when a source name cannot be used in a package key.
	ErrInvalidSourceName = zerr.New("source name must be non-empty and must not contain ':' or '/'")

	// ErrVersionResolution is returned when a version alias or tag cannot be resolved.
	ErrVersionResolution = zerr.New("failed to resolve release version")

	// ErrBlockedByDependents is returned when an uninstall would break installed dependents.
	ErrBlockedByDependents = zerr.New("blocked by dependents")

	// ErrBlockedByVersionConstraint is returned when an update violates a dependent's version constraint.
	ErrBlockedByVersionConstraint = zerr.New("blocked by version constraint")

	// ErrConfirmationDeclined is returned when the user declines a forced operation.
	ErrConfirmationDeclined = zerr.New("operation not confirmed")

	// ErrGuideStepFailure is returned when a guide step fails during execution.
	ErrGuideStepFailure = zerr.New("guide step failed")

	// ErrGuideNotDefined is returned when a release does not define the requested guide.
	ErrGuideNotDefined = zerr.New("guide not defined")

	// ErrNoStepMatched is returned when no guide step matches the current platform.
	ErrNoStepMatched = zerr.New("no guide step matched current platform/arch")

	// ErrUnsupportedStep is returned for guide step types the executor does not know.
	ErrUnsupportedStep = zerr.New("unsupported guide step type")

	// ErrInvalidStepContent is returned when a step's content does not have the expected shape.
	ErrInvalidStepContent = zerr.New("invalid guide step content")

	// ErrInvalidGuide is returned when a guide definition cannot be decoded.
	ErrInvalidGuide = zerr.New("invalid guide definition")

	// ErrInvalidPackageRef is returned when a package reference is not of the form USER/PACKAGE.
	ErrInvalidPackageRef = zerr.New("package ref must be 'USER/PACKAGE', e.g. 'ypsh/hello-world'")

	// ErrInvalidDependency is returned when a release dependency entry cannot be parsed.
	ErrInvalidDependency = zerr.New("invalid dependency entry")

	// ErrPackageNotFound is returned when the registry has no such package or release.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrRegistryRequestFailed is returned when a registry request fails.
	ErrRegistryRequestFailed = zerr.New("registry request failed")

	// ErrRegistryParseFailed is returned when a registry response is not valid metadata.
	ErrRegistryParseFailed = zerr.New("failed to parse registry response")

	// ErrSourceConfigInvalid is returned when a source's ypms.json lacks required keys.
	ErrSourceConfigInvalid = zerr.New("invalid source configuration")

	// ErrDownloadFailed is returned when a file download fails.
	ErrDownloadFailed = zerr.New("download failed")

	// ErrCacheWriteFailed is returned when a registry response cannot be cached.
	ErrCacheWriteFailed = zerr.New("failed to write registry cache")

	// ErrDatabaseCorrupt is returned when the installed database cannot be parsed.
	ErrDatabaseCorrupt = zerr.New("installed database is corrupt")

	// ErrDatabaseReadFailed is returned when the installed database cannot be read.
	ErrDatabaseReadFailed = zerr.New("failed to read installed database")

	// ErrDatabaseWriteFailed is returned when the installed database cannot be written.
	ErrDatabaseWriteFailed = zerr.New("failed to write installed database")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigWriteFailed is returned when the sources file cannot be written.
	ErrConfigWriteFailed = zerr.New("failed to write sources file")

	// ErrEnvDirCreateFailed is returned when an environment directory cannot be created.
	ErrEnvDirCreateFailed = zerr.New("failed to create environment directory")

	// ErrCommandFailed is returned when a shell command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")
)
