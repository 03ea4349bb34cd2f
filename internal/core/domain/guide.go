package domain

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"

	"go.trai.ch/zerr"
)

// Well-known guide names.
const (
	GuideInstall   = "install"
	GuideUpdate    = "update"
	GuideUninstall = "uninstall"
)

// StepType is the closed set of guide step kinds.
type StepType string

const (
	// StepDownloadFile fetches a URL to a destination path.
	StepDownloadFile StepType = "download-file"
	// StepDownloadOnly is an alias of StepDownloadFile.
	StepDownloadOnly StepType = "download-only"
	// StepInstallPackage commits an installed record.
	StepInstallPackage StepType = "install-package"
	// StepUninstallPackage removes an installed record.
	StepUninstallPackage StepType = "uninstall-package"
	// StepShell runs external commands.
	StepShell StepType = "shell"
	// StepPython runs inline Python code.
	StepPython StepType = "python"
	// StepRemoveFile deletes files or directories.
	StepRemoveFile StepType = "remove-file"
	// StepNone does nothing and keeps the previous result.
	StepNone StepType = "none"
)

// When restricts a step to some platforms.
type When struct {
	OS   []string `json:"os,omitempty"`
	Arch []string `json:"arch,omitempty"`
}

// Matches reports whether the filter admits the given normalized platform.
func (w *When) Matches(goos, arch string) bool {
	if w == nil {
		return true
	}
	if len(w.OS) > 0 {
		ok := false
		for _, o := range w.OS {
			if strings.EqualFold(o, goos) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(w.Arch) > 0 {
		for _, a := range w.Arch {
			if NormalizeArch(a) == arch {
				return true
			}
		}
		return false
	}
	return true
}

// Step is a single typed action of a guide.
type Step struct {
	Type    StepType        `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
	When    *When           `json:"when,omitempty"`
}

// Guide is an ordered sequence of steps.
type Guide struct {
	Steps []Step
}

// UnmarshalJSON accepts a single step object or {"steps": [...]}.
func (g *Guide) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return zerr.Wrap(ErrInvalidGuide, "guide must be an object")
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return zerr.Wrap(err, ErrInvalidGuide.Error())
	}

	if raw, ok := probe["steps"]; ok {
		var steps []Step
		if err := json.Unmarshal(raw, &steps); err != nil {
			return zerr.Wrap(err, ErrInvalidGuide.Error())
		}
		g.Steps = steps
		return nil
	}

	var step Step
	if err := json.Unmarshal(data, &step); err != nil {
		return zerr.Wrap(err, ErrInvalidGuide.Error())
	}
	g.Steps = []Step{step}
	return nil
}

// MarshalJSON always writes the {"steps": [...]} form.
func (g Guide) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Steps []Step `json:"steps"`
	}{Steps: g.Steps})
}

// HasStep reports whether the guide contains a step of type t.
func (g Guide) HasStep(t StepType) bool {
	for _, s := range g.Steps {
		if s.Type == t {
			return true
		}
	}
	return false
}

// DefaultPythonInterpreter returns the interpreter python steps run with.
func DefaultPythonInterpreter() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// CurrentOS returns the normalized operating system name.
func CurrentOS() string {
	switch runtime.GOOS {
	case "windows":
		return "windows"
	case "darwin":
		return "darwin"
	default:
		return "linux"
	}
}

// CurrentArch returns the normalized architecture name.
func CurrentArch() string {
	return NormalizeArch(runtime.GOARCH)
}

// NormalizeArch maps architecture aliases onto x86_64 and arm64.
func NormalizeArch(a string) string {
	switch strings.ToLower(a) {
	case "x86_64", "amd64", "x64":
		return "x86_64"
	case "arm64", "aarch64":
		return "arm64"
	case "":
		return "unknown"
	default:
		return strings.ToLower(a)
	}
}
