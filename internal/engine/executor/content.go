package executor

import (
	"bytes"
	"encoding/json"

	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/zerr"
)

func invalidContent(step domain.StepType, reason string) error {
	return zerr.With(zerr.Wrap(domain.ErrInvalidStepContent, reason), "type", string(step))
}

// commandSpec is one entry of a shell step: a line or an argument list.
type commandSpec struct {
	line string
	args []string
}

func (c *commandSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &c.args)
	}
	return json.Unmarshal(data, &c.line)
}

// shellContent is the decoded content of a shell step.
type shellContent struct {
	cmds  []commandSpec
	cwd   string
	env   map[string]string
	shell *bool
	check bool
}

// decodeShell accepts a string, a list of commands, or
// {cmd: str|list, cwd?, env?, shell?, check?}.
func decodeShell(raw json.RawMessage) (shellContent, error) {
	out := shellContent{check: true}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return out, invalidContent(domain.StepShell, "missing content")
	}

	switch raw[0] {
	case '"':
		var line string
		if err := json.Unmarshal(raw, &line); err != nil {
			return out, invalidContent(domain.StepShell, "invalid command")
		}
		out.cmds = []commandSpec{{line: line}}
		yes := true
		out.shell = &yes
	case '[':
		if err := json.Unmarshal(raw, &out.cmds); err != nil {
			return out, invalidContent(domain.StepShell, "invalid command list")
		}
	case '{':
		var obj struct {
			Cmd   json.RawMessage   `json:"cmd"`
			Cwd   string            `json:"cwd"`
			Env   map[string]string `json:"env"`
			Shell *bool             `json:"shell"`
			Check *bool             `json:"check"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return out, invalidContent(domain.StepShell, "invalid content object")
		}
		cmd := bytes.TrimSpace(obj.Cmd)
		switch {
		case len(cmd) > 0 && cmd[0] == '"':
			var c commandSpec
			if err := json.Unmarshal(cmd, &c); err != nil {
				return out, invalidContent(domain.StepShell, "'cmd' must be str or list")
			}
			out.cmds = []commandSpec{c}
		case len(cmd) > 0 && cmd[0] == '[':
			if err := decodeCmdList(cmd, &out.cmds); err != nil {
				return out, invalidContent(domain.StepShell, "'cmd' must be str or list")
			}
		default:
			return out, invalidContent(domain.StepShell, "'cmd' must be str or list")
		}
		out.cwd = obj.Cwd
		out.env = obj.Env
		out.shell = obj.Shell
		if obj.Check != nil {
			out.check = *obj.Check
		}
	default:
		return out, invalidContent(domain.StepShell, "invalid content")
	}
	return out, nil
}

// decodeCmdList reads a cmd list. A list of plain strings is one argument vector;
// a list holding nested lists is a sequence of commands.
func decodeCmdList(data []byte, out *[]commandSpec) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	nested := false
	for _, it := range items {
		if t := bytes.TrimSpace(it); len(t) > 0 && t[0] == '[' {
			nested = true
			break
		}
	}
	if !nested {
		var args []string
		if err := json.Unmarshal(data, &args); err != nil {
			return err
		}
		*out = []commandSpec{{args: args}}
		return nil
	}
	return json.Unmarshal(data, out)
}

// removeContent is the decoded content of a remove-file step.
type removeContent struct {
	paths     []string
	missingOK bool
}

// decodeRemove accepts a path, a list of paths, {path} or {paths, missing_ok?}.
func decodeRemove(raw json.RawMessage) (removeContent, error) {
	out := removeContent{missingOK: true}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return out, invalidContent(domain.StepRemoveFile, "missing content")
	}

	switch raw[0] {
	case '"':
		var p string
		if err := json.Unmarshal(raw, &p); err != nil {
			return out, invalidContent(domain.StepRemoveFile, "invalid path")
		}
		out.paths = []string{p}
	case '[':
		if err := json.Unmarshal(raw, &out.paths); err != nil {
			return out, invalidContent(domain.StepRemoveFile, "invalid path list")
		}
	case '{':
		var obj struct {
			Path      *string  `json:"path"`
			Paths     []string `json:"paths"`
			MissingOK *bool    `json:"missing_ok"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return out, invalidContent(domain.StepRemoveFile, "invalid content object")
		}
		switch {
		case obj.Path != nil:
			out.paths = []string{*obj.Path}
		case obj.Paths != nil:
			out.paths = obj.Paths
		default:
			return out, invalidContent(domain.StepRemoveFile, "need 'path' or 'paths'")
		}
		if obj.MissingOK != nil {
			out.missingOK = *obj.MissingOK
		}
	default:
		return out, invalidContent(domain.StepRemoveFile, "invalid content")
	}
	return out, nil
}

// downloadContent is the decoded content of a download step.
type downloadContent struct {
	URL  string `json:"url"`
	Dest string `json:"dest"`
}

func decodeDownload(raw json.RawMessage) (downloadContent, error) {
	var out downloadContent
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, invalidContent(domain.StepDownloadFile, "content must be {url, dest}")
	}
	if out.URL == "" || out.Dest == "" {
		return out, invalidContent(domain.StepDownloadFile, "content must be {url, dest}")
	}
	return out, nil
}

// packageContent optionally names another package for install-package and uninstall-package.
type packageContent struct {
	Source   string `json:"source"`
	Package  string `json:"package"`
	Version  string `json:"version"`
	Explicit *bool  `json:"explicit"`
}

// decodePackage fills unset fields from the invocation's package.
func decodePackage(step domain.StepType, raw json.RawMessage, def PackageContext) (PackageContext, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return def, nil
	}

	var c packageContent
	if err := json.Unmarshal(raw, &c); err != nil {
		return def, invalidContent(step, "content must be an object")
	}

	out := def
	if c.Package != "" && c.Package != def.PackageRef {
		if _, err := domain.ParsePackageRef(c.Package); err != nil {
			return def, err
		}
		out = PackageContext{Source: def.Source, PackageRef: c.Package}
	}
	if c.Source != "" {
		out.Source = c.Source
	}
	if c.Version != "" {
		out.Version = c.Version
	}
	if c.Explicit != nil {
		out.Explicit = *c.Explicit
	}
	if out.Version == "" && step == domain.StepInstallPackage {
		return def, invalidContent(step, "version required for another package")
	}
	return out, nil
}
