package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/zerr"
)

// pythonDriver runs guide code with the run context as globals and writes RESULT_PATH,
// when the code sets one, to the file named by its second argument.
const pythonDriver = `import os, sys
with open(sys.argv[1], encoding="utf-8") as f:
    code = f.read()
g = {"__name__": "__main__"}
for k in ("YPMS_ENV_DIR", "OS", "ARCH", "PACKAGE_REF", "SOURCE_NAME", "RELEASE_ID"):
    g[k] = os.environ.get(k, "")
l = {}
exec(compile(code, "<ypms_guide_python>", "exec"), g, l)
res = l.get("RESULT_PATH") or g.get("RESULT_PATH")
if res:
    with open(sys.argv[2], "w", encoding="utf-8") as f:
        f.write(str(res))
`

// pythonContent is the decoded content of a python step.
type pythonContent struct {
	code string
	cwd  string
}

// decodePython accepts the code as a string or {code, cwd?}.
func decodePython(raw json.RawMessage) (pythonContent, error) {
	var out pythonContent
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return out, invalidContent(domain.StepPython, "missing content")
	}

	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &out.code); err != nil {
			return out, invalidContent(domain.StepPython, "invalid code")
		}
	case '{':
		var obj struct {
			Code string `json:"code"`
			Cwd  string `json:"cwd"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return out, invalidContent(domain.StepPython, "invalid content object")
		}
		out.code = obj.Code
		out.cwd = obj.Cwd
	default:
		return out, invalidContent(domain.StepPython, "invalid content")
	}

	if strings.TrimSpace(out.code) == "" {
		return out, invalidContent(domain.StepPython, "empty code")
	}
	return out, nil
}

func (r *run) python(ctx context.Context, raw json.RawMessage) (string, error) {
	c, err := decodePython(raw)
	if err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp("", "ypms-python-*")
	if err != nil {
		return "", zerr.Wrap(err, "failed to prepare python step")
	}
	defer func() { _ = os.RemoveAll(dir) }()

	driver := filepath.Join(dir, "driver.py")
	script := filepath.Join(dir, "guide.py")
	result := filepath.Join(dir, "result")
	if err := os.WriteFile(driver, []byte(pythonDriver), domain.PrivateFilePerm); err != nil {
		return "", zerr.Wrap(err, "failed to prepare python step")
	}
	if err := os.WriteFile(script, []byte(c.code), domain.PrivateFilePerm); err != nil {
		return "", zerr.Wrap(err, "failed to prepare python step")
	}

	cmd := domain.Command{
		Args: []string{r.e.python, driver, script, result},
		Env:  r.vars.environ(),
	}
	if c.cwd != "" {
		cmd.Dir = r.vars.expand(c.cwd)
		if err := os.MkdirAll(cmd.Dir, domain.DirPerm); err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to create python working directory"), "path", cmd.Dir)
		}
	}

	r.sink.SetStep(r.step, "python", ports.StyleActive)
	r.e.logger.Debug("python", "cwd", cmd.Dir, "code_len", len(c.code))
	code, err := r.e.runner.Run(ctx, cmd, r.sink.LogWriter())
	if err != nil {
		return "", err
	}
	if code != 0 {
		err := zerr.With(zerr.Wrap(domain.ErrCommandFailed, "python step failed"), "interpreter", r.e.python)
		return "", zerr.With(err, "exit_code", code)
	}

	data, err := os.ReadFile(result) //nolint:gosec // Path is inside our own temp dir
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", zerr.Wrap(err, "failed to read python result")
	}
	return string(data), nil
}
