package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/kballard/go-shellquote"
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	errPathNotFound = zerr.New("remove-file: not found")
	errRemoveFailed = zerr.New("remove-file: failed to remove")
)

func (r *run) download(ctx context.Context, raw json.RawMessage) (string, error) {
	c, err := decodeDownload(raw)
	if err != nil {
		return "", err
	}
	url := r.vars.expand(c.URL)
	dest := r.vars.expand(c.Dest)
	name := filepath.Base(dest)

	lastPct := -1
	progress := func(done, total int64) {
		if total <= 0 {
			return
		}
		pct := int(done * 100 / total)
		if pct == lastPct {
			return
		}
		lastPct = pct
		r.sink.SetStep(r.step, fmt.Sprintf("download %s %d%%", name, pct), ports.StyleActive)
	}

	r.e.logger.Debug("download", "url", url, "dest", dest)
	if err := r.e.downloader.Download(ctx, url, dest, progress); err != nil {
		return "", err
	}
	return dest, nil
}

func (r *run) shell(ctx context.Context, raw json.RawMessage) (string, error) {
	c, err := decodeShell(raw)
	if err != nil {
		return "", err
	}

	env := r.vars.environ()
	keys := make([]string, 0, len(c.env))
	for k := range c.env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+c.env[k])
	}

	lastCode := 0
	for _, spec := range c.cmds {
		cmd, err := r.buildCommand(spec, c.shell)
		if err != nil {
			return "", err
		}
		cmd.Dir = r.vars.expand(c.cwd)
		cmd.Env = env

		r.sink.SetStep(r.step, "shell: "+cmd.Display(), ports.StyleActive)
		code, err := r.e.runner.Run(ctx, cmd, r.sink.LogWriter())
		if err != nil {
			return "", err
		}
		if c.check && code != 0 {
			err := zerr.With(zerr.Wrap(domain.ErrCommandFailed, "non-zero exit status"), "command", cmd.Display())
			return "", zerr.With(err, "exit_code", code)
		}
		lastCode = code
	}

	if lastCode == 0 {
		return "", nil
	}
	return strconv.Itoa(lastCode), nil
}

// buildCommand applies the shell default: lines run through a shell, argument lists do not.
func (r *run) buildCommand(spec commandSpec, shell *bool) (domain.Command, error) {
	if spec.args != nil {
		args := make([]string, len(spec.args))
		for i, a := range spec.args {
			args[i] = r.vars.expand(a)
		}
		if shell != nil && *shell {
			return domain.Command{Line: shellquote.Join(args...), Shell: true}, nil
		}
		return domain.Command{Args: args}, nil
	}

	line := r.vars.expand(spec.line)
	if shell == nil || *shell {
		return domain.Command{Line: line, Shell: true}, nil
	}
	args, err := shellquote.Split(line)
	if err != nil {
		return domain.Command{}, zerr.With(zerr.Wrap(domain.ErrInvalidStepContent, err.Error()), "command", line)
	}
	return domain.Command{Args: args}, nil
}

func (r *run) removeFiles(raw json.RawMessage) (string, error) {
	c, err := decodeRemove(raw)
	if err != nil {
		return "", err
	}

	removed := 0
	for _, p := range c.paths {
		path := r.vars.expand(p)
		info, err := os.Lstat(path)
		if errors.Is(err, fs.ErrNotExist) {
			if c.missingOK {
				continue
			}
			return "", zerr.With(zerr.Wrap(errPathNotFound, "missing path"), "path", path)
		}
		if err == nil && info.IsDir() {
			err = os.RemoveAll(path)
		} else if err == nil {
			err = os.Remove(path)
		}
		if err != nil {
			if c.missingOK {
				r.e.logger.Debug("remove-file: ignored failure", "path", path, "error", err.Error())
				continue
			}
			return "", errors.Join(errRemoveFailed, zerr.With(err, "path", path))
		}
		removed++
	}
	return fmt.Sprintf("removed=%d", removed), nil
}

func (r *run) installPackage(raw json.RawMessage) (string, error) {
	pkg, err := decodePackage(domain.StepInstallPackage, raw, r.inv.Package)
	if err != nil {
		return "", err
	}
	if pkg.Key() == r.inv.Package.Key() && r.installed {
		return pkg.Key().String(), nil
	}
	if err := r.commitInstall(pkg); err != nil {
		return "", err
	}
	return pkg.Key().String(), nil
}

func (r *run) uninstallPackage(ctx context.Context, raw json.RawMessage) (string, error) {
	pkg, err := decodePackage(domain.StepUninstallPackage, raw, r.inv.Package)
	if err != nil {
		return "", err
	}
	if pkg.Key() == r.inv.Package.Key() && r.removed {
		return pkg.Key().String(), nil
	}
	if err := r.commitUninstall(ctx, pkg); err != nil {
		return "", err
	}
	return pkg.Key().String(), nil
}
