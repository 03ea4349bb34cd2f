// Package shell runs guide shell commands behind a pseudo-terminal.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.CommandRunner using os/exec and pty.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes cmd, streaming its combined output to out, and returns its exit code.
// A non-zero exit is not an error; failing to start the command is.
func (r *Runner) Run(ctx context.Context, cmd domain.Command, out io.Writer) (int, error) {
	argv := commandArgv(cmd)
	if len(argv) == 0 {
		return 0, nil
	}

	env := resolveEnvironment(os.Environ(), cmd.Env)

	executable := argv[0]
	if !filepath.IsAbs(executable) {
		if lp, err := lookPath(executable, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, argv[1:]...) //nolint:gosec // guide commands are user provided
	c.Args[0] = argv[0]
	c.Env = env
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}

	r.logger.Debug("running command", "command", cmd.Display(), "dir", cmd.Dir)

	lines := &logWriter{logger: r.logger}
	sink := io.MultiWriter(lines, out)

	err := r.start(c, sink)
	_ = lines.Close()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", cmd.Display())
	}
	return 0, nil
}

// start runs c attached to a fresh pseudo-terminal, falling back to pipes when none is available.
func (r *Runner) start(c *exec.Cmd, out io.Writer) error {
	ptmx, tty, err := pty.Open()
	if err != nil {
		r.logger.Debug("pty unavailable, using pipes", "error", err)
		c.Stdout = out
		c.Stderr = out
		return c.Run()
	}

	c.Stdin, c.Stdout, c.Stderr = tty, tty, tty
	if err := c.Start(); err != nil {
		_ = tty.Close()
		_ = ptmx.Close()
		return err
	}
	_ = tty.Close()

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// PTYs merge stdout and stderr.
		_, _ = io.Copy(out, ptmx)
	}()

	err = c.Wait()
	<-ioDone
	return err
}

// commandArgv returns the argument vector for cmd, routing lines through the system shell.
func commandArgv(cmd domain.Command) []string {
	if !cmd.Shell {
		return cmd.Args
	}
	if strings.TrimSpace(cmd.Line) == "" {
		return nil
	}
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C", cmd.Line}
	}
	return []string{"/bin/sh", "-c", cmd.Line}
}

type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs may introduce \r.
	w.logger.Debug("command output", "line", strings.TrimSuffix(string(line), "\r"))
}

// resolveEnvironment layers extra KEY=VALUE pairs over the inherited environment.
func resolveEnvironment(sysEnv, extra []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(extra))
	for _, list := range [][]string{sysEnv, extra} {
		for _, entry := range list {
			if k, v, ok := strings.Cut(entry, "="); ok && k != "" {
				envMap[k] = v
			}
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
