// Package shell runs opaque user commands (repo install steps and
// `dotdot exec`) through a POSIX shell.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/dotdot/pkg/errors"
	"github.com/arthur-debert/dotdot/pkg/logging"
)

// DefaultProgram is used when no shell is configured.
const DefaultProgram = "sh"

// Runner runs a command string with dir as working directory.
type Runner interface {
	Run(ctx context.Context, command, dir string) error
}

// Exec runs commands as `<Program> -c <command>`.
type Exec struct {
	Program string
	Stdout  io.Writer
	Stderr  io.Writer
}

// New returns a runner that streams output to the process's stdout and stderr.
func New(program string) *Exec {
	if program == "" {
		program = DefaultProgram
	}
	return &Exec{Program: program, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes command. A non-zero exit is reported as a SHELL error whose
// details carry the command, directory and captured stderr tail.
func (e *Exec) Run(ctx context.Context, command, dir string) error {
	logger := logging.GetLogger("shell")
	logger.Debug().Str("command", command).Str("dir", dir).Msg("Running shell command")

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Program, "-c", command)
	cmd.Dir = dir
	cmd.Stdout = e.Stdout
	if e.Stderr != nil {
		cmd.Stderr = io.MultiWriter(e.Stderr, &stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrShell, "command %q failed", command).
			WithDetail("dir", dir).
			WithDetail("stderr", strings.TrimSpace(stderr.String()))
	}
	return nil
}
