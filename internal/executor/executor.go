// Package executor isolates handing a confirmed command line to the host
// shell. The Executor interface is the single seam through which generated
// commands reach the system, so tests (or a future dry-run mode) can swap the
// implementation without touching the broker.
package executor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// Executor runs one confirmed command line.
type Executor interface {
	// Execute hands command verbatim to the host command interpreter.
	Execute(ctx context.Context, command string) error
}

// Shell executes commands on the host shell with output streamed live to the
// configured writers. It performs no validation of the command: the user has
// already seen and confirmed the exact string being run.
type Shell struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var _ Executor = (*Shell)(nil)

// NewShell creates a Shell wired to the process's standard streams.
func NewShell() *Shell {
	return &Shell{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Execute implements Executor.
func (s *Shell) Execute(ctx context.Context, command string) error {
	cmd := shellCommand(ctx, command)
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	return cmd.Run()
}

// shellCommand builds the host-interpreter invocation for command.
func shellCommand(ctx context.Context, command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", command)
	}
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return exec.CommandContext(ctx, shell, "-c", command)
}
