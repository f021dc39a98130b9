// Package broker orchestrates one invocation of the assistant: validate the
// request, make sure the server is up, obtain a suggestion, show it, ask for
// confirmation and execute on an explicit "y".
package broker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shlama/shlama/internal/display"
	"github.com/shlama/shlama/internal/executor"
)

// Errors surfaced to the top level. Each maps to a printed message; none
// escape as uncaught faults.
var (
	// ErrUsage means the joined request was empty or whitespace-only.
	ErrUsage = errors.New("no request provided")
	// ErrServerUnavailable means the server could not be reached or started.
	ErrServerUnavailable = errors.New("cannot reach or start the Ollama server")
)

// ExecutionError reports that a confirmed command failed at runtime. The
// execution attempt itself already happened; partial side effects may exist.
type ExecutionError struct {
	Command string
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Generator produces one cleaned command suggestion for a request.
type Generator interface {
	Suggest(ctx context.Context, request string) (string, error)
}

// Prober reports whether the inference server is ready, starting it if it can.
type Prober interface {
	EnsureReady(ctx context.Context) bool
}

// Broker wires the pipeline together. Dependencies are injected so every step
// can be replaced in tests.
type Broker struct {
	Prober    Prober
	Generator Generator
	Executor  executor.Executor

	// In supplies the confirmation line; Out receives all pipeline output.
	In  io.Reader
	Out io.Writer

	// OnSuggest, when set, runs after the suggestion is displayed and before
	// the confirmation prompt (used for the optional --explain output).
	OnSuggest func(ctx context.Context, command string)
}

// Run drives the request through the whole pipeline. The request is the
// space-joined args; validation happens before any network traffic.
func (b *Broker) Run(ctx context.Context, args []string) error {
	request := strings.TrimSpace(strings.Join(args, " "))
	if request == "" {
		return ErrUsage
	}

	if !b.Prober.EnsureReady(ctx) {
		return ErrServerUnavailable
	}

	command, err := b.Generator.Suggest(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to generate command: %w", err)
	}

	display.Suggestion(b.Out, command)
	if b.OnSuggest != nil {
		b.OnSuggest(ctx, command)
	}

	display.Promptf(b.Out, "Execute this command? [y/N]: ")
	if !b.confirmed() {
		display.Noticef(b.Out, "Not executed.")
		return nil
	}

	if err := b.Executor.Execute(ctx, command); err != nil {
		// The user consented and the attempt happened; report, never hide.
		return &ExecutionError{Command: command, Err: err}
	}
	return nil
}

// confirmed reads one line and accepts only a case-insensitive "y".
// Anything else, including EOF or an empty line, declines.
func (b *Broker) confirmed() bool {
	line, _ := bufio.NewReader(b.In).ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
