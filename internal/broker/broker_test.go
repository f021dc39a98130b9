package broker

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

type stubProber struct {
	ready bool
	calls int
}

func (p *stubProber) EnsureReady(ctx context.Context) bool {
	p.calls++
	return p.ready
}

type stubGenerator struct {
	command string
	err     error
	calls   int
	request string
}

func (g *stubGenerator) Suggest(ctx context.Context, request string) (string, error) {
	g.calls++
	g.request = request
	return g.command, g.err
}

type stubExecutor struct {
	commands []string
	err      error
}

func (e *stubExecutor) Execute(ctx context.Context, command string) error {
	e.commands = append(e.commands, command)
	return e.err
}

func newTestBroker(input string) (*Broker, *stubProber, *stubGenerator, *stubExecutor, *bytes.Buffer) {
	prober := &stubProber{ready: true}
	gen := &stubGenerator{command: "ls -la"}
	exec := &stubExecutor{}
	out := &bytes.Buffer{}
	b := &Broker{
		Prober:    prober,
		Generator: gen,
		Executor:  exec,
		In:        strings.NewReader(input),
		Out:       out,
	}
	return b, prober, gen, exec, out
}

func TestRun_EmptyRequestMakesNoCalls(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"empty strings", []string{"", ""}},
		{"whitespace only", []string{"  ", "\t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, prober, gen, exec, _ := newTestBroker("y\n")

			err := b.Run(context.Background(), tt.args)

			if !errors.Is(err, ErrUsage) {
				t.Fatalf("err = %v, want ErrUsage", err)
			}
			if prober.calls != 0 {
				t.Error("prober called for an empty request")
			}
			if gen.calls != 0 {
				t.Error("generator called for an empty request")
			}
			if len(exec.commands) != 0 {
				t.Error("executor called for an empty request")
			}
		})
	}
}

func TestRun_ServerUnavailableSkipsGeneration(t *testing.T) {
	b, prober, gen, _, _ := newTestBroker("y\n")
	prober.ready = false

	err := b.Run(context.Background(), []string{"list", "files"})

	if !errors.Is(err, ErrServerUnavailable) {
		t.Fatalf("err = %v, want ErrServerUnavailable", err)
	}
	if gen.calls != 0 {
		t.Error("generator called although the server is unavailable")
	}
}

func TestRun_GenerationFailureSkipsExecution(t *testing.T) {
	b, _, gen, exec, out := newTestBroker("y\n")
	gen.err = errors.New("inference timed out")

	err := b.Run(context.Background(), []string{"anything"})

	if err == nil || !strings.Contains(err.Error(), "failed to generate command") {
		t.Fatalf("err = %v, want generation failure", err)
	}
	if len(exec.commands) != 0 {
		t.Error("executor called after a generation failure")
	}
	if strings.Contains(out.String(), gen.command) {
		t.Error("partial output shown after a generation failure")
	}
}

func TestRun_ConfirmationGate(t *testing.T) {
	tests := []struct {
		input       string
		wantExecute bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{" y \n", true},
		{"n\n", false},
		{"N\n", false},
		{"\n", false},
		{"yes\n", false},
		{"", false}, // EOF without input
		{"maybe\n", false},
	}
	for _, tt := range tests {
		t.Run("input_"+strings.TrimSpace(tt.input), func(t *testing.T) {
			b, _, _, exec, out := newTestBroker(tt.input)

			if err := b.Run(context.Background(), []string{"list files"}); err != nil {
				t.Fatalf("Run: %v", err)
			}

			if tt.wantExecute {
				if len(exec.commands) != 1 {
					t.Fatalf("executions = %d, want exactly 1", len(exec.commands))
				}
			} else {
				if len(exec.commands) != 0 {
					t.Fatalf("executions = %d, want 0", len(exec.commands))
				}
				if !strings.Contains(out.String(), "Not executed") {
					t.Error("declined run missing the not-executed notice")
				}
			}
		})
	}
}

func TestRun_ExecutesExactSuggestionOnce(t *testing.T) {
	b, _, gen, exec, out := newTestBroker("y\n")
	gen.command = "Get-ChildItem -Force"

	if err := b.Run(context.Background(), []string{"list", "all", "files", "including", "hidden"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if gen.request != "list all files including hidden" {
		t.Errorf("request = %q, want space-joined args", gen.request)
	}
	if len(exec.commands) != 1 || exec.commands[0] != "Get-ChildItem -Force" {
		t.Errorf("executed = %v, want exactly [\"Get-ChildItem -Force\"]", exec.commands)
	}
	if n := strings.Count(out.String(), "Get-ChildItem -Force"); n != 1 {
		t.Errorf("suggestion displayed %d times, want exactly once", n)
	}
}

func TestRun_ExecutionErrorIsReportedNotHidden(t *testing.T) {
	b, _, _, exec, _ := newTestBroker("y\n")
	exec.err = errors.New("exit status 2")

	err := b.Run(context.Background(), []string{"do it"})

	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("err = %v, want *ExecutionError", err)
	}
	if execErr.Command != "ls -la" {
		t.Errorf("ExecutionError.Command = %q", execErr.Command)
	}
	if len(exec.commands) != 1 {
		t.Error("execution attempt should have happened exactly once")
	}
}

func TestRun_OnSuggestRunsBetweenDisplayAndConfirm(t *testing.T) {
	b, _, _, exec, out := newTestBroker("n\n")

	var seen string
	b.OnSuggest = func(ctx context.Context, command string) { seen = command }

	if err := b.Run(context.Background(), []string{"list files"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if seen != "ls -la" {
		t.Errorf("OnSuggest command = %q", seen)
	}
	if len(exec.commands) != 0 {
		t.Error("declined run must not execute")
	}
	if !strings.Contains(out.String(), "ls -la") {
		t.Error("suggestion missing from output")
	}
}
