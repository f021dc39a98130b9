package executor

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestShell_ExecuteStreamsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell test")
	}

	var out, errOut bytes.Buffer
	s := &Shell{Stdout: &out, Stderr: &errOut}

	if err := s.Execute(context.Background(), "echo hello world"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "hello world" {
		t.Errorf("stdout = %q, want %q", got, "hello world")
	}
}

func TestShell_ExecuteReportsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell test")
	}

	var out, errOut bytes.Buffer
	s := &Shell{Stdout: &out, Stderr: &errOut}

	if err := s.Execute(context.Background(), "exit 3"); err == nil {
		t.Fatal("Execute should report a non-zero exit")
	}
}

func TestShell_ExecuteRunsFullExpressions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell test")
	}

	var out bytes.Buffer
	s := &Shell{Stdout: &out, Stderr: &out}

	// Pipes and quoting go through the shell untouched.
	if err := s.Execute(context.Background(), `printf 'a\nb\n' | wc -l`); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "2" {
		t.Errorf("output = %q, want %q", got, "2")
	}
}
