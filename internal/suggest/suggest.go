// Package suggest turns a natural-language request into a single cleaned
// shell command using the Ollama generate API.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/shlama/shlama/internal/ollama"
)

// ErrEmptySuggestion means generation succeeded but produced no usable text.
var ErrEmptySuggestion = errors.New("model returned an empty suggestion")

// FallbackPhrase is what the model is instructed to emit when the request is
// unclear or would require a destructive command. It is displayed like any
// other suggestion; no filtering happens on this side.
const FallbackPhrase = `echo "unable to suggest a safe command"`

// Engine produces command suggestions for a fixed model.
type Engine struct {
	client *ollama.Client
	model  string
}

// NewEngine creates an engine that generates with the given model.
func NewEngine(client *ollama.Client, model string) *Engine {
	return &Engine{client: client, model: model}
}

// Suggest asks the model for exactly one shell command for request. The
// returned string is cleaned of markdown fencing and never empty.
func (e *Engine) Suggest(ctx context.Context, request string) (string, error) {
	resp, err := e.client.Generate(ctx, ollama.GenerateRequest{
		Model:  e.model,
		Prompt: request,
		System: systemPrompt(),
	})
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	cleaned := Clean(resp.Response)
	if cleaned == "" {
		return "", ErrEmptySuggestion
	}
	return cleaned, nil
}

// Explain asks the model for a short markdown explanation of command.
func (e *Engine) Explain(ctx context.Context, command string) (string, error) {
	resp, err := e.client.Generate(ctx, ollama.GenerateRequest{
		Model:  e.model,
		Prompt: command,
		System: explainPrompt(),
	})
	if err != nil {
		return "", fmt.Errorf("explanation failed: %w", err)
	}
	return resp.Response, nil
}

func systemPrompt() string {
	return fmt.Sprintf(`You are a command-line assistant. Reply with exactly one %s command that accomplishes the user's request.
Output only the command itself: no explanation, no prose, no markdown fences, no backticks.
Prefer safe, non-destructive commands.
If the request is unclear, or can only be accomplished with a dangerous or destructive command, reply with exactly: %s`,
		shellName(), FallbackPhrase)
}

func explainPrompt() string {
	return fmt.Sprintf("Briefly explain what the following %s command does, flag by flag. Answer in short markdown.", shellName())
}

func shellName() string {
	if runtime.GOOS == "windows" {
		return "PowerShell"
	}
	return "POSIX shell"
}
