// Package cmd implements the CLI surface of shlama.
//
// # Layout
//
//   - root.go: App struct, cobra command setup, flags, error reporting
//   - select.go: interactive model-selection sub-flow (--model)
//
// # Flow
//
// Execute() builds the cobra command and dispatches in flag priority order:
// help, version, model selection, then the default request flow. The request
// flow wires a broker.Broker with the real Ollama prober, the suggestion
// engine (wrapped in a spinner) and the host-shell executor, then maps every
// broker error to a colored message. No error escapes as an uncaught fault.
package cmd
