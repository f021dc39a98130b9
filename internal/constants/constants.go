// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// AppName is the binary name shown in help and version output.
const AppName = "shlama"

// Version is the release version printed by --version.
const Version = "0.4.0"

// Timeout constants used across the application
const (
	// GenerateTimeout covers model load plus generation for a single request
	GenerateTimeout = 120 * time.Second
	// ProbeTimeout is the timeout for a single liveness probe
	ProbeTimeout = 3 * time.Second
	// LaunchPollInterval is the delay between liveness probes after a launch attempt
	LaunchPollInterval = 500 * time.Millisecond
	// LaunchPollAttempts bounds the liveness poll loop (~15s total)
	LaunchPollAttempts = 30
)

// Application defaults
const (
	DefaultModel     = "llama3.2"
	DefaultServerURL = "http://localhost:11434"
)

// DefaultMenuModels are the curated models offered by the selection menu.
// The list can be overridden via the optional config.yaml (models: [...]).
var DefaultMenuModels = []string{
	"llama3.2",
	"llama3.1:8b",
	"qwen2.5-coder:7b",
	"mistral",
}
