package ollama

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/shlama/shlama/internal/constants"
	"github.com/shlama/shlama/internal/logging"
)

// Prober checks whether the Ollama server is reachable and, for loopback
// addresses, launches it and polls until ready or the attempt budget runs out.
type Prober struct {
	baseURL    string
	httpClient *http.Client
	launch     func() error
	interval   time.Duration
	attempts   int
}

// NewProber creates a prober for the server at baseURL.
func NewProber(baseURL string) *Prober {
	return &Prober{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: constants.ProbeTimeout},
		launch:     launchServer,
		interval:   constants.LaunchPollInterval,
		attempts:   constants.LaunchPollAttempts,
	}
}

// EnsureReady reports whether the server answers the liveness probe,
// attempting to start it first when the address is local loopback. A remote
// server cannot be started from here, so non-loopback addresses fail fast.
func (p *Prober) EnsureReady(ctx context.Context) bool {
	if p.probe(ctx) {
		return true
	}

	if !isLoopback(p.baseURL) {
		logging.Debug("server unreachable and not loopback, no launch attempted",
			logging.Fields{"url": p.baseURL})
		return false
	}

	logging.Debug("launching ollama server", logging.Fields{"url": p.baseURL})
	if err := p.launch(); err != nil {
		logging.Error("failed to launch ollama server", err)
		return false
	}

	for i := 0; i < p.attempts; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(p.interval):
		}
		if p.probe(ctx) {
			return true
		}
	}
	return false
}

// probe hits the cheap model-listing endpoint. Any HTTP response counts as
// ready; the content is not validated.
func (p *Prober) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}

// isLoopback reports whether baseURL points at the local machine.
func isLoopback(baseURL string) bool {
	u, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}

// launchServer starts the Ollama server as a detached process: the desktop
// app where one is installed, otherwise "ollama serve" from the search path.
// The child is never waited on; it outlives this process.
func launchServer() error {
	switch runtime.GOOS {
	case "darwin":
		if err := exec.Command("open", "-a", "Ollama").Run(); err == nil {
			return nil
		}
	case "windows":
		app := filepath.Join(os.Getenv("LOCALAPPDATA"), "Programs", "Ollama", "ollama app.exe")
		if _, err := os.Stat(app); err == nil {
			return exec.Command(app).Start()
		}
	}

	bin, err := exec.LookPath("ollama")
	if err != nil {
		return err
	}
	return exec.Command(bin, "serve").Start()
}
