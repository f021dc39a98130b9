package logging

import (
	"bytes"
	"io"
	"net/http"
	"time"
)

// maxLoggedBody caps how much of a request/response body ends up in the log.
const maxLoggedBody = 10000

// RoundTripper wraps an http.RoundTripper and logs each exchange at debug
// level. The Ollama API carries no credentials, so bodies are logged as-is.
type RoundTripper struct {
	wrapped http.RoundTripper
	logger  *Logger
}

// NewRoundTripper creates a logging round tripper around wrapped.
func NewRoundTripper(wrapped http.RoundTripper, logger *Logger) *RoundTripper {
	if wrapped == nil {
		wrapped = http.DefaultTransport
	}
	if logger == nil {
		logger = DefaultLogger
	}
	return &RoundTripper{wrapped: wrapped, logger: logger}
}

// RoundTrip implements http.RoundTripper
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	fields := Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	}
	if id := req.Header.Get("X-Request-ID"); id != "" {
		fields["request_id"] = id
	}
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(body))
		fields["body"] = truncateBody(body)
		fields["body_size"] = len(body)
	}
	rt.logger.Debug("http request", fields)

	resp, err := rt.wrapped.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		rt.logger.Error("http request failed", err, Fields{
			"method": req.Method,
			"url":    req.URL.String(),
		})
		return nil, err
	}

	respFields := Fields{
		"status":      resp.StatusCode,
		"duration_ms": duration.Milliseconds(),
	}
	if resp.Body != nil {
		body, _ := io.ReadAll(resp.Body)
		resp.Body = io.NopCloser(bytes.NewReader(body))
		respFields["body"] = truncateBody(body)
		respFields["body_size"] = len(body)
	}
	rt.logger.Debug("http response", respFields)

	return resp, nil
}

func truncateBody(body []byte) string {
	if len(body) <= maxLoggedBody {
		return string(body)
	}
	return string(body[:maxLoggedBody]) + "...[truncated]"
}
