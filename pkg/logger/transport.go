package logger

import (
	"log/slog"
	"net/http"
	"time"
)

// transport wraps an http.RoundTripper and logs every outbound request
type transport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

// NewTransport creates an outbound request logging RoundTripper.
// Successful requests are logged at debug level, error statuses and transport failures at warn.
func NewTransport(logger *slog.Logger, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &transport{next: next, logger: logger}
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("url", req.URL.Redacted()),
		slog.Duration("duration", time.Since(start)),
	}

	level := slog.LevelDebug
	switch {
	case err != nil:
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", err.Error()))
	case resp.StatusCode >= http.StatusBadRequest:
		level = slog.LevelWarn
		attrs = append(attrs, slog.Int("status", resp.StatusCode))
	default:
		attrs = append(attrs, slog.Int("status", resp.StatusCode))
	}

	// Log with constant message - let structured fields tell the story
	t.logger.LogAttrs(req.Context(), level, "HTTP", attrs...)

	return resp, err
}
