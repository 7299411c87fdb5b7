package moviesapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request id so API logs can be correlated.
const RequestIDHeader = "X-Request-Id"

// LoggingTransport logs every API round trip with its latency.
type LoggingTransport struct {
	Base http.RoundTripper // nil means http.DefaultTransport
	Log  *slog.Logger
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	r := req
	if req.Header.Get(RequestIDHeader) == "" {
		r = req.Clone(req.Context())
		r.Header.Set(RequestIDHeader, uuid.NewString())
	}

	start := time.Now()
	resp, err := base.RoundTrip(r)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		t.Log.Error("api request failed",
			"method", r.Method,
			"url", r.URL.String(),
			"request_id", r.Header.Get(RequestIDHeader),
			"duration_ms", elapsed,
			"error", err,
		)
		return nil, err
	}

	level := slog.LevelDebug
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}
	t.Log.Log(r.Context(), level, "api request",
		"method", r.Method,
		"url", r.URL.String(),
		"status", resp.StatusCode,
		"request_id", r.Header.Get(RequestIDHeader),
		"duration_ms", elapsed,
	)
	return resp, nil
}
