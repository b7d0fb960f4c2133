// Package testutil provides test utilities and constructors with pre-injected dependencies.
package testutil

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"ondus/internal/logging"
)

// Logger returns a test logger for use in tests.
func Logger() *slog.Logger {
	return logging.NewTestLogger()
}

// Response builds a canned transport response with the given status and body.
func Response(status int, body string) *http.Response {
	return &http.Response{
		Status:     http.StatusText(status),
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}
