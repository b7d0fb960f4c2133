package domain

import (
	"context"
	"net/http"
)

// Request describes a single outbound call.
type Request struct {
	Method string
	URL    string
	Header http.Header
}

// Transport executes requests against a remote service.
// Implementations must be safe for concurrent use.
type Transport interface {
	Execute(ctx context.Context, req Request) (*http.Response, error)
}
