// Package apiclient implements the Ondus request/response client.
//
// Every call yields one of three outcomes: a decoded value (status 200 with a
// valid JSON body), an absent value (any other status), or an error (the
// transport failed or the 200 body did not decode). Callers use the
// comma-ok form to tell the first two apart:
//
//	auth, ok, err := apiclient.Post[domain.Authentication](ctx, client, "/v2/auth")
//	if err != nil {
//		return err
//	}
//	if !ok {
//		// the server answered with something other than 200
//	}
package apiclient

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/google/uuid"

	"ondus/internal/domain"
	"ondus/internal/errors"
	"ondus/internal/logging"
)

const authorizationHeader = "Authorization"

var errNoResponse = stderrors.New("transport returned no response")

// Client sends requests for paths relative to a fixed base URL.
// It holds no per-request state and is safe for concurrent use when the
// transport is.
type Client struct {
	baseURL   string
	transport domain.Transport
	logger    *slog.Logger
}

// New creates a client. The transport is shared, never closed by the client.
func New(baseURL string, transport domain.Transport, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewTestLogger()
	}
	return &Client{
		baseURL:   baseURL,
		transport: transport,
		logger:    logger,
	}
}

// BaseURL returns the prefix joined with every request path.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues GET baseURL+path. A non-empty token is sent verbatim as the
// Authorization header.
func Get[T any](ctx context.Context, c *Client, path, token string) (T, bool, error) {
	header := http.Header{}
	if token != "" {
		// Set canonicalizes the key only; the value is stored untouched.
		header.Set(authorizationHeader, token)
	}
	return do[T](ctx, c, http.MethodGet, path, header)
}

// Post issues POST baseURL+path with no body and no Authorization header.
func Post[T any](ctx context.Context, c *Client, path string) (T, bool, error) {
	return do[T](ctx, c, http.MethodPost, path, http.Header{})
}

func do[T any](ctx context.Context, c *Client, method, path string, header http.Header) (T, bool, error) {
	var result T

	req := domain.Request{
		Method: method,
		URL:    c.baseURL + path,
		Header: header,
	}
	logger := c.logger.With(
		"request_id", uuid.NewString(),
		"method", method,
		"path", path,
	)

	logger.DebugContext(ctx, "Dispatching request")

	resp, err := c.transport.Execute(ctx, req)
	if err == nil && resp == nil {
		err = errNoResponse
	}
	if err != nil {
		logger.WarnContext(ctx, "Request failed before a response was received", "error", err)
		return result, false, errors.NewTransportError(method, req.URL, err)
	}
	if resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}

	if resp.StatusCode != http.StatusOK {
		logger.DebugContext(ctx, "Non-success response, returning no result", "status", resp.StatusCode)
		return result, false, nil
	}

	if err := decode(resp.Body, &result); err != nil {
		logger.WarnContext(ctx, "Failed to decode response body", "error", err)
		return result, false, errors.NewDecodeError(method, req.URL, typeName[T](), err)
	}

	logger.DebugContext(ctx, "Decoded response", "status", resp.StatusCode)
	return result, true, nil
}

func decode(body io.Reader, v any) error {
	if body == nil {
		return fmt.Errorf("response has no body: %w", io.ErrUnexpectedEOF)
	}
	return json.NewDecoder(body).Decode(v)
}

func typeName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t.String()
}
