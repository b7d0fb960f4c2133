package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"ondus/internal/apiclient"
	"ondus/internal/domain"
	"ondus/internal/errors"
)

const tokenPrompt = "Ondus token: "

// Result is the outcome of a raw API call. Body is set only when Present.
type Result struct {
	Present bool
	Body    json.RawMessage
}

// GetCommand performs authenticated GET calls.
type GetCommand struct {
	client      *apiclient.Client
	tokenReader domain.TokenReader
	logger      *slog.Logger
}

// NewGetCommand creates a new get command.
func NewGetCommand(client *apiclient.Client, tokenReader domain.TokenReader, logger *slog.Logger) *GetCommand {
	return &GetCommand{
		client:      client,
		tokenReader: tokenReader,
		logger:      logger,
	}
}

// GetRequest contains the parameters for the get command.
type GetRequest struct {
	Path        string
	Token       string
	PromptToken bool
}

// Execute runs the get command.
func (c *GetCommand) Execute(ctx context.Context, req GetRequest) (*Result, error) {
	if err := validatePath(req.Path); err != nil {
		return nil, err
	}

	token := req.Token
	if token == "" && req.PromptToken {
		read, err := c.tokenReader.ReadToken(ctx, tokenPrompt)
		if err != nil {
			return nil, fmt.Errorf("failed to read token: %w", err)
		}
		token = read
	}

	c.logger.InfoContext(ctx, "Requesting resource",
		"method", "GET",
		"path", req.Path,
		"authorized", token != "")

	body, ok, err := apiclient.Get[json.RawMessage](ctx, c.client, req.Path, token)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", req.Path, err)
	}
	return newResult(body, ok), nil
}

// PostCommand performs body-less POST calls.
type PostCommand struct {
	client *apiclient.Client
	logger *slog.Logger
}

// NewPostCommand creates a new post command.
func NewPostCommand(client *apiclient.Client, logger *slog.Logger) *PostCommand {
	return &PostCommand{
		client: client,
		logger: logger,
	}
}

// PostRequest contains the parameters for the post command.
type PostRequest struct {
	Path string
}

// Execute runs the post command.
func (c *PostCommand) Execute(ctx context.Context, req PostRequest) (*Result, error) {
	if err := validatePath(req.Path); err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "Requesting resource", "method", "POST", "path", req.Path)

	body, ok, err := apiclient.Post[json.RawMessage](ctx, c.client, req.Path)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", req.Path, err)
	}
	return newResult(body, ok), nil
}

func newResult(body json.RawMessage, ok bool) *Result {
	if !ok {
		return &Result{}
	}
	return &Result{Present: true, Body: body}
}

func validatePath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return errors.NewValidationError("path", path, "absolute", "path must start with '/'")
	}
	return nil
}
