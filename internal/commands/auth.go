package commands

import (
	"context"
	"fmt"
	"log/slog"

	"ondus/internal/apiclient"
	"ondus/internal/domain"
)

// DefaultAuthPath is the endpoint that answers with an Authentication payload.
const DefaultAuthPath = "/v2/auth"

// AuthCommand posts to an auth endpoint and extracts the token.
type AuthCommand struct {
	client *apiclient.Client
	logger *slog.Logger
}

// NewAuthCommand creates a new auth command.
func NewAuthCommand(client *apiclient.Client, logger *slog.Logger) *AuthCommand {
	return &AuthCommand{
		client: client,
		logger: logger,
	}
}

// AuthRequest contains the parameters for the auth command.
type AuthRequest struct {
	Path string
}

// AuthResult holds the token when the server returned one.
type AuthResult struct {
	Present bool
	Token   string
}

// Execute runs the auth command.
func (c *AuthCommand) Execute(ctx context.Context, req AuthRequest) (*AuthResult, error) {
	path := req.Path
	if path == "" {
		path = DefaultAuthPath
	}
	if err := validatePath(path); err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "Requesting token", "path", path)

	auth, ok, err := apiclient.Post[domain.Authentication](ctx, c.client, path)
	if err != nil {
		return nil, fmt.Errorf("auth %s: %w", path, err)
	}
	if !ok {
		c.logger.InfoContext(ctx, "No token returned", "path", path)
		return &AuthResult{}, nil
	}
	return &AuthResult{Present: true, Token: auth.Token}, nil
}
