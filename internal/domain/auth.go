package domain

import "context"

// TokenReader obtains an authorization token from the user.
type TokenReader interface {
	ReadToken(ctx context.Context, prompt string) (string, error)
}

// Authentication is the payload returned by the Ondus login endpoint.
type Authentication struct {
	Token string `json:"token"`
}
