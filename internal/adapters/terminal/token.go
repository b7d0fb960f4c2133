package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TokenEnvVar is consulted before prompting.
const TokenEnvVar = "ONDUS_TOKEN"

// Adapter handles secure token input from terminal.
type Adapter struct {
	stdin  io.Reader
	stderr io.Writer
	getenv func(string) string
}

// NewAdapter creates a new terminal adapter.
func NewAdapter(stdin io.Reader, stderr io.Writer) *Adapter {
	return &Adapter{
		stdin:  stdin,
		stderr: stderr,
		getenv: os.Getenv,
	}
}

// ReadToken reads a token from the terminal with echo disabled.
func (a *Adapter) ReadToken(ctx context.Context, prompt string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	// Environment first, for scripts and CI.
	if envToken := a.getenv(TokenEnvVar); envToken != "" {
		return envToken, nil
	}

	if !a.IsInteractive() {
		return "", errors.New("cannot read token: non-interactive terminal")
	}

	fmt.Fprint(a.stderr, prompt)

	file, _ := a.stdin.(*os.File)
	token, err := term.ReadPassword(int(file.Fd()))
	fmt.Fprintln(a.stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	// Only the line terminator is removed; the token itself is used as typed.
	return strings.TrimRight(string(token), "\r\n"), nil
}

// IsInteractive returns true if the terminal is interactive.
func (a *Adapter) IsInteractive() bool {
	if file, ok := a.stdin.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
