package commands

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"ondus/internal/apiclient"
	"ondus/internal/domain"
	ondusErrors "ondus/internal/errors"
	"ondus/internal/mocks"
	"ondus/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://ondus.example.com"

func respond(status int, body string) func(context.Context, domain.Request) (*http.Response, error) {
	return func(context.Context, domain.Request) (*http.Response, error) {
		return testutil.Response(status, body), nil
	}
}

func withAuthorization(token string) any {
	return mock.MatchedBy(func(req domain.Request) bool {
		return req.Header.Get("Authorization") == token
	})
}

func newTestClient(transport domain.Transport) *apiclient.Client {
	return apiclient.New(testBaseURL, transport, testutil.Logger())
}

func TestGetCommand_Execute_Success(t *testing.T) {
	// Arrange
	transport := mocks.NewMockTransport(t)
	tokens := mocks.NewMockTokenReader(t)
	transport.On("Execute", mock.Anything, withAuthorization("A_TOKEN")).
		Return(respond(http.StatusOK, `{"appliances":[]}`)).Once()

	cmd := NewGetCommand(newTestClient(transport), tokens, testutil.Logger())

	// Act
	result, err := cmd.Execute(context.Background(), GetRequest{Path: "/v2/info", Token: "A_TOKEN"})

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Present)
	assert.JSONEq(t, `{"appliances":[]}`, string(result.Body))
}

func TestGetCommand_Execute_Absent(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	transport.On("Execute", mock.Anything, mock.Anything).
		Return(respond(http.StatusInternalServerError, `{"error":"boom"}`)).Once()

	cmd := NewGetCommand(newTestClient(transport), mocks.NewMockTokenReader(t), testutil.Logger())

	result, err := cmd.Execute(context.Background(), GetRequest{Path: "/v2/info"})

	require.NoError(t, err)
	assert.False(t, result.Present)
	assert.Nil(t, result.Body)
}

func TestGetCommand_Execute_PromptsForTokenWhenMissing(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	tokens := mocks.NewMockTokenReader(t)
	tokens.On("ReadToken", mock.Anything, tokenPrompt).Return("typed-token", nil).Once()
	transport.On("Execute", mock.Anything, withAuthorization("typed-token")).
		Return(respond(http.StatusOK, `{}`)).Once()

	cmd := NewGetCommand(newTestClient(transport), tokens, testutil.Logger())

	result, err := cmd.Execute(context.Background(), GetRequest{Path: "/v2/info", PromptToken: true})

	require.NoError(t, err)
	assert.True(t, result.Present)
}

func TestGetCommand_Execute_ExplicitTokenSkipsPrompt(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	tokens := mocks.NewMockTokenReader(t)
	transport.On("Execute", mock.Anything, withAuthorization("flag-token")).
		Return(respond(http.StatusOK, `{}`)).Once()

	cmd := NewGetCommand(newTestClient(transport), tokens, testutil.Logger())

	_, err := cmd.Execute(context.Background(), GetRequest{Path: "/v2/info", Token: "flag-token", PromptToken: true})

	require.NoError(t, err)
	tokens.AssertNotCalled(t, "ReadToken", mock.Anything, mock.Anything)
}

func TestGetCommand_Execute_TokenReaderError(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	tokens := mocks.NewMockTokenReader(t)
	tokens.On("ReadToken", mock.Anything, tokenPrompt).Return("", errors.New("non-interactive terminal")).Once()

	cmd := NewGetCommand(newTestClient(transport), tokens, testutil.Logger())

	_, err := cmd.Execute(context.Background(), GetRequest{Path: "/v2/info", PromptToken: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read token")
	transport.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestGetCommand_Execute_TransportError(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	transport.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

	cmd := NewGetCommand(newTestClient(transport), mocks.NewMockTokenReader(t), testutil.Logger())

	result, err := cmd.Execute(context.Background(), GetRequest{Path: "/v2/info"})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, ondusErrors.IsNetwork(err))
	assert.Contains(t, err.Error(), "get /v2/info")
}

func TestGetCommand_Execute_InvalidPath(t *testing.T) {
	tests := []string{"", "v2/info", "https://other.example.com/v2"}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			cmd := NewGetCommand(newTestClient(mocks.NewMockTransport(t)), mocks.NewMockTokenReader(t), testutil.Logger())

			_, err := cmd.Execute(context.Background(), GetRequest{Path: path})

			require.Error(t, err)
			assert.True(t, ondusErrors.IsValidation(err))
		})
	}
}

func TestPostCommand_Execute_Success(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	transport.On("Execute", mock.Anything, mock.MatchedBy(func(req domain.Request) bool {
		return req.Method == http.MethodPost && req.URL == testBaseURL+"/v2/refresh" && len(req.Header) == 0
	})).Return(respond(http.StatusOK, `{"ok":true}`)).Once()

	cmd := NewPostCommand(newTestClient(transport), testutil.Logger())

	result, err := cmd.Execute(context.Background(), PostRequest{Path: "/v2/refresh"})

	require.NoError(t, err)
	assert.True(t, result.Present)
	assert.JSONEq(t, `{"ok":true}`, string(result.Body))
}

func TestPostCommand_Execute_CreatedIsAbsent(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	transport.On("Execute", mock.Anything, mock.Anything).
		Return(respond(http.StatusCreated, `{"ok":true}`)).Once()

	cmd := NewPostCommand(newTestClient(transport), testutil.Logger())

	result, err := cmd.Execute(context.Background(), PostRequest{Path: "/v2/refresh"})

	require.NoError(t, err)
	assert.False(t, result.Present)
}

func TestPostCommand_Execute_DecodeError(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	transport.On("Execute", mock.Anything, mock.Anything).
		Return(respond(http.StatusOK, `<html>`)).Once()

	cmd := NewPostCommand(newTestClient(transport), testutil.Logger())

	_, err := cmd.Execute(context.Background(), PostRequest{Path: "/v2/refresh"})

	require.Error(t, err)
	assert.True(t, ondusErrors.IsDecode(err))
}
