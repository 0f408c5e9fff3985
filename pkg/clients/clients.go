package clients

import (
	"context"
	"fmt"

	"github.com/todonaut/todonaut/pkg/types"
)

// Service is the upstream identity/todo API surface the application depends on.
type Service interface {
	// Login exchanges credentials for a bearer token. A rejected login is
	// returned as *APIError so callers can pass the upstream response through.
	// An empty token with a nil error means the upstream accepted the login
	// but returned no usable token.
	Login(ctx context.Context, username, password string) (string, error)

	// Me resolves the authenticated user for a token.
	Me(ctx context.Context, token string) (*types.RemoteUser, error)

	// FetchUserTodos returns every todo the upstream holds for the user,
	// following upstream pagination until exhausted.
	FetchUserTodos(ctx context.Context, userID int, token string) ([]types.Todo, error)
}

// APIError carries a non-2xx upstream response so the HTTP layer can surface
// status and body verbatim where the contract requires it.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}
