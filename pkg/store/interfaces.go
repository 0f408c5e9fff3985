package store

import (
	"context"

	"github.com/todonaut/todonaut/pkg/types"
)

// Backend is the injectable persistence capability for the store. Every store
// operation loads the whole snapshot, mutates it in memory and writes it back;
// implementations must make Save all-or-nothing.
type Backend interface {
	// Load returns the current snapshot, or a fresh empty one if nothing has
	// been persisted yet.
	Load(ctx context.Context) (*Snapshot, error)

	// Save replaces the persisted snapshot atomically.
	Save(ctx context.Context, snapshot *Snapshot) error
}

// RemoteClient is the slice of the upstream API the store needs for hydration.
type RemoteClient interface {
	// Me resolves the authenticated user for a token.
	Me(ctx context.Context, token string) (*types.RemoteUser, error)

	// FetchUserTodos returns every upstream todo for the user.
	FetchUserTodos(ctx context.Context, userID int, token string) ([]types.Todo, error)
}

// TodoStoreInterface defines the per-user todo cache operations.
// This interface enables mocking in tests and follows the dependency inversion principle.
type TodoStoreInterface interface {
	// Hydrate resolves the token to a user id and, on the user's first access,
	// imports their upstream todos into a new bucket. Subsequent calls for the
	// same user are no-ops. Returns ErrUnauthorized if the token is rejected.
	Hydrate(ctx context.Context, token string) (int, error)

	// List returns the user's todos, empty if the user has no bucket.
	// It never triggers hydration.
	List(ctx context.Context, userID int) ([]types.Todo, error)

	// Get returns the todo with the given id, or ErrTodoNotFound.
	Get(ctx context.Context, userID, id int) (*types.Todo, error)

	// Create assigns the next global id, prepends the todo to the user's
	// bucket and persists.
	Create(ctx context.Context, userID int, input types.TodoInput) (*types.Todo, error)

	// Update merges the non-nil patch fields into the todo and persists.
	// Returns ErrTodoNotFound without persisting if the id is absent.
	Update(ctx context.Context, userID, id int, patch types.TodoPatch) (*types.Todo, error)

	// Delete removes the todo and reports whether anything was removed.
	// Nothing is persisted when the bucket did not shrink.
	Delete(ctx context.Context, userID, id int) (bool, error)
}
