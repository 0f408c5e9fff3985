package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/todonaut/todonaut/pkg/logger"
	"github.com/todonaut/todonaut/pkg/types"
)

// TodoStore implements the per-user todo cache on top of a snapshot Backend.
// Every operation is load → mutate → save; failed operations never persist.
type TodoStore struct {
	backend Backend
	remote  RemoteClient

	// collapses concurrent hydrations for the same token into one fetch
	hydration singleflight.Group
}

func newTodoStore(backend Backend, remote RemoteClient) *TodoStore {
	return &TodoStore{
		backend: backend,
		remote:  remote,
	}
}

// Hydrate resolves the token via the upstream whoami endpoint and imports the
// user's todos on first access. An existing bucket makes this a no-op; the
// upstream todo source is never consulted again for that user.
func (s *TodoStore) Hydrate(ctx context.Context, token string) (int, error) {
	userID, err, _ := s.hydration.Do(token, func() (interface{}, error) {
		return s.hydrate(ctx, token)
	})
	if err != nil {
		return 0, err
	}
	return userID.(int), nil
}

func (s *TodoStore) hydrate(ctx context.Context, token string) (int, error) {
	me, err := s.remote.Me(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	userID := me.ID

	snapshot, err := s.backend.Load(ctx)
	if err != nil {
		return 0, err
	}
	if snapshot.bucket(userID) != nil {
		return userID, nil
	}

	log := logger.Logger(ctx).WithField("userID", userID)
	log.Info("hydrating user from upstream")

	todos, err := s.remote.FetchUserTodos(ctx, userID, token)
	if err != nil {
		return 0, fmt.Errorf("failed to hydrate user %d: %w", userID, err)
	}

	snapshot.Users[userID] = &Bucket{Todos: todos}
	for _, todo := range todos {
		if todo.ID >= snapshot.NextID {
			snapshot.NextID = todo.ID + 1
		}
	}

	if err := s.backend.Save(ctx, snapshot); err != nil {
		return 0, err
	}

	log.WithField("todo_count", len(todos)).Info("user hydrated")
	return userID, nil
}

// List returns the user's todos, most recent first. Absent bucket means an
// empty list, never an error and never a hydration.
func (s *TodoStore) List(ctx context.Context, userID int) ([]types.Todo, error) {
	snapshot, err := s.backend.Load(ctx)
	if err != nil {
		return nil, err
	}

	bucket := snapshot.bucket(userID)
	if bucket == nil {
		return []types.Todo{}, nil
	}
	return bucket.Todos, nil
}

// Get looks the todo up by id within the user's bucket.
func (s *TodoStore) Get(ctx context.Context, userID, id int) (*types.Todo, error) {
	snapshot, err := s.backend.Load(ctx)
	if err != nil {
		return nil, err
	}

	bucket := snapshot.bucket(userID)
	if bucket == nil {
		return nil, ErrTodoNotFound
	}
	for i := range bucket.Todos {
		if bucket.Todos[i].ID == id {
			todo := bucket.Todos[i]
			return &todo, nil
		}
	}
	return nil, ErrTodoNotFound
}

// Create assigns the next global id and prepends the new todo.
func (s *TodoStore) Create(ctx context.Context, userID int, input types.TodoInput) (*types.Todo, error) {
	snapshot, err := s.backend.Load(ctx)
	if err != nil {
		return nil, err
	}

	bucket := snapshot.bucket(userID)
	if bucket == nil {
		bucket = &Bucket{Todos: []types.Todo{}}
		snapshot.Users[userID] = bucket
	}

	todo := types.Todo{
		ID:        snapshot.NextID,
		Text:      input.Text,
		Completed: input.Completed,
		UserID:    userID,
	}
	snapshot.NextID++
	bucket.Todos = append([]types.Todo{todo}, bucket.Todos...)

	if err := s.backend.Save(ctx, snapshot); err != nil {
		return nil, err
	}

	logger.Logger(ctx).WithFields(logrus.Fields{
		"userID": userID,
		"todoID": todo.ID,
	}).Debug("todo created")

	return &todo, nil
}

// Update merges only the provided patch fields into the existing todo.
func (s *TodoStore) Update(ctx context.Context, userID, id int, patch types.TodoPatch) (*types.Todo, error) {
	snapshot, err := s.backend.Load(ctx)
	if err != nil {
		return nil, err
	}

	bucket := snapshot.bucket(userID)
	if bucket == nil {
		return nil, ErrTodoNotFound
	}

	for i := range bucket.Todos {
		if bucket.Todos[i].ID != id {
			continue
		}
		if patch.Text != nil {
			bucket.Todos[i].Text = *patch.Text
		}
		if patch.Completed != nil {
			bucket.Todos[i].Completed = *patch.Completed
		}

		if err := s.backend.Save(ctx, snapshot); err != nil {
			return nil, err
		}
		todo := bucket.Todos[i]
		return &todo, nil
	}

	return nil, ErrTodoNotFound
}

// Delete removes the todo by id. The snapshot is persisted only if the bucket
// actually shrank.
func (s *TodoStore) Delete(ctx context.Context, userID, id int) (bool, error) {
	snapshot, err := s.backend.Load(ctx)
	if err != nil {
		return false, err
	}

	bucket := snapshot.bucket(userID)
	if bucket == nil {
		return false, nil
	}

	remaining := bucket.Todos[:0:0]
	for _, todo := range bucket.Todos {
		if todo.ID != id {
			remaining = append(remaining, todo)
		}
	}
	if len(remaining) == len(bucket.Todos) {
		return false, nil
	}

	bucket.Todos = remaining
	if err := s.backend.Save(ctx, snapshot); err != nil {
		return false, err
	}
	return true, nil
}
