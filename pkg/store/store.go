package store

// Store provides a high-level interface for the per-user todo cache.
// NOTE: This store does NOT handle file locking - correctness is defined for a
// single-writer process and concurrent writers are last-write-wins.
type Store struct {
	Todos TodoStoreInterface
}

// New creates a Store persisting through backend and hydrating via remote.
func New(backend Backend, remote RemoteClient) *Store {
	return &Store{
		Todos: newTodoStore(backend, remote),
	}
}

// Compile-time interface compliance checks
var (
	_ TodoStoreInterface = (*TodoStore)(nil)
	_ Backend            = (*FileBackend)(nil)
	_ Backend            = (*CacheBackend)(nil)
)
