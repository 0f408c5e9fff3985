package store

import "github.com/todonaut/todonaut/pkg/types"

// Bucket holds one user's todos, most recent first.
type Bucket struct {
	Todos []types.Todo `json:"todos"`
}

// Snapshot is the whole persisted store: a single id counter shared across all
// users plus one bucket per hydrated user. Ids are assigned only here and are
// always >= 1.
type Snapshot struct {
	NextID int             `json:"nextId"`
	Users  map[int]*Bucket `json:"users"`
}

// NewSnapshot returns an empty store.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		NextID: 1,
		Users:  make(map[int]*Bucket),
	}
}

// normalize repairs a loaded snapshot: allocates the user map and backfills a
// missing or invalid NextID from the highest id present.
func (s *Snapshot) normalize() {
	if s.Users == nil {
		s.Users = make(map[int]*Bucket)
	}
	if s.NextID < 1 {
		maxID := 0
		for _, bucket := range s.Users {
			for _, todo := range bucket.Todos {
				if todo.ID > maxID {
					maxID = todo.ID
				}
			}
		}
		s.NextID = maxID + 1
	}
}

// bucket returns the user's bucket, or nil if the user was never hydrated.
func (s *Snapshot) bucket(userID int) *Bucket {
	return s.Users[userID]
}
