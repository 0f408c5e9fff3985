package types

// Todo is the wire representation shared by the store, the local HTTP API and
// the upstream todo API. Field names follow the upstream JSON contract.
type Todo struct {
	ID        int    `json:"id"`
	Text      string `json:"todo"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}

// TodoPatch carries a partial update. Nil fields are left untouched.
type TodoPatch struct {
	Text      *string `json:"todo,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// TodoInput is the payload for creating a todo.
type TodoInput struct {
	Text      string `json:"todo"`
	Completed bool   `json:"completed"`
}
