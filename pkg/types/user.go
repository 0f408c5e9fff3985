package types

// RemoteUser is the subset of the upstream identity payload the application
// cares about. Extra upstream fields are dropped on unmarshal.
type RemoteUser struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	Image     string `json:"image"`
}
