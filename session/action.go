package session

import "github.com/foodhub/foodhub-client/client"

// Action is one of StartRequest, UserCreated, UserLoggedIn, UserLogout or
// Failed. The set is closed: only this package can add kinds.
type Action interface {
	kind() string
}

// StartRequest marks the beginning of a composite request.
type StartRequest struct{}

// UserCreated ends a successful register-and-sign-in.
type UserCreated struct {
	User      *client.User
	AuthToken string
}

// UserLoggedIn ends a successful sign-in.
type UserLoggedIn struct {
	User      *client.User
	AuthToken string
}

// UserLogout forgets the signed-in user.
type UserLogout struct{}

// Failed ends a composite request with the backend's error payload.
type Failed struct {
	Error client.ErrorDetail
}

func (StartRequest) kind() string { return "start-request" }
func (UserCreated) kind() string  { return "user-created" }
func (UserLoggedIn) kind() string { return "user-logged-in" }
func (UserLogout) kind() string   { return "user-logout" }
func (Failed) kind() string       { return "error" }

// Kind returns the wire name of a, e.g. "user-logged-in".
func Kind(a Action) string {
	if a == nil {
		return "<nil>"
	}
	return a.kind()
}
