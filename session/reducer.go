package session

import (
	"fmt"

	"github.com/foodhub/foodhub-client/client"
)

// Reduce returns the state that follows s after a. It never modifies s.
//
// Reduce panics on a nil action and on a sign-in action without both a user
// and a token; both are programming errors.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case StartRequest:
		s.Error = nil
		s.Loading = true
	case UserCreated:
		s = signIn(s, a.User, a.AuthToken, a)
	case UserLoggedIn:
		s = signIn(s, a.User, a.AuthToken, a)
	case UserLogout:
		s.User = nil
		s.AuthToken = ""
	case Failed:
		s.Error = a.Error
		s.Loading = false
	default:
		panic(fmt.Sprintf("session: unknown action %T", a))
	}
	return s
}

func signIn(s State, user *client.User, token string, a Action) State {
	if user == nil || token == "" {
		panic(fmt.Sprintf("session: %s needs both user and token", Kind(a)))
	}
	s.User = user
	s.AuthToken = token
	s.Loading = false
	return s
}
