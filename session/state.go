package session

import (
	"maps"

	"github.com/foodhub/foodhub-client/client"
)

// State is the session snapshot handed to consumers.
//
// User and AuthToken are set together and cleared together. Loading is true
// only between StartRequest and the action that ends that request.
type State struct {
	User      *client.User
	AuthToken string
	Error     client.ErrorDetail
	Loading   bool
}

// SignedIn reports whether a user is present.
func (s State) SignedIn() bool { return s.User != nil }

// clone detaches the snapshot from the store's copy so consumers cannot
// write through it.
func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	if s.Error != nil {
		s.Error = maps.Clone(s.Error)
	}
	return s
}
