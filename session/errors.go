package session

import "errors"

var (
	// ErrRequestInFlight is returned when CreateUser or SignIn is called while
	// another of them is still running on the same Store.
	ErrRequestInFlight = errors.New("session: request already in flight")

	// ErrNotSignedIn is returned by operations that act on behalf of the
	// signed-in user when there is none.
	ErrNotSignedIn = errors.New("session: not signed in")

	errMissingToken = errors.New("sign-in response carried no token")
)
