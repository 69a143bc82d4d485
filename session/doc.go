// Package session holds the signed-in user, their bearer token, the last
// backend error and a loading flag for one application session, and exposes
// the backend operations consumers need on top of that state.
//
// State changes only through Reduce, a pure function over a closed set of
// actions. A Store owns one State, applies actions to it and broadcasts each
// new State to its subscribers. Consumers receive the Store explicitly;
// there is no package-level session.
package session
