package api

import (
	"context"
	"net/http"

	resty "github.com/go-resty/resty/v2"

	"github.com/foodhub/foodhub-client/client/internal/types"
)

// CreateUser registers a new user.
func CreateUser(ctx context.Context, rc *resty.Client, req types.CreateUserRequest) (*types.User, error) {
	var user types.User
	err := execute(ctx, rc, call{op: "create user", method: http.MethodPost, path: "/users", body: req}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SignIn exchanges credentials for a bearer token.
func SignIn(ctx context.Context, rc *resty.Client, creds types.Credentials) (*types.SignInResponse, error) {
	var out types.SignInResponse
	err := execute(ctx, rc, call{op: "sign in", method: http.MethodPost, path: "/users/signin", body: creds}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserByID retrieves a user by ID. authToken may be empty.
func GetUserByID(ctx context.Context, rc *resty.Client, userID int64, authToken string) (*types.User, error) {
	var user types.User
	err := execute(ctx, rc, call{
		op:     "get user",
		method: http.MethodGet,
		path:   "/users/{userId}",
		params: map[string]string{"userId": id(userID)},
		token:  authToken,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
