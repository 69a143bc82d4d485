package client

import "github.com/foodhub/foodhub-client/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	CreateUserRequest       = types.CreateUserRequest
	Credentials             = types.Credentials
	CreateRestaurantRequest = types.CreateRestaurantRequest

	// Domain entities
	Food       = types.Food
	User       = types.User
	Role       = types.Role
	Restaurant = types.Restaurant
	Order      = types.Order

	// Responses
	SignInResponse = types.SignInResponse
)

const (
	RoleCustomer = types.RoleCustomer
	RoleOwner    = types.RoleOwner
)
