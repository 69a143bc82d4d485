package api

import (
	"context"
	"net/http"

	resty "github.com/go-resty/resty/v2"

	"github.com/foodhub/foodhub-client/client/internal/types"
)

// GetRestaurants lists all restaurants.
func GetRestaurants(ctx context.Context, rc *resty.Client) ([]types.Restaurant, error) {
	var restaurants []types.Restaurant
	err := execute(ctx, rc, call{op: "list restaurants", method: http.MethodGet, path: "/restaurants"}, &restaurants)
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

// GetRestaurantByID retrieves a restaurant by ID.
func GetRestaurantByID(ctx context.Context, rc *resty.Client, restaurantID int64) (*types.Restaurant, error) {
	var r types.Restaurant
	err := execute(ctx, rc, call{
		op:     "get restaurant",
		method: http.MethodGet,
		path:   "/restaurants/{restaurantId}",
		params: map[string]string{"restaurantId": id(restaurantID)},
	}, &r)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateRestaurant registers a restaurant owned by req.UserID.
func CreateRestaurant(ctx context.Context, rc *resty.Client, req types.CreateRestaurantRequest, authToken string) (*types.Restaurant, error) {
	var r types.Restaurant
	err := execute(ctx, rc, call{
		op:     "create restaurant",
		method: http.MethodPost,
		path:   "/restaurants",
		token:  authToken,
		body:   req,
	}, &r)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
