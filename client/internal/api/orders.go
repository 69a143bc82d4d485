package api

import (
	"context"
	"net/http"

	resty "github.com/go-resty/resty/v2"

	"github.com/foodhub/foodhub-client/client/internal/types"
)

// OrderFood places an order for userID at restaurantID, delivered to locationID.
func OrderFood(ctx context.Context, rc *resty.Client, userID, locationID, restaurantID int64) (*types.Order, error) {
	var order types.Order
	err := execute(ctx, rc, call{
		op:     "place order",
		method: http.MethodPost,
		path:   "/orders",
		body:   types.OrderRequest{UserID: userID, LocationID: locationID, RestaurantID: restaurantID},
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
