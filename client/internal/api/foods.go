package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	resty "github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/foodhub/foodhub-client/client/internal/types"
)

func id(v int64) string { return strconv.FormatInt(v, 10) }

// GetAllFoods lists every food on the platform.
func GetAllFoods(ctx context.Context, rc *resty.Client) ([]types.Food, error) {
	var foods []types.Food
	err := execute(ctx, rc, call{op: "get all foods", method: http.MethodGet, path: "/foods"}, &foods)
	if err != nil {
		return nil, err
	}
	return foods, nil
}

// GetFoodsByRestaurant lists the foods of one restaurant.
func GetFoodsByRestaurant(ctx context.Context, rc *resty.Client, restaurantID int64) ([]types.Food, error) {
	var foods []types.Food
	err := execute(ctx, rc, call{
		op:     "get foods by restaurant",
		method: http.MethodGet,
		path:   "/restaurants/{restaurantId}/foods",
		params: map[string]string{"restaurantId": id(restaurantID)},
	}, &foods)
	if err != nil {
		return nil, err
	}
	return foods, nil
}

// GetFoodsCategoriesByRestaurant lists the categories a restaurant sells.
// The backend serves them under /foods/{restaurantId}.
func GetFoodsCategoriesByRestaurant(ctx context.Context, rc *resty.Client, restaurantID int64) ([]string, error) {
	var categories []string
	err := execute(ctx, rc, call{
		op:     "get food categories by restaurant",
		method: http.MethodGet,
		path:   "/foods/{restaurantId}",
		params: map[string]string{"restaurantId": id(restaurantID)},
	}, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetFoodsCategories lists every food category on the platform.
func GetFoodsCategories(ctx context.Context, rc *resty.Client) ([]string, error) {
	var categories []string
	err := execute(ctx, rc, call{op: "get food categories", method: http.MethodGet, path: "/categories"}, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetFoodsByRestaurantAndCategory lists the foods of one restaurant in one category.
func GetFoodsByRestaurantAndCategory(ctx context.Context, rc *resty.Client, restaurantID int64, category string) ([]types.Food, error) {
	var foods []types.Food
	err := execute(ctx, rc, call{
		op:     "get foods by restaurant and category",
		method: http.MethodGet,
		path:   "/restaurants/{restaurantId}/{category}/foods",
		params: map[string]string{"restaurantId": id(restaurantID), "category": category},
	}, &foods)
	if err != nil {
		return nil, err
	}
	return foods, nil
}

// GetFoodByID retrieves a food by ID.
func GetFoodByID(ctx context.Context, rc *resty.Client, foodID int64) (*types.Food, error) {
	var food types.Food
	err := execute(ctx, rc, call{
		op:     "get food",
		method: http.MethodGet,
		path:   "/foods/{foodId}",
		params: map[string]string{"foodId": id(foodID)},
	}, &food)
	if err != nil {
		return nil, err
	}
	return &food, nil
}

// CreateFood adds a food to a restaurant's menu.
func CreateFood(ctx context.Context, rc *resty.Client, food types.Food, restaurantID int64, authToken string) (*types.Food, error) {
	log.Debug().
		Str("name", food.Name).
		Str("category", food.Category).
		Float64("price", food.Price).
		Int64("restaurant_id", restaurantID).
		Bool("token_present", authToken != "").
		Msg("creating food")

	var created types.Food
	err := execute(ctx, rc, call{
		op:     "create food",
		method: http.MethodPost,
		path:   "/restaurants/{restaurantId}/foods",
		params: map[string]string{"restaurantId": id(restaurantID)},
		token:  authToken,
		body:   food,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateFood replaces a food. The backend takes the full object on POST.
func UpdateFood(ctx context.Context, rc *resty.Client, food types.Food, restaurantID int64, authToken string) (*types.Food, error) {
	var updated types.Food
	err := execute(ctx, rc, call{
		op:     "update food",
		method: http.MethodPost,
		path:   "/restaurants/{restaurantId}/foods/{foodId}",
		params: map[string]string{"restaurantId": id(restaurantID), "foodId": id(food.ID)},
		token:  authToken,
		body:   food,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteFood removes a food from a restaurant. The backend's acknowledgement
// is returned as-is.
func DeleteFood(ctx context.Context, rc *resty.Client, foodID, restaurantID int64, authToken string) (json.RawMessage, error) {
	var ack json.RawMessage
	err := execute(ctx, rc, call{
		op:     "delete food",
		method: http.MethodDelete,
		path:   "/restaurants/{restaurantId}/foods/{foodId}",
		params: map[string]string{"restaurantId": id(restaurantID), "foodId": id(foodID)},
		token:  authToken,
	}, &ack)
	if err != nil {
		return nil, err
	}
	return ack, nil
}
