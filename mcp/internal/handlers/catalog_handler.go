package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/foodhub/foodhub-client/session"
)

// CatalogHandler exposes the read-only restaurant and food tools.
type CatalogHandler struct {
	store *session.Store
}

func NewCatalogHandler(s *session.Store) *CatalogHandler { return &CatalogHandler{store: s} }

func (ch *CatalogHandler) RegisterTools(s *server.MCPServer) error {
	listRestaurants := mcp.NewTool("list_restaurants",
		mcp.WithDescription("List all restaurants"),
	)
	getRestaurant := mcp.NewTool("get_restaurant",
		mcp.WithDescription("Get one restaurant by id"),
		mcp.WithNumber("restaurant_id", mcp.Required(), mcp.Description("Restaurant id")),
	)
	listFoods := mcp.NewTool("list_foods",
		mcp.WithDescription("List foods; narrow by restaurant_id, and by category within a restaurant"),
		mcp.WithNumber("restaurant_id", mcp.Description("Restaurant id")),
		mcp.WithString("category", mcp.Description("Category name; needs restaurant_id")),
	)
	getFood := mcp.NewTool("get_food",
		mcp.WithDescription("Get one food by id"),
		mcp.WithNumber("food_id", mcp.Required(), mcp.Description("Food id")),
	)
	listCategories := mcp.NewTool("list_categories",
		mcp.WithDescription("List food categories, for every restaurant or one"),
		mcp.WithNumber("restaurant_id", mcp.Description("Restaurant id")),
	)

	s.AddTool(listRestaurants, ch.handleListRestaurants)
	s.AddTool(getRestaurant, ch.handleGetRestaurant)
	s.AddTool(listFoods, ch.handleListFoods)
	s.AddTool(getFood, ch.handleGetFood)
	s.AddTool(listCategories, ch.handleListCategories)
	return nil
}

func (ch *CatalogHandler) handleListRestaurants(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	rs, err := ch.store.GetRestaurants(ctx)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("list_restaurants failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to list restaurants: %v", err)), nil
	}
	return jsonResult(rs)
}

func (ch *CatalogHandler) handleGetRestaurant(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req, "restaurant_id", true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r, err := ch.store.GetRestaurantByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get restaurant: %v", err)), nil
	}
	return jsonResult(r)
}

func (ch *CatalogHandler) handleListFoods(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	restaurantID, err := idArg(req, "restaurant_id", false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category := stringArg(req, "category")

	log.Debug().Int64("restaurant_id", restaurantID).Str("category", category).Msg("list_foods invoked")

	switch {
	case category != "" && restaurantID == 0:
		return mcp.NewToolResultError("category needs restaurant_id"), nil
	case category != "":
		foods, err := ch.store.GetFoodsByRestaurantAndCategory(ctx, restaurantID, category)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list foods: %v", err)), nil
		}
		return jsonResult(foods)
	case restaurantID != 0:
		foods, err := ch.store.GetFoodsByRestaurant(ctx, restaurantID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list foods: %v", err)), nil
		}
		return jsonResult(foods)
	default:
		foods, err := ch.store.GetAllFoods(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list foods: %v", err)), nil
		}
		return jsonResult(foods)
	}
}

func (ch *CatalogHandler) handleGetFood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req, "food_id", true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	f, err := ch.store.GetFoodByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get food: %v", err)), nil
	}
	return jsonResult(f)
}

func (ch *CatalogHandler) handleListCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	restaurantID, err := idArg(req, "restaurant_id", false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var cats []string
	if restaurantID != 0 {
		cats, err = ch.store.GetFoodsCategoriesByRestaurant(ctx, restaurantID)
	} else {
		cats, err = ch.store.GetFoodsCategories(ctx)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list categories: %v", err)), nil
	}
	if cats == nil {
		cats = []string{}
	}
	return jsonResult(cats)
}
