package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/foodhub/foodhub-client/client"
	"github.com/foodhub/foodhub-client/session"
)

// ManageHandler exposes the tools that act as the signed-in user.
type ManageHandler struct {
	store *session.Store
}

func NewManageHandler(s *session.Store) *ManageHandler { return &ManageHandler{store: s} }

func (mh *ManageHandler) RegisterTools(s *server.MCPServer) error {
	createRestaurant := mcp.NewTool("create_restaurant",
		mcp.WithDescription("Create a restaurant owned by the signed-in user"),
		mcp.WithString("store_name", mcp.Required(), mcp.Description("Store name")),
		mcp.WithString("cnpj", mcp.Description("Company registration number")),
		mcp.WithString("phone", mcp.Description("Phone number")),
		mcp.WithString("location", mcp.Description("Address")),
	)
	createFood := mcp.NewTool("create_food",
		mcp.WithDescription("Add a food to a restaurant"),
		mcp.WithNumber("restaurant_id", mcp.Required(), mcp.Description("Restaurant id")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Food name")),
		mcp.WithString("description", mcp.Description("Description")),
		mcp.WithString("category", mcp.Description("Category")),
		mcp.WithNumber("price", mcp.Description("Price")),
	)
	updateFood := mcp.NewTool("update_food",
		mcp.WithDescription("Replace a food's fields"),
		mcp.WithNumber("restaurant_id", mcp.Required(), mcp.Description("Restaurant id")),
		mcp.WithNumber("food_id", mcp.Required(), mcp.Description("Food id")),
		mcp.WithString("name", mcp.Description("Food name")),
		mcp.WithString("description", mcp.Description("Description")),
		mcp.WithString("category", mcp.Description("Category")),
		mcp.WithNumber("price", mcp.Description("Price")),
	)
	deleteFood := mcp.NewTool("delete_food",
		mcp.WithDescription("Remove a food from a restaurant"),
		mcp.WithNumber("restaurant_id", mcp.Required(), mcp.Description("Restaurant id")),
		mcp.WithNumber("food_id", mcp.Required(), mcp.Description("Food id")),
	)
	placeOrder := mcp.NewTool("place_order",
		mcp.WithDescription("Order from a restaurant for the signed-in user"),
		mcp.WithNumber("restaurant_id", mcp.Required(), mcp.Description("Restaurant id")),
		mcp.WithNumber("location_id", mcp.Required(), mcp.Description("Delivery location id")),
	)

	s.AddTool(createRestaurant, mh.handleCreateRestaurant)
	s.AddTool(createFood, mh.handleCreateFood)
	s.AddTool(updateFood, mh.handleUpdateFood)
	s.AddTool(deleteFood, mh.handleDeleteFood)
	s.AddTool(placeOrder, mh.handlePlaceOrder)
	return nil
}

func foodArgs(req mcp.CallToolRequest) (client.Food, error) {
	price, err := floatArg(req, "price")
	if err != nil {
		return client.Food{}, err
	}
	return client.Food{
		Name:        stringArg(req, "name"),
		Description: stringArg(req, "description"),
		Category:    stringArg(req, "category"),
		Price:       price,
	}, nil
}

func (mh *ManageHandler) handleCreateRestaurant(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, _ := req.RequireString("store_name")
	r, err := mh.store.CreateRestaurant(ctx, client.CreateRestaurantRequest{
		StoreName:   name,
		CNPJ:        stringArg(req, "cnpj"),
		PhoneNumber: stringArg(req, "phone"),
		Location:    stringArg(req, "location"),
	})
	if err != nil {
		log.Error().Err(err).Str("store_name", name).Msg("create_restaurant failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to create restaurant: %v", err)), nil
	}
	return jsonResult(r)
}

func (mh *ManageHandler) handleCreateFood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	restaurantID, err := idArg(req, "restaurant_id", true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	food, err := foodArgs(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Int64("restaurant_id", restaurantID).Str("name", food.Name).Msg("create_food invoked")

	start := time.Now()
	created, err := mh.store.CreateFood(ctx, food, restaurantID)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("create_food failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to create food: %v", err)), nil
	}
	return jsonResult(created)
}

func (mh *ManageHandler) handleUpdateFood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	restaurantID, err := idArg(req, "restaurant_id", true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	foodID, err := idArg(req, "food_id", true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	food, err := foodArgs(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	food.ID = foodID

	updated, err := mh.store.UpdateFood(ctx, food, restaurantID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update food: %v", err)), nil
	}
	return jsonResult(updated)
}

func (mh *ManageHandler) handleDeleteFood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	restaurantID, err := idArg(req, "restaurant_id", true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	foodID, err := idArg(req, "food_id", true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := mh.store.DeleteFood(ctx, foodID, restaurantID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete food: %v", err)), nil
	}
	if len(body) == 0 {
		return jsonResult(map[string]any{"id": foodID, "deleted": true})
	}
	return mcp.NewToolResultText(string(body)), nil
}

func (mh *ManageHandler) handlePlaceOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	restaurantID, err := idArg(req, "restaurant_id", true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	locationID, err := idArg(req, "location_id", true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	o, err := mh.store.PlaceOrder(ctx, locationID, restaurantID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to place order: %v", err)), nil
	}
	return jsonResult(o)
}
