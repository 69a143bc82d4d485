package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodhub/foodhub-client/client"
	"github.com/foodhub/foodhub-client/internal/apitest"
	"github.com/foodhub/foodhub-client/session"
)

func call(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func decodeInto(t *testing.T, res *mcp.CallToolResult, v any) {
	t.Helper()
	require.False(t, res.IsError, text(t, res))
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), v))
}

func setup(t *testing.T) (*apitest.Backend, *SessionHandler, *CatalogHandler, *ManageHandler) {
	b := apitest.New(t)
	store := session.NewStore(b.Client())
	return b, NewSessionHandler(store), NewCatalogHandler(store), NewManageHandler(store)
}

func TestHandlers_RegisterManageAndBrowse(t *testing.T) {
	b, sh, ch, mh := setup(t)
	ctx := context.Background()

	res, err := sh.handleRegister(ctx, call(map[string]any{
		"name": "Rita", "email": "rita@example.com", "password": "pw", "owner": true,
	}))
	require.NoError(t, err)
	var st stateView
	decodeInto(t, res, &st)
	assert.True(t, st.SignedIn)
	assert.True(t, st.TokenPresent)
	assert.False(t, st.Loading)
	require.NotNil(t, st.User)
	assert.Equal(t, client.RoleOwner, st.User.Role)

	res, err = mh.handleCreateRestaurant(ctx, call(map[string]any{"store_name": "Casa", "location": "Olinda"}))
	require.NoError(t, err)
	var rest client.Restaurant
	decodeInto(t, res, &rest)
	assert.Equal(t, st.User.ID, rest.UserID)

	// JSON numbers arrive as float64
	res, err = mh.handleCreateFood(ctx, call(map[string]any{
		"restaurant_id": float64(rest.ID), "name": "Cuscuz", "category": "breakfast", "price": 7.5,
	}))
	require.NoError(t, err)
	var food client.Food
	decodeInto(t, res, &food)
	assert.Equal(t, 7.5, food.Price)

	res, err = mh.handleUpdateFood(ctx, call(map[string]any{
		"restaurant_id": float64(rest.ID), "food_id": float64(food.ID), "name": "Cuscuz", "category": "breakfast", "price": 8.0,
	}))
	require.NoError(t, err)
	decodeInto(t, res, &food)
	assert.Equal(t, 8.0, food.Price)

	res, err = ch.handleListCategories(ctx, call(map[string]any{"restaurant_id": float64(rest.ID)}))
	require.NoError(t, err)
	var cats []string
	decodeInto(t, res, &cats)
	assert.Equal(t, []string{"breakfast"}, cats)

	res, err = ch.handleListFoods(ctx, call(map[string]any{"restaurant_id": float64(rest.ID), "category": "breakfast"}))
	require.NoError(t, err)
	var foods []client.Food
	decodeInto(t, res, &foods)
	assert.Len(t, foods, 1)

	res, err = ch.handleGetFood(ctx, call(map[string]any{"food_id": float64(food.ID)}))
	require.NoError(t, err)
	decodeInto(t, res, &food)
	assert.Equal(t, "Cuscuz", food.Name)

	res, err = mh.handlePlaceOrder(ctx, call(map[string]any{"restaurant_id": float64(rest.ID), "location_id": "2"}))
	require.NoError(t, err)
	var order client.Order
	decodeInto(t, res, &order)
	assert.Equal(t, int64(2), order.LocationID)
	assert.Len(t, b.Orders(), 1)

	res, err = mh.handleDeleteFood(ctx, call(map[string]any{"restaurant_id": float64(rest.ID), "food_id": float64(food.ID)}))
	require.NoError(t, err)
	assert.False(t, res.IsError, text(t, res))

	res, err = ch.handleGetRestaurant(ctx, call(map[string]any{"restaurant_id": float64(rest.ID)}))
	require.NoError(t, err)
	decodeInto(t, res, &rest)
	assert.Equal(t, "Casa", rest.StoreName)

	res, err = sh.handleLogout(ctx, call(nil))
	require.NoError(t, err)
	decodeInto(t, res, &st)
	assert.False(t, st.SignedIn)
}

func TestHandlers_RegisterFailureIsToolError(t *testing.T) {
	b, sh, _, _ := setup(t)
	b.Fail(apitest.RouteCreateUser, http.StatusBadRequest, `{"message":"email taken"}`)

	res, err := sh.handleRegister(context.Background(), call(map[string]any{
		"name": "Rita", "email": "rita@example.com", "password": "pw",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "email taken")

	res, err = sh.handleState(context.Background(), call(nil))
	require.NoError(t, err)
	var st stateView
	decodeInto(t, res, &st)
	assert.Equal(t, "email taken", st.Error.Message())
	assert.False(t, st.SignedIn)
}

func TestHandlers_WritesNeedSession(t *testing.T) {
	b, _, _, mh := setup(t)
	res, err := mh.handleCreateFood(context.Background(), call(map[string]any{"restaurant_id": float64(1), "name": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), session.ErrNotSignedIn.Error())
	assert.Empty(t, b.Requests())
}

func TestHandlers_BadArguments(t *testing.T) {
	_, _, ch, mh := setup(t)
	ctx := context.Background()

	res, err := ch.handleGetRestaurant(ctx, call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = ch.handleGetFood(ctx, call(map[string]any{"food_id": 1.5}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = ch.handleListFoods(ctx, call(map[string]any{"category": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = mh.handlePlaceOrder(ctx, call(map[string]any{"restaurant_id": true, "location_id": float64(1)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandlers_BadPriceIsToolError(t *testing.T) {
	b, sh, _, mh := setup(t)
	ctx := context.Background()

	_, err := sh.handleRegister(ctx, call(map[string]any{
		"name": "Rita", "email": "rita@example.com", "password": "pw", "owner": true,
	}))
	require.NoError(t, err)

	res, err := mh.handleCreateFood(ctx, call(map[string]any{
		"restaurant_id": float64(1), "name": "Cuscuz", "price": "abc",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "price")

	res, err = mh.handleUpdateFood(ctx, call(map[string]any{
		"restaurant_id": float64(1), "food_id": float64(1), "name": "Cuscuz", "price": "abc",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "price")

	assert.Empty(t, b.RequestsTo(apitest.RouteCreateFood))
	assert.Empty(t, b.RequestsTo(apitest.RouteUpdateFood))
}

func TestFloatArg(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{7.5, 7.5, true},
		{3, 3, true},
		{int64(4), 4, true},
		{json.Number("2.25"), 2.25, true},
		{"0", 0, true},
		{"12.90", 12.9, true},
		{"abc", 0, false},
		{true, 0, false},
	}
	for _, tc := range cases {
		got, err := floatArg(call(map[string]any{"price": tc.in}), "price")
		if !tc.ok {
			assert.Error(t, err, "%v", tc.in)
			continue
		}
		require.NoError(t, err, "%v", tc.in)
		assert.Equal(t, tc.want, got)
	}

	got, err := floatArg(call(nil), "price")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestIDArg(t *testing.T) {
	cases := []struct {
		in   any
		want int64
		ok   bool
	}{
		{float64(3), 3, true},
		{7, 7, true},
		{int64(9), 9, true},
		{json.Number("11"), 11, true},
		{"13", 13, true},
		{"x", 0, false},
		{float64(-1), 0, false},
		{2.5, 0, false},
	}
	for _, tc := range cases {
		got, err := idArg(call(map[string]any{"id": tc.in}), "id", true)
		if !tc.ok {
			assert.Error(t, err, "%v", tc.in)
			continue
		}
		require.NoError(t, err, "%v", tc.in)
		assert.Equal(t, tc.want, got)
	}

	got, err := idArg(call(nil), "id", false)
	require.NoError(t, err)
	assert.Zero(t, got)
}
