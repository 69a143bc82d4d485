package client

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	resty "github.com/go-resty/resty/v2"

	"github.com/foodhub/foodhub-client/client/internal/api"
)

const (
	// DefaultBaseURL is the backend every client talks to unless
	// WithBaseURL says otherwise.
	DefaultBaseURL = "http://localhost:3000/v1"

	// DefaultTimeout bounds every request.
	DefaultTimeout = 3 * time.Second
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client issues requests against the food-ordering backend. It holds no
// session state; tokens are passed per call. Safe for concurrent use.
type Client struct {
	baseURL string
	timeout time.Duration
	base    *http.Client
	debug   bool

	http *resty.Client
}

// New constructs a Client. Options are applied in order; an invalid option
// panics, as misconfiguration is a programming error.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}

	c.http = c.newResty()
	return c
}

func (c *Client) newResty() *resty.Client {
	var rc *resty.Client
	if c.base != nil {
		hc := *c.base
		rc = resty.NewWithClient(&hc)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(c.baseURL).
		SetTimeout(c.timeout).
		SetLogger(restyLogger{}).
		SetDisableWarn(true)

	if c.debug {
		rc.SetTransport(&debugTransport{base: rc.GetClient().Transport})
	}
	return rc
}

// BaseURL returns the backend root this client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// --------------------------------------------------------------------
// Food operations - delegated to internal/api
// --------------------------------------------------------------------

// GetAllFoods lists every food.
func (c *Client) GetAllFoods(ctx context.Context) ([]Food, error) {
	return api.GetAllFoods(ctx, c.http)
}

// GetFoodsByRestaurant lists the foods of a restaurant.
func (c *Client) GetFoodsByRestaurant(ctx context.Context, restaurantID int64) ([]Food, error) {
	return api.GetFoodsByRestaurant(ctx, c.http, restaurantID)
}

// GetFoodsCategoriesByRestaurant lists the food categories of a restaurant.
func (c *Client) GetFoodsCategoriesByRestaurant(ctx context.Context, restaurantID int64) ([]string, error) {
	return api.GetFoodsCategoriesByRestaurant(ctx, c.http, restaurantID)
}

// GetFoodsCategories lists every food category.
func (c *Client) GetFoodsCategories(ctx context.Context) ([]string, error) {
	return api.GetFoodsCategories(ctx, c.http)
}

// GetFoodsByRestaurantAndCategory lists a restaurant's foods in one category.
func (c *Client) GetFoodsByRestaurantAndCategory(ctx context.Context, restaurantID int64, category string) ([]Food, error) {
	return api.GetFoodsByRestaurantAndCategory(ctx, c.http, restaurantID, category)
}

// GetFoodByID retrieves a food.
func (c *Client) GetFoodByID(ctx context.Context, foodID int64) (*Food, error) {
	return api.GetFoodByID(ctx, c.http, foodID)
}

// CreateFood adds food to the restaurant's menu on behalf of the token owner.
func (c *Client) CreateFood(ctx context.Context, food Food, restaurantID int64, authToken string) (*Food, error) {
	return api.CreateFood(ctx, c.http, food, restaurantID, authToken)
}

// UpdateFood replaces the food identified by food.ID.
func (c *Client) UpdateFood(ctx context.Context, food Food, restaurantID int64, authToken string) (*Food, error) {
	return api.UpdateFood(ctx, c.http, food, restaurantID, authToken)
}

// DeleteFood removes a food and returns the backend's acknowledgement.
func (c *Client) DeleteFood(ctx context.Context, foodID, restaurantID int64, authToken string) (json.RawMessage, error) {
	return api.DeleteFood(ctx, c.http, foodID, restaurantID, authToken)
}

// --------------------------------------------------------------------
// User operations - delegated to internal/api
// --------------------------------------------------------------------

// CreateUser registers a user. A zero Role registers a customer.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	return api.CreateUser(ctx, c.http, req)
}

// SignIn exchanges credentials for a bearer token and the user's id.
func (c *Client) SignIn(ctx context.Context, creds Credentials) (*SignInResponse, error) {
	return api.SignIn(ctx, c.http, creds)
}

// GetUserByID retrieves a user. authToken may be empty.
func (c *Client) GetUserByID(ctx context.Context, userID int64, authToken string) (*User, error) {
	return api.GetUserByID(ctx, c.http, userID, authToken)
}

// --------------------------------------------------------------------
// Restaurant operations - delegated to internal/api
// --------------------------------------------------------------------

// GetRestaurants lists all restaurants.
func (c *Client) GetRestaurants(ctx context.Context) ([]Restaurant, error) {
	return api.GetRestaurants(ctx, c.http)
}

// GetRestaurantByID retrieves a restaurant.
func (c *Client) GetRestaurantByID(ctx context.Context, restaurantID int64) (*Restaurant, error) {
	return api.GetRestaurantByID(ctx, c.http, restaurantID)
}

// CreateRestaurant registers a restaurant owned by req.UserID.
func (c *Client) CreateRestaurant(ctx context.Context, req CreateRestaurantRequest, authToken string) (*Restaurant, error) {
	return api.CreateRestaurant(ctx, c.http, req, authToken)
}

// --------------------------------------------------------------------
// Order operations - delegated to internal/api
// --------------------------------------------------------------------

// OrderFood places an order.
func (c *Client) OrderFood(ctx context.Context, userID, locationID, restaurantID int64) (*Order, error) {
	return api.OrderFood(ctx, c.http, userID, locationID, restaurantID)
}
