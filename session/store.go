package session

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/foodhub/foodhub-client/client"
)

// API is the part of the backend client the store drives.
// *client.Client satisfies it.
type API interface {
	CreateUser(ctx context.Context, req client.CreateUserRequest) (*client.User, error)
	SignIn(ctx context.Context, creds client.Credentials) (*client.SignInResponse, error)
	GetUserByID(ctx context.Context, userID int64, authToken string) (*client.User, error)

	GetRestaurants(ctx context.Context) ([]client.Restaurant, error)
	GetRestaurantByID(ctx context.Context, restaurantID int64) (*client.Restaurant, error)
	CreateRestaurant(ctx context.Context, req client.CreateRestaurantRequest, authToken string) (*client.Restaurant, error)

	GetAllFoods(ctx context.Context) ([]client.Food, error)
	GetFoodByID(ctx context.Context, foodID int64) (*client.Food, error)
	GetFoodsByRestaurant(ctx context.Context, restaurantID int64) ([]client.Food, error)
	GetFoodsByRestaurantAndCategory(ctx context.Context, restaurantID int64, category string) ([]client.Food, error)
	GetFoodsCategories(ctx context.Context) ([]string, error)
	GetFoodsCategoriesByRestaurant(ctx context.Context, restaurantID int64) ([]string, error)
	CreateFood(ctx context.Context, food client.Food, restaurantID int64, authToken string) (*client.Food, error)
	UpdateFood(ctx context.Context, food client.Food, restaurantID int64, authToken string) (*client.Food, error)
	DeleteFood(ctx context.Context, foodID, restaurantID int64, authToken string) (json.RawMessage, error)

	OrderFood(ctx context.Context, userID, locationID, restaurantID int64) (*client.Order, error)
}

var _ API = (*client.Client)(nil)

// Store owns the session state of one application session.
//
// Composite operations (CreateUser, SignIn) record their outcome in the
// state instead of returning it; the remaining methods pass backend results
// and errors straight through.
type Store struct {
	api API

	mu      sync.RWMutex
	state   State
	subs    map[int]func(State)
	nextSub int

	// queue holds produced states not yet delivered. Only the goroutine that
	// set notifying drains it, so subscribers see states in order.
	queue     []State
	notifying bool

	inflight atomic.Bool
}

// NewStore returns a signed-out store backed by api.
func NewStore(api API) *Store {
	return &Store{api: api, subs: make(map[int]func(State))}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn to receive every state the store produces from now
// on. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// dispatch reduces a into the state and delivers the result to subscribers.
// A subscriber may dispatch; its state is delivered after the current one.
func (s *Store) dispatch(a Action) {
	if s.apply(a) {
		s.notify()
	}
}

// apply reduces a and queues the new state. It reports whether the caller
// has to drain the queue.
func (s *Store) apply(a Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, a)
	transitionsTotal.WithLabelValues(Kind(a)).Inc()
	s.queue = append(s.queue, s.state)
	if s.notifying {
		return false
	}
	s.notifying = true
	return true
}

func (s *Store) notify() {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.queue, s.notifying = nil, false
			s.mu.Unlock()
			panic(r)
		}
	}()

	for {
		snapshot, subs, ok := s.nextDelivery()
		if !ok {
			return
		}
		for _, fn := range subs {
			fn(snapshot.clone())
		}
	}
}

func (s *Store) nextDelivery() (State, []func(State), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		s.queue, s.notifying = nil, false
		return State{}, nil, false
	}
	next := s.queue[0]
	s.queue = s.queue[1:]
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return next, subs, true
}

// credentials returns the signed-in user's id and token.
func (s *Store) credentials() (int64, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return 0, "", ErrNotSignedIn
	}
	return s.state.User.ID, s.state.AuthToken, nil
}

func (s *Store) fail(op string, err error) {
	log.Error().Err(err).Str("operation", op).Msg("session request failed")
	s.dispatch(Failed{Error: client.DetailOf(err)})
}

// --------------------------------------------------------------------
// Composite operations
// --------------------------------------------------------------------

// CreateUser registers a user, signs them in with the same credentials and
// loads their record. It does nothing when a user is already signed in.
//
// Backend failures end up in State().Error; the only returned error is
// ErrRequestInFlight.
func (s *Store) CreateUser(ctx context.Context, req client.CreateUserRequest) error {
	if !s.inflight.CompareAndSwap(false, true) {
		return ErrRequestInFlight
	}
	defer s.inflight.Store(false)

	if s.State().SignedIn() {
		log.Debug().Str("email", req.Email).Msg("create user skipped: already signed in")
		return nil
	}

	s.dispatch(StartRequest{})

	created, err := s.api.CreateUser(ctx, req)
	if err != nil {
		s.fail("create user", err)
		return nil
	}
	user, token, err := s.signIn(ctx, client.Credentials{Email: req.Email, Password: req.Password}, created.ID)
	if err != nil {
		s.fail("create user", err)
		return nil
	}

	s.dispatch(UserCreated{User: user, AuthToken: token})
	return nil
}

// SignIn exchanges credentials for a token and loads the user's record.
//
// Backend failures end up in State().Error; the only returned error is
// ErrRequestInFlight.
func (s *Store) SignIn(ctx context.Context, creds client.Credentials) error {
	if !s.inflight.CompareAndSwap(false, true) {
		return ErrRequestInFlight
	}
	defer s.inflight.Store(false)

	s.dispatch(StartRequest{})

	user, token, err := s.signIn(ctx, creds, 0)
	if err != nil {
		s.fail("sign in", err)
		return nil
	}

	s.dispatch(UserLoggedIn{User: user, AuthToken: token})
	return nil
}

// signIn runs sign-in followed by the user lookup. fallbackID is used when
// the sign-in response omits the user id.
func (s *Store) signIn(ctx context.Context, creds client.Credentials, fallbackID int64) (*client.User, string, error) {
	resp, err := s.api.SignIn(ctx, creds)
	if err != nil {
		return nil, "", err
	}
	if resp.Token == "" {
		return nil, "", errMissingToken
	}
	userID := resp.UserID
	if userID == 0 {
		userID = fallbackID
	}
	user, err := s.api.GetUserByID(ctx, userID, resp.Token)
	if err != nil {
		return nil, "", err
	}
	return user, resp.Token, nil
}

// Logout forgets the signed-in user. The backend is not contacted.
func (s *Store) Logout() {
	s.dispatch(UserLogout{})
}

// --------------------------------------------------------------------
// Pass-through operations
// --------------------------------------------------------------------

// GetRestaurants lists all restaurants.
func (s *Store) GetRestaurants(ctx context.Context) ([]client.Restaurant, error) {
	return s.api.GetRestaurants(ctx)
}

// GetRestaurantByID retrieves a restaurant.
func (s *Store) GetRestaurantByID(ctx context.Context, restaurantID int64) (*client.Restaurant, error) {
	return s.api.GetRestaurantByID(ctx, restaurantID)
}

// GetAllFoods lists every food.
func (s *Store) GetAllFoods(ctx context.Context) ([]client.Food, error) {
	return s.api.GetAllFoods(ctx)
}

// GetFoodByID retrieves a food.
func (s *Store) GetFoodByID(ctx context.Context, foodID int64) (*client.Food, error) {
	return s.api.GetFoodByID(ctx, foodID)
}

// GetFoodsByRestaurant lists a restaurant's foods.
func (s *Store) GetFoodsByRestaurant(ctx context.Context, restaurantID int64) ([]client.Food, error) {
	return s.api.GetFoodsByRestaurant(ctx, restaurantID)
}

// GetFoodsByRestaurantAndCategory lists a restaurant's foods in one category.
func (s *Store) GetFoodsByRestaurantAndCategory(ctx context.Context, restaurantID int64, category string) ([]client.Food, error) {
	return s.api.GetFoodsByRestaurantAndCategory(ctx, restaurantID, category)
}

// GetFoodsCategories lists every food category.
func (s *Store) GetFoodsCategories(ctx context.Context) ([]string, error) {
	return s.api.GetFoodsCategories(ctx)
}

// GetFoodsCategoriesByRestaurant lists a restaurant's food categories.
func (s *Store) GetFoodsCategoriesByRestaurant(ctx context.Context, restaurantID int64) ([]string, error) {
	return s.api.GetFoodsCategoriesByRestaurant(ctx, restaurantID)
}

// CreateFood adds food to a restaurant using the session's token.
func (s *Store) CreateFood(ctx context.Context, food client.Food, restaurantID int64) (*client.Food, error) {
	_, token, err := s.credentials()
	if err != nil {
		return nil, err
	}
	return s.api.CreateFood(ctx, food, restaurantID, token)
}

// UpdateFood replaces a food using the session's token.
func (s *Store) UpdateFood(ctx context.Context, food client.Food, restaurantID int64) (*client.Food, error) {
	_, token, err := s.credentials()
	if err != nil {
		return nil, err
	}
	return s.api.UpdateFood(ctx, food, restaurantID, token)
}

// DeleteFood removes a food using the session's token.
func (s *Store) DeleteFood(ctx context.Context, foodID, restaurantID int64) (json.RawMessage, error) {
	_, token, err := s.credentials()
	if err != nil {
		return nil, err
	}
	return s.api.DeleteFood(ctx, foodID, restaurantID, token)
}

// CreateRestaurant registers a restaurant owned by the signed-in user.
// req.UserID is overwritten with the session user's id.
func (s *Store) CreateRestaurant(ctx context.Context, req client.CreateRestaurantRequest) (*client.Restaurant, error) {
	userID, token, err := s.credentials()
	if err != nil {
		return nil, err
	}
	req.UserID = userID
	return s.api.CreateRestaurant(ctx, req, token)
}

// PlaceOrder orders from restaurantID for the signed-in user.
func (s *Store) PlaceOrder(ctx context.Context, locationID, restaurantID int64) (*client.Order, error) {
	userID, _, err := s.credentials()
	if err != nil {
		return nil, err
	}
	return s.api.OrderFood(ctx, userID, locationID, restaurantID)
}
