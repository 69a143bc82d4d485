package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/foodhub/foodhub-client/client"
)

// Route names accepted by Fail and Hold.
const (
	RouteListFoods          = "list-foods"
	RouteListCategories     = "list-categories"
	RouteFoodOrCategories   = "food-or-categories"
	RouteRestaurantFoods    = "restaurant-foods"
	RouteRestaurantCategory = "restaurant-category-foods"
	RouteCreateFood         = "create-food"
	RouteUpdateFood         = "update-food"
	RouteDeleteFood         = "delete-food"
	RouteCreateUser         = "create-user"
	RouteSignIn             = "sign-in"
	RouteGetUser            = "get-user"
	RouteListRestaurants    = "list-restaurants"
	RouteGetRestaurant      = "get-restaurant"
	RouteCreateRestaurant   = "create-restaurant"
	RoutePlaceOrder         = "place-order"
)

// Request is a request the backend received.
type Request struct {
	Route         string
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

type failure struct {
	status int
	body   string
}

type account struct {
	user     client.User
	password string
}

// Backend is the fake. Zero value is not usable; call New.
type Backend struct {
	srv *httptest.Server

	mu          sync.Mutex
	nextID      int64
	accounts    map[int64]*account
	tokens      map[string]int64
	restaurants map[int64]client.Restaurant
	foods       map[int64]client.Food
	orders      []client.Order
	failures    map[string]failure
	holds       map[string]chan struct{}
	requests    []Request
}

// New starts a backend and stops it when t ends.
func New(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		accounts:    make(map[int64]*account),
		tokens:      make(map[string]int64),
		restaurants: make(map[int64]client.Restaurant),
		foods:       make(map[int64]client.Food),
		failures:    make(map[string]failure),
		holds:       make(map[string]chan struct{}),
	}
	b.srv = httptest.NewServer(b.router())
	t.Cleanup(b.Close)
	return b
}

// URL is the API root, including the /v1 prefix.
func (b *Backend) URL() string { return b.srv.URL + "/v1" }

// Client returns an SDK client pointed at the backend.
func (b *Backend) Client(opts ...client.Option) *client.Client {
	return client.New(append([]client.Option{client.WithBaseURL(b.URL())}, opts...)...)
}

// Close releases held routes and stops the server.
func (b *Backend) Close() {
	b.mu.Lock()
	for name, ch := range b.holds {
		close(ch)
		delete(b.holds, name)
	}
	b.mu.Unlock()
	b.srv.Close()
}

// Fail makes route answer status with body until Recover is called.
func (b *Backend) Fail(route string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = failure{status: status, body: body}
}

// Recover undoes Fail.
func (b *Backend) Recover(route string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, route)
}

// Hold stalls requests to route until the returned function is called.
func (b *Backend) Hold(route string) (release func()) {
	ch := make(chan struct{})
	b.mu.Lock()
	b.holds[route] = ch
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			if b.holds[route] == ch {
				delete(b.holds, route)
				close(ch)
			}
			b.mu.Unlock()
		})
	}
}

// Requests returns every request received so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// RequestsTo returns the requests received by route.
func (b *Backend) RequestsTo(route string) []Request {
	var out []Request
	for _, r := range b.Requests() {
		if r.Route == route {
			out = append(out, r)
		}
	}
	return out
}

// SeedUser registers an account directly and returns it with a valid token.
func (b *Backend) SeedUser(req client.CreateUserRequest) (client.User, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.addAccountLocked(req)
	return u, b.issueTokenLocked(u.ID)
}

// SeedRestaurant stores r with a fresh id.
func (b *Backend) SeedRestaurant(r client.Restaurant) client.Restaurant {
	b.mu.Lock()
	defer b.mu.Unlock()
	r.ID = b.newIDLocked()
	b.restaurants[r.ID] = r
	return r
}

// SeedFood stores f with a fresh id.
func (b *Backend) SeedFood(f client.Food) client.Food {
	b.mu.Lock()
	defer b.mu.Unlock()
	f.ID = b.newIDLocked()
	b.foods[f.ID] = f
	return f
}

// Orders returns the orders placed so far.
func (b *Backend) Orders() []client.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]client.Order(nil), b.orders...)
}

// ------------------------- internals -------------------------

// newIDLocked hands out ids from one sequence shared by every entity, so a
// food id never equals a restaurant id. GET /foods/{id} relies on that.
func (b *Backend) newIDLocked() int64 {
	b.nextID++
	return b.nextID
}

func (b *Backend) addAccountLocked(req client.CreateUserRequest) client.User {
	u := client.User{
		ID:       b.newIDLocked(),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
		Role:     req.Role,
	}
	b.accounts[u.ID] = &account{user: u, password: req.Password}
	return u
}

func (b *Backend) issueTokenLocked(userID int64) string {
	token := "tok-" + uuid.NewString()
	b.tokens[token] = userID
	return token
}

func (b *Backend) router() http.Handler {
	r := mux.NewRouter()
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(b.record, b.inject)

	v1.HandleFunc("/foods", b.listFoods).Methods(http.MethodGet).Name(RouteListFoods)
	v1.HandleFunc("/categories", b.listCategories).Methods(http.MethodGet).Name(RouteListCategories)
	v1.HandleFunc("/foods/{id:[0-9]+}", b.foodOrCategories).Methods(http.MethodGet).Name(RouteFoodOrCategories)

	v1.HandleFunc("/users/signin", b.signIn).Methods(http.MethodPost).Name(RouteSignIn)
	v1.HandleFunc("/users", b.createUser).Methods(http.MethodPost).Name(RouteCreateUser)
	v1.HandleFunc("/users/{id:[0-9]+}", b.getUser).Methods(http.MethodGet).Name(RouteGetUser)

	v1.HandleFunc("/restaurants", b.listRestaurants).Methods(http.MethodGet).Name(RouteListRestaurants)
	v1.HandleFunc("/restaurants", b.requireAuth(b.createRestaurant)).Methods(http.MethodPost).Name(RouteCreateRestaurant)
	v1.HandleFunc("/restaurants/{id:[0-9]+}", b.getRestaurant).Methods(http.MethodGet).Name(RouteGetRestaurant)
	v1.HandleFunc("/restaurants/{id:[0-9]+}/foods", b.restaurantFoods).Methods(http.MethodGet).Name(RouteRestaurantFoods)
	v1.HandleFunc("/restaurants/{id:[0-9]+}/foods", b.requireAuth(b.createFood)).Methods(http.MethodPost).Name(RouteCreateFood)
	v1.HandleFunc("/restaurants/{id:[0-9]+}/foods/{foodId:[0-9]+}", b.requireAuth(b.updateFood)).Methods(http.MethodPost).Name(RouteUpdateFood)
	v1.HandleFunc("/restaurants/{id:[0-9]+}/foods/{foodId:[0-9]+}", b.requireAuth(b.deleteFood)).Methods(http.MethodDelete).Name(RouteDeleteFood)
	v1.HandleFunc("/restaurants/{id:[0-9]+}/{category}/foods", b.restaurantCategoryFoods).Methods(http.MethodGet).Name(RouteRestaurantCategory)

	v1.HandleFunc("/orders", b.placeOrder).Methods(http.MethodPost).Name(RoutePlaceOrder)
	return r
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		return route.GetName()
	}
	return ""
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Route:         routeName(r),
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		})
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// inject applies Hold and Fail for the matched route.
func (b *Backend) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := routeName(r)

		b.mu.Lock()
		hold := b.holds[name]
		b.mu.Unlock()
		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}

		b.mu.Lock()
		f, failing := b.failures[name]
		b.mu.Unlock()
		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) requireAuth(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		_, known := b.tokens[token]
		b.mu.Unlock()
		if !ok || !known {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func message(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func muxVar(r *http.Request, key string) string { return mux.Vars(r)[key] }

func pathID(r *http.Request, key string) int64 {
	v, _ := strconv.ParseInt(muxVar(r, key), 10, 64)
	return v
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		message(w, http.StatusBadRequest, "malformed body")
		return false
	}
	return true
}

func sortedFoods(m map[int64]client.Food, keep func(client.Food) bool) []client.Food {
	out := make([]client.Food, 0, len(m))
	for _, f := range m {
		if keep(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func categories(m map[int64]client.Food, keep func(client.Food) bool) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, f := range m {
		if keep(f) && f.Category != "" && !seen[f.Category] {
			seen[f.Category] = true
			out = append(out, f.Category)
		}
	}
	sort.Strings(out)
	return out
}
