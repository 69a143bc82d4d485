package session

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodhub/foodhub-client/client"
	"github.com/foodhub/foodhub-client/internal/apitest"
)

var ana = client.CreateUserRequest{
	Name:     "Ana",
	Email:    "ana@example.com",
	Password: "secret",
	Phone:    "+55 81 0000-0000",
	Location: "Recife",
}

func newStore(t *testing.T) (*Store, *apitest.Backend) {
	t.Helper()
	b := apitest.New(t)
	return NewStore(b.Client()), b
}

func TestCreateUser_Success(t *testing.T) {
	s, b := newStore(t)

	require.NoError(t, s.CreateUser(context.Background(), ana))

	st := s.State()
	assert.False(t, st.Loading)
	assert.Nil(t, st.Error)
	require.NotNil(t, st.User)
	assert.Equal(t, "ana@example.com", st.User.Email)
	assert.NotEmpty(t, st.AuthToken)

	// create, sign in, then fetch the full record with the new token
	assert.Len(t, b.RequestsTo(apitest.RouteCreateUser), 1)
	assert.Len(t, b.RequestsTo(apitest.RouteSignIn), 1)
	gets := b.RequestsTo(apitest.RouteGetUser)
	require.Len(t, gets, 1)
	assert.Equal(t, "Bearer "+st.AuthToken, gets[0].Authorization)
}

func TestCreateUser_BackendRejects(t *testing.T) {
	s, b := newStore(t)
	b.Fail(apitest.RouteCreateUser, http.StatusBadRequest, `{"message":"email taken"}`)

	require.NoError(t, s.CreateUser(context.Background(), ana))

	st := s.State()
	assert.False(t, st.Loading)
	assert.Equal(t, "email taken", st.Error.Message())
	assert.Nil(t, st.User)
	assert.Empty(t, st.AuthToken)
	assert.Empty(t, b.RequestsTo(apitest.RouteSignIn))
}

func TestCreateUser_RetryAfterFailure(t *testing.T) {
	s, b := newStore(t)
	b.Fail(apitest.RouteSignIn, http.StatusInternalServerError, `{"message":"try later"}`)
	require.NoError(t, s.CreateUser(context.Background(), ana))
	assert.Equal(t, "try later", s.State().Error.Message())

	// the account exists now; a retry hits "email taken" on creation
	b.Recover(apitest.RouteSignIn)
	require.NoError(t, s.CreateUser(context.Background(), ana))
	assert.Equal(t, "email taken", s.State().Error.Message())
	assert.False(t, s.State().SignedIn())

	require.NoError(t, s.SignIn(context.Background(), client.Credentials{Email: ana.Email, Password: ana.Password}))
	assert.True(t, s.State().SignedIn())
	assert.Nil(t, s.State().Error)
}

func TestCreateUser_NoOpWhenSignedIn(t *testing.T) {
	s, b := newStore(t)
	require.NoError(t, s.CreateUser(context.Background(), ana))
	before := s.State()

	other := ana
	other.Email = "bia@example.com"
	require.NoError(t, s.CreateUser(context.Background(), other))

	assert.Equal(t, before, s.State())
	assert.Len(t, b.RequestsTo(apitest.RouteCreateUser), 1)
}

func TestSignIn_ThenLogout(t *testing.T) {
	s, b := newStore(t)
	b.SeedUser(ana)

	require.NoError(t, s.SignIn(context.Background(), client.Credentials{Email: ana.Email, Password: ana.Password}))
	st := s.State()
	require.True(t, st.SignedIn())
	assert.Equal(t, "Ana", st.User.Name)
	assert.False(t, st.Loading)

	s.Logout()
	after := s.State()
	assert.Nil(t, after.User)
	assert.Empty(t, after.AuthToken)
	assert.Equal(t, st.Error, after.Error)
	assert.Equal(t, st.Loading, after.Loading)
}

func TestSignIn_BadCredentials(t *testing.T) {
	s, b := newStore(t)
	b.SeedUser(ana)

	require.NoError(t, s.SignIn(context.Background(), client.Credentials{Email: ana.Email, Password: "wrong"}))
	st := s.State()
	assert.Equal(t, "invalid credentials", st.Error.Message())
	assert.False(t, st.Loading)
	assert.False(t, st.SignedIn())
}

func TestSignIn_TransportFailure(t *testing.T) {
	b := apitest.New(t)
	url := b.URL()
	b.Close()
	s := NewStore(client.New(client.WithBaseURL(url)))

	require.NoError(t, s.SignIn(context.Background(), client.Credentials{Email: "a", Password: "b"}))
	st := s.State()
	assert.False(t, st.Loading)
	assert.NotEmpty(t, st.Error.Message())
}

func TestSubscribe_SeesLoadingThenResult(t *testing.T) {
	s, b := newStore(t)
	b.SeedUser(ana)

	var mu sync.Mutex
	var seen []State
	unsubscribe := s.Subscribe(func(st State) {
		mu.Lock()
		seen = append(seen, st)
		mu.Unlock()
	})

	require.NoError(t, s.SignIn(context.Background(), client.Credentials{Email: ana.Email, Password: ana.Password}))
	unsubscribe()
	s.Logout()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.False(t, seen[0].SignedIn())
	assert.False(t, seen[1].Loading)
	assert.True(t, seen[1].SignedIn())
}

func TestComposite_RejectsConcurrentCall(t *testing.T) {
	s, b := newStore(t)
	b.SeedUser(ana)
	release := b.Hold(apitest.RouteSignIn)

	loading := make(chan struct{})
	var once sync.Once
	s.Subscribe(func(st State) {
		if st.Loading {
			once.Do(func() { close(loading) })
		}
	})

	done := make(chan error, 1)
	go func() {
		done <- s.SignIn(context.Background(), client.Credentials{Email: ana.Email, Password: ana.Password})
	}()

	select {
	case <-loading:
	case <-time.After(2 * time.Second):
		t.Fatal("first sign-in never started")
	}

	assert.ErrorIs(t, s.SignIn(context.Background(), client.Credentials{Email: ana.Email, Password: ana.Password}), ErrRequestInFlight)
	assert.ErrorIs(t, s.CreateUser(context.Background(), ana), ErrRequestInFlight)

	release()
	require.NoError(t, <-done)
	assert.True(t, s.State().SignedIn())
	assert.Len(t, b.RequestsTo(apitest.RouteSignIn), 1)
}

func TestState_SnapshotIsDetached(t *testing.T) {
	s, b := newStore(t)
	b.SeedUser(ana)
	require.NoError(t, s.SignIn(context.Background(), client.Credentials{Email: ana.Email, Password: ana.Password}))

	snap := s.State()
	snap.User.Name = "changed"
	assert.Equal(t, "Ana", s.State().User.Name)
}

func TestPassThroughs_InjectSession(t *testing.T) {
	s, b := newStore(t)
	ctx := context.Background()

	_, err := s.CreateFood(ctx, client.Food{Name: "Tapioca"}, 1)
	assert.ErrorIs(t, err, ErrNotSignedIn)
	_, err = s.CreateRestaurant(ctx, client.CreateRestaurantRequest{StoreName: "Bode"})
	assert.ErrorIs(t, err, ErrNotSignedIn)
	_, err = s.PlaceOrder(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	require.NoError(t, s.CreateUser(ctx, ana))
	st := s.State()

	rest, err := s.CreateRestaurant(ctx, client.CreateRestaurantRequest{StoreName: "Bode", UserID: 999})
	require.NoError(t, err)
	assert.Equal(t, st.User.ID, rest.UserID)

	food, err := s.CreateFood(ctx, client.Food{Name: "Tapioca", Category: "snacks", Price: 9}, rest.ID)
	require.NoError(t, err)
	creates := b.RequestsTo(apitest.RouteCreateFood)
	require.Len(t, creates, 1)
	assert.Equal(t, "Bearer "+st.AuthToken, creates[0].Authorization)

	food.Price = 11
	updated, err := s.UpdateFood(ctx, *food, rest.ID)
	require.NoError(t, err)
	assert.Equal(t, 11.0, updated.Price)

	foods, err := s.GetFoodsByRestaurant(ctx, rest.ID)
	require.NoError(t, err)
	assert.Len(t, foods, 1)
	inCategory, err := s.GetFoodsByRestaurantAndCategory(ctx, rest.ID, "snacks")
	require.NoError(t, err)
	assert.Len(t, inCategory, 1)
	cats, err := s.GetFoodsCategoriesByRestaurant(ctx, rest.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"snacks"}, cats)
	all, err := s.GetFoodsCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"snacks"}, all)

	order, err := s.PlaceOrder(ctx, 4, rest.ID)
	require.NoError(t, err)
	assert.Equal(t, st.User.ID, order.UserID)

	_, err = s.DeleteFood(ctx, food.ID, rest.ID)
	require.NoError(t, err)
	_, err = s.GetFoodByID(ctx, food.ID)
	assert.True(t, client.IsNotFound(err))

	rs, err := s.GetRestaurants(ctx)
	require.NoError(t, err)
	assert.Len(t, rs, 1)
	got, err := s.GetRestaurantByID(ctx, rest.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bode", got.StoreName)
	allFoods, err := s.GetAllFoods(ctx)
	require.NoError(t, err)
	assert.Empty(t, allFoods)
}

func TestPassThroughs_PropagateErrors(t *testing.T) {
	s, b := newStore(t)
	b.Fail(apitest.RouteListRestaurants, http.StatusInternalServerError, `{"message":"db down"}`)

	_, err := s.GetRestaurants(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	// pass-through failures are not recorded in the session
	assert.Nil(t, s.State().Error)
}

func TestDispatch_CountsTransitions(t *testing.T) {
	s, b := newStore(t)
	b.SeedUser(ana)

	before := map[string]float64{}
	for _, k := range []string{"start-request", "user-logged-in", "user-logout"} {
		before[k] = testutil.ToFloat64(transitionsTotal.WithLabelValues(k))
	}

	require.NoError(t, s.SignIn(context.Background(), client.Credentials{Email: ana.Email, Password: ana.Password}))
	s.Logout()

	for k, v := range before {
		assert.Equal(t, v+1, testutil.ToFloat64(transitionsTotal.WithLabelValues(k)), k)
	}
}

func TestSubscribe_SubscriberMayDispatch(t *testing.T) {
	s, b := newStore(t)
	b.SeedUser(ana)

	var seen []State
	s.Subscribe(func(st State) {
		seen = append(seen, st)
		if st.SignedIn() {
			s.Logout()
		}
	})

	done := make(chan error, 1)
	go func() {
		done <- s.SignIn(context.Background(), client.Credentials{Email: ana.Email, Password: ana.Password})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("sign-in blocked on a subscriber that logs out")
	}

	assert.False(t, s.State().SignedIn())
	require.Len(t, seen, 3)
	assert.True(t, seen[0].Loading)
	assert.True(t, seen[1].SignedIn())
	assert.False(t, seen[2].SignedIn())
}

func TestDispatch_ReducerPanicReleasesStore(t *testing.T) {
	s, b := newStore(t)
	b.SeedUser(ana)

	var notified int
	s.Subscribe(func(State) { notified++ })

	assert.Panics(t, func() { s.dispatch(nil) })
	assert.Panics(t, func() { s.dispatch(UserLoggedIn{}) })
	assert.Zero(t, notified)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.State()
		s.Logout()
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("store still locked after a reducer panic")
	}
	assert.Equal(t, 1, notified)

	require.NoError(t, s.SignIn(context.Background(), client.Credentials{Email: ana.Email, Password: ana.Password}))
	assert.True(t, s.State().SignedIn())
}

func TestDispatch_SubscriberPanicReleasesStore(t *testing.T) {
	s, _ := newStore(t)
	unsubscribe := s.Subscribe(func(State) { panic("subscriber failed") })

	assert.Panics(t, func() { s.Logout() })
	unsubscribe()

	var seen []State
	s.Subscribe(func(st State) { seen = append(seen, st) })
	s.Logout()
	assert.Len(t, seen, 1)
}
