package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodhub/foodhub-client/client/internal/types"
)

func TestGetRestaurants(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/restaurants" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `[{"id":1,"storeName":"Tapioca Bar"},{"id":2,"storeName":"Bode"}]`)
	}))
	defer srv.Close()

	rs, err := GetRestaurants(context.Background(), newTestClient(srv))
	if err != nil {
		t.Fatalf("GetRestaurants error: %v", err)
	}
	if len(rs) != 2 || rs[1].StoreName != "Bode" {
		t.Fatalf("unexpected restaurants: %+v", rs)
	}
}

func TestGetRestaurantByID(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/restaurants/2" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"id":2,"storeName":"Bode","cnpj":"00.000.000/0001-00"}`)
	}))
	defer srv.Close()

	r, err := GetRestaurantByID(context.Background(), newTestClient(srv), 2)
	if err != nil {
		t.Fatalf("GetRestaurantByID error: %v", err)
	}
	if r.ID != 2 || r.CNPJ == "" {
		t.Fatalf("unexpected restaurant: %+v", r)
	}
}

func TestCreateRestaurant(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/restaurants" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Fatal("missing bearer token")
		}
		var got types.CreateRestaurantRequest
		_ = json.NewDecoder(r.Body).Decode(&got)
		if got.UserID != 12 || got.StoreName != "Bode" {
			t.Fatalf("unexpected body %+v", got)
		}
		writeJSON(w, http.StatusCreated, `{"id":3,"storeName":"Bode","userId":12}`)
	}))
	defer srv.Close()

	r, err := CreateRestaurant(context.Background(), newTestClient(srv), types.CreateRestaurantRequest{StoreName: "Bode", UserID: 12}, "tok")
	if err != nil {
		t.Fatalf("CreateRestaurant error: %v", err)
	}
	if r.ID != 3 || r.UserID != 12 {
		t.Fatalf("unexpected restaurant: %+v", r)
	}
}
