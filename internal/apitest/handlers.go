package apitest

import (
	"net/http"

	"github.com/foodhub/foodhub-client/client"
)

func all(client.Food) bool { return true }

func (b *Backend) listFoods(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, sortedFoods(b.foods, all))
}

func (b *Backend) listCategories(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, categories(b.foods, all))
}

// foodOrCategories serves GET /foods/{id}: the food with that id, or else
// the categories of the restaurant with that id.
func (b *Backend) foodOrCategories(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	if f, ok := b.foods[id]; ok {
		writeJSON(w, http.StatusOK, f)
		return
	}
	if _, ok := b.restaurants[id]; ok {
		writeJSON(w, http.StatusOK, categories(b.foods, func(f client.Food) bool { return f.RestaurantID == id }))
		return
	}
	message(w, http.StatusNotFound, "food not found")
}

func (b *Backend) restaurantFoods(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.restaurants[id]; !ok {
		message(w, http.StatusNotFound, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, sortedFoods(b.foods, func(f client.Food) bool { return f.RestaurantID == id }))
}

func (b *Backend) restaurantCategoryFoods(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	category := muxVar(r, "category")
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, sortedFoods(b.foods, func(f client.Food) bool {
		return f.RestaurantID == id && f.Category == category
	}))
}

func (b *Backend) createFood(w http.ResponseWriter, r *http.Request) {
	var f client.Food
	if !decode(w, r, &f) {
		return
	}
	if f.Name == "" {
		message(w, http.StatusBadRequest, "name is required")
		return
	}
	id := pathID(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.restaurants[id]; !ok {
		message(w, http.StatusNotFound, "restaurant not found")
		return
	}
	f.ID = b.newIDLocked()
	f.RestaurantID = id
	b.foods[f.ID] = f
	writeJSON(w, http.StatusCreated, f)
}

func (b *Backend) updateFood(w http.ResponseWriter, r *http.Request) {
	var f client.Food
	if !decode(w, r, &f) {
		return
	}
	id, foodID := pathID(r, "id"), pathID(r, "foodId")
	b.mu.Lock()
	defer b.mu.Unlock()
	if cur, ok := b.foods[foodID]; !ok || cur.RestaurantID != id {
		message(w, http.StatusNotFound, "food not found")
		return
	}
	f.ID = foodID
	f.RestaurantID = id
	b.foods[foodID] = f
	writeJSON(w, http.StatusOK, f)
}

func (b *Backend) deleteFood(w http.ResponseWriter, r *http.Request) {
	id, foodID := pathID(r, "id"), pathID(r, "foodId")
	b.mu.Lock()
	defer b.mu.Unlock()
	if cur, ok := b.foods[foodID]; !ok || cur.RestaurantID != id {
		message(w, http.StatusNotFound, "food not found")
		return
	}
	delete(b.foods, foodID)
	writeJSON(w, http.StatusOK, map[string]any{"id": foodID, "deleted": true})
}

func (b *Backend) createUser(w http.ResponseWriter, r *http.Request) {
	var req client.CreateUserRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		message(w, http.StatusBadRequest, "email and password are required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range b.accounts {
		if a.user.Email == req.Email {
			message(w, http.StatusBadRequest, "email taken")
			return
		}
	}
	writeJSON(w, http.StatusCreated, b.addAccountLocked(req))
}

func (b *Backend) signIn(w http.ResponseWriter, r *http.Request) {
	var creds client.Credentials
	if !decode(w, r, &creds) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range b.accounts {
		if a.user.Email == creds.Email && a.password == creds.Password {
			writeJSON(w, http.StatusOK, client.SignInResponse{Token: b.issueTokenLocked(a.user.ID), UserID: a.user.ID})
			return
		}
	}
	message(w, http.StatusUnauthorized, "invalid credentials")
}

func (b *Backend) getUser(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accounts[id]
	if !ok {
		message(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, a.user)
}

func (b *Backend) listRestaurants(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]client.Restaurant, 0, len(b.restaurants))
	for id := int64(1); id <= b.nextID; id++ {
		if rest, ok := b.restaurants[id]; ok {
			out = append(out, rest)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	rest, ok := b.restaurants[id]
	if !ok {
		message(w, http.StatusNotFound, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (b *Backend) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var req client.CreateRestaurantRequest
	if !decode(w, r, &req) {
		return
	}
	if req.StoreName == "" {
		message(w, http.StatusBadRequest, "storeName is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.accounts[req.UserID]; !ok {
		message(w, http.StatusBadRequest, "unknown owner")
		return
	}
	rest := client.Restaurant{
		ID:          b.newIDLocked(),
		StoreName:   req.StoreName,
		CNPJ:        req.CNPJ,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		UserID:      req.UserID,
	}
	b.restaurants[rest.ID] = rest
	writeJSON(w, http.StatusCreated, rest)
}

func (b *Backend) placeOrder(w http.ResponseWriter, r *http.Request) {
	var o client.Order
	if !decode(w, r, &o) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.restaurants[o.RestaurantID]; !ok {
		message(w, http.StatusBadRequest, "unknown restaurant")
		return
	}
	o.ID = b.newIDLocked()
	o.Status = "placed"
	b.orders = append(b.orders, o)
	writeJSON(w, http.StatusCreated, o)
}
