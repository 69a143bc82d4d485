package types

// ------------------------------
// Request Types
// ------------------------------

// CreateUserRequest holds parameters for a new user. Role defaults to
// RoleCustomer when left zero.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Role     Role   `json:"role"`
}

// Credentials is the sign-in payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateRestaurantRequest holds parameters for a new restaurant.
type CreateRestaurantRequest struct {
	StoreName   string `json:"storeName"`
	CNPJ        string `json:"cnpj"`
	PhoneNumber string `json:"phoneNumber"`
	Location    string `json:"location"`
	UserID      int64  `json:"userId"`
}

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	UserID       int64 `json:"user_id"`
	LocationID   int64 `json:"location_id"`
	RestaurantID int64 `json:"restaurant_id"`
}
