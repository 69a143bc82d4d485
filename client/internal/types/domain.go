package types

// ------------------------------
// Core Domain Entities
// ------------------------------

// Food is a dish offered by a restaurant. Updates send the whole object, so
// the descriptive fields are always encoded, zero values included.
type Food struct {
	ID           int64   `json:"id,omitempty"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	RestaurantID int64   `json:"restaurant_id,omitempty"`
}

// Role distinguishes customers from restaurant owners.
type Role int

const (
	RoleCustomer Role = iota
	RoleOwner
)

// User is a registered account. Password is never returned by the backend.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Role     Role   `json:"role"`
}

// Restaurant is a store owned by a user.
type Restaurant struct {
	ID          int64  `json:"id,omitempty"`
	StoreName   string `json:"storeName"`
	CNPJ        string `json:"cnpj,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Location    string `json:"location,omitempty"`
	UserID      int64  `json:"userId,omitempty"`
}

// Order is a placed order.
type Order struct {
	ID           int64  `json:"id,omitempty"`
	UserID       int64  `json:"user_id"`
	LocationID   int64  `json:"location_id"`
	RestaurantID int64  `json:"restaurant_id"`
	Status       string `json:"status,omitempty"`
}
