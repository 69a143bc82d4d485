package types

// ------------------------------
// Response Types
// ------------------------------

// SignInResponse carries the bearer token and the id of the signed-in user.
type SignInResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
}
