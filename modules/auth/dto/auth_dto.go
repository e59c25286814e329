package dto

// LoginRequest is the admin login payload. The salon has a single
// administrative account identified by password only.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the bearer token for the admin session.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"` // RFC3339
}
