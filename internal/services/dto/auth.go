package dto

// TokenRequest exchanges credentials for the bearer token.
type TokenRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries the opaque key only.
type TokenResponse struct {
	Token string `json:"token"`
}
