package dto

// RegisterRequest registration input (plaintext password, hashed in the use case).
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Fullname string `json:"fullname" validate:"omitempty,max=255"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest credentials for token issuance.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse user output (never carries the password hash).
type UserResponse struct {
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Active   bool   `json:"active"`
}

// TokenResponse issued session token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // always "bearer"
}
