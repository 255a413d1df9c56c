package dto

type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpResponse struct {
	AccountID                 string `json:"accountId"`
	RequiresEmailVerification bool   `json:"requiresEmailVerification"`
}

type SignInRequest struct {
	// Identifier is an email when it contains "@", a username otherwise.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type SignInResponse struct {
	URL       string `json:"url,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int64  `json:"expiresIn,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Principal is the authenticated account behind a request.
type Principal struct {
	AccountID string
	Username  string
}
