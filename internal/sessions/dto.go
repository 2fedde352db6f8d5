package sessions

import "time"

// RegisterInput carries the signup payload after transport decoding.
type RegisterInput struct {
	Email    string
	Password string
}

// LoginInput carries the credential pair presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// TenantSummary is the identity surface exposed to clients.
type TenantSummary struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResult bundles the bearer token with the authenticated identity.
type LoginResult struct {
	Token string        `json:"token"`
	User  TenantSummary `json:"user"`
}
