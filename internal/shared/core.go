// File: internal/shared/core.go
package shared

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Providers recognized by the credential store.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Claims is the session token payload: the user's opaque id, email and
// provider tag, plus the registered expiry/issued-at claims.
type Claims struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// UserDataForToken abstracts the user data needed for token issuance.
type UserDataForToken interface {
	GetID() string
	GetEmail() string
	GetProvider() string
}

// TokenService issues and verifies stateless session tokens.
type TokenService interface {
	// Issue signs a token for the user. Stateless; no server-side session.
	Issue(user UserDataForToken) (token string, expiresAt time.Time, err error)
	// Verify validates signature and expiry. Any structural, signature or
	// expiry failure comes back as an error the request layer turns into 401.
	Verify(token string) (*Claims, error)
}
