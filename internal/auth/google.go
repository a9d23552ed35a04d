// File: internal/auth/google.go
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// UnverifiedGoogleClaim is the payload of a Google identity token decoded
// WITHOUT cryptographic verification of the issuer. The type name carries the
// trust level: nothing downstream may treat this as a verified identity.
// Production use would validate the signature against Google's JWKS; the
// prototype deliberately does not (documented limitation).
type UnverifiedGoogleClaim struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

type googleIDClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// ErrMissingEmail is returned when a credential decodes but carries no email,
// which the registration flow rejects as invalid input.
var ErrMissingEmail = errors.New("credential payload has no email")

// DecodeUnverifiedGoogleCredential structurally decodes a provider-issued
// identity token. Signature and issuer are NOT checked.
func DecodeUnverifiedGoogleCredential(credential string) (*UnverifiedGoogleClaim, error) {
	claims := &googleIDClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return nil, fmt.Errorf("malformed credential token: %w", err)
	}
	if claims.Email == "" {
		return nil, ErrMissingEmail
	}
	return &UnverifiedGoogleClaim{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
