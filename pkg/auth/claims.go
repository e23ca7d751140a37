package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID string
	Email  string
	JTI    string
}

// AccessTokenClaims represents the identity provider's token. UserID is the
// provider's stable subject and owns the cart.
type AccessTokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Owner returns the cart owner carried by the token, falling back to sub.
func (c *AccessTokenClaims) Owner() string {
	if c == nil {
		return ""
	}
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}
