package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token TTL constants.
//
// Access tokens minted through the refresh flow deliberately get a much
// shorter lifetime than ones minted at login; a client sitting on a refresh
// token is expected to come back for a new access token often.
const (
	// DefaultAccessTokenTTL is the lifetime of access tokens issued at
	// register and login.
	DefaultAccessTokenTTL = 10 * time.Minute

	// DefaultRefreshTokenTTL is the lifetime of refresh tokens.
	DefaultRefreshTokenTTL = 60 * time.Minute

	// DefaultRefreshedAccessTTL is the lifetime of access tokens minted
	// through the refresh flow.
	DefaultRefreshedAccessTTL = 1 * time.Minute
)

// Claims is the identity bundle embedded in both access and refresh tokens.
// Both token classes carry the same shape; they differ only in signing secret
// and lifetime.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the store-assigned user identity.
	UserID int64 `json:"id"`

	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phonenumber,omitempty"`
}

// NewClaims builds minimally-correct claims for a user with the given ttl.
func NewClaims(userID int64, email, name, phoneNumber string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		UserID:      userID,
		Email:       email,
		Name:        name,
		PhoneNumber: phoneNumber,
	}
}

// Reissue strips the time-bound fields (iat, exp, jti) from verified claims
// and stamps fresh ones with the given ttl. The identity fields carry over
// untouched. Used when minting an access token out of a refresh token.
func (c Claims) Reissue(ttl time.Duration, now time.Time) Claims {
	return NewClaims(c.UserID, c.Email, c.Name, c.PhoneNumber, ttl, now)
}

// NewJTI returns a random identifier for the "jti" claim so two tokens minted
// in the same second still differ.
func NewJTI() string {
	return uuid.NewString()
}
