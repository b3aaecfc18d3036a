package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"           // secure random number generation
	"encoding/base64"       // URL-safe encoding for reset tokens
	"time"                  // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT session token along with its
// expiry. The Token field contains the JWT string. Exp stores the
// expiration timestamp. Admin sessions carry the token either in a
// cookie or in the Authorization header.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for an admin user. It
// takes the signing secret, the user ID, the username and a TTL in
// minutes. The JWT includes standard claims: subject (sub), username,
// expiration (exp) and issued at (iat).
func NewAccessToken(secret string, userID uint64, username string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewResetToken returns a cryptographically secure random token for
// the password reset flow. 32 bytes of entropy encoded URL-safe keeps
// the value short enough for the token column while being infeasible
// to guess.
func NewResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
