// Package identity verifies bearer tokens issued by the identity provider and
// projects their claims onto model.Identity.
package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/promptstudio/promptstudio-go/internal/model"
)

// Audience is the audience the identity provider stamps on user access tokens.
const Audience = "authenticated"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingSub   = errors.New("token has no subject")
)

// UserMetadata mirrors the provider's free-form profile claims.
type UserMetadata struct {
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Claims represents an access token issued by the identity provider.
type Claims struct {
	jwt.RegisteredClaims
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// Identity projects the claims onto the application's read-only user view.
// The display name falls back to the email address.
func (c *Claims) Identity() model.Identity {
	name := c.UserMetadata.FullName
	if name == "" {
		name = c.Email
	}
	return model.Identity{
		ID:          c.Subject,
		Email:       c.Email,
		DisplayName: name,
		AvatarURL:   c.UserMetadata.AvatarURL,
	}
}

// GenerateToken signs a token for the given identity. The server only verifies
// tokens; this exists for local development and tests.
func GenerateToken(id model.Identity, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			Audience:  jwt.ClaimStrings{Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: id.Email,
		UserMetadata: UserMetadata{
			FullName:  id.DisplayName,
			AvatarURL: id.AvatarURL,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and verifies an HMAC signed token, returning its claims.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithAudience(Audience), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSub
	}

	return claims, nil
}

// SubjectUnverified reads the subject of a token without checking its
// signature. Clients use it to learn which identity their token belongs to;
// it must never be used to authorise anything.
func SubjectUnverified(tokenString string) (string, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrMissingSub
	}
	return claims.Subject, nil
}
