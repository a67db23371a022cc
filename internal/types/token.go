package types

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims are the access token claims issued by the account service.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username,omitempty"`
}

// Validate is run by the jwt parser after the registered claims checks.
func (c TokenClaims) Validate() error {
	if c.UserID == uuid.Nil {
		return errors.New("token has no user_id")
	}
	return nil
}
