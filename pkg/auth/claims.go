package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID      uuid.UUID
	UserType    enums.UserType
	AccountID   *uuid.UUID
	PublisherID *uuid.UUID
	JTI         string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID      uuid.UUID      `json:"user_id"`
	UserType    enums.UserType `json:"user_type"`
	AccountID   *uuid.UUID     `json:"account_id,omitempty"`
	PublisherID *uuid.UUID     `json:"publisher_id,omitempty"`
	jwt.RegisteredClaims
}
