package auth

import (
	"github.com/craftvine/craftvine-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	ClientID uint64
	Role     enums.Role
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	ClientID uint64     `json:"client_id"`
	Role     enums.Role `json:"role"`
	jwt.RegisteredClaims
}
