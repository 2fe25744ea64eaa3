package auth

import (
	"github.com/craftvine/craftvine-backend/pkg/db/models"
	"github.com/craftvine/craftvine-backend/pkg/enums"
)

// RegisterRequest contains the payload for creating a buyer account.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// LoginRequest contains the credentials for an existing account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ClientSummary is the account shape returned alongside tokens.
type ClientSummary struct {
	ID        uint64     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      enums.Role `json:"role"`
}

// AuthResponse carries the minted access token and the account it belongs to.
type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	Client      ClientSummary `json:"client"`
}

func summaryFromModel(client *models.Client) ClientSummary {
	return ClientSummary{
		ID:        client.ID,
		Email:     client.Email,
		FirstName: client.FirstName,
		LastName:  client.LastName,
		Role:      client.Role,
	}
}
