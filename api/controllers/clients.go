package controllers

import (
	"net/http"
	"time"

	"github.com/craftvine/craftvine-backend/api/responses"
	"github.com/craftvine/craftvine-backend/api/validators"
	clientsvc "github.com/craftvine/craftvine-backend/internal/clients"
	"github.com/craftvine/craftvine-backend/pkg/db/models"
	"github.com/craftvine/craftvine-backend/pkg/logger"
	"github.com/craftvine/craftvine-backend/pkg/pagination"
)

type clientUpdatePayload struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// ClientUpdate lets an admin edit a buyer account.
func ClientUpdate(svc clientsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "clientID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body clientUpdatePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		client, err := svc.UpdateClient(r.Context(), id, clientsvc.UpdateClientInput{
			FirstName: body.FirstName,
			LastName:  body.LastName,
			IsActive:  body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newClientResponse(client))
	}
}

// ClientDelete removes a buyer account.
func ClientDelete(svc clientsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "clientID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteClient(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ClientGet returns one buyer account.
func ClientGet(svc clientsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "clientID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		client, err := svc.GetClient(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newClientResponse(client))
	}
}

// ClientList returns a keyset-paginated account listing.
func ClientList(svc clientsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		clients, nextCursor, err := svc.ListClients(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]clientResponse, 0, len(clients))
		for i := range clients {
			items = append(items, newClientResponse(&clients[i]))
		}
		responses.WriteSuccess(w, listResponse[clientResponse]{Items: items, NextCursor: nextCursor})
	}
}

type clientResponse struct {
	ID          uint64     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func newClientResponse(client *models.Client) clientResponse {
	return clientResponse{
		ID:          client.ID,
		Email:       client.Email,
		FirstName:   client.FirstName,
		LastName:    client.LastName,
		Role:        client.Role.String(),
		IsActive:    client.IsActive,
		LastLoginAt: client.LastLoginAt,
		CreatedAt:   client.CreatedAt,
		UpdatedAt:   client.UpdatedAt,
	}
}
