package clients

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/craftvine/craftvine-backend/api/validators"
	"github.com/craftvine/craftvine-backend/pkg/db/models"
	pkgerrors "github.com/craftvine/craftvine-backend/pkg/errors"
	"github.com/craftvine/craftvine-backend/pkg/pagination"
)

// UpdateClientInput carries partial admin updates; nil fields are left untouched.
// Email and password changes go through the auth flows, not here.
type UpdateClientInput struct {
	FirstName *string
	LastName  *string
	IsActive  *bool
}

// Service exposes admin operations over buyer accounts. Registration lives in
// the auth package.
type Service interface {
	UpdateClient(ctx context.Context, id uint64, input UpdateClientInput) (*models.Client, error)
	DeleteClient(ctx context.Context, id uint64) error
	GetClient(ctx context.Context, id uint64) (*models.Client, error)
	ListClients(ctx context.Context, params pagination.Params) ([]models.Client, string, error)
}

type service struct {
	repo ClientRepository
}

// NewService builds a client admin service.
func NewService(repo ClientRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("client repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) UpdateClient(ctx context.Context, id uint64, input UpdateClientInput) (*models.Client, error) {
	if id == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client id is required")
	}

	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}

	if input.FirstName != nil {
		name := validators.SanitizeString(*input.FirstName, 80)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name cannot be empty")
		}
		client.FirstName = name
	}
	if input.LastName != nil {
		name := validators.SanitizeString(*input.LastName, 80)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "last name cannot be empty")
		}
		client.LastName = name
	}
	if input.IsActive != nil {
		client.IsActive = *input.IsActive
	}

	updated, err := s.repo.Update(ctx, client)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update client")
	}
	return updated, nil
}

func (s *service) DeleteClient(ctx context.Context, id uint64) error {
	if id == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "client id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete client")
	}
	return nil
}

func (s *service) GetClient(ctx context.Context, id uint64) (*models.Client, error) {
	if id == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client id is required")
	}
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}
	return client, nil
}

func (s *service) ListClients(ctx context.Context, params pagination.Params) ([]models.Client, string, error) {
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list clients")
	}
	return rows, next, nil
}
