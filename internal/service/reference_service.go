package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/staffcal/staffcal-api/internal/models"
	appErrors "github.com/staffcal/staffcal-api/pkg/errors"
)

type referenceGateway interface {
	GetPeople(ctx context.Context) ([]models.Person, error)
	GetRoles(ctx context.Context) ([]models.Role, error)
}

// ReferenceService exposes the people and role reference lists the calendar
// filters on.
type ReferenceService struct {
	gateway referenceGateway
	logger  *zap.Logger
}

// NewReferenceService constructs the service.
func NewReferenceService(gw referenceGateway, logger *zap.Logger) *ReferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceService{gateway: gw, logger: logger}
}

// People lists all staff members.
func (s *ReferenceService) People(ctx context.Context) ([]models.Person, error) {
	people, err := s.gateway.GetPeople(ctx)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return people, nil
}

// Roles lists all roles.
func (s *ReferenceService) Roles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.gateway.GetRoles(ctx)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return roles, nil
}
