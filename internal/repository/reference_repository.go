package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/staffcal/staffcal-api/internal/models"
)

// PersonRepository reads the people reference list.
type PersonRepository struct {
	db *sqlx.DB
}

// NewPersonRepository constructs a person repository.
func NewPersonRepository(db *sqlx.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// List returns all people ordered by name.
func (r *PersonRepository) List(ctx context.Context) ([]models.Person, error) {
	var people []models.Person
	if err := r.db.SelectContext(ctx, &people, "SELECT id, name, email FROM people ORDER BY name ASC"); err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return people, nil
}

// RoleRepository reads the roles reference list.
type RoleRepository struct {
	db *sqlx.DB
}

// NewRoleRepository constructs a role repository.
func NewRoleRepository(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// List returns all roles ordered by name.
func (r *RoleRepository) List(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.SelectContext(ctx, &roles, "SELECT id, name, description FROM roles ORDER BY name ASC"); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// GetByID fetches one role.
func (r *RoleRepository) GetByID(ctx context.Context, id string) (*models.Role, error) {
	var role models.Role
	if err := r.db.GetContext(ctx, &role, "SELECT id, name, description FROM roles WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &role, nil
}
