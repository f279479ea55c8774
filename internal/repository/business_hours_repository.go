package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/staffcal/staffcal-api/internal/models"
)

// BusinessHoursRepository persists role-level business service hours.
type BusinessHoursRepository struct {
	db *sqlx.DB
}

// NewBusinessHoursRepository constructs a business-hours repository.
func NewBusinessHoursRepository(db *sqlx.DB) *BusinessHoursRepository {
	return &BusinessHoursRepository{db: db}
}

const businessHoursColumns = `id, role_id, day_of_week, start_time, end_time, start_date, end_date, is_recurring, specific_date, created_at, updated_at`

// List returns business-hours rules matching the filter, using the same
// window predicate as availability listings.
func (r *BusinessHoursRepository) List(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.RoleID != "" {
		where = append(where, fmt.Sprintf("role_id = $%d", len(args)+1))
		args = append(args, filter.RoleID)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		where = append(where, windowPredicate(len(args)+1, len(args)+2))
		args = append(args, *filter.StartDate, *filter.EndDate)
	}

	query := fmt.Sprintf(`SELECT %s FROM business_service_hours WHERE %s ORDER BY start_time ASC, id ASC`,
		businessHoursColumns, strings.Join(where, " AND "))
	var rules []models.HoursRule
	if err := r.db.SelectContext(ctx, &rules, query, args...); err != nil {
		return nil, fmt.Errorf("list business service hours: %w", err)
	}
	return rules, nil
}

// GetByID fetches one rule.
func (r *BusinessHoursRepository) GetByID(ctx context.Context, id string) (*models.HoursRule, error) {
	query := fmt.Sprintf(`SELECT %s FROM business_service_hours WHERE id = $1`, businessHoursColumns)
	var rule models.HoursRule
	if err := r.db.GetContext(ctx, &rule, query, id); err != nil {
		return nil, err
	}
	return &rule, nil
}

// Create inserts a rule.
func (r *BusinessHoursRepository) Create(ctx context.Context, rule *models.HoursRule) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	rule.UpdatedAt = now
	query := `INSERT INTO business_service_hours (id, role_id, day_of_week, start_time, end_time, start_date, end_date, is_recurring, specific_date, created_at, updated_at)
VALUES (:id, :role_id, :day_of_week, :start_time, :end_time, :start_date, :end_date, :is_recurring, :specific_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rule); err != nil {
		return fmt.Errorf("create business service hours: %w", err)
	}
	return nil
}

// Update replaces the recurrence fields of a rule.
func (r *BusinessHoursRepository) Update(ctx context.Context, rule *models.HoursRule) error {
	rule.UpdatedAt = time.Now().UTC()
	query := `UPDATE business_service_hours SET day_of_week = :day_of_week, start_time = :start_time, end_time = :end_time,
start_date = :start_date, end_date = :end_date, is_recurring = :is_recurring, specific_date = :specific_date, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, rule); err != nil {
		return fmt.Errorf("update business service hours: %w", err)
	}
	return nil
}

// Delete removes a rule. Deleting an unknown id returns sql.ErrNoRows so the
// gateway can surface it the same way a failed lookup does.
func (r *BusinessHoursRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM business_service_hours WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete business service hours: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete business service hours: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
