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

// AvailabilityRepository persists person-level availability rules.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs an availability repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

const availabilityColumns = `id, person_id, role_id, day_of_week, start_time, end_time, start_date, end_date, is_recurring, specific_date, created_at, updated_at`

// List returns availability rules matching the filter. The window predicate
// keeps any rule that could produce an instance inside [start_date, end_date]:
// specific dates by containment, ranges by interval intersection, recurring
// rules by their optional bounds.
func (r *AvailabilityRepository) List(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.RoleID != "" {
		where = append(where, fmt.Sprintf("role_id = $%d", len(args)+1))
		args = append(args, filter.RoleID)
	}
	if filter.PersonID != "" {
		where = append(where, fmt.Sprintf("person_id = $%d", len(args)+1))
		args = append(args, filter.PersonID)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		where = append(where, windowPredicate(len(args)+1, len(args)+2))
		args = append(args, *filter.StartDate, *filter.EndDate)
	}

	query := fmt.Sprintf(`SELECT %s FROM availability_hours WHERE %s ORDER BY start_time ASC, id ASC`,
		availabilityColumns, strings.Join(where, " AND "))
	var rules []models.HoursRule
	if err := r.db.SelectContext(ctx, &rules, query, args...); err != nil {
		return nil, fmt.Errorf("list availability hours: %w", err)
	}
	return rules, nil
}

// GetByID fetches one rule.
func (r *AvailabilityRepository) GetByID(ctx context.Context, id string) (*models.HoursRule, error) {
	query := fmt.Sprintf(`SELECT %s FROM availability_hours WHERE id = $1`, availabilityColumns)
	var rule models.HoursRule
	if err := r.db.GetContext(ctx, &rule, query, id); err != nil {
		return nil, err
	}
	return &rule, nil
}

// Create inserts a rule.
func (r *AvailabilityRepository) Create(ctx context.Context, rule *models.HoursRule) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	rule.UpdatedAt = now
	query := `INSERT INTO availability_hours (id, person_id, role_id, day_of_week, start_time, end_time, start_date, end_date, is_recurring, specific_date, created_at, updated_at)
VALUES (:id, :person_id, :role_id, :day_of_week, :start_time, :end_time, :start_date, :end_date, :is_recurring, :specific_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rule); err != nil {
		return fmt.Errorf("create availability hours: %w", err)
	}
	return nil
}

// Update replaces the recurrence fields of a rule.
func (r *AvailabilityRepository) Update(ctx context.Context, rule *models.HoursRule) error {
	rule.UpdatedAt = time.Now().UTC()
	query := `UPDATE availability_hours SET day_of_week = :day_of_week, start_time = :start_time, end_time = :end_time,
start_date = :start_date, end_date = :end_date, is_recurring = :is_recurring, specific_date = :specific_date, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, rule); err != nil {
		return fmt.Errorf("update availability hours: %w", err)
	}
	return nil
}

// Delete removes a rule. Deleting an unknown id returns sql.ErrNoRows so the
// gateway can surface it the same way a failed lookup does.
func (r *AvailabilityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM availability_hours WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete availability hours: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete availability hours: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// windowPredicate renders the shared rule-vs-window SQL clause with start and
// end bound at the given argument positions.
func windowPredicate(startArg, endArg int) string {
	return fmt.Sprintf(`(
(specific_date IS NOT NULL AND specific_date BETWEEN $%[1]d AND $%[2]d)
OR (is_recurring AND day_of_week IS NOT NULL AND (start_date IS NULL OR start_date <= $%[2]d) AND (end_date IS NULL OR end_date >= $%[1]d))
OR (NOT is_recurring AND specific_date IS NULL AND start_date IS NOT NULL AND end_date IS NOT NULL AND start_date <= $%[2]d AND end_date >= $%[1]d)
)`, startArg, endArg)
}
