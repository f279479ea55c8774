package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/staffcal/staffcal-api/internal/models"
)

// ScheduleRepository reads roster entries written by the rostering engine.
// Entries are date-concrete, so the window filter is plain containment
// rather than the recurrence-aware predicate the rule tables need.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleColumns = `id, schedule_id, person_id, role_id, date, start_time, end_time, created_at`

// List returns roster entries matching the filter.
func (r *ScheduleRepository) List(ctx context.Context, filter models.HoursFilter) ([]models.ScheduleEntry, error) {
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
		where = append(where, fmt.Sprintf("date BETWEEN $%d AND $%d", len(args)+1, len(args)+2))
		args = append(args, *filter.StartDate, *filter.EndDate)
	}

	query := fmt.Sprintf(`SELECT %s FROM schedule_entries WHERE %s ORDER BY date ASC, start_time ASC, id ASC`,
		scheduleColumns, strings.Join(where, " AND "))
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list schedule entries: %w", err)
	}
	return entries, nil
}
