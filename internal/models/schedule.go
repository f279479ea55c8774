package models

import "time"

// ScheduleEntry is one concrete roster assignment: a person working a role on
// a specific date. Entries come out of the rostering engine already expanded,
// so the calendar never recurs over them; it projects each one straight into
// a schedule event on its date.
type ScheduleEntry struct {
	ID         string    `db:"id" json:"id"`
	ScheduleID string    `db:"schedule_id" json:"schedule_id"`
	PersonID   string    `db:"person_id" json:"person_id"`
	RoleID     string    `db:"role_id" json:"role_id"`
	Date       Day       `db:"date" json:"date"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
