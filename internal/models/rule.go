package models

import "time"

// RuleShape identifies which of the three mutually exclusive recurrence
// shapes a rule carries.
type RuleShape string

const (
	// RuleShapeSpecificDate is a single occurrence on one calendar date.
	RuleShapeSpecificDate RuleShape = "specific_date"
	// RuleShapeWeekly repeats on one weekday, optionally bounded by dates.
	RuleShapeWeekly RuleShape = "weekly"
	// RuleShapeDateRange is one occurrence per day of an inclusive range.
	RuleShapeDateRange RuleShape = "date_range"
	// RuleShapeNone marks a malformed rule; it expands to nothing.
	RuleShapeNone RuleShape = "none"
)

// HoursRule is a persisted availability or business-service-hours record.
// The calendar core treats rules as immutable inputs per expansion pass and
// only produces new rule values on edits and drags.
type HoursRule struct {
	ID           string    `db:"id" json:"id"`
	PersonID     *string   `db:"person_id" json:"person_id,omitempty"`
	RoleID       string    `db:"role_id" json:"role_id"`
	DayOfWeek    *int      `db:"day_of_week" json:"day_of_week"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	StartDate    *Day      `db:"start_date" json:"start_date"`
	EndDate      *Day      `db:"end_date" json:"end_date"`
	IsRecurring  bool      `db:"is_recurring" json:"is_recurring"`
	SpecificDate *Day      `db:"specific_date" json:"specific_date"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Shape classifies the rule into one of the three recognized recurrence
// shapes, or RuleShapeNone when no shape matches.
func (r HoursRule) Shape() RuleShape {
	switch {
	case r.SpecificDate != nil:
		return RuleShapeSpecificDate
	case r.IsRecurring && r.DayOfWeek != nil:
		return RuleShapeWeekly
	case !r.IsRecurring && r.StartDate != nil && r.EndDate != nil:
		return RuleShapeDateRange
	default:
		return RuleShapeNone
	}
}

// HoursRuleCreate is the payload for creating a rule.
type HoursRuleCreate struct {
	RoleID       string `json:"role_id" validate:"required"`
	DayOfWeek    *int   `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	StartTime    string `json:"start_time" validate:"required"`
	EndTime      string `json:"end_time" validate:"required"`
	StartDate    *Day   `json:"start_date"`
	EndDate      *Day   `json:"end_date"`
	IsRecurring  bool   `json:"is_recurring"`
	SpecificDate *Day   `json:"specific_date"`
}

// HoursRuleUpdate carries the replacement recurrence fields for an existing
// rule. A drag move always produces one of these.
type HoursRuleUpdate struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	DayOfWeek    *int   `json:"day_of_week"`
	StartDate    *Day   `json:"start_date"`
	EndDate      *Day   `json:"end_date"`
	IsRecurring  bool   `json:"is_recurring"`
	SpecificDate *Day   `json:"specific_date"`
}

// Apply copies the update onto a rule, returning the updated value.
func (u HoursRuleUpdate) Apply(rule HoursRule) HoursRule {
	rule.StartTime = u.StartTime
	rule.EndTime = u.EndTime
	rule.DayOfWeek = u.DayOfWeek
	rule.StartDate = u.StartDate
	rule.EndDate = u.EndDate
	rule.IsRecurring = u.IsRecurring
	rule.SpecificDate = u.SpecificDate
	return rule
}

// HoursFilter narrows rule listings.
type HoursFilter struct {
	RoleID    string
	PersonID  string
	StartDate *Day
	EndDate   *Day
}

// ParseDaySet resolves the bulk-create weekday shorthand into day-of-week
// values (0=Monday .. 6=Sunday). Unknown shorthands yield nil.
func ParseDaySet(days string) []int {
	switch days {
	case "mon-fri":
		return []int{0, 1, 2, 3, 4}
	case "mon-sat":
		return []int{0, 1, 2, 3, 4, 5}
	case "all":
		return []int{0, 1, 2, 3, 4, 5, 6}
	default:
		return nil
	}
}

// BulkHoursCreate expands a weekday-set shorthand into one weekly rule per
// matching day of week.
type BulkHoursCreate struct {
	RoleID    string `json:"role_id" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Days      string `json:"days" validate:"required,oneof=mon-fri mon-sat all"`
	StartDate *Day   `json:"start_date"`
	EndDate   *Day   `json:"end_date"`
}

// Person is a staff member availability rules attach to.
type Person struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

// Role is a business function rules are scoped to.
type Role struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
}
