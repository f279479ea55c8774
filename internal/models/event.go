package models

// EventType distinguishes the three calendar event families.
type EventType string

const (
	EventTypeAvailability EventType = "availability"
	EventTypeBusiness     EventType = "business"
	EventTypeSchedule     EventType = "schedule"
)

// EventInstance is the expansion of an HoursRule onto one concrete date in a
// visible window. It is a read projection: regenerated on every expansion
// pass, never mutated in place, never persisted.
type EventInstance struct {
	// ID is the originating rule id, suffixed with "-YYYY-MM-DD" when the
	// instance is date-derived from a recurring or ranged rule.
	ID         string    `json:"id"`
	RuleID     string    `json:"rule_id"`
	Type       EventType `json:"type"`
	PersonID   *string   `json:"person_id,omitempty"`
	PersonName *string   `json:"person_name,omitempty"`
	RoleID     string    `json:"role_id"`
	RoleName   string    `json:"role_name"`
	Date       Day       `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`

	// Recurrence metadata copied from the rule; needed later to decide drag
	// semantics without refetching.
	IsRecurring  bool `json:"is_recurring"`
	DayOfWeek    *int `json:"day_of_week,omitempty"`
	SpecificDate *Day `json:"specific_date,omitempty"`
	StartDate    *Day `json:"start_date,omitempty"`
	EndDate      *Day `json:"end_date,omitempty"`
}

// LayoutPlacement is the render geometry computed for one event within a day
// column. Transient; recomputed on every query.
type LayoutPlacement struct {
	Event         EventInstance `json:"event"`
	ColumnIndex   int           `json:"column_index"`
	ColumnCount   int           `json:"column_count"`
	TopPercent    float64       `json:"top_percent"`
	HeightPercent float64       `json:"height_percent"`
	LeftPercent   float64       `json:"left_percent"`
	WidthPercent  float64       `json:"width_percent"`
}

// Band is a contiguous slot interval covering merged business-hours
// instances. Bands discard per-event identity; they describe the union of
// covered time only.
type Band struct {
	StartSlot int `json:"start_slot"`
	EndSlot   int `json:"end_slot"`
}
