package calendar

import "github.com/staffcal/staffcal-api/internal/models"

// ProjectSchedule turns roster entries into schedule-typed event instances.
// Entries are date-concrete already, so the instance id is the entry id and
// the recurrence metadata pins to the entry's date; a pinned instance drags
// like any other single-date event.
func ProjectSchedule(entries []models.ScheduleEntry) []models.EventInstance {
	out := make([]models.EventInstance, 0, len(entries))
	for _, entry := range entries {
		personID := entry.PersonID
		date := entry.Date
		out = append(out, models.EventInstance{
			ID:           entry.ID,
			RuleID:       entry.ID,
			Type:         models.EventTypeSchedule,
			PersonID:     &personID,
			RoleID:       entry.RoleID,
			Date:         entry.Date,
			StartTime:    entry.StartTime,
			EndTime:      entry.EndTime,
			IsRecurring:  false,
			SpecificDate: &date,
		})
	}
	return out
}
