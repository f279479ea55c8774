// Package calendar implements the event computation core: recurrence
// expansion, overlap-aware column layout, backdrop band merging and
// drag-reposition resolution. Everything here is a pure function of its
// inputs; services own fetching, caching and persistence.
package calendar

import (
	"regexp"

	"github.com/staffcal/staffcal-api/internal/models"
)

// instanceIDSuffix anchors the trailing date suffix of a composite instance
// id. Rule ids are UUIDs and contain dashes themselves, so decomposition must
// match this suffix pattern and never split on dash positions.
var instanceIDSuffix = regexp.MustCompile(`-(\d{4}-\d{2}-\d{2})$`)

// InstanceID derives the id of a date-derived instance of a rule.
func InstanceID(ruleID string, day models.Day) string {
	return ruleID + "-" + day.String()
}

// SplitInstanceID decomposes an event id back to its originating rule id.
// When the id carries a trailing "-YYYY-MM-DD" suffix naming a real calendar
// day, the suffix is stripped and the day returned; otherwise the id is the
// rule id itself.
func SplitInstanceID(eventID string) (ruleID string, day *models.Day) {
	m := instanceIDSuffix.FindStringSubmatchIndex(eventID)
	if m == nil {
		return eventID, nil
	}
	parsed, err := models.ParseDay(eventID[m[2]:m[3]])
	if err != nil {
		return eventID, nil
	}
	return eventID[:m[0]], &parsed
}

// Expand turns one rule into its concrete event instances within the
// inclusive [windowStart, windowEnd] date window. A rule with no recognized
// recurrence shape expands to nothing; that is not an error.
//
// Weekly rules are evaluated over the window widened to full Monday-first
// weeks, so a week view always shows every occurrence of its visible days.
func Expand(rule models.HoursRule, eventType models.EventType, windowStart, windowEnd models.Day) []models.EventInstance {
	switch rule.Shape() {
	case models.RuleShapeSpecificDate:
		d := *rule.SpecificDate
		if d.Before(windowStart) || d.After(windowEnd) {
			return nil
		}
		return []models.EventInstance{newInstance(rule, eventType, rule.ID, d)}

	case models.RuleShapeWeekly:
		var out []models.EventInstance
		for d := windowStart.WeekStart(); !d.After(windowEnd.WeekEnd()); d = d.AddDays(1) {
			if d.Weekday() != *rule.DayOfWeek {
				continue
			}
			if rule.StartDate != nil && d.Before(*rule.StartDate) {
				continue
			}
			if rule.EndDate != nil && d.After(*rule.EndDate) {
				continue
			}
			out = append(out, newInstance(rule, eventType, InstanceID(rule.ID, d), d))
		}
		return out

	case models.RuleShapeDateRange:
		start := *rule.StartDate
		end := *rule.EndDate
		if start.Before(windowStart) {
			start = windowStart
		}
		if end.After(windowEnd) {
			end = windowEnd
		}
		var out []models.EventInstance
		for d := start; !d.After(end); d = d.AddDays(1) {
			out = append(out, newInstance(rule, eventType, InstanceID(rule.ID, d), d))
		}
		return out

	default:
		return nil
	}
}

// ExpandAll expands a rule list in order. Output order is deterministic for a
// fixed input order.
func ExpandAll(rules []models.HoursRule, eventType models.EventType, windowStart, windowEnd models.Day) []models.EventInstance {
	var out []models.EventInstance
	for _, rule := range rules {
		out = append(out, Expand(rule, eventType, windowStart, windowEnd)...)
	}
	return out
}

func newInstance(rule models.HoursRule, eventType models.EventType, id string, date models.Day) models.EventInstance {
	return models.EventInstance{
		ID:           id,
		RuleID:       rule.ID,
		Type:         eventType,
		PersonID:     rule.PersonID,
		RoleID:       rule.RoleID,
		Date:         date,
		StartTime:    rule.StartTime,
		EndTime:      rule.EndTime,
		IsRecurring:  rule.IsRecurring,
		DayOfWeek:    rule.DayOfWeek,
		SpecificDate: rule.SpecificDate,
		StartDate:    rule.StartDate,
		EndDate:      rule.EndDate,
	}
}
