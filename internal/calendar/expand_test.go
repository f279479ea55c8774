package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffcal/staffcal-api/internal/models"
)

func day(y int, m time.Month, d int) models.Day {
	return models.Day{Year: y, Month: m, Date: d}
}

func dayPtr(y int, m time.Month, d int) *models.Day {
	v := day(y, m, d)
	return &v
}

func intPtr(v int) *int { return &v }

const ruleUUID = "e2b7c7a0-4f3d-4f6e-9c1a-2b8d5e6f7a89"

func TestInstanceIDSplitWithUUIDRuleID(t *testing.T) {
	id := InstanceID(ruleUUID, day(2026, time.September, 2))
	assert.Equal(t, ruleUUID+"-2026-09-02", id)

	ruleID, date := SplitInstanceID(id)
	require.NotNil(t, date)
	assert.Equal(t, ruleUUID, ruleID)
	assert.Equal(t, "2026-09-02", date.String())
}

func TestSplitInstanceIDWithoutSuffix(t *testing.T) {
	ruleID, date := SplitInstanceID(ruleUUID)
	assert.Equal(t, ruleUUID, ruleID)
	assert.Nil(t, date)
}

func TestSplitInstanceIDRejectsImpossibleDateSuffix(t *testing.T) {
	// Looks like a date suffix but names no calendar day; the whole string
	// is the rule id.
	ruleID, date := SplitInstanceID("rule-2026-13-40")
	assert.Equal(t, "rule-2026-13-40", ruleID)
	assert.Nil(t, date)
}

func TestExpandSpecificDateInsideWindow(t *testing.T) {
	rule := models.HoursRule{
		ID:           "rule-1",
		RoleID:       "role-1",
		StartTime:    "09:00",
		EndTime:      "12:00",
		SpecificDate: dayPtr(2026, time.September, 2),
	}
	out := Expand(rule, models.EventTypeAvailability, day(2026, time.August, 31), day(2026, time.September, 6))
	require.Len(t, out, 1)
	// A specific-date instance keeps the bare rule id.
	assert.Equal(t, "rule-1", out[0].ID)
	assert.Equal(t, "rule-1", out[0].RuleID)
	assert.Equal(t, "2026-09-02", out[0].Date.String())
	assert.Equal(t, models.EventTypeAvailability, out[0].Type)
}

func TestExpandSpecificDateOutsideWindow(t *testing.T) {
	rule := models.HoursRule{
		ID:           "rule-1",
		StartTime:    "09:00",
		EndTime:      "12:00",
		SpecificDate: dayPtr(2026, time.September, 10),
	}
	out := Expand(rule, models.EventTypeAvailability, day(2026, time.August, 31), day(2026, time.September, 6))
	assert.Empty(t, out)
}

func TestExpandWeeklyHitsEveryMatchingDay(t *testing.T) {
	// Wednesday rule over a two-week window starting on a Monday.
	rule := models.HoursRule{
		ID:          ruleUUID,
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsRecurring: true,
		DayOfWeek:   intPtr(2),
	}
	out := Expand(rule, models.EventTypeAvailability, day(2026, time.August, 31), day(2026, time.September, 13))
	require.Len(t, out, 2)
	assert.Equal(t, "2026-09-02", out[0].Date.String())
	assert.Equal(t, "2026-09-09", out[1].Date.String())
	assert.Equal(t, ruleUUID+"-2026-09-02", out[0].ID)
	assert.Equal(t, ruleUUID, out[0].RuleID)
}

func TestExpandWeeklyWidensPartialWindowToFullWeek(t *testing.T) {
	// Window starts Thursday, but the Wednesday occurrence of that week is
	// still produced because weeks are evaluated Monday-first in full.
	rule := models.HoursRule{
		ID:          "rule-w",
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsRecurring: true,
		DayOfWeek:   intPtr(2),
	}
	out := Expand(rule, models.EventTypeAvailability, day(2026, time.September, 3), day(2026, time.September, 6))
	require.Len(t, out, 1)
	assert.Equal(t, "2026-09-02", out[0].Date.String())
}

func TestExpandWeeklyHonorsOptionalBounds(t *testing.T) {
	rule := models.HoursRule{
		ID:          "rule-b",
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsRecurring: true,
		DayOfWeek:   intPtr(0),
		StartDate:   dayPtr(2026, time.September, 7),
		EndDate:     dayPtr(2026, time.September, 7),
	}
	out := Expand(rule, models.EventTypeAvailability, day(2026, time.August, 31), day(2026, time.September, 20))
	require.Len(t, out, 1)
	assert.Equal(t, "2026-09-07", out[0].Date.String())
}

func TestExpandDateRangeClippedToWindow(t *testing.T) {
	rule := models.HoursRule{
		ID:        "rule-r",
		StartTime: "09:00",
		EndTime:   "12:00",
		StartDate: dayPtr(2026, time.August, 28),
		EndDate:   dayPtr(2026, time.September, 2),
	}
	out := Expand(rule, models.EventTypeBusiness, day(2026, time.August, 31), day(2026, time.September, 6))
	require.Len(t, out, 3)
	assert.Equal(t, "2026-08-31", out[0].Date.String())
	assert.Equal(t, "2026-09-01", out[1].Date.String())
	assert.Equal(t, "2026-09-02", out[2].Date.String())
	assert.Equal(t, "rule-r-2026-08-31", out[0].ID)
}

func TestExpandMalformedRuleYieldsNothing(t *testing.T) {
	out := Expand(models.HoursRule{ID: "rule-x", StartTime: "09:00", EndTime: "12:00"},
		models.EventTypeAvailability, day(2026, time.August, 31), day(2026, time.September, 6))
	assert.Empty(t, out)
}

func TestExpandIsIdempotent(t *testing.T) {
	rule := models.HoursRule{
		ID:          "rule-i",
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsRecurring: true,
		DayOfWeek:   intPtr(4),
	}
	first := Expand(rule, models.EventTypeAvailability, day(2026, time.August, 31), day(2026, time.September, 6))
	second := Expand(rule, models.EventTypeAvailability, day(2026, time.August, 31), day(2026, time.September, 6))
	assert.Equal(t, first, second)
}

func TestExpandAllPreservesRuleOrder(t *testing.T) {
	rules := []models.HoursRule{
		{ID: "a", StartTime: "09:00", EndTime: "10:00", SpecificDate: dayPtr(2026, time.September, 1)},
		{ID: "b", StartTime: "08:00", EndTime: "09:00", SpecificDate: dayPtr(2026, time.September, 1)},
	}
	out := ExpandAll(rules, models.EventTypeAvailability, day(2026, time.August, 31), day(2026, time.September, 6))
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
}
