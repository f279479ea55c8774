package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffcal/staffcal-api/internal/models"
	appErrors "github.com/staffcal/staffcal-api/pkg/errors"
)

func testDay(y int, m time.Month, d int) models.Day {
	return models.Day{Year: y, Month: m, Date: d}
}

func testDayPtr(y int, m time.Month, d int) *models.Day {
	v := testDay(y, m, d)
	return &v
}

func testIntPtr(v int) *int { return &v }

func TestSeededMemoryGatewayReferenceData(t *testing.T) {
	g := NewSeededMemoryGateway()

	people, err := g.GetPeople(context.Background())
	require.NoError(t, err)
	assert.Len(t, people, 3)

	roles, err := g.GetRoles(context.Background())
	require.NoError(t, err)
	assert.Len(t, roles, 3)
}

func TestMemoryGatewayAvailabilityCRUD(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	created, err := g.CreateAvailabilityHours(ctx, "person-1", models.HoursRuleCreate{
		RoleID:      "role-1",
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsRecurring: true,
		DayOfWeek:   testIntPtr(0),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.NotNil(t, created.PersonID)
	assert.Equal(t, "person-1", *created.PersonID)

	listed, err := g.GetAvailabilityHours(ctx, models.HoursFilter{PersonID: "person-1"})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	pinned := testDay(2026, time.September, 4)
	updated, err := g.UpdateAvailabilityHours(ctx, created.ID, models.HoursRuleUpdate{
		StartTime:    "10:00",
		EndTime:      "18:00",
		SpecificDate: &pinned,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "10:00", updated.StartTime)
	assert.False(t, updated.IsRecurring)
	assert.Nil(t, updated.DayOfWeek)

	require.NoError(t, g.DeleteAvailabilityHours(ctx, created.ID))
	err = g.DeleteAvailabilityHours(ctx, created.ID)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMemoryGatewayFiltersByWindow(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	_, err := g.CreateAvailabilityHours(ctx, "person-1", models.HoursRuleCreate{
		RoleID:       "role-1",
		StartTime:    "09:00",
		EndTime:      "12:00",
		SpecificDate: testDayPtr(2026, time.September, 2),
	})
	require.NoError(t, err)
	_, err = g.CreateAvailabilityHours(ctx, "person-1", models.HoursRuleCreate{
		RoleID:       "role-1",
		StartTime:    "09:00",
		EndTime:      "12:00",
		SpecificDate: testDayPtr(2026, time.October, 1),
	})
	require.NoError(t, err)

	inWindow, err := g.GetAvailabilityHours(ctx, models.HoursFilter{
		StartDate: testDayPtr(2026, time.August, 31),
		EndDate:   testDayPtr(2026, time.September, 6),
	})
	require.NoError(t, err)
	require.Len(t, inWindow, 1)
	assert.Equal(t, "2026-09-02", inWindow[0].SpecificDate.String())
}

func TestMemoryGatewayListingOrderIsDeterministic(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	for _, start := range []string{"11:00", "09:00", "10:00"} {
		_, err := g.CreateAvailabilityHours(ctx, "person-1", models.HoursRuleCreate{
			RoleID:      "role-1",
			StartTime:   start,
			EndTime:     "18:00",
			IsRecurring: true,
			DayOfWeek:   testIntPtr(1),
		})
		require.NoError(t, err)
	}

	listed, err := g.GetAvailabilityHours(ctx, models.HoursFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "09:00", listed[0].StartTime)
	assert.Equal(t, "10:00", listed[1].StartTime)
	assert.Equal(t, "11:00", listed[2].StartTime)
}

func TestMemoryGatewayBulkBusinessHours(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	created, err := g.CreateBusinessServiceHoursBulk(ctx, models.BulkHoursCreate{
		RoleID:    "role-1",
		StartTime: "08:00",
		EndTime:   "18:00",
		Days:      "mon-fri",
	})
	require.NoError(t, err)
	require.Len(t, created, 5)

	seen := map[int]bool{}
	for _, rule := range created {
		assert.True(t, rule.IsRecurring)
		require.NotNil(t, rule.DayOfWeek)
		seen[*rule.DayOfWeek] = true
	}
	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true}, seen)

	_, err = g.CreateBusinessServiceHoursBulk(ctx, models.BulkHoursCreate{
		RoleID:    "role-1",
		StartTime: "08:00",
		EndTime:   "18:00",
		Days:      "weekends",
	})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMemoryGatewayScheduleEntries(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	g.AddScheduleEntry(models.ScheduleEntry{
		ID:        "entry-b",
		PersonID:  "person-1",
		RoleID:    "role-1",
		Date:      testDay(2026, time.September, 2),
		StartTime: "13:00",
		EndTime:   "17:00",
	})
	g.AddScheduleEntry(models.ScheduleEntry{
		ID:        "entry-a",
		PersonID:  "person-1",
		RoleID:    "role-1",
		Date:      testDay(2026, time.September, 2),
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	g.AddScheduleEntry(models.ScheduleEntry{
		ID:        "entry-c",
		PersonID:  "person-2",
		RoleID:    "role-2",
		Date:      testDay(2026, time.October, 1),
		StartTime: "09:00",
		EndTime:   "12:00",
	})

	// Window and person narrowing, with the date-then-time listing order.
	entries, err := g.GetScheduleEntries(ctx, models.HoursFilter{
		PersonID:  "person-1",
		StartDate: testDayPtr(2026, time.August, 31),
		EndDate:   testDayPtr(2026, time.September, 6),
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "entry-a", entries[0].ID)
	assert.Equal(t, "entry-b", entries[1].ID)

	all, err := g.GetScheduleEntries(ctx, models.HoursFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRuleInWindow(t *testing.T) {
	start := testDayPtr(2026, time.August, 31)
	end := testDayPtr(2026, time.September, 6)

	specificIn := models.HoursRule{SpecificDate: testDayPtr(2026, time.September, 2)}
	specificOut := models.HoursRule{SpecificDate: testDayPtr(2026, time.September, 10)}
	assert.True(t, RuleInWindow(specificIn, start, end))
	assert.False(t, RuleInWindow(specificOut, start, end))

	unbounded := models.HoursRule{IsRecurring: true, DayOfWeek: testIntPtr(3)}
	assert.True(t, RuleInWindow(unbounded, start, end))

	expired := models.HoursRule{IsRecurring: true, DayOfWeek: testIntPtr(3), EndDate: testDayPtr(2026, time.August, 1)}
	assert.False(t, RuleInWindow(expired, start, end))

	future := models.HoursRule{IsRecurring: true, DayOfWeek: testIntPtr(3), StartDate: testDayPtr(2026, time.October, 1)}
	assert.False(t, RuleInWindow(future, start, end))

	rangeOverlap := models.HoursRule{StartDate: testDayPtr(2026, time.September, 5), EndDate: testDayPtr(2026, time.September, 9)}
	assert.True(t, RuleInWindow(rangeOverlap, start, end))

	rangeBefore := models.HoursRule{StartDate: testDayPtr(2026, time.August, 1), EndDate: testDayPtr(2026, time.August, 15)}
	assert.False(t, RuleInWindow(rangeBefore, start, end))

	malformed := models.HoursRule{}
	assert.False(t, RuleInWindow(malformed, start, end))

	// Nil bounds leave the window open.
	assert.True(t, RuleInWindow(specificOut, nil, nil))
}
