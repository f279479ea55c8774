package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffcal/staffcal-api/internal/models"
	appErrors "github.com/staffcal/staffcal-api/pkg/errors"
)

type stubAvailabilityGateway struct {
	rules   []models.HoursRule
	listErr error

	created       *models.HoursRuleCreate
	updatedRuleID string
	updatedFields models.HoursRuleUpdate
	updateResult  *models.HoursRule
	deletedRuleID string
}

func (g *stubAvailabilityGateway) GetAvailabilityHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error) {
	return g.rules, g.listErr
}

func (g *stubAvailabilityGateway) CreateAvailabilityHours(ctx context.Context, personID string, create models.HoursRuleCreate) (*models.HoursRule, error) {
	g.created = &create
	return &models.HoursRule{ID: "rule-new", PersonID: &personID, RoleID: create.RoleID}, nil
}

func (g *stubAvailabilityGateway) UpdateAvailabilityHours(ctx context.Context, ruleID string, update models.HoursRuleUpdate, personID *string) (*models.HoursRule, error) {
	g.updatedRuleID = ruleID
	g.updatedFields = update
	if g.updateResult != nil {
		return g.updateResult, nil
	}
	rule := update.Apply(models.HoursRule{ID: ruleID})
	return &rule, nil
}

func (g *stubAvailabilityGateway) DeleteAvailabilityHours(ctx context.Context, ruleID string) error {
	g.deletedRuleID = ruleID
	return nil
}

type stubInvalidator struct {
	prefixes []string
}

func (c *stubInvalidator) InvalidatePrefix(ctx context.Context, prefix string) error {
	c.prefixes = append(c.prefixes, prefix)
	return nil
}

func TestAvailabilityCreateRejectsShapelessRule(t *testing.T) {
	gw := &stubAvailabilityGateway{}
	svc := NewAvailabilityService(gw, nil, nil, nil)

	// No specific date, no recurring weekday, no date range: the rule would
	// never expand to anything, so the create is refused.
	_, err := svc.Create(context.Background(), "person-1", models.HoursRuleCreate{
		RoleID:    "role-1",
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, gw.created)
}

func TestAvailabilityCreateInvalidatesWindows(t *testing.T) {
	gw := &stubAvailabilityGateway{}
	cache := &stubInvalidator{}
	svc := NewAvailabilityService(gw, cache, nil, nil)

	rule, err := svc.Create(context.Background(), "person-1", models.HoursRuleCreate{
		RoleID:      "role-1",
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsRecurring: true,
		DayOfWeek:   intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, "rule-new", rule.ID)
	require.Len(t, cache.prefixes, 1)
	assert.Equal(t, "calendar:window:", cache.prefixes[0])
}

func TestMoveEventPinsOccurrenceToDropDate(t *testing.T) {
	gw := &stubAvailabilityGateway{
		rules: []models.HoursRule{{
			ID:          "rule-1",
			PersonID:    strPtr("person-1"),
			RoleID:      "role-1",
			StartTime:   "09:00",
			EndTime:     "10:30",
			IsRecurring: true,
			DayOfWeek:   intPtr(2),
		}},
	}
	cache := &stubInvalidator{}
	svc := NewAvailabilityService(gw, cache, nil, nil)

	moved, err := svc.MoveEvent(context.Background(), MoveEventRequest{
		EventID:    "rule-1-2026-09-02",
		PersonID:   "person-1",
		DropDate:   day(2026, time.September, 4),
		DropHour:   14,
		DropMinute: 15,
	})
	require.NoError(t, err)
	require.NotNil(t, moved)

	assert.Equal(t, "rule-1", gw.updatedRuleID)
	assert.Equal(t, "14:00", gw.updatedFields.StartTime)
	assert.Equal(t, "15:30", gw.updatedFields.EndTime)
	assert.False(t, gw.updatedFields.IsRecurring)
	assert.Nil(t, gw.updatedFields.DayOfWeek)
	require.NotNil(t, gw.updatedFields.SpecificDate)
	assert.Equal(t, "2026-09-04", gw.updatedFields.SpecificDate.String())
	assert.Len(t, cache.prefixes, 1)
}

func TestMoveEventRejectsConcurrentMove(t *testing.T) {
	gw := &stubAvailabilityGateway{}
	svc := NewAvailabilityService(gw, nil, nil, nil)
	require.True(t, svc.acquire("rule-1"))

	_, err := svc.MoveEvent(context.Background(), MoveEventRequest{
		EventID:    "rule-1-2026-09-02",
		PersonID:   "person-1",
		DropDate:   day(2026, time.September, 4),
		DropHour:   14,
		DropMinute: 0,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	// Once released, the same move goes through again.
	svc.release("rule-1")
	assert.True(t, svc.acquire("rule-1"))
}

func TestMoveEventUnknownRule(t *testing.T) {
	gw := &stubAvailabilityGateway{}
	svc := NewAvailabilityService(gw, nil, nil, nil)

	_, err := svc.MoveEvent(context.Background(), MoveEventRequest{
		EventID:    "rule-1-2026-09-02",
		PersonID:   "person-1",
		DropDate:   day(2026, time.September, 4),
		DropHour:   14,
		DropMinute: 0,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMoveEventRejectsDropPastMidnight(t *testing.T) {
	gw := &stubAvailabilityGateway{
		rules: []models.HoursRule{{
			ID:          "rule-1",
			PersonID:    strPtr("person-1"),
			RoleID:      "role-1",
			StartTime:   "09:00",
			EndTime:     "10:30",
			IsRecurring: true,
			DayOfWeek:   intPtr(2),
		}},
	}
	svc := NewAvailabilityService(gw, nil, nil, nil)

	_, err := svc.MoveEvent(context.Background(), MoveEventRequest{
		EventID:    "rule-1-2026-09-02",
		PersonID:   "person-1",
		DropDate:   day(2026, time.September, 4),
		DropHour:   23,
		DropMinute: 15,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, gw.updatedRuleID)
}

func TestMoveEventValidatesPayload(t *testing.T) {
	svc := NewAvailabilityService(&stubAvailabilityGateway{}, nil, nil, nil)

	_, err := svc.MoveEvent(context.Background(), MoveEventRequest{
		EventID:  "rule-1-2026-09-02",
		DropDate: day(2026, time.September, 4),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
