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

type stubBusinessGateway struct {
	rules []models.HoursRule

	bulkReq       *models.BulkHoursCreate
	updatedRuleID string
	updatedFields models.HoursRuleUpdate
}

func (g *stubBusinessGateway) GetBusinessServiceHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error) {
	return g.rules, nil
}

func (g *stubBusinessGateway) CreateBusinessServiceHours(ctx context.Context, create models.HoursRuleCreate) (*models.HoursRule, error) {
	return &models.HoursRule{ID: "rule-new", RoleID: create.RoleID}, nil
}

func (g *stubBusinessGateway) CreateBusinessServiceHoursBulk(ctx context.Context, bulk models.BulkHoursCreate) ([]models.HoursRule, error) {
	g.bulkReq = &bulk
	days := models.ParseDaySet(bulk.Days)
	rules := make([]models.HoursRule, 0, len(days))
	for _, dow := range days {
		d := dow
		rules = append(rules, models.HoursRule{ID: "rule-bulk", RoleID: bulk.RoleID, IsRecurring: true, DayOfWeek: &d})
	}
	return rules, nil
}

func (g *stubBusinessGateway) UpdateBusinessServiceHours(ctx context.Context, ruleID string, update models.HoursRuleUpdate) (*models.HoursRule, error) {
	g.updatedRuleID = ruleID
	g.updatedFields = update
	rule := update.Apply(models.HoursRule{ID: ruleID})
	return &rule, nil
}

func (g *stubBusinessGateway) DeleteBusinessServiceHours(ctx context.Context, ruleID string) error {
	return nil
}

func TestBusinessCreateBulkExpandsDaySet(t *testing.T) {
	gw := &stubBusinessGateway{}
	cache := &stubInvalidator{}
	svc := NewBusinessHoursService(gw, cache, nil, nil)

	rules, err := svc.CreateBulk(context.Background(), models.BulkHoursCreate{
		RoleID:    "role-1",
		StartTime: "08:00",
		EndTime:   "18:00",
		Days:      "mon-fri",
	})
	require.NoError(t, err)
	assert.Len(t, rules, 5)
	require.NotNil(t, gw.bulkReq)
	assert.Len(t, cache.prefixes, 1)
}

func TestBusinessCreateBulkRejectsUnknownDaySet(t *testing.T) {
	gw := &stubBusinessGateway{}
	svc := NewBusinessHoursService(gw, nil, nil, nil)

	_, err := svc.CreateBulk(context.Background(), models.BulkHoursCreate{
		RoleID:    "role-1",
		StartTime: "08:00",
		EndTime:   "18:00",
		Days:      "weekends",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, gw.bulkReq)
}

func TestBusinessMoveEventPinsOccurrence(t *testing.T) {
	gw := &stubBusinessGateway{
		rules: []models.HoursRule{{
			ID:          "rule-1",
			RoleID:      "role-1",
			StartTime:   "08:00",
			EndTime:     "12:00",
			IsRecurring: true,
			DayOfWeek:   intPtr(0),
		}},
	}
	svc := NewBusinessHoursService(gw, nil, nil, nil)

	moved, err := svc.MoveEvent(context.Background(), MoveBandRequest{
		EventID:    "rule-1-2026-08-31",
		RoleID:     "role-1",
		DropDate:   day(2026, time.September, 1),
		DropHour:   10,
		DropMinute: 40,
	})
	require.NoError(t, err)
	require.NotNil(t, moved)

	// 10:40 snaps to 10:30; the four hour span is kept.
	assert.Equal(t, "10:30", gw.updatedFields.StartTime)
	assert.Equal(t, "14:30", gw.updatedFields.EndTime)
	assert.False(t, gw.updatedFields.IsRecurring)
	require.NotNil(t, gw.updatedFields.SpecificDate)
	assert.Equal(t, "2026-09-01", gw.updatedFields.SpecificDate.String())
}
