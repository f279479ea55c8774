package gateway

import (
	"context"
	"time"

	"github.com/staffcal/staffcal-api/internal/models"
)

// CallObserver receives the latency of every gateway call, labelled by
// operation name.
type CallObserver interface {
	ObserveGatewayCall(operation string, duration time.Duration)
}

// Instrument wraps a gateway so each call reports its duration to the
// observer, including failed calls. A nil observer returns the gateway
// unwrapped.
func Instrument(next Gateway, observer CallObserver) Gateway {
	if observer == nil {
		return next
	}
	return &instrumentedGateway{next: next, observer: observer}
}

type instrumentedGateway struct {
	next     Gateway
	observer CallObserver
}

func (g *instrumentedGateway) observe(operation string, began time.Time) {
	g.observer.ObserveGatewayCall(operation, time.Since(began))
}

func (g *instrumentedGateway) GetPeople(ctx context.Context) ([]models.Person, error) {
	defer g.observe("get_people", time.Now())
	return g.next.GetPeople(ctx)
}

func (g *instrumentedGateway) GetRoles(ctx context.Context) ([]models.Role, error) {
	defer g.observe("get_roles", time.Now())
	return g.next.GetRoles(ctx)
}

func (g *instrumentedGateway) GetAvailabilityHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error) {
	defer g.observe("get_availability_hours", time.Now())
	return g.next.GetAvailabilityHours(ctx, filter)
}

func (g *instrumentedGateway) CreateAvailabilityHours(ctx context.Context, personID string, create models.HoursRuleCreate) (*models.HoursRule, error) {
	defer g.observe("create_availability_hours", time.Now())
	return g.next.CreateAvailabilityHours(ctx, personID, create)
}

func (g *instrumentedGateway) UpdateAvailabilityHours(ctx context.Context, ruleID string, update models.HoursRuleUpdate, personID *string) (*models.HoursRule, error) {
	defer g.observe("update_availability_hours", time.Now())
	return g.next.UpdateAvailabilityHours(ctx, ruleID, update, personID)
}

func (g *instrumentedGateway) DeleteAvailabilityHours(ctx context.Context, ruleID string) error {
	defer g.observe("delete_availability_hours", time.Now())
	return g.next.DeleteAvailabilityHours(ctx, ruleID)
}

func (g *instrumentedGateway) GetBusinessServiceHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error) {
	defer g.observe("get_business_service_hours", time.Now())
	return g.next.GetBusinessServiceHours(ctx, filter)
}

func (g *instrumentedGateway) CreateBusinessServiceHours(ctx context.Context, create models.HoursRuleCreate) (*models.HoursRule, error) {
	defer g.observe("create_business_service_hours", time.Now())
	return g.next.CreateBusinessServiceHours(ctx, create)
}

func (g *instrumentedGateway) CreateBusinessServiceHoursBulk(ctx context.Context, bulk models.BulkHoursCreate) ([]models.HoursRule, error) {
	defer g.observe("create_business_service_hours_bulk", time.Now())
	return g.next.CreateBusinessServiceHoursBulk(ctx, bulk)
}

func (g *instrumentedGateway) UpdateBusinessServiceHours(ctx context.Context, ruleID string, update models.HoursRuleUpdate) (*models.HoursRule, error) {
	defer g.observe("update_business_service_hours", time.Now())
	return g.next.UpdateBusinessServiceHours(ctx, ruleID, update)
}

func (g *instrumentedGateway) DeleteBusinessServiceHours(ctx context.Context, ruleID string) error {
	defer g.observe("delete_business_service_hours", time.Now())
	return g.next.DeleteBusinessServiceHours(ctx, ruleID)
}

func (g *instrumentedGateway) GetScheduleEntries(ctx context.Context, filter models.HoursFilter) ([]models.ScheduleEntry, error) {
	defer g.observe("get_schedule_entries", time.Now())
	return g.next.GetScheduleEntries(ctx, filter)
}

func (g *instrumentedGateway) SupportsAvailabilityUpdate() bool {
	return g.next.SupportsAvailabilityUpdate()
}
