package gateway

import (
	"context"
	"database/sql"

	"github.com/staffcal/staffcal-api/internal/models"
	"github.com/staffcal/staffcal-api/internal/repository"
	appErrors "github.com/staffcal/staffcal-api/pkg/errors"
)

// StoreGateway serves the gateway contract from the local Postgres
// repositories. This is the production backend: the service owns its rules
// instead of proxying a remote API.
type StoreGateway struct {
	availability *repository.AvailabilityRepository
	business     *repository.BusinessHoursRepository
	schedule     *repository.ScheduleRepository
	people       *repository.PersonRepository
	roles        *repository.RoleRepository
}

// NewStoreGateway composes the repository-backed gateway.
func NewStoreGateway(
	availability *repository.AvailabilityRepository,
	business *repository.BusinessHoursRepository,
	schedule *repository.ScheduleRepository,
	people *repository.PersonRepository,
	roles *repository.RoleRepository,
) *StoreGateway {
	return &StoreGateway{availability: availability, business: business, schedule: schedule, people: people, roles: roles}
}

// GetPeople lists the people reference list.
func (g *StoreGateway) GetPeople(ctx context.Context) ([]models.Person, error) {
	return g.people.List(ctx)
}

// GetRoles lists the roles reference list.
func (g *StoreGateway) GetRoles(ctx context.Context) ([]models.Role, error) {
	return g.roles.List(ctx)
}

// GetAvailabilityHours lists availability rules.
func (g *StoreGateway) GetAvailabilityHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error) {
	return g.availability.List(ctx, filter)
}

// CreateAvailabilityHours inserts an availability rule for a person.
func (g *StoreGateway) CreateAvailabilityHours(ctx context.Context, personID string, create models.HoursRuleCreate) (*models.HoursRule, error) {
	rule := models.HoursRule{
		PersonID:     &personID,
		RoleID:       create.RoleID,
		DayOfWeek:    create.DayOfWeek,
		StartTime:    create.StartTime,
		EndTime:      create.EndTime,
		StartDate:    create.StartDate,
		EndDate:      create.EndDate,
		IsRecurring:  create.IsRecurring,
		SpecificDate: create.SpecificDate,
	}
	if err := g.availability.Create(ctx, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// UpdateAvailabilityHours replaces the recurrence fields of a rule.
func (g *StoreGateway) UpdateAvailabilityHours(ctx context.Context, ruleID string, update models.HoursRuleUpdate, personID *string) (*models.HoursRule, error) {
	rule, err := g.availability.GetByID(ctx, ruleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "availability rule not found")
		}
		return nil, err
	}
	updated := update.Apply(*rule)
	if err := g.availability.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAvailabilityHours removes a rule.
func (g *StoreGateway) DeleteAvailabilityHours(ctx context.Context, ruleID string) error {
	if err := g.availability.Delete(ctx, ruleID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "availability rule not found")
		}
		return err
	}
	return nil
}

// GetBusinessServiceHours lists business-hours rules.
func (g *StoreGateway) GetBusinessServiceHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error) {
	return g.business.List(ctx, filter)
}

// CreateBusinessServiceHours inserts a business-hours rule.
func (g *StoreGateway) CreateBusinessServiceHours(ctx context.Context, create models.HoursRuleCreate) (*models.HoursRule, error) {
	rule := models.HoursRule{
		RoleID:       create.RoleID,
		DayOfWeek:    create.DayOfWeek,
		StartTime:    create.StartTime,
		EndTime:      create.EndTime,
		StartDate:    create.StartDate,
		EndDate:      create.EndDate,
		IsRecurring:  create.IsRecurring,
		SpecificDate: create.SpecificDate,
	}
	if err := g.business.Create(ctx, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// CreateBusinessServiceHoursBulk expands the weekday shorthand into one
// weekly rule per day and inserts each.
func (g *StoreGateway) CreateBusinessServiceHoursBulk(ctx context.Context, bulk models.BulkHoursCreate) ([]models.HoursRule, error) {
	days := models.ParseDaySet(bulk.Days)
	if days == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown day set "+bulk.Days)
	}
	created := make([]models.HoursRule, 0, len(days))
	for _, day := range days {
		dow := day
		rule := models.HoursRule{
			RoleID:      bulk.RoleID,
			DayOfWeek:   &dow,
			StartTime:   bulk.StartTime,
			EndTime:     bulk.EndTime,
			StartDate:   bulk.StartDate,
			EndDate:     bulk.EndDate,
			IsRecurring: true,
		}
		if err := g.business.Create(ctx, &rule); err != nil {
			return nil, err
		}
		created = append(created, rule)
	}
	return created, nil
}

// UpdateBusinessServiceHours replaces the recurrence fields of a rule.
func (g *StoreGateway) UpdateBusinessServiceHours(ctx context.Context, ruleID string, update models.HoursRuleUpdate) (*models.HoursRule, error) {
	rule, err := g.business.GetByID(ctx, ruleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "business service hours not found")
		}
		return nil, err
	}
	updated := update.Apply(*rule)
	if err := g.business.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBusinessServiceHours removes a rule.
func (g *StoreGateway) DeleteBusinessServiceHours(ctx context.Context, ruleID string) error {
	if err := g.business.Delete(ctx, ruleID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "business service hours not found")
		}
		return err
	}
	return nil
}

// GetScheduleEntries lists roster entries.
func (g *StoreGateway) GetScheduleEntries(ctx context.Context, filter models.HoursFilter) ([]models.ScheduleEntry, error) {
	return g.schedule.List(ctx, filter)
}

// SupportsAvailabilityUpdate always holds for the local store.
func (g *StoreGateway) SupportsAvailabilityUpdate() bool { return true }
