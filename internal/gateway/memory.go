package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/staffcal/staffcal-api/internal/models"
	appErrors "github.com/staffcal/staffcal-api/pkg/errors"
)

// MemoryGateway is a mutex-guarded in-memory rule store used in development
// and tests. It applies the same window predicate as the Postgres store so
// expansion behaves identically regardless of backend.
type MemoryGateway struct {
	mu            sync.RWMutex
	people        []models.Person
	roles         []models.Role
	availability  map[string]models.HoursRule
	businessHours map[string]models.HoursRule
	schedule      map[string]models.ScheduleEntry
}

// NewMemoryGateway builds an empty in-memory gateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		availability:  make(map[string]models.HoursRule),
		businessHours: make(map[string]models.HoursRule),
		schedule:      make(map[string]models.ScheduleEntry),
	}
}

// NewSeededMemoryGateway builds an in-memory gateway with a small reference
// dataset, mirroring the development fixtures of the original system.
func NewSeededMemoryGateway() *MemoryGateway {
	g := NewMemoryGateway()
	desc := func(s string) *string { return &s }
	g.people = []models.Person{
		{ID: uuid.NewString(), Name: "John Doe", Email: "john@example.com"},
		{ID: uuid.NewString(), Name: "Jane Smith", Email: "jane@example.com"},
		{ID: uuid.NewString(), Name: "Bob Johnson", Email: "bob@example.com"},
	}
	g.roles = []models.Role{
		{ID: uuid.NewString(), Name: "Doctor", Description: desc("Medical doctor")},
		{ID: uuid.NewString(), Name: "Nurse", Description: desc("Registered nurse")},
		{ID: uuid.NewString(), Name: "Receptionist", Description: desc("Front desk staff")},
	}
	return g
}

// GetPeople lists the reference people.
func (g *MemoryGateway) GetPeople(ctx context.Context) ([]models.Person, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]models.Person, len(g.people))
	copy(out, g.people)
	return out, nil
}

// GetRoles lists the reference roles.
func (g *MemoryGateway) GetRoles(ctx context.Context) ([]models.Role, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]models.Role, len(g.roles))
	copy(out, g.roles)
	return out, nil
}

// GetAvailabilityHours lists availability rules matching the filter.
func (g *MemoryGateway) GetAvailabilityHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return filterRules(g.availability, filter), nil
}

// CreateAvailabilityHours inserts an availability rule for a person.
func (g *MemoryGateway) CreateAvailabilityHours(ctx context.Context, personID string, create models.HoursRuleCreate) (*models.HoursRule, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	rule := ruleFromCreate(create)
	rule.PersonID = &personID
	g.availability[rule.ID] = rule
	return &rule, nil
}

// UpdateAvailabilityHours replaces the recurrence fields of a rule.
func (g *MemoryGateway) UpdateAvailabilityHours(ctx context.Context, ruleID string, update models.HoursRuleUpdate, personID *string) (*models.HoursRule, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	rule, ok := g.availability[ruleID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "availability rule not found")
	}
	rule = update.Apply(rule)
	rule.UpdatedAt = time.Now().UTC()
	g.availability[ruleID] = rule
	return &rule, nil
}

// DeleteAvailabilityHours removes a rule.
func (g *MemoryGateway) DeleteAvailabilityHours(ctx context.Context, ruleID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.availability[ruleID]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "availability rule not found")
	}
	delete(g.availability, ruleID)
	return nil
}

// GetBusinessServiceHours lists business-hours rules matching the filter.
func (g *MemoryGateway) GetBusinessServiceHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return filterRules(g.businessHours, filter), nil
}

// CreateBusinessServiceHours inserts a business-hours rule.
func (g *MemoryGateway) CreateBusinessServiceHours(ctx context.Context, create models.HoursRuleCreate) (*models.HoursRule, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	rule := ruleFromCreate(create)
	g.businessHours[rule.ID] = rule
	return &rule, nil
}

// CreateBusinessServiceHoursBulk expands the weekday shorthand into one
// weekly rule per day.
func (g *MemoryGateway) CreateBusinessServiceHoursBulk(ctx context.Context, bulk models.BulkHoursCreate) ([]models.HoursRule, error) {
	days := models.ParseDaySet(bulk.Days)
	if days == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown day set "+bulk.Days)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	created := make([]models.HoursRule, 0, len(days))
	for _, day := range days {
		dow := day
		rule := ruleFromCreate(models.HoursRuleCreate{
			RoleID:      bulk.RoleID,
			DayOfWeek:   &dow,
			StartTime:   bulk.StartTime,
			EndTime:     bulk.EndTime,
			StartDate:   bulk.StartDate,
			EndDate:     bulk.EndDate,
			IsRecurring: true,
		})
		g.businessHours[rule.ID] = rule
		created = append(created, rule)
	}
	return created, nil
}

// UpdateBusinessServiceHours replaces the recurrence fields of a rule.
func (g *MemoryGateway) UpdateBusinessServiceHours(ctx context.Context, ruleID string, update models.HoursRuleUpdate) (*models.HoursRule, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	rule, ok := g.businessHours[ruleID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "business service hours not found")
	}
	rule = update.Apply(rule)
	rule.UpdatedAt = time.Now().UTC()
	g.businessHours[ruleID] = rule
	return &rule, nil
}

// DeleteBusinessServiceHours removes a rule.
func (g *MemoryGateway) DeleteBusinessServiceHours(ctx context.Context, ruleID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.businessHours[ruleID]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "business service hours not found")
	}
	delete(g.businessHours, ruleID)
	return nil
}

// GetScheduleEntries lists roster entries matching the filter.
func (g *MemoryGateway) GetScheduleEntries(ctx context.Context, filter models.HoursFilter) ([]models.ScheduleEntry, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]models.ScheduleEntry, 0, len(g.schedule))
	for _, entry := range g.schedule {
		if filter.RoleID != "" && entry.RoleID != filter.RoleID {
			continue
		}
		if filter.PersonID != "" && entry.PersonID != filter.PersonID {
			continue
		}
		if filter.StartDate != nil && entry.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && entry.Date.After(*filter.EndDate) {
			continue
		}
		out = append(out, entry)
	}
	sortScheduleEntries(out)
	return out, nil
}

// AddScheduleEntry seeds a roster entry. The rostering engine owns entry
// writes in production; this exists for development fixtures and tests.
func (g *MemoryGateway) AddScheduleEntry(entry models.ScheduleEntry) models.ScheduleEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	g.schedule[entry.ID] = entry
	return entry
}

// SupportsAvailabilityUpdate always holds for the in-memory store.
func (g *MemoryGateway) SupportsAvailabilityUpdate() bool { return true }

func ruleFromCreate(create models.HoursRuleCreate) models.HoursRule {
	now := time.Now().UTC()
	return models.HoursRule{
		ID:           uuid.NewString(),
		RoleID:       create.RoleID,
		DayOfWeek:    create.DayOfWeek,
		StartTime:    create.StartTime,
		EndTime:      create.EndTime,
		StartDate:    create.StartDate,
		EndDate:      create.EndDate,
		IsRecurring:  create.IsRecurring,
		SpecificDate: create.SpecificDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func filterRules(rules map[string]models.HoursRule, filter models.HoursFilter) []models.HoursRule {
	out := make([]models.HoursRule, 0, len(rules))
	for _, rule := range rules {
		if filter.RoleID != "" && rule.RoleID != filter.RoleID {
			continue
		}
		if filter.PersonID != "" && (rule.PersonID == nil || *rule.PersonID != filter.PersonID) {
			continue
		}
		if !RuleInWindow(rule, filter.StartDate, filter.EndDate) {
			continue
		}
		out = append(out, rule)
	}
	sortRules(out)
	return out
}
