// Package gateway defines the data gateway consumed by the calendar core and
// its three implementations: the Postgres-backed store, a remote HTTP API and
// an in-memory store for development and tests.
package gateway

import (
	"context"
	"sort"

	"github.com/staffcal/staffcal-api/internal/models"
)

// Gateway is the pluggable rule store behind the calendar core. All methods
// take a context and must honor its deadline; implementations never block
// indefinitely.
//
// UpdateAvailabilityHours is a required method. Backends that genuinely lack
// an update operation report it through SupportsAvailabilityUpdate and
// implement the documented delete+recreate fallback inside their adapter, so
// call sites never probe for capabilities themselves.
type Gateway interface {
	GetPeople(ctx context.Context) ([]models.Person, error)
	GetRoles(ctx context.Context) ([]models.Role, error)

	GetAvailabilityHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error)
	CreateAvailabilityHours(ctx context.Context, personID string, create models.HoursRuleCreate) (*models.HoursRule, error)
	UpdateAvailabilityHours(ctx context.Context, ruleID string, update models.HoursRuleUpdate, personID *string) (*models.HoursRule, error)
	DeleteAvailabilityHours(ctx context.Context, ruleID string) error

	GetBusinessServiceHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error)
	CreateBusinessServiceHours(ctx context.Context, create models.HoursRuleCreate) (*models.HoursRule, error)
	CreateBusinessServiceHoursBulk(ctx context.Context, bulk models.BulkHoursCreate) ([]models.HoursRule, error)
	UpdateBusinessServiceHours(ctx context.Context, ruleID string, update models.HoursRuleUpdate) (*models.HoursRule, error)
	DeleteBusinessServiceHours(ctx context.Context, ruleID string) error

	// GetScheduleEntries lists roster assignments within the filter window.
	// Entries are owned by the rostering engine; the gateway exposes them
	// read-only.
	GetScheduleEntries(ctx context.Context, filter models.HoursFilter) ([]models.ScheduleEntry, error)

	// SupportsAvailabilityUpdate reports whether availability updates are
	// applied natively or via the delete+recreate fallback.
	SupportsAvailabilityUpdate() bool
}

// RuleInWindow is the shared window predicate: whether a rule can produce any
// instance within the inclusive [start, end] date window. A nil start or end
// leaves the window unbounded on that side.
func RuleInWindow(rule models.HoursRule, start, end *models.Day) bool {
	if start == nil || end == nil {
		return true
	}
	switch rule.Shape() {
	case models.RuleShapeSpecificDate:
		return !rule.SpecificDate.Before(*start) && !rule.SpecificDate.After(*end)
	case models.RuleShapeWeekly:
		if rule.StartDate != nil && rule.StartDate.After(*end) {
			return false
		}
		if rule.EndDate != nil && rule.EndDate.Before(*start) {
			return false
		}
		return true
	case models.RuleShapeDateRange:
		return !(rule.EndDate.Before(*start) || rule.StartDate.After(*end))
	default:
		return false
	}
}

// sortRules orders listings by start time, then id, so every backend hands
// the expander the same deterministic input order.
func sortRules(rules []models.HoursRule) {
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].StartTime != rules[j].StartTime {
			return rules[i].StartTime < rules[j].StartTime
		}
		return rules[i].ID < rules[j].ID
	})
}

// sortScheduleEntries orders roster listings by date, start time, then id.
func sortScheduleEntries(entries []models.ScheduleEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		if entries[i].StartTime != entries[j].StartTime {
			return entries[i].StartTime < entries[j].StartTime
		}
		return entries[i].ID < entries[j].ID
	})
}
