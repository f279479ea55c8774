package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/staffcal/staffcal-api/internal/calendar"
	"github.com/staffcal/staffcal-api/internal/models"
	appErrors "github.com/staffcal/staffcal-api/pkg/errors"
)

// windowCachePrefix is shared by every rule-mutating service: any write drops
// all cached windows, the next read re-expands.
const windowCachePrefix = "calendar:window:"

type availabilityGateway interface {
	GetAvailabilityHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error)
	CreateAvailabilityHours(ctx context.Context, personID string, create models.HoursRuleCreate) (*models.HoursRule, error)
	UpdateAvailabilityHours(ctx context.Context, ruleID string, update models.HoursRuleUpdate, personID *string) (*models.HoursRule, error)
	DeleteAvailabilityHours(ctx context.Context, ruleID string) error
}

// WindowInvalidator drops cached window views after rule writes.
type WindowInvalidator interface {
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// AvailabilityService manages person availability rules, including the drag
// move that collapses one occurrence to a pinned date.
type AvailabilityService struct {
	gateway   availabilityGateway
	cache     WindowInvalidator
	validator *validator.Validate
	logger    *zap.Logger

	// inFlight serializes drag moves per rule: a second drop on a rule whose
	// move is still submitting is rejected rather than queued.
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewAvailabilityService constructs the service. A nil cache disables window
// invalidation.
func NewAvailabilityService(gw availabilityGateway, cache WindowInvalidator, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{gateway: gw, cache: cache, validator: validate, logger: logger, inFlight: make(map[string]struct{})}
}

// List returns availability rules matching the filter.
func (s *AvailabilityService) List(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error) {
	rules, err := s.gateway.GetAvailabilityHours(ctx, filter)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return rules, nil
}

// Create registers a new availability rule for a person.
func (s *AvailabilityService) Create(ctx context.Context, personID string, req models.HoursRuleCreate) (*models.HoursRule, error) {
	if personID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "person id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if err := validateRuleShape(req); err != nil {
		return nil, err
	}
	rule, err := s.gateway.CreateAvailabilityHours(ctx, personID, req)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	s.invalidateWindows(ctx)
	return rule, nil
}

// Update replaces the recurrence fields of a rule.
func (s *AvailabilityService) Update(ctx context.Context, ruleID string, req models.HoursRuleUpdate, personID *string) (*models.HoursRule, error) {
	if ruleID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rule id is required")
	}
	rule, err := s.gateway.UpdateAvailabilityHours(ctx, ruleID, req, personID)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	s.invalidateWindows(ctx)
	return rule, nil
}

// Delete removes a rule.
func (s *AvailabilityService) Delete(ctx context.Context, ruleID string) error {
	if ruleID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "rule id is required")
	}
	if err := s.gateway.DeleteAvailabilityHours(ctx, ruleID); err != nil {
		return appErrors.FromError(err)
	}
	s.invalidateWindows(ctx)
	return nil
}

// MoveEventRequest describes a resolved drag drop for an availability event.
type MoveEventRequest struct {
	EventID    string     `json:"event_id" validate:"required"`
	PersonID   string     `json:"person_id" validate:"required"`
	DropDate   models.Day `json:"drop_date"`
	DropHour   int        `json:"drop_hour" validate:"min=0,max=23"`
	DropMinute int        `json:"drop_minute" validate:"min=0,max=59"`
}

// MoveEvent repositions one event occurrence. The drop snaps to the half-hour
// grid, keeps the original duration and always pins the rule to the drop date
// as a single occurrence. Concurrent moves of the same rule are rejected.
func (s *AvailabilityService) MoveEvent(ctx context.Context, req MoveEventRequest) (*models.HoursRule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if req.DropDate.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "drop_date is required")
	}

	ruleID, _ := calendar.SplitInstanceID(req.EventID)
	if !s.acquire(ruleID) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a move for this rule is already in progress")
	}
	defer s.release(ruleID)

	rules, err := s.gateway.GetAvailabilityHours(ctx, models.HoursFilter{PersonID: req.PersonID})
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	origin, ok := findRule(rules, ruleID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "availability rule not found")
	}

	update, err := calendar.ResolveDrop(req.EventID, origin, req.DropDate, req.DropHour, req.DropMinute)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	moved, err := s.gateway.UpdateAvailabilityHours(ctx, update.RuleID, update.Fields, update.PersonID)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	s.invalidateWindows(ctx)
	s.logger.Info("availability event moved",
		zap.String("rule_id", update.RuleID),
		zap.String("drop_date", req.DropDate.String()),
		zap.String("start_time", update.Fields.StartTime))
	return moved, nil
}

func (s *AvailabilityService) acquire(ruleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[ruleID]; busy {
		return false
	}
	s.inFlight[ruleID] = struct{}{}
	return true
}

func (s *AvailabilityService) release(ruleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, ruleID)
}

func (s *AvailabilityService) invalidateWindows(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePrefix(ctx, windowCachePrefix); err != nil {
		s.logger.Warn("window cache invalidation failed", zap.Error(err))
	}
}

func findRule(rules []models.HoursRule, id string) (models.HoursRule, bool) {
	for _, rule := range rules {
		if rule.ID == id {
			return rule, true
		}
	}
	return models.HoursRule{}, false
}

// validateRuleShape rejects creates that would persist a rule no recurrence
// shape matches, since such rules silently expand to nothing.
func validateRuleShape(req models.HoursRuleCreate) error {
	rule := models.HoursRule{
		DayOfWeek:    req.DayOfWeek,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IsRecurring:  req.IsRecurring,
		SpecificDate: req.SpecificDate,
	}
	if rule.Shape() == models.RuleShapeNone {
		return appErrors.Clone(appErrors.ErrValidation, "rule must carry a specific date, a recurring day of week, or a date range")
	}
	return nil
}
