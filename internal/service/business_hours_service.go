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

type businessHoursGateway interface {
	GetBusinessServiceHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error)
	CreateBusinessServiceHours(ctx context.Context, create models.HoursRuleCreate) (*models.HoursRule, error)
	CreateBusinessServiceHoursBulk(ctx context.Context, bulk models.BulkHoursCreate) ([]models.HoursRule, error)
	UpdateBusinessServiceHours(ctx context.Context, ruleID string, update models.HoursRuleUpdate) (*models.HoursRule, error)
	DeleteBusinessServiceHours(ctx context.Context, ruleID string) error
}

// BusinessHoursService manages role-level business service hours. Moves
// behave like availability moves: the dragged occurrence is pinned to the
// drop date as a single non-recurring rule.
type BusinessHoursService struct {
	gateway   businessHoursGateway
	cache     WindowInvalidator
	validator *validator.Validate
	logger    *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewBusinessHoursService constructs the service.
func NewBusinessHoursService(gw businessHoursGateway, cache WindowInvalidator, validate *validator.Validate, logger *zap.Logger) *BusinessHoursService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BusinessHoursService{gateway: gw, cache: cache, validator: validate, logger: logger, inFlight: make(map[string]struct{})}
}

// List returns business-hours rules matching the filter.
func (s *BusinessHoursService) List(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error) {
	rules, err := s.gateway.GetBusinessServiceHours(ctx, filter)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return rules, nil
}

// Create registers a single business-hours rule.
func (s *BusinessHoursService) Create(ctx context.Context, req models.HoursRuleCreate) (*models.HoursRule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if err := validateRuleShape(req); err != nil {
		return nil, err
	}
	rule, err := s.gateway.CreateBusinessServiceHours(ctx, req)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	s.invalidateWindows(ctx)
	return rule, nil
}

// CreateBulk expands a weekday-set shorthand into one weekly rule per day.
func (s *BusinessHoursService) CreateBulk(ctx context.Context, req models.BulkHoursCreate) ([]models.HoursRule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	rules, err := s.gateway.CreateBusinessServiceHoursBulk(ctx, req)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	s.invalidateWindows(ctx)
	return rules, nil
}

// Update replaces the recurrence fields of a rule.
func (s *BusinessHoursService) Update(ctx context.Context, ruleID string, req models.HoursRuleUpdate) (*models.HoursRule, error) {
	if ruleID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rule id is required")
	}
	rule, err := s.gateway.UpdateBusinessServiceHours(ctx, ruleID, req)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	s.invalidateWindows(ctx)
	return rule, nil
}

// Delete removes a rule.
func (s *BusinessHoursService) Delete(ctx context.Context, ruleID string) error {
	if ruleID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "rule id is required")
	}
	if err := s.gateway.DeleteBusinessServiceHours(ctx, ruleID); err != nil {
		return appErrors.FromError(err)
	}
	s.invalidateWindows(ctx)
	return nil
}

// MoveBandRequest describes a drag drop for a business-hours occurrence.
type MoveBandRequest struct {
	EventID    string     `json:"event_id" validate:"required"`
	RoleID     string     `json:"role_id" validate:"required"`
	DropDate   models.Day `json:"drop_date"`
	DropHour   int        `json:"drop_hour" validate:"min=0,max=23"`
	DropMinute int        `json:"drop_minute" validate:"min=0,max=59"`
}

// MoveEvent repositions one business-hours occurrence.
func (s *BusinessHoursService) MoveEvent(ctx context.Context, req MoveBandRequest) (*models.HoursRule, error) {
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

	rules, err := s.gateway.GetBusinessServiceHours(ctx, models.HoursFilter{RoleID: req.RoleID})
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	origin, ok := findRule(rules, ruleID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "business service hours not found")
	}

	update, err := calendar.ResolveDrop(req.EventID, origin, req.DropDate, req.DropHour, req.DropMinute)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	moved, err := s.gateway.UpdateBusinessServiceHours(ctx, update.RuleID, update.Fields)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	s.invalidateWindows(ctx)
	s.logger.Info("business hours moved",
		zap.String("rule_id", update.RuleID),
		zap.String("drop_date", req.DropDate.String()),
		zap.String("start_time", update.Fields.StartTime))
	return moved, nil
}

func (s *BusinessHoursService) acquire(ruleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[ruleID]; busy {
		return false
	}
	s.inFlight[ruleID] = struct{}{}
	return true
}

func (s *BusinessHoursService) release(ruleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, ruleID)
}

func (s *BusinessHoursService) invalidateWindows(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePrefix(ctx, windowCachePrefix); err != nil {
		s.logger.Warn("window cache invalidation failed", zap.Error(err))
	}
}
