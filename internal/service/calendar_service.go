package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/staffcal/staffcal-api/internal/calendar"
	"github.com/staffcal/staffcal-api/internal/models"
	appErrors "github.com/staffcal/staffcal-api/pkg/errors"
)

type calendarGateway interface {
	GetPeople(ctx context.Context) ([]models.Person, error)
	GetRoles(ctx context.Context) ([]models.Role, error)
	GetAvailabilityHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error)
	GetBusinessServiceHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error)
	GetScheduleEntries(ctx context.Context, filter models.HoursFilter) ([]models.ScheduleEntry, error)
}

// WindowCache stores computed window views.
type WindowCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CalendarService produces render-ready calendar windows: rules fetched from
// the gateway, expanded into instances, laid out per day and cached.
type CalendarService struct {
	gateway   calendarGateway
	cache     WindowCache
	cacheTTL  time.Duration
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCalendarService constructs the service. A nil cache disables window
// caching; a nil metrics service disables instrumentation.
func NewCalendarService(gw calendarGateway, cache WindowCache, cacheTTL time.Duration, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{gateway: gw, cache: cache, cacheTTL: cacheTTL, metrics: metrics, validator: validate, logger: logger}
}

// WindowRequest scopes a calendar window query.
type WindowRequest struct {
	StartDate models.Day `json:"start_date"`
	EndDate   models.Day `json:"end_date"`
	RoleID    string     `json:"role_id"`
	PersonID  string     `json:"person_id"`
}

// DayView is the render model for one day column: positioned availability
// events plus merged business-hours backdrop bands.
type DayView struct {
	Date   models.Day               `json:"date"`
	Events []models.LayoutPlacement `json:"events"`
	Bands  []models.Band            `json:"bands"`
}

// WindowView is the full response for a window query.
type WindowView struct {
	StartDate models.Day `json:"start_date"`
	EndDate   models.Day `json:"end_date"`
	Days      []DayView  `json:"days"`
}

// Window computes the view for an inclusive date window. Results are cached
// per (window, role, person) and invalidated on any rule write.
func (s *CalendarService) Window(ctx context.Context, req WindowRequest) (*WindowView, error) {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date and end_date are required")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must be on or after start_date")
	}

	key := windowCacheKey(req)
	if s.cache != nil {
		began := time.Now()
		var cached WindowView
		err := s.cache.Get(ctx, key, &cached)
		s.metrics.RecordCacheOperation(err == nil, time.Since(began))
		if err == nil {
			return &cached, nil
		}
		if err != appErrors.ErrCacheMiss {
			s.logger.Warn("window cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	view, err := s.computeWindow(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		began := time.Now()
		if err := s.cache.Set(ctx, key, view, s.cacheTTL); err != nil {
			s.logger.Warn("window cache write failed", zap.String("key", key), zap.Error(err))
		}
		s.metrics.ObserveCacheWrite(time.Since(began))
	}
	return view, nil
}

func (s *CalendarService) computeWindow(ctx context.Context, req WindowRequest) (*WindowView, error) {
	filter := models.HoursFilter{
		RoleID:    req.RoleID,
		PersonID:  req.PersonID,
		StartDate: &req.StartDate,
		EndDate:   &req.EndDate,
	}
	availabilityRules, err := s.gateway.GetAvailabilityHours(ctx, filter)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	businessRules, err := s.gateway.GetBusinessServiceHours(ctx, models.HoursFilter{
		RoleID:    req.RoleID,
		StartDate: &req.StartDate,
		EndDate:   &req.EndDate,
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	scheduleEntries, err := s.gateway.GetScheduleEntries(ctx, filter)
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	availability := calendar.ExpandAll(availabilityRules, models.EventTypeAvailability, req.StartDate, req.EndDate)
	business := calendar.ExpandAll(businessRules, models.EventTypeBusiness, req.StartDate, req.EndDate)
	schedule := calendar.ProjectSchedule(scheduleEntries)
	if err := s.denormalizeNames(ctx, availability, business, schedule); err != nil {
		return nil, err
	}

	// Schedule events share the day columns with availability; both go
	// through the same overlap layout.
	eventsByDay := groupByDay(append(availability, schedule...))
	businessByDay := groupByDay(business)

	view := &WindowView{StartDate: req.StartDate, EndDate: req.EndDate}
	for d := req.StartDate; !d.After(req.EndDate); d = d.AddDays(1) {
		dayEvents := eventsByDay[d.String()]
		sortInstances(dayEvents)
		view.Days = append(view.Days, DayView{
			Date:   d,
			Events: calendar.Layout(dayEvents),
			Bands:  calendar.MergeBands(businessByDay[d.String()]),
		})
	}
	return view, nil
}

// denormalizeNames copies person and role display names onto instances so the
// client renders without extra lookups.
func (s *CalendarService) denormalizeNames(ctx context.Context, groups ...[]models.EventInstance) error {
	people, err := s.gateway.GetPeople(ctx)
	if err != nil {
		return appErrors.FromError(err)
	}
	roles, err := s.gateway.GetRoles(ctx)
	if err != nil {
		return appErrors.FromError(err)
	}
	personNames := make(map[string]string, len(people))
	for _, p := range people {
		personNames[p.ID] = p.Name
	}
	roleNames := make(map[string]string, len(roles))
	for _, r := range roles {
		roleNames[r.ID] = r.Name
	}
	for _, instances := range groups {
		for i := range instances {
			if instances[i].PersonID != nil {
				if name, ok := personNames[*instances[i].PersonID]; ok {
					n := name
					instances[i].PersonName = &n
				}
			}
			instances[i].RoleName = roleNames[instances[i].RoleID]
		}
	}
	return nil
}

func groupByDay(instances []models.EventInstance) map[string][]models.EventInstance {
	byDay := make(map[string][]models.EventInstance)
	for _, instance := range instances {
		key := instance.Date.String()
		byDay[key] = append(byDay[key], instance)
	}
	return byDay
}

// sortInstances fixes the layout input order: by start time, then id. The
// column assignment is order-sensitive, so this keeps layouts reproducible
// across requests.
func sortInstances(instances []models.EventInstance) {
	sort.Slice(instances, func(i, j int) bool {
		if instances[i].StartTime != instances[j].StartTime {
			return instances[i].StartTime < instances[j].StartTime
		}
		return instances[i].ID < instances[j].ID
	})
}

func windowCacheKey(req WindowRequest) string {
	return fmt.Sprintf("calendar:window:%s:%s:%s:%s", req.StartDate, req.EndDate, req.RoleID, req.PersonID)
}
