package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/staffcal/staffcal-api/internal/models"
	"github.com/staffcal/staffcal-api/pkg/config"
	appErrors "github.com/staffcal/staffcal-api/pkg/errors"
)

// HTTPGateway talks to a remote rule API. Every call carries the configured
// timeout; a deadline overrun surfaces as ErrGatewayTimeout rather than
// hanging the caller.
type HTTPGateway struct {
	client         *resty.Client
	supportsUpdate bool
	logger         *zap.Logger
}

// NewHTTPGateway builds a gateway for the given base URL and capability flag.
func NewHTTPGateway(cfg config.GatewayConfig, logger *zap.Logger) *HTTPGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	return &HTTPGateway{client: client, supportsUpdate: cfg.SupportsAvailabilityUpdate, logger: logger}
}

// GetPeople lists people from the remote API.
func (g *HTTPGateway) GetPeople(ctx context.Context) ([]models.Person, error) {
	var people []models.Person
	if err := g.get(ctx, "/people", nil, &people); err != nil {
		return nil, err
	}
	return people, nil
}

// GetRoles lists roles from the remote API.
func (g *HTTPGateway) GetRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := g.get(ctx, "/roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// GetAvailabilityHours lists availability rules matching the filter.
func (g *HTTPGateway) GetAvailabilityHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error) {
	var rules []models.HoursRule
	if err := g.get(ctx, "/availability-hours", filterParams(filter), &rules); err != nil {
		return nil, err
	}
	sortRules(rules)
	return rules, nil
}

// CreateAvailabilityHours creates a rule for a person.
func (g *HTTPGateway) CreateAvailabilityHours(ctx context.Context, personID string, create models.HoursRuleCreate) (*models.HoursRule, error) {
	var rule models.HoursRule
	path := fmt.Sprintf("/people/%s/availability-hours", personID)
	if err := g.send(ctx, http.MethodPost, path, create, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// UpdateAvailabilityHours applies the replacement fields. When the remote API
// lacks an update endpoint the documented delete+recreate fallback runs here,
// at the adapter boundary, so callers never branch on capability.
func (g *HTTPGateway) UpdateAvailabilityHours(ctx context.Context, ruleID string, update models.HoursRuleUpdate, personID *string) (*models.HoursRule, error) {
	if g.supportsUpdate {
		var rule models.HoursRule
		path := fmt.Sprintf("/availability-hours/%s", ruleID)
		if err := g.send(ctx, http.MethodPut, path, update, &rule); err != nil {
			return nil, err
		}
		return &rule, nil
	}

	if personID == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "person id required for delete+recreate fallback")
	}
	// Resolve the origin rule before deleting so the recreate keeps its role.
	rules, err := g.GetAvailabilityHours(ctx, models.HoursFilter{PersonID: *personID})
	if err != nil {
		return nil, err
	}
	var origin *models.HoursRule
	for i := range rules {
		if rules[i].ID == ruleID {
			origin = &rules[i]
			break
		}
	}
	if origin == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "availability rule not found")
	}
	if err := g.DeleteAvailabilityHours(ctx, ruleID); err != nil {
		return nil, err
	}
	create := models.HoursRuleCreate{
		RoleID:       origin.RoleID,
		DayOfWeek:    update.DayOfWeek,
		StartTime:    update.StartTime,
		EndTime:      update.EndTime,
		StartDate:    update.StartDate,
		EndDate:      update.EndDate,
		IsRecurring:  update.IsRecurring,
		SpecificDate: update.SpecificDate,
	}
	return g.CreateAvailabilityHours(ctx, *personID, create)
}

// DeleteAvailabilityHours removes a rule.
func (g *HTTPGateway) DeleteAvailabilityHours(ctx context.Context, ruleID string) error {
	return g.send(ctx, http.MethodDelete, fmt.Sprintf("/availability-hours/%s", ruleID), nil, nil)
}

// GetBusinessServiceHours lists business-hours rules matching the filter.
func (g *HTTPGateway) GetBusinessServiceHours(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error) {
	var rules []models.HoursRule
	if err := g.get(ctx, "/business-service-hours", filterParams(filter), &rules); err != nil {
		return nil, err
	}
	sortRules(rules)
	return rules, nil
}

// CreateBusinessServiceHours creates a business-hours rule.
func (g *HTTPGateway) CreateBusinessServiceHours(ctx context.Context, create models.HoursRuleCreate) (*models.HoursRule, error) {
	var rule models.HoursRule
	if err := g.send(ctx, http.MethodPost, "/business-service-hours", create, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// CreateBusinessServiceHoursBulk delegates the weekday-set expansion to the
// remote API.
func (g *HTTPGateway) CreateBusinessServiceHoursBulk(ctx context.Context, bulk models.BulkHoursCreate) ([]models.HoursRule, error) {
	var rules []models.HoursRule
	if err := g.send(ctx, http.MethodPost, "/business-service-hours/bulk", bulk, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// UpdateBusinessServiceHours applies the replacement fields.
func (g *HTTPGateway) UpdateBusinessServiceHours(ctx context.Context, ruleID string, update models.HoursRuleUpdate) (*models.HoursRule, error) {
	var rule models.HoursRule
	path := fmt.Sprintf("/business-service-hours/%s", ruleID)
	if err := g.send(ctx, http.MethodPut, path, update, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// DeleteBusinessServiceHours removes a rule.
func (g *HTTPGateway) DeleteBusinessServiceHours(ctx context.Context, ruleID string) error {
	return g.send(ctx, http.MethodDelete, fmt.Sprintf("/business-service-hours/%s", ruleID), nil, nil)
}

// GetScheduleEntries lists roster entries matching the filter.
func (g *HTTPGateway) GetScheduleEntries(ctx context.Context, filter models.HoursFilter) ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	if err := g.get(ctx, "/schedule-entries", filterParams(filter), &entries); err != nil {
		return nil, err
	}
	sortScheduleEntries(entries)
	return entries, nil
}

// SupportsAvailabilityUpdate reports the configured capability flag.
func (g *HTTPGateway) SupportsAvailabilityUpdate() bool { return g.supportsUpdate }

func (g *HTTPGateway) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	req := g.client.R().SetContext(ctx).SetResult(out)
	if params != nil {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(path)
	return g.check(path, resp, err)
}

func (g *HTTPGateway) send(ctx context.Context, method, path string, body, out interface{}) error {
	req := g.client.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Execute(method, path)
	return g.check(path, resp, err)
}

func (g *HTTPGateway) check(path string, resp *resty.Response, err error) error {
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			g.logger.Warn("gateway call timed out", zap.String("path", path))
			return appErrors.Wrap(err, appErrors.ErrGatewayTimeout.Code, appErrors.ErrGatewayTimeout.Status, "gateway call timed out")
		}
		return appErrors.Wrap(err, appErrors.ErrGatewayUnavailable.Code, appErrors.ErrGatewayUnavailable.Status, "gateway request failed")
	}
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, "gateway resource not found")
	case resp.IsError():
		g.logger.Warn("gateway returned error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
		)
		return appErrors.New(appErrors.ErrGatewayUnavailable.Code, appErrors.ErrGatewayUnavailable.Status,
			fmt.Sprintf("gateway returned status %d", resp.StatusCode()))
	}
	return nil
}

func filterParams(filter models.HoursFilter) map[string]string {
	params := map[string]string{}
	if filter.RoleID != "" {
		params["role_id"] = filter.RoleID
	}
	if filter.PersonID != "" {
		params["person_id"] = filter.PersonID
	}
	if filter.StartDate != nil {
		params["start_date"] = filter.StartDate.String()
	}
	if filter.EndDate != nil {
		params["end_date"] = filter.EndDate.String()
	}
	return params
}
