package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staffcal/staffcal-api/internal/models"
	"github.com/staffcal/staffcal-api/internal/service"
	appErrors "github.com/staffcal/staffcal-api/pkg/errors"
	"github.com/staffcal/staffcal-api/pkg/response"
)

type businessHoursService interface {
	List(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error)
	Create(ctx context.Context, req models.HoursRuleCreate) (*models.HoursRule, error)
	CreateBulk(ctx context.Context, req models.BulkHoursCreate) ([]models.HoursRule, error)
	Update(ctx context.Context, ruleID string, req models.HoursRuleUpdate) (*models.HoursRule, error)
	Delete(ctx context.Context, ruleID string) error
	MoveEvent(ctx context.Context, req service.MoveBandRequest) (*models.HoursRule, error)
}

// BusinessHoursHandler exposes role-level business service hours.
type BusinessHoursHandler struct {
	service businessHoursService
}

// NewBusinessHoursHandler constructs the handler.
func NewBusinessHoursHandler(service businessHoursService) *BusinessHoursHandler {
	return &BusinessHoursHandler{service: service}
}

// List godoc
// @Summary List business service hours
// @Tags BusinessHours
// @Produce json
// @Param role_id query string false "Role filter"
// @Param start_date query string false "Window start (YYYY-MM-DD)"
// @Param end_date query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /business-service-hours [get]
func (h *BusinessHoursHandler) List(c *gin.Context) {
	filter, err := hoursFilterQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rules, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rules, nil)
}

// Create godoc
// @Summary Create a business-hours rule
// @Tags BusinessHours
// @Accept json
// @Produce json
// @Param payload body models.HoursRuleCreate true "Rule payload"
// @Success 201 {object} response.Envelope
// @Router /business-service-hours [post]
func (h *BusinessHoursHandler) Create(c *gin.Context) {
	var req models.HoursRuleCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	rule, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rule)
}

// CreateBulk godoc
// @Summary Create weekly business-hours rules from a weekday-set shorthand
// @Description Expands mon-fri, mon-sat or all into one weekly rule per day.
// @Tags BusinessHours
// @Accept json
// @Produce json
// @Param payload body models.BulkHoursCreate true "Bulk payload"
// @Success 201 {object} response.Envelope
// @Router /business-service-hours/bulk [post]
func (h *BusinessHoursHandler) CreateBulk(c *gin.Context) {
	var req models.BulkHoursCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	rules, err := h.service.CreateBulk(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rules)
}

// Update godoc
// @Summary Replace the recurrence fields of a business-hours rule
// @Tags BusinessHours
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param payload body models.HoursRuleUpdate true "Replacement fields"
// @Success 200 {object} response.Envelope
// @Router /business-service-hours/{id} [put]
func (h *BusinessHoursHandler) Update(c *gin.Context) {
	var req models.HoursRuleUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	rule, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rule, nil)
}

// Delete godoc
// @Summary Delete a business-hours rule
// @Tags BusinessHours
// @Param id path string true "Rule ID"
// @Success 204
// @Router /business-service-hours/{id} [delete]
func (h *BusinessHoursHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Move godoc
// @Summary Reposition one business-hours occurrence by drag and drop
// @Tags BusinessHours
// @Accept json
// @Produce json
// @Param payload body service.MoveBandRequest true "Drop target"
// @Success 200 {object} response.Envelope
// @Router /business-service-hours/move [post]
func (h *BusinessHoursHandler) Move(c *gin.Context) {
	var req service.MoveBandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	rule, err := h.service.MoveEvent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rule, nil)
}
