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

type availabilityService interface {
	List(ctx context.Context, filter models.HoursFilter) ([]models.HoursRule, error)
	Create(ctx context.Context, personID string, req models.HoursRuleCreate) (*models.HoursRule, error)
	Update(ctx context.Context, ruleID string, req models.HoursRuleUpdate, personID *string) (*models.HoursRule, error)
	Delete(ctx context.Context, ruleID string) error
	MoveEvent(ctx context.Context, req service.MoveEventRequest) (*models.HoursRule, error)
}

// AvailabilityHandler exposes person availability rules.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// List godoc
// @Summary List availability rules
// @Tags Availability
// @Produce json
// @Param role_id query string false "Role filter"
// @Param person_id query string false "Person filter"
// @Param start_date query string false "Window start (YYYY-MM-DD)"
// @Param end_date query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /availability-hours [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
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
// @Summary Create an availability rule for a person
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Param payload body models.HoursRuleCreate true "Rule payload"
// @Success 201 {object} response.Envelope
// @Router /people/{id}/availability-hours [post]
func (h *AvailabilityHandler) Create(c *gin.Context) {
	var req models.HoursRuleCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	rule, err := h.service.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rule)
}

// Update godoc
// @Summary Replace the recurrence fields of an availability rule
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param payload body models.HoursRuleUpdate true "Replacement fields"
// @Success 200 {object} response.Envelope
// @Router /availability-hours/{id} [put]
func (h *AvailabilityHandler) Update(c *gin.Context) {
	var req models.HoursRuleUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	var personID *string
	if pid := c.Query("person_id"); pid != "" {
		personID = &pid
	}
	rule, err := h.service.Update(c.Request.Context(), c.Param("id"), req, personID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rule, nil)
}

// Delete godoc
// @Summary Delete an availability rule
// @Tags Availability
// @Param id path string true "Rule ID"
// @Success 204
// @Router /availability-hours/{id} [delete]
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Move godoc
// @Summary Reposition one availability occurrence by drag and drop
// @Description Snaps the drop to the half-hour grid, keeps the event duration and pins the rule to the drop date.
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.MoveEventRequest true "Drop target"
// @Success 200 {object} response.Envelope
// @Router /availability-hours/move [post]
func (h *AvailabilityHandler) Move(c *gin.Context) {
	var req service.MoveEventRequest
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
