package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staffcal/staffcal-api/internal/models"
	"github.com/staffcal/staffcal-api/pkg/response"
)

type referenceService interface {
	People(ctx context.Context) ([]models.Person, error)
	Roles(ctx context.Context) ([]models.Role, error)
}

// ReferenceHandler exposes the people and role reference lists.
type ReferenceHandler struct {
	service referenceService
}

// NewReferenceHandler constructs the handler.
func NewReferenceHandler(service referenceService) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

// People godoc
// @Summary List staff members
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /people [get]
func (h *ReferenceHandler) People(c *gin.Context) {
	people, err := h.service.People(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, people, nil)
}

// Roles godoc
// @Summary List roles
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roles [get]
func (h *ReferenceHandler) Roles(c *gin.Context) {
	roles, err := h.service.Roles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roles, nil)
}
