package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staffcal/staffcal-api/internal/service"
	"github.com/staffcal/staffcal-api/pkg/response"
)

type calendarService interface {
	Window(ctx context.Context, req service.WindowRequest) (*service.WindowView, error)
}

// CalendarHandler exposes the computed calendar window.
type CalendarHandler struct {
	service calendarService
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(service calendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// Window godoc
// @Summary Computed calendar window
// @Description Expands rules into positioned events and merged backdrop bands for each day of the window.
// @Tags Calendar
// @Produce json
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string true "Window end (YYYY-MM-DD)"
// @Param role_id query string false "Role filter"
// @Param person_id query string false "Person filter"
// @Success 200 {object} response.Envelope
// @Router /calendar/window [get]
func (h *CalendarHandler) Window(c *gin.Context) {
	start, err := requiredDayQuery(c, "start_date")
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := requiredDayQuery(c, "end_date")
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.service.Window(c.Request.Context(), service.WindowRequest{
		StartDate: start,
		EndDate:   end,
		RoleID:    c.Query("role_id"),
		PersonID:  c.Query("person_id"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}
