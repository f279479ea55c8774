package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything registered on the API router. A nil Exports
// handler leaves the export routes unregistered.
type Handlers struct {
	Calendar      *CalendarHandler
	Availability  *AvailabilityHandler
	BusinessHours *BusinessHoursHandler
	Reference     *ReferenceHandler
	Exports       *ExportHandler
	Metrics       *MetricsHandler
}

// Register mounts all API routes under the given prefix.
func Register(r *gin.Engine, prefix string, h Handlers) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Health)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)

	api.GET("/status", h.Metrics.Status)

	api.GET("/people", h.Reference.People)
	api.GET("/roles", h.Reference.Roles)

	api.GET("/calendar/window", h.Calendar.Window)

	api.GET("/availability-hours", h.Availability.List)
	api.POST("/people/:id/availability-hours", h.Availability.Create)
	api.PUT("/availability-hours/:id", h.Availability.Update)
	api.DELETE("/availability-hours/:id", h.Availability.Delete)
	api.POST("/availability-hours/move", h.Availability.Move)

	api.GET("/business-service-hours", h.BusinessHours.List)
	api.POST("/business-service-hours", h.BusinessHours.Create)
	api.POST("/business-service-hours/bulk", h.BusinessHours.CreateBulk)
	api.PUT("/business-service-hours/:id", h.BusinessHours.Update)
	api.DELETE("/business-service-hours/:id", h.BusinessHours.Delete)
	api.POST("/business-service-hours/move", h.BusinessHours.Move)

	if h.Exports != nil {
		api.POST("/exports/week", h.Exports.Enqueue)
		api.GET("/exports/:id", h.Exports.Get)
		api.GET("/export/:token", h.Exports.Download)
	}
}
