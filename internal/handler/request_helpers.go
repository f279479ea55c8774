package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/staffcal/staffcal-api/internal/models"
	appErrors "github.com/staffcal/staffcal-api/pkg/errors"
)

// dayQuery parses an optional YYYY-MM-DD query parameter.
func dayQuery(c *gin.Context, name string) (*models.Day, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	day, err := models.ParseDay(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid "+name+", expected YYYY-MM-DD")
	}
	return &day, nil
}

// requiredDayQuery parses a mandatory YYYY-MM-DD query parameter.
func requiredDayQuery(c *gin.Context, name string) (models.Day, error) {
	day, err := dayQuery(c, name)
	if err != nil {
		return models.Day{}, err
	}
	if day == nil {
		return models.Day{}, appErrors.Clone(appErrors.ErrValidation, name+" is required")
	}
	return *day, nil
}

// hoursFilterQuery assembles the shared rule listing filter from query params.
func hoursFilterQuery(c *gin.Context) (models.HoursFilter, error) {
	filter := models.HoursFilter{
		RoleID:   c.Query("role_id"),
		PersonID: c.Query("person_id"),
	}
	start, err := dayQuery(c, "start_date")
	if err != nil {
		return models.HoursFilter{}, err
	}
	end, err := dayQuery(c, "end_date")
	if err != nil {
		return models.HoursFilter{}, err
	}
	filter.StartDate = start
	filter.EndDate = end
	return filter, nil
}
