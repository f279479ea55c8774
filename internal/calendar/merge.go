package calendar

import (
	"sort"

	"github.com/staffcal/staffcal-api/pkg/timegrid"

	"github.com/staffcal/staffcal-api/internal/models"
)

// MergeBands collapses one day's business-hours instances into the minimal
// set of disjoint slot bands covering the same time. Touching intervals
// merge; per-event identity is discarded. This backs the single backdrop band
// rendered per contiguous service period and is independent of the per-event
// column layout.
func MergeBands(dayEvents []models.EventInstance) []models.Band {
	bands := make([]models.Band, 0, len(dayEvents))
	for _, event := range dayEvents {
		startSlot, endSlot, err := timegrid.SlotRange(event.StartTime, event.EndTime)
		if err != nil {
			continue
		}
		bands = append(bands, models.Band{StartSlot: startSlot, EndSlot: endSlot})
	}
	if len(bands) == 0 {
		return nil
	}

	sort.Slice(bands, func(i, j int) bool {
		if bands[i].StartSlot != bands[j].StartSlot {
			return bands[i].StartSlot < bands[j].StartSlot
		}
		return bands[i].EndSlot < bands[j].EndSlot
	})

	merged := bands[:1]
	for _, band := range bands[1:] {
		last := &merged[len(merged)-1]
		if band.StartSlot <= last.EndSlot {
			if band.EndSlot > last.EndSlot {
				last.EndSlot = band.EndSlot
			}
			continue
		}
		merged = append(merged, band)
	}
	return merged
}
