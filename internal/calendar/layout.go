package calendar

import (
	"github.com/staffcal/staffcal-api/pkg/timegrid"

	"github.com/staffcal/staffcal-api/internal/models"
)

// columnMargin is the horizontal gap between columns, in percent of the day
// column width.
const columnMargin = 1.0

// Overlaps reports whether two instances occupy intersecting slot ranges.
// Ranges are half-open, so an event ending where another starts does not
// overlap it. Instances whose times fail to parse are treated as
// non-overlapping; malformed data never collides anything off the grid.
func Overlaps(a, b models.EventInstance) bool {
	aStart, aEnd, err := timegrid.SlotRange(a.StartTime, a.EndTime)
	if err != nil {
		return false
	}
	bStart, bEnd, err := timegrid.SlotRange(b.StartTime, b.EndTime)
	if err != nil {
		return false
	}
	return !(aEnd <= bStart || bEnd <= aStart)
}

// Layout assigns each event of one day a column so simultaneous events render
// side by side. Placement is first-fit in input order: each event lands in
// the leftmost column none of whose members overlap it, opening a new column
// when none fits. The result is deterministic and stable for a fixed input
// order but is not guaranteed to minimize column count; callers must supply
// events in a consistent order (normally by start time) for reproducible
// layouts.
func Layout(dayEvents []models.EventInstance) []models.LayoutPlacement {
	var columns [][]int
	columnOf := make([]int, len(dayEvents))

	for i, event := range dayEvents {
		placed := false
		for ci, column := range columns {
			fits := true
			for _, j := range column {
				if Overlaps(dayEvents[j], event) {
					fits = false
					break
				}
			}
			if fits {
				columns[ci] = append(columns[ci], i)
				columnOf[i] = ci
				placed = true
				break
			}
		}
		if !placed {
			columns = append(columns, []int{i})
			columnOf[i] = len(columns) - 1
		}
	}

	count := len(columns)
	if count == 0 {
		return nil
	}
	width := (100 - float64(count-1)*columnMargin) / float64(count)

	placements := make([]models.LayoutPlacement, 0, len(dayEvents))
	for i, event := range dayEvents {
		startSlot, endSlot, err := timegrid.SlotRange(event.StartTime, event.EndTime)
		if err != nil {
			continue
		}
		placements = append(placements, models.LayoutPlacement{
			Event:         event,
			ColumnIndex:   columnOf[i],
			ColumnCount:   count,
			TopPercent:    timegrid.TopPercent(startSlot),
			HeightPercent: timegrid.HeightPercent(startSlot, endSlot),
			LeftPercent:   float64(columnOf[i]) * (width + columnMargin),
			WidthPercent:  width,
		})
	}
	return placements
}
