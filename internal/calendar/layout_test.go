package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffcal/staffcal-api/internal/models"
)

func instance(id, start, end string) models.EventInstance {
	return models.EventInstance{
		ID:        id,
		RuleID:    id,
		Date:      day(2026, time.September, 2),
		StartTime: start,
		EndTime:   end,
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	a := instance("a", "09:00", "10:00")
	b := instance("b", "10:00", "11:00")
	c := instance("c", "09:30", "10:30")

	// Touching ranges do not overlap.
	assert.False(t, Overlaps(a, b))
	assert.True(t, Overlaps(a, c))
	assert.True(t, Overlaps(c, b))
	assert.True(t, Overlaps(a, a))
}

func TestOverlapsMalformedTimesNeverCollide(t *testing.T) {
	bad := instance("bad", "25:00", "26:00")
	good := instance("good", "09:00", "17:00")
	assert.False(t, Overlaps(bad, good))
	assert.False(t, Overlaps(good, bad))
}

func TestLayoutSingleEventFullWidth(t *testing.T) {
	placements := Layout([]models.EventInstance{instance("a", "09:00", "17:30")})
	require.Len(t, placements, 1)

	p := placements[0]
	assert.Equal(t, 0, p.ColumnIndex)
	assert.Equal(t, 1, p.ColumnCount)
	assert.InDelta(t, 100.0, p.WidthPercent, 1e-9)
	assert.InDelta(t, 0.0, p.LeftPercent, 1e-9)
	// 09:00 starts at slot 18 of 48; 17:30 ends at slot 34.
	assert.InDelta(t, 37.5, p.TopPercent, 1e-9)
	assert.InDelta(t, float64(16)/48*100, p.HeightPercent, 1e-9)
}

func TestLayoutTwoOverlappingEventsShareWidth(t *testing.T) {
	placements := Layout([]models.EventInstance{
		instance("a", "09:00", "12:00"),
		instance("b", "10:00", "13:00"),
	})
	require.Len(t, placements, 2)

	// Two columns with a 1% margin leave 49.5% each.
	assert.Equal(t, 0, placements[0].ColumnIndex)
	assert.Equal(t, 1, placements[1].ColumnIndex)
	assert.Equal(t, 2, placements[0].ColumnCount)
	assert.InDelta(t, 49.5, placements[0].WidthPercent, 1e-9)
	assert.InDelta(t, 49.5, placements[1].WidthPercent, 1e-9)
	assert.InDelta(t, 0.0, placements[0].LeftPercent, 1e-9)
	assert.InDelta(t, 50.5, placements[1].LeftPercent, 1e-9)
}

func TestLayoutDisjointEventsReuseFirstColumn(t *testing.T) {
	placements := Layout([]models.EventInstance{
		instance("a", "09:00", "10:00"),
		instance("b", "10:00", "11:00"),
		instance("c", "11:00", "12:00"),
	})
	require.Len(t, placements, 3)
	for _, p := range placements {
		assert.Equal(t, 0, p.ColumnIndex)
		assert.Equal(t, 1, p.ColumnCount)
		assert.InDelta(t, 100.0, p.WidthPercent, 1e-9)
	}
}

func TestLayoutFirstFitIsNotOptimalColoring(t *testing.T) {
	// In slot terms: a=[18,20) d=[21,23) b=[19,21) c=[20,22). First-fit in
	// this order needs three columns even though two would suffice.
	placements := Layout([]models.EventInstance{
		instance("a", "09:00", "10:00"),
		instance("d", "10:30", "11:30"),
		instance("b", "09:30", "10:30"),
		instance("c", "10:00", "11:00"),
	})
	require.Len(t, placements, 4)

	byID := map[string]models.LayoutPlacement{}
	for _, p := range placements {
		byID[p.Event.ID] = p
	}
	assert.Equal(t, 0, byID["a"].ColumnIndex)
	assert.Equal(t, 0, byID["d"].ColumnIndex)
	assert.Equal(t, 1, byID["b"].ColumnIndex)
	assert.Equal(t, 2, byID["c"].ColumnIndex)
	assert.Equal(t, 3, byID["a"].ColumnCount)
}

func TestLayoutStableForFixedInputOrder(t *testing.T) {
	events := []models.EventInstance{
		instance("a", "09:00", "12:00"),
		instance("b", "10:00", "13:00"),
		instance("c", "12:00", "14:00"),
	}
	first := Layout(events)
	second := Layout(events)
	assert.Equal(t, first, second)
}

func TestLayoutSkipsUnparsableEvents(t *testing.T) {
	placements := Layout([]models.EventInstance{
		instance("good", "09:00", "10:00"),
		instance("bad", "nope", "10:00"),
	})
	// The malformed event still consumed a column slot assignment but
	// produces no placement.
	require.Len(t, placements, 1)
	assert.Equal(t, "good", placements[0].Event.ID)
}

func TestLayoutEmpty(t *testing.T) {
	assert.Nil(t, Layout(nil))
}
