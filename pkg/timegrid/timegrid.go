// Package timegrid provides the slot-index arithmetic shared by every layout
// computation. A slot is a fixed 30-minute unit; all percentage geometry on
// the calendar grid is derived from slot indices produced here.
package timegrid

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// SlotsPerHour fixes the grid granularity at 30 minutes.
	SlotsPerHour = 2
	// TotalSlots is the number of slots in one calendar day.
	TotalSlots = 24 * SlotsPerHour

	slotMinutes = 60 / SlotsPerHour
)

// Boundary selects the rounding rule applied when a clock time falls inside a
// slot. Start boundaries round down at :30 inclusive; end boundaries use a
// strict comparison so a range ending exactly on :30 does not consume the
// next slot.
type Boundary int

const (
	BoundaryStart Boundary = iota
	BoundaryEnd
)

// ToSlot converts an (hour, minute) clock reading into a slot index.
func ToSlot(hour, minute int, boundary Boundary) int {
	if boundary == BoundaryEnd {
		if minute > slotMinutes {
			return hour*SlotsPerHour + 1
		}
		return hour * SlotsPerHour
	}
	if minute >= slotMinutes {
		return hour*SlotsPerHour + 1
	}
	return hour * SlotsPerHour
}

// FromSlot converts a slot index back to the clock time at the slot's start.
func FromSlot(slot int) (hour, minute int) {
	return slot / SlotsPerHour, (slot % SlotsPerHour) * slotMinutes
}

// ParseClock parses an "HH:MM" or "HH:MM:SS" string. Seconds are accepted and
// discarded; the grid never resolves below one minute. "24:00" is valid as an
// end-of-day reading so ranges may close exactly at midnight.
func ParseClock(raw string) (hour, minute int, err error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, fmt.Errorf("invalid clock time %q", raw)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 24 {
		return 0, 0, fmt.Errorf("invalid hour in clock time %q", raw)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, 0, fmt.Errorf("invalid minute in clock time %q", raw)
	}
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return 0, 0, fmt.Errorf("invalid seconds in clock time %q", raw)
		}
	}
	return hour, minute, nil
}

// FormatClock renders an (hour, minute) pair as "HH:MM".
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// SlotRange resolves a clock-time pair into a [start, end) slot interval.
// A zero or negative duration after snapping is a data error.
func SlotRange(startClock, endClock string) (startSlot, endSlot int, err error) {
	sh, sm, err := ParseClock(startClock)
	if err != nil {
		return 0, 0, err
	}
	eh, em, err := ParseClock(endClock)
	if err != nil {
		return 0, 0, err
	}
	startSlot = ToSlot(sh, sm, BoundaryStart)
	endSlot = ToSlot(eh, em, BoundaryEnd)
	if endSlot <= startSlot {
		return 0, 0, fmt.Errorf("slot range %q-%q has no duration", startClock, endClock)
	}
	return startSlot, endSlot, nil
}

// ClockMinutes returns the clock time as minutes since midnight, without
// snapping to a slot boundary.
func ClockMinutes(raw string) (int, error) {
	hour, minute, err := ParseClock(raw)
	if err != nil {
		return 0, err
	}
	return hour*60 + minute, nil
}

// TopPercent converts a start slot into the vertical offset of the event
// block, as a percentage of the day column height.
func TopPercent(startSlot int) float64 {
	return float64(startSlot) / float64(TotalSlots) * 100
}

// HeightPercent converts a slot interval into the height of the event block,
// as a percentage of the day column height.
func HeightPercent(startSlot, endSlot int) float64 {
	return float64(endSlot-startSlot) / float64(TotalSlots) * 100
}
