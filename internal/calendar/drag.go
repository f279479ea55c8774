package calendar

import (
	"errors"
	"fmt"

	"github.com/staffcal/staffcal-api/pkg/timegrid"

	"github.com/staffcal/staffcal-api/internal/models"
)

// ErrInvalidDrop marks a drop whose arithmetic produced an unusable time
// range; the move must be rejected before submission, never clamped.
var ErrInvalidDrop = errors.New("drop produces an invalid time range")

// MoveUpdate is the payload a resolved drop submits back through the gateway.
type MoveUpdate struct {
	RuleID   string
	PersonID *string
	Fields   models.HoursRuleUpdate
}

// ResolveDrop translates a drop target into the replacement rule fields.
// The drop start snaps to the slot boundary at or before the hover minute,
// the original duration is preserved, and the rule is always collapsed to a
// single occurrence pinned to the drop date: a drag edits one occurrence,
// never the whole series.
func ResolveDrop(eventID string, origin models.HoursRule, dropDate models.Day, dropHour, dropMinute int) (MoveUpdate, error) {
	ruleID, _ := SplitInstanceID(eventID)
	if ruleID != origin.ID {
		return MoveUpdate{}, fmt.Errorf("event %q does not belong to rule %q", eventID, origin.ID)
	}

	startMinutes, err := timegrid.ClockMinutes(origin.StartTime)
	if err != nil {
		return MoveUpdate{}, err
	}
	endMinutes, err := timegrid.ClockMinutes(origin.EndTime)
	if err != nil {
		return MoveUpdate{}, err
	}
	duration := endMinutes - startMinutes
	if duration <= 0 {
		return MoveUpdate{}, fmt.Errorf("%w: rule %s has non-positive duration", ErrInvalidDrop, origin.ID)
	}

	newStartHour, newStartMinute := timegrid.FromSlot(timegrid.ToSlot(dropHour, dropMinute, timegrid.BoundaryStart))
	newEnd := newStartHour*60 + newStartMinute + duration
	if newEnd > 24*60 {
		return MoveUpdate{}, fmt.Errorf("%w: event would end past midnight", ErrInvalidDrop)
	}

	pinned := dropDate
	return MoveUpdate{
		RuleID:   origin.ID,
		PersonID: origin.PersonID,
		Fields: models.HoursRuleUpdate{
			StartTime:    timegrid.FormatClock(newStartHour, newStartMinute),
			EndTime:      timegrid.FormatClock(newEnd/60, newEnd%60),
			IsRecurring:  false,
			DayOfWeek:    nil,
			SpecificDate: &pinned,
			StartDate:    nil,
			EndDate:      nil,
		},
	}, nil
}

// DragState names the phases of a drag session.
type DragState int

const (
	DragIdle DragState = iota
	DragActive
	DragHovering
)

// DragSession is the transient client-side state between a drag-start and a
// drop or cancel. Hover updates are idempotent and may fire many times; only
// the final drop produces a mutation. Sessions are single-owner and not safe
// for concurrent use.
type DragSession struct {
	state     DragState
	eventID   string
	origin    models.HoursRule
	hoverDate models.Day
	hoverHour int
	hoverMin  int
}

// Start begins a drag for the given event instance and its origin rule.
func (s *DragSession) Start(event models.EventInstance, origin models.HoursRule) error {
	if s.state != DragIdle {
		return errors.New("drag already in progress")
	}
	s.state = DragActive
	s.eventID = event.ID
	s.origin = origin
	return nil
}

// Hover records the current drop target. Repeated calls replace the target.
func (s *DragSession) Hover(date models.Day, hour, minute int) error {
	if s.state == DragIdle {
		return errors.New("no drag in progress")
	}
	s.state = DragHovering
	s.hoverDate = date
	s.hoverHour = hour
	s.hoverMin = minute
	return nil
}

// Drop resolves the session against its last hover target and returns the
// session to idle whether or not resolution succeeds.
func (s *DragSession) Drop() (MoveUpdate, error) {
	if s.state != DragHovering {
		s.reset()
		return MoveUpdate{}, errors.New("drop without a hover target")
	}
	update, err := ResolveDrop(s.eventID, s.origin, s.hoverDate, s.hoverHour, s.hoverMin)
	s.reset()
	return update, err
}

// Cancel discards the session.
func (s *DragSession) Cancel() {
	s.reset()
}

// State reports the current phase.
func (s *DragSession) State() DragState {
	return s.state
}

func (s *DragSession) reset() {
	*s = DragSession{}
}
