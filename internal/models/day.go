package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Day is a calendar date at day granularity. It is deliberately not a
// time.Time: generic parsing of a bare "YYYY-MM-DD" string yields UTC
// midnight, which shifts the visible day backward in negative-offset locales.
// All date comparisons in the calendar core go through this type so they
// compare (year, month, day) components and nothing else.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// ParseDay parses a strict "YYYY-MM-DD" string into a Day.
func ParseDay(raw string) (Day, error) {
	var y, m, d int
	if _, err := fmt.Sscanf(raw, "%4d-%2d-%2d", &y, &m, &d); err != nil {
		return Day{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	if len(raw) != 10 || raw[4] != '-' || raw[7] != '-' {
		return Day{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	day := Day{Year: y, Month: time.Month(m), Date: d}
	if m < 1 || m > 12 || d < 1 || d > daysInMonth(y, time.Month(m)) {
		return Day{}, fmt.Errorf("invalid date %q: no such calendar day", raw)
	}
	return day, nil
}

// DayOf truncates a time.Time to its calendar day in the time's own location.
func DayOf(t time.Time) Day {
	return Day{Year: t.Year(), Month: t.Month(), Date: t.Day()}
}

// String renders the day as "YYYY-MM-DD".
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Date)
}

// IsZero reports whether the day is the zero value.
func (d Day) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Date == 0
}

func (d Day) ordinal() int {
	// Days since an arbitrary epoch; only used for comparison and stepping.
	t := time.Date(d.Year, d.Month, d.Date, 12, 0, 0, 0, time.UTC)
	return int(t.Unix() / 86400)
}

// Before reports whether d falls strictly before other.
func (d Day) Before(other Day) bool { return d.ordinal() < other.ordinal() }

// After reports whether d falls strictly after other.
func (d Day) After(other Day) bool { return d.ordinal() > other.ordinal() }

// Equal reports whether both values name the same calendar day.
func (d Day) Equal(other Day) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Date == other.Date
}

// AddDays steps the day forward (or backward) by n calendar days.
func (d Day) AddDays(n int) Day {
	t := time.Date(d.Year, d.Month, d.Date+n, 12, 0, 0, 0, time.UTC)
	return DayOf(t)
}

// Weekday returns the day of week with Monday as 0 and Sunday as 6, matching
// the encoding used by recurrence rules.
func (d Day) Weekday() int {
	t := time.Date(d.Year, d.Month, d.Date, 12, 0, 0, 0, time.UTC)
	return (int(t.Weekday()) + 6) % 7
}

// WeekStart returns the Monday of the week containing d.
func (d Day) WeekStart() Day {
	return d.AddDays(-d.Weekday())
}

// WeekEnd returns the Sunday of the week containing d.
func (d Day) WeekEnd() Day {
	return d.AddDays(6 - d.Weekday())
}

// MarshalJSON encodes the day as a "YYYY-MM-DD" string.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Day) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid date json %s", data)
	}
	parsed, err := ParseDay(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so Day columns bind as DATE values.
func (d Day) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner, accepting DATE columns as time.Time, string
// or []byte.
func (d *Day) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DayOf(v)
		return nil
	case string:
		parsed, err := ParseDay(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDay(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Day", src)
	}
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}
