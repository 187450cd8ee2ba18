// Package calendar provides a calendar-day value type used for streak and daily selection logic.
package calendar

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	layout        = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

// Date is a civil calendar day with no time-of-day or location.
// It is stored as midnight UTC of that day so day arithmetic never crosses a DST boundary.
// The zero value means "no date".
type Date struct {
	t time.Time
}

// New returns the date for the given year, month and day. Out-of-range values are normalized.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime returns the calendar day of t as observed in t's own location.
func FromTime(t time.Time) Date {
	year, month, day := t.Date()
	return New(year, month, day)
}

// Today returns the local calendar day reported by the clock.
func Today(clock Clock) Date {
	return FromTime(clock.Now())
}

// Parse parses a YYYY-MM-DD string. An empty string yields the zero Date.
func Parse(value string) (Date, error) {
	if value == "" {
		return Date{}, nil
	}
	t, err := time.Parse(layout, value)
	if err == nil {
		return FromTime(t), nil
	}

	// Timestamps keep the day as it was written, not as it is in UTC.
	for _, timestampLayout := range []string{time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(timestampLayout, value); err == nil {
			return FromTime(t), nil
		}
	}
	return Date{}, fmt.Errorf("unable to parse date '%s': expected YYYY-MM-DD or RFC3339 format", value)
}

// MustParse is like Parse but panics on error. Intended for tests and static data.
func MustParse(value string) Date {
	d, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(layout)
}

func (d Date) Year() int {
	return d.t.Year()
}

func (d Date) Month() time.Month {
	return d.t.Month()
}

// AddDays returns the date n calendar days after d (before d when n is negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// DaysSinceEpoch returns the number of whole days between 1970-01-01 and d.
func (d Date) DaysSinceEpoch() int64 {
	seconds := d.t.Unix()
	days := seconds / secondsPerDay
	if seconds%secondsPerDay != 0 && seconds < 0 {
		days--
	}
	return days
}

// DaysSince returns d - other in calendar days.
func (d Date) DaysSince(other Date) int {
	return int(d.DaysSinceEpoch() - other.DaysSinceEpoch())
}

// MarshalYAML implements the yaml.Marshaler interface
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("json.Unmarshal(date) > %w", err)
	}
	parsed, err := Parse(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer. The zero Date is stored as NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner for DATE, DATETIME and text columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = FromTime(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("unsupported type %T for a date", src)
	}
}

func (d *Date) scanString(value string) error {
	parsed, err := Parse(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
