package fintrack

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// readDateFormat is slightly permissive on read (allows single-digit month/day).
const readDateFormat = "2006-1-2"

// storedDateFormat is how dates land in the data files: the time component
// is always zero-filled on write, and accepted back on read.
const storedDateFormat = "2006-01-02 15:04:05"

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Stored formats the date the way it is persisted, with a zero-filled
// time component.
func (d Date) Stored() string { return d.time().Format(storedDateFormat) }

// MonthKey returns the calendar-month bucket of the date as YYYY-MM.
func (d Date) MonthKey() string { return d.time().Format("2006-01") }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Unix returns the canonical representation of that day as a Unix timestamp.
func (d Date) Unix() int64 { return d.time().Unix() }

// Format returns a textual representation of the date value formatted
// according to the layout defined by the argument. See [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// AddMonth returns a new Date with the given number of months added.
func (d Date) AddMonth(i int) Date { return NewDate(d.y, d.m+time.Month(i), d.d) }

// inRange reports whether d falls within [from, to]. A zero bound is open.
func (d Date) inRange(from, to Date) bool {
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}

// ParseDate parses a Date from user input in YYYY-MM-DD form.
// It tolerates single-digit month and day (e.g. "2025-7-1").
// A failure is reported as a *ValidationError on the "date" field.
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, errInvalid("date", "%q is not a valid date, want format %q", str, DateFormat)
	}
	return NewDate(on.Date()), nil
}

// MustParseDate is like ParseDate but panics on error. For tests and constants.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// parseStoredDate parses a date field from a data file. It accepts the
// zero-filled datetime form written by this program and the plain date form.
func parseStoredDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if on, err := time.Parse(storedDateFormat, str); err == nil {
		return NewDate(on.Date()), nil
	}
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid stored date %q, want %q or %q", str, storedDateFormat, DateFormat)
	}
	return NewDate(on.Date()), nil
}

// UnmarshalJSON decodes a date from a JSON string in either stored form.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := parseStoredDate(str)
	if err != nil {
		return err
	}
	*d = on
	return nil
}

// MarshalJSON encodes the date as a YYYY-MM-DD JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
