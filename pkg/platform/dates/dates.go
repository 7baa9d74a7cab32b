// Package dates parses the ISO-8601 values accepted in request bodies and
// query strings and models calendar dates.
package dates

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/patch"
)

const layout = "2006-01-02"

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// Date is a calendar date without time of day or zone.
type Date struct {
	t time.Time
}

// New returns the date for year, month and day.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return New(y, m, d)
}

// Today returns the UTC calendar date of now.
func Today(now time.Time) Date {
	return FromTime(now.UTC())
}

// ParseTime parses an ISO-8601 date or date-time. A trailing "Z" is read as
// "+00:00" and a space may separate date and time.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	if t, err := time.Parse(layout, s); err == nil {
		return t, nil
	}
	for _, l := range dateTimeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised ISO-8601 value %q", s)
}

// Parse parses s into a Date, reporting "Invalid <field> format" on failure.
func Parse(field, s string) (Date, error) {
	t, err := ParseTime(s)
	if err != nil {
		return Date{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "Invalid "+field+" format")
	}
	return FromTime(t), nil
}

// ParseOptional parses s when non-empty; an empty string yields nil.
func ParseOptional(field, s string) (*Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := Parse(field, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (d Date) Time() time.Time   { return d.t }
func (d Date) IsZero() bool      { return d.t.IsZero() }
func (d Date) String() string    { return d.t.Format(layout) }
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// DaysUntil returns the number of whole days from d to o; negative when o is
// earlier.
func (d Date) DaysUntil(o Date) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

// Between reports whether d lies in the closed interval [from, to].
func (d Date) Between(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := ParseTime(s)
	if err != nil {
		return err
	}
	*d = FromTime(t)
	return nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = FromTime(v)
		return nil
	case string:
		t, err := ParseTime(v)
		if err != nil {
			return err
		}
		*d = FromTime(t)
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("dates: cannot scan %T", src)
	}
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// FromField parses a required date field that has already passed the
// required check.
func FromField(field string, f patch.Field[string]) (Date, error) {
	return Parse(field, f.Value)
}

// FromOptionalField parses an optional date field; absent, null and empty
// values yield nil.
func FromOptionalField(field string, f patch.Field[string]) (*Date, error) {
	if !f.Present() {
		return nil, nil
	}
	return ParseOptional(field, f.Value)
}

// Assign parses a set field into a required date. Null is rejected with
// "<field> cannot be null".
func Assign(dst *Date, f patch.Field[string], field string) error {
	if !f.Set {
		return nil
	}
	if f.Null || f.Value == "" {
		return dErrors.New(dErrors.CodeBadRequest, field+" cannot be null")
	}
	d, err := Parse(field, f.Value)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

// AssignNullable parses a set field into an optional date; null or an empty
// string clears it.
func AssignNullable(dst **Date, f patch.Field[string], field string) error {
	if !f.Set {
		return nil
	}
	d, err := FromOptionalField(field, f)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
