package window

import (
	"errors"
	"fmt"
	"time"
)

// ReferenceYear is the year every Day is normalized onto. It must be a leap
// year so that Feb 29 can be represented.
const ReferenceYear = 2000

const (
	// operator input, e.g. "05-01" for Jan 5
	dayMonthLayout = "2-1 2006"
	// log prefix, e.g. "Jan" "5"
	logDateLayout = "Jan-2 2006"
)

var ErrInvalidDay = errors.New("invalid day")

// Day is a calendar day without a year.
type Day struct {
	Month time.Month
	Day   int
}

func NewDay(month time.Month, day int) (Day, error) {
	t := time.Date(ReferenceYear, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return Day{}, fmt.Errorf("%w: %d-%02d", ErrInvalidDay, day, month)
	}
	return Day{Month: month, Day: day}, nil
}

// FromTime drops the year and time of day from t.
func FromTime(t time.Time) Day {
	return Day{Month: t.Month(), Day: t.Day()}
}

func Today() Day {
	return FromTime(time.Now())
}

// ParseDay parses the operator format DD-MM.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayMonthLayout, fmt.Sprintf("%s %d", s, ReferenceYear))
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return FromTime(t), nil
}

// ParseLogDate parses the month abbreviation and day-of-month that start a
// syslog line, such as "Jan" and "5" or "Jan" and "05".
func ParseLogDate(month, day string) (Day, error) {
	t, err := time.Parse(logDateLayout, fmt.Sprintf("%s-%s %d", month, day, ReferenceYear))
	if err != nil {
		return Day{}, err
	}
	return FromTime(t), nil
}

func (d Day) IsZero() bool {
	return d.Month == 0 && d.Day == 0
}

// Time returns midnight UTC of d in the reference year.
func (d Day) Time() time.Time {
	return time.Date(ReferenceYear, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Day) AddDays(n int) Day {
	return FromTime(d.Time().AddDate(0, 0, n))
}

func (d Day) Before(other Day) bool {
	return d.Time().Before(other.Time())
}

func (d Day) After(other Day) bool {
	return d.Time().After(other.Time())
}

// String renders d as "05 Jan".
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format("02 Jan")
}

// Key renders d as "01-05", which sorts chronologically.
func (d Day) Key() string {
	return d.Time().Format("01-02")
}

// DayFlag is a pflag.Value accepting DD-MM. The zero value means "not set".
type DayFlag Day

func (f DayFlag) String() string {
	d := Day(f)
	if d.IsZero() {
		return ""
	}
	return d.Time().Format("02-01")
}

func (f *DayFlag) Set(value string) error {
	d, err := ParseDay(value)
	if err != nil {
		return err
	}
	*f = DayFlag(d)
	return nil
}

func (f DayFlag) Type() string {
	return "DD-MM"
}

func (f DayFlag) Value() Day {
	return Day(f)
}
