package simpar

import (
	"fmt"
	"time"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

// Date is a calendar day without a year.
type Date struct {
	Month int `json:"month" yaml:"month" toml:"month" validate:"gte=1,lte=12"`
	Day   int `json:"day" yaml:"day" toml:"day" validate:"gte=1,lte=31"`
}

func (d Date) String() string {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Sprintf("%d/%d", d.Month, d.Day)
	}
	return fmt.Sprintf("%s %d", time.Month(d.Month).String()[:3], d.Day)
}

// dayOfYear returns the 1-based day of year, or false when the date does not
// exist in the (leap) year.
func (d Date) dayOfYear(leap bool) (int, bool) {
	year := 2019
	if leap {
		year = 2020
	}
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return 0, false
	}
	t := time.Date(year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if int(t.Month()) != d.Month || t.Day() != d.Day {
		return 0, false
	}
	return t.YearDay(), true
}

// RunPeriod is the span of days the UWG simulates.
type RunPeriod struct {
	Start    Date `json:"start_date" yaml:"start_date" toml:"start_date"`
	End      Date `json:"end_date" yaml:"end_date" toml:"end_date"`
	LeapYear bool `json:"leap_year,omitempty" yaml:"leap_year,omitempty" toml:"leap_year,omitempty"`
}

// DefaultRunPeriod covers a full non-leap year.
func DefaultRunPeriod() RunPeriod {
	return RunPeriod{Start: Date{1, 1}, End: Date{12, 31}}
}

// NewRunPeriod validates and returns a run period.
func NewRunPeriod(start, end Date, leapYear bool) (RunPeriod, error) {
	rp := RunPeriod{Start: start, End: end, LeapYear: leapYear}
	if err := rp.Validate(); err != nil {
		return RunPeriod{}, err
	}
	return rp, nil
}

// Validate checks that both dates exist and the start is not after the end.
func (rp RunPeriod) Validate() error {
	s, ok := rp.Start.dayOfYear(rp.LeapYear)
	if !ok {
		return check.Invalid("run_period.start_date", "a calendar date", rp.Start)
	}
	e, ok := rp.End.dayOfYear(rp.LeapYear)
	if !ok {
		return check.Invalid("run_period.end_date", "a calendar date", rp.End)
	}
	if s > e {
		return check.Invalid("run_period.start_date", "on or before "+rp.End.String(), rp.Start)
	}
	return nil
}

// DayCount is the number of simulated days, both ends included.
func (rp RunPeriod) DayCount() int {
	s, _ := rp.Start.dayOfYear(rp.LeapYear)
	e, _ := rp.End.dayOfYear(rp.LeapYear)
	return e - s + 1
}

func (rp RunPeriod) String() string {
	return fmt.Sprintf("UWGRunPeriod: [%s - %s]", rp.Start, rp.End)
}
