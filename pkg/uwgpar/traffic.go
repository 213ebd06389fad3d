// Package uwgpar holds the district-level UWG parameter sets that are passed
// to the engine unchanged: traffic heat, vegetation behavior and pavement
// materials.
package uwgpar

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

// HoursPerDay is the length of every daily schedule.
const HoursPerDay = 24

// Typical traffic schedules for a commercial area.
var (
	defaultWeekdaySchedule = []float64{
		0.2, 0.2, 0.2, 0.2, 0.2, 0.4, 0.7, 0.9, 0.9, 0.6, 0.6, 0.6,
		0.6, 0.6, 0.7, 0.8, 0.9, 0.9, 0.8, 0.8, 0.7, 0.3, 0.2, 0.2,
	}
	defaultSaturdaySchedule = []float64{
		0.2, 0.2, 0.2, 0.2, 0.2, 0.3, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
		0.5, 0.5, 0.6, 0.7, 0.7, 0.7, 0.7, 0.5, 0.4, 0.3, 0.2, 0.2,
	}
	defaultSundaySchedule = []float64{
		0.2, 0.2, 0.2, 0.2, 0.2, 0.3, 0.4, 0.4, 0.4, 0.4, 0.4, 0.4,
		0.4, 0.4, 0.4, 0.4, 0.4, 0.4, 0.4, 0.4, 0.3, 0.3, 0.2, 0.2,
	}
)

// Traffic describes anthropogenic sensible heat from traffic.
type Traffic struct {
	// SensibleHeat is the peak heat flux in W/m².
	SensibleHeat     float64   `json:"sensible_heat" yaml:"sensible_heat" toml:"sensible_heat"`
	WeekdaySchedule  []float64 `json:"weekday_schedule" yaml:"weekday_schedule,omitempty" toml:"weekday_schedule,omitempty"`
	SaturdaySchedule []float64 `json:"saturday_schedule" yaml:"saturday_schedule,omitempty" toml:"saturday_schedule,omitempty"`
	SundaySchedule   []float64 `json:"sunday_schedule" yaml:"sunday_schedule,omitempty" toml:"sunday_schedule,omitempty"`
}

// NewTraffic returns traffic parameters with the typical commercial schedules.
func NewTraffic(sensibleHeat float64) (Traffic, error) {
	t := Traffic{SensibleHeat: sensibleHeat}
	t.ApplyDefaults()
	return t, t.Validate()
}

// DefaultSensibleHeat picks the peak traffic heat for a district from its
// average building height: taller districts carry denser traffic.
func DefaultSensibleHeat(averageBldgHeight float64) float64 {
	switch {
	case averageBldgHeight <= 10:
		return 4
	case averageBldgHeight <= 25:
		return 8
	default:
		return 10
	}
}

// ApplyDefaults fills any empty schedule with the typical commercial one.
func (t *Traffic) ApplyDefaults() {
	if len(t.WeekdaySchedule) == 0 {
		t.WeekdaySchedule = append([]float64(nil), defaultWeekdaySchedule...)
	}
	if len(t.SaturdaySchedule) == 0 {
		t.SaturdaySchedule = append([]float64(nil), defaultSaturdaySchedule...)
	}
	if len(t.SundaySchedule) == 0 {
		t.SundaySchedule = append([]float64(nil), defaultSundaySchedule...)
	}
}

// Validate checks the heat flux and the three schedules.
func (t Traffic) Validate() error {
	if err := check.NonNegative(t.SensibleHeat, "sensible_heat"); err != nil {
		return err
	}
	for _, s := range []struct {
		name  string
		sched []float64
	}{
		{"weekday_schedule", t.WeekdaySchedule},
		{"saturday_schedule", t.SaturdaySchedule},
		{"sunday_schedule", t.SundaySchedule},
	} {
		if err := checkSchedule(s.name, s.sched); err != nil {
			return err
		}
	}
	return nil
}

func checkSchedule(name string, sched []float64) error {
	if len(sched) != HoursPerDay {
		return check.Invalid(name, fmt.Sprintf("a list of %d values", HoursPerDay), fmt.Sprintf("%d values", len(sched)))
	}
	for i, v := range sched {
		if err := check.Fraction(v, fmt.Sprintf("%s[%d]", name, i)); err != nil {
			return err
		}
	}
	return nil
}

func (t Traffic) WeekdayHourlyHeat() []float64  { return t.hourly(t.WeekdaySchedule) }
func (t Traffic) SaturdayHourlyHeat() []float64 { return t.hourly(t.SaturdaySchedule) }
func (t Traffic) SundayHourlyHeat() []float64   { return t.hourly(t.SundaySchedule) }

func (t Traffic) WeekdayAvgHeat() float64  { return floats.Sum(t.WeekdayHourlyHeat()) / HoursPerDay }
func (t Traffic) SaturdayAvgHeat() float64 { return floats.Sum(t.SaturdayHourlyHeat()) / HoursPerDay }
func (t Traffic) SundayAvgHeat() float64   { return floats.Sum(t.SundayHourlyHeat()) / HoursPerDay }

func (t Traffic) hourly(sched []float64) []float64 {
	out := append([]float64(nil), sched...)
	floats.Scale(t.SensibleHeat, out)
	return out
}

// UWGMatrix returns the weekday, Saturday and Sunday schedules in the order
// the engine reads them.
func (t Traffic) UWGMatrix() [][]float64 {
	return [][]float64{
		append([]float64(nil), t.WeekdaySchedule...),
		append([]float64(nil), t.SaturdaySchedule...),
		append([]float64(nil), t.SundaySchedule...),
	}
}

func (t Traffic) String() string {
	return fmt.Sprintf("Traffic Parameters:\n  Max Heat: %g W/m2\n  Weekday Avg Heat: %.2f W/m2\n"+
		"  Saturday Avg Heat: %.2f W/m2\n  Sunday Avg Heat: %.2f W/m2",
		t.SensibleHeat, t.WeekdayAvgHeat(), t.SaturdayAvgHeat(), t.SundayAvgHeat())
}
