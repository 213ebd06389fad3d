// Package simpar holds the simulation settings of a UWG run that do not
// describe the district itself.
package simpar

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/bldgtypes"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

// DefaultTimestep is the number of simulation steps per hour.
const DefaultTimestep = 12

// ValidTimesteps are the per-hour step counts that divide an hour evenly.
var ValidTimesteps = []int{1, 2, 3, 4, 5, 6, 10, 12, 15, 20, 30, 60}

// ReferenceEPWSite describes the rural station the weather file was recorded at.
type ReferenceEPWSite struct {
	AverageObstacleHeight float64 `json:"average_obstacle_height" yaml:"average_obstacle_height" toml:"average_obstacle_height"`
	VegetationCoverage    float64 `json:"vegetation_coverage" yaml:"vegetation_coverage" toml:"vegetation_coverage"`
	TempMeasureHeight     float64 `json:"temp_measure_height" yaml:"temp_measure_height" toml:"temp_measure_height"`
	WindMeasureHeight     float64 `json:"wind_measure_height" yaml:"wind_measure_height" toml:"wind_measure_height"`
}

// DefaultReferenceEPWSite is a typical airport weather station.
func DefaultReferenceEPWSite() ReferenceEPWSite {
	return ReferenceEPWSite{
		AverageObstacleHeight: 0.1,
		VegetationCoverage:    0.9,
		TempMeasureHeight:     10,
		WindMeasureHeight:     10,
	}
}

func (r ReferenceEPWSite) Validate() error {
	if err := check.NonNegative(r.AverageObstacleHeight, "average_obstacle_height"); err != nil {
		return err
	}
	if err := check.Fraction(r.VegetationCoverage, "vegetation_coverage"); err != nil {
		return err
	}
	if err := check.NonNegative(r.TempMeasureHeight, "temp_measure_height"); err != nil {
		return err
	}
	return check.NonNegative(r.WindMeasureHeight, "wind_measure_height")
}

func (r ReferenceEPWSite) String() string {
	return fmt.Sprintf("ReferenceEPWSite: [obstacle height: %g m] [veg coverage: %g]",
		r.AverageObstacleHeight, r.VegetationCoverage)
}

// BoundaryLayer holds the urban boundary layer heights (m) and mixing
// coefficients.
type BoundaryLayer struct {
	DayHeight              float64 `json:"day_boundary_layer_height" yaml:"day_boundary_layer_height" toml:"day_boundary_layer_height"`
	NightHeight            float64 `json:"night_boundary_layer_height" yaml:"night_boundary_layer_height" toml:"night_boundary_layer_height"`
	InversionHeight        float64 `json:"inversion_height" yaml:"inversion_height" toml:"inversion_height"`
	CirculationCoefficient float64 `json:"circulation_coefficient" yaml:"circulation_coefficient" toml:"circulation_coefficient"`
	ExchangeCoefficient    float64 `json:"exchange_coefficient" yaml:"exchange_coefficient" toml:"exchange_coefficient"`
}

func DefaultBoundaryLayer() BoundaryLayer {
	return BoundaryLayer{
		DayHeight:              1000,
		NightHeight:            80,
		InversionHeight:        150,
		CirculationCoefficient: 1.2,
		ExchangeCoefficient:    1.0,
	}
}

func (b BoundaryLayer) Validate() error {
	fields := []struct {
		v    float64
		name string
	}{
		{b.DayHeight, "day_boundary_layer_height"},
		{b.NightHeight, "night_boundary_layer_height"},
		{b.InversionHeight, "inversion_height"},
		{b.CirculationCoefficient, "circulation_coefficient"},
		{b.ExchangeCoefficient, "exchange_coefficient"},
	}
	for _, f := range fields {
		if err := check.NonNegative(f.v, f.name); err != nil {
			return err
		}
	}
	return nil
}

func (b BoundaryLayer) String() string {
	return fmt.Sprintf("BoundaryLayerParameter: [boundary (day | night): %g m | %g m]", b.DayHeight, b.NightHeight)
}

// Parameter is the full simulation parameter set. A nil ClimateZone means the
// district's zone is used.
type Parameter struct {
	ClimateZone      *bldgtypes.ClimateZone `json:"climate_zone,omitempty" yaml:"climate_zone,omitempty" toml:"climate_zone,omitempty"`
	RunPeriod        RunPeriod              `json:"run_period" yaml:"run_period" toml:"run_period"`
	Timestep         int                    `json:"timestep" yaml:"timestep" toml:"timestep"`
	ReferenceEPWSite ReferenceEPWSite       `json:"reference_epw_site" yaml:"reference_epw_site" toml:"reference_epw_site"`
	BoundaryLayer    BoundaryLayer          `json:"boundary_layer_parameter" yaml:"boundary_layer_parameter" toml:"boundary_layer_parameter"`
}

// Default returns a full-year simulation at five-minute steps.
func Default() Parameter {
	return Parameter{
		RunPeriod:        DefaultRunPeriod(),
		Timestep:         DefaultTimestep,
		ReferenceEPWSite: DefaultReferenceEPWSite(),
		BoundaryLayer:    DefaultBoundaryLayer(),
	}
}

func (p Parameter) Validate() error {
	if p.ClimateZone != nil && !p.ClimateZone.Valid() {
		return check.Invalid("climate_zone", "an enumerated climate zone", int(*p.ClimateZone))
	}
	if err := p.RunPeriod.Validate(); err != nil {
		return err
	}
	if !slices.Contains(ValidTimesteps, p.Timestep) {
		return check.Invalid("timestep", fmt.Sprintf("one of %v", ValidTimesteps), p.Timestep)
	}
	if err := p.ReferenceEPWSite.Validate(); err != nil {
		return fmt.Errorf("reference_epw_site: %w", err)
	}
	if err := p.BoundaryLayer.Validate(); err != nil {
		return fmt.Errorf("boundary_layer_parameter: %w", err)
	}
	return nil
}

// SetClimateZone overrides the district zone; an empty string clears the
// override.
func (p *Parameter) SetClimateZone(s string) error {
	if s == "" {
		p.ClimateZone = nil
		return nil
	}
	z, err := bldgtypes.ParseClimateZone(s)
	if err != nil {
		return err
	}
	p.ClimateZone = &z
	return nil
}

// Zone returns the override zone, or fallback when none is set.
func (p Parameter) Zone(fallback bldgtypes.ClimateZone) bldgtypes.ClimateZone {
	if p.ClimateZone != nil {
		return *p.ClimateZone
	}
	return fallback
}

// SimulationStep is the length of one simulation step in seconds.
func (p Parameter) SimulationStep() int {
	return 3600 / p.Timestep
}

func (p Parameter) String() string {
	zone := "Autocalculate"
	if p.ClimateZone != nil {
		zone = p.ClimateZone.String()
	}
	return "UWG SimulationParameter:\n  Climate Zone: " + zone +
		"\n  " + p.RunPeriod.String() +
		"\n  Timestep: " + strconv.Itoa(p.Timestep) + " per hour" +
		"\n  " + p.ReferenceEPWSite.String() +
		"\n  " + p.BoundaryLayer.String()
}
