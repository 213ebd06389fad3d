package uwgpar

import (
	"fmt"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

// Pavement describes the road material of the district.
type Pavement struct {
	Albedo float64 `json:"albedo" yaml:"albedo" toml:"albedo"`
	// Thickness in meters.
	Thickness float64 `json:"thickness" yaml:"thickness" toml:"thickness"`
	// Conductivity in W/m-K.
	Conductivity float64 `json:"conductivity" yaml:"conductivity" toml:"conductivity"`
	// VolumetricHeatCapacity in J/m³-K.
	VolumetricHeatCapacity float64 `json:"volumetric_heat_capacity" yaml:"volumetric_heat_capacity" toml:"volumetric_heat_capacity"`
}

// DefaultPavement returns asphalt-like pavement.
func DefaultPavement() Pavement {
	return Pavement{
		Albedo:                 0.1,
		Thickness:              0.5,
		Conductivity:           1,
		VolumetricHeatCapacity: 1_600_000,
	}
}

func (p Pavement) Validate() error {
	if err := check.Fraction(p.Albedo, "albedo"); err != nil {
		return err
	}
	if err := check.NonNegative(p.Thickness, "thickness"); err != nil {
		return err
	}
	if err := check.NonNegative(p.Conductivity, "conductivity"); err != nil {
		return err
	}
	return check.NonNegative(p.VolumetricHeatCapacity, "volumetric_heat_capacity")
}

func (p Pavement) String() string {
	return fmt.Sprintf("Pavement Parameters:\n  Albedo: %g\n  Thickness: %g m\n  Conductivity: %g W/m-K\n"+
		"  Volumetric Heat Capacity: %g J/m3-K",
		p.Albedo, p.Thickness, p.Conductivity, p.VolumetricHeatCapacity)
}
