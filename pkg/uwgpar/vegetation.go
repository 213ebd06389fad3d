package uwgpar

import (
	"fmt"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

// AutocalcMonth lets the engine derive the vegetation season from the
// weather file (months averaging above 10 °C).
const AutocalcMonth = 0

var monthNames = [13]string{
	"Autocalc", "Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Vegetation describes how district vegetation behaves.
type Vegetation struct {
	Albedo              float64 `json:"vegetation_albedo" yaml:"vegetation_albedo" toml:"vegetation_albedo"`
	StartMonth          int     `json:"vegetation_start_month" yaml:"vegetation_start_month" toml:"vegetation_start_month"`
	EndMonth            int     `json:"vegetation_end_month" yaml:"vegetation_end_month" toml:"vegetation_end_month"`
	TreeLatentFraction  float64 `json:"tree_latent_fraction" yaml:"tree_latent_fraction" toml:"tree_latent_fraction"`
	GrassLatentFraction float64 `json:"grass_latent_fraction" yaml:"grass_latent_fraction" toml:"grass_latent_fraction"`
}

// DefaultVegetation returns typical vegetation with an automatic season.
func DefaultVegetation() Vegetation {
	return Vegetation{
		Albedo:              0.25,
		StartMonth:          AutocalcMonth,
		EndMonth:            AutocalcMonth,
		TreeLatentFraction:  0.7,
		GrassLatentFraction: 0.5,
	}
}

func (v Vegetation) Validate() error {
	if err := check.Fraction(v.Albedo, "vegetation_albedo"); err != nil {
		return err
	}
	if v.StartMonth < 0 || v.StartMonth > 12 {
		return check.Invalid("vegetation_start_month", "between 0 and 12", v.StartMonth)
	}
	if v.EndMonth < 0 || v.EndMonth > 12 {
		return check.Invalid("vegetation_end_month", "between 0 and 12", v.EndMonth)
	}
	if err := check.Fraction(v.TreeLatentFraction, "tree_latent_fraction"); err != nil {
		return err
	}
	return check.Fraction(v.GrassLatentFraction, "grass_latent_fraction")
}

// StartMonthName returns "Autocalc" or the abbreviated month name.
func (v Vegetation) StartMonthName() string { return monthName(v.StartMonth) }

// EndMonthName returns "Autocalc" or the abbreviated month name.
func (v Vegetation) EndMonthName() string { return monthName(v.EndMonth) }

func monthName(m int) string {
	if m < 0 || m >= len(monthNames) {
		return fmt.Sprintf("Month(%d)", m)
	}
	return monthNames[m]
}

func (v Vegetation) String() string {
	return fmt.Sprintf("Vegetation Parameters:\n  Albedo: %g\n  Vegetation Time: %s - %s\n"+
		"  Tree | Grass Latent: %g | %g",
		v.Albedo, v.StartMonthName(), v.EndMonthName(), v.TreeLatentFraction, v.GrassLatentFraction)
}
