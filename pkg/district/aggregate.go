package district

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/bldgtypes"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/typology"
)

type geometry struct {
	averageBldgHeight float64
	siteCoverageRatio float64
	facadeToSiteRatio float64
	ratios            []Ratio
}

// computeGeometry derives the district geometry of a set of typologies on a
// site without touching the district.
func computeGeometry(siteArea float64, typs []*typology.Typology) (geometry, error) {
	n := len(typs)
	heights := make([]float64, n)
	footprints := make([]float64, n)
	facades := make([]float64, n)
	floorAreas := make([]float64, n)
	for i, t := range typs {
		heights[i] = t.AverageHeight()
		footprints[i] = t.FootprintArea()
		facades[i] = t.FacadeArea()
		floorAreas[i] = t.FloorArea()
	}

	height, err := typology.WeightedMean("average_bldg_height", heights, footprints)
	if err != nil {
		return geometry{}, err
	}
	totalFloor := floats.Sum(floorAreas)
	if totalFloor == 0 {
		return geometry{}, fmt.Errorf("bldg_type_ratios: %w", check.ErrEmptyAggregate)
	}

	coverage := floats.Sum(footprints) / siteArea
	if coverage > 1+RatioTolerance {
		return geometry{}, check.Invalid("site_coverage_ratio", "between 0 and 1 (total footprint within the site area)", coverage)
	}
	coverage = math.Min(coverage, 1)

	ratios := make([]Ratio, n)
	for i, t := range typs {
		ratios[i] = Ratio{Key: t.Key(), Fraction: floorAreas[i] / totalFloor}
	}
	return geometry{
		averageBldgHeight: height,
		siteCoverageRatio: coverage,
		facadeToSiteRatio: floats.Sum(facades) / siteArea,
		ratios:            ratios,
	}, nil
}

func (d *District) applyGeometry(g geometry) {
	d.averageBldgHeight = g.averageBldgHeight
	d.siteCoverageRatio = g.siteCoverageRatio
	d.facadeToSiteRatio = g.facadeToSiteRatio
	d.ratios = g.ratios
}

// UpdateGeometry recomputes the average height, site coverage, facade-to-site
// ratio and floor area ratios from the current typologies. Typologies call it
// from their geometry setters; call it directly after bulk edits. The
// district is left unchanged when the recomputation fails.
func (d *District) UpdateGeometry() error {
	typs, err := d.BuildingTypologies()
	if err != nil {
		return err
	}
	g, err := computeGeometry(d.siteArea, typs)
	if err != nil {
		return err
	}
	d.applyGeometry(g)
	return nil
}

// weighted averages one typology property over the building stock.
func (d *District) weighted(field string, value, weight func(*typology.Typology) float64) (float64, error) {
	typs, err := d.BuildingTypologies()
	if err != nil {
		return 0, err
	}
	values := make([]float64, len(typs))
	weights := make([]float64, len(typs))
	for i, t := range typs {
		values[i] = value(t)
		weights[i] = weight(t)
	}
	return typology.WeightedMean(field, values, weights)
}

func floorArea(t *typology.Typology) float64     { return t.FloorArea() }
func facadeArea(t *typology.Typology) float64    { return t.FacadeArea() }
func footprintArea(t *typology.Typology) float64 { return t.FootprintArea() }

func glazedArea(t *typology.Typology) float64 {
	return t.FacadeArea() * t.GlazingRatio()
}

// FloorHeight is the floor-to-floor height averaged by floor area.
func (d *District) FloorHeight() (float64, error) {
	return d.weighted("floor_height", (*typology.Typology).FloorToFloor, floorArea)
}

// GlazingRatio is the glazing ratio averaged by facade area.
func (d *District) GlazingRatio() (float64, error) {
	return d.weighted("glz_ratio", (*typology.Typology).GlazingRatio, facadeArea)
}

// FractHeatToCanyon is the canyon heat fraction averaged by floor area.
func (d *District) FractHeatToCanyon() (float64, error) {
	return d.weighted("fract_heat_to_canyon", (*typology.Typology).FractHeatToCanyon, floorArea)
}

// WallAlbedo is the wall albedo averaged by facade area.
func (d *District) WallAlbedo() (float64, error) {
	return d.weighted("wall_albedo", (*typology.Typology).WallAlbedo, facadeArea)
}

// RoofAlbedo is the roof albedo averaged by footprint area.
func (d *District) RoofAlbedo() (float64, error) {
	return d.weighted("roof_albedo", (*typology.Typology).RoofAlbedo, footprintArea)
}

// RoofVegFraction is the vegetated roof fraction averaged by footprint area.
func (d *District) RoofVegFraction() (float64, error) {
	return d.weighted("roof_veg_fraction", (*typology.Typology).RoofVegFraction, footprintArea)
}

// SHGC is the solar heat gain coefficient averaged by glazed area. Typologies
// without a value are resolved from the district climate zone first.
func (d *District) SHGC() (float64, error) {
	typs, err := d.BuildingTypologies()
	if err != nil {
		return 0, err
	}
	for _, t := range typs {
		if err := t.ResolveSHGC(d.climateZone); err != nil {
			return 0, fmt.Errorf("resolving shgc of %s: %w", t.Key(), err)
		}
	}
	return d.SHGCFor(d.climateZone)
}

// SHGCFor is SHGC as it would be in zone: explicitly set typology values are
// kept and table defaults are looked up for zone. The district is not
// modified.
func (d *District) SHGCFor(zone bldgtypes.ClimateZone) (float64, error) {
	typs, err := d.BuildingTypologies()
	if err != nil {
		return 0, err
	}
	values := make([]float64, len(typs))
	weights := make([]float64, len(typs))
	for i, t := range typs {
		v, err := t.SHGCFor(zone)
		if err != nil {
			return 0, fmt.Errorf("resolving shgc of %s: %w", t.Key(), err)
		}
		values[i] = v
		weights[i] = glazedArea(t)
	}
	return typology.WeightedMean("shgc", values, weights)
}

// UWGMatrix returns the floor area fraction of every program (rows) and era
// (columns), rounded to three decimals. Absent combinations are zero.
func (d *District) UWGMatrix() [bldgtypes.NumPrograms][bldgtypes.NumEras]float64 {
	var m [bldgtypes.NumPrograms][bldgtypes.NumEras]float64
	for _, r := range d.ratios {
		m[r.Key.Program.Index()][r.Key.Era.Index()] = round3(r.Fraction)
	}
	return m
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
