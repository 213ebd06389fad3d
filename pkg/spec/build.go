package spec

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/district"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/geo"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/simpar"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/typology"
)

// Ratios coerces the ratio dictionary to numbers.
func (d DistrictDef) Ratios() (map[string]float64, error) {
	out := make(map[string]float64, len(d.BldgTypeRatios))
	for k, v := range d.BldgTypeRatios {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, fmt.Errorf("bldg_type_ratios[%s]: %w", k, err)
		}
		out[k] = f
	}
	return out, nil
}

func (d DistrictDef) options() []district.Option {
	opts := []district.Option{
		district.WithTreeCoverage(d.TreeCoverageRatio),
		district.WithGrassCoverage(d.GrassCoverageRatio),
		district.WithVegetation(d.Vegetation),
		district.WithPavement(d.Pavement),
	}
	if d.CharacteristicLength > 0 {
		opts = append(opts, district.WithCharacteristicLength(d.CharacteristicLength))
	}
	if d.Traffic != nil {
		opts = append(opts, district.WithTraffic(*d.Traffic))
	}
	return opts
}

// BuildDistrict builds the district the project describes.
func (p *Project) BuildDistrict() (*district.District, error) {
	def := p.District
	if def.TopDown() {
		ratios, err := def.Ratios()
		if err != nil {
			return nil, err
		}
		return district.FromGeoParams(def.AverageBldgHeight, def.SiteCoverageRatio, def.FacadeToSiteRatio,
			ratios, def.ClimateZone, def.options()...)
	}

	typs := make([]*typology.Typology, len(def.Typologies))
	for i, r := range def.Typologies {
		t, err := typology.FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("building_typologies[%d]: %w", i, err)
		}
		typs[i] = t
	}
	for i, f := range def.FootprintTypologies {
		t, err := f.Typology()
		if err != nil {
			return nil, fmt.Errorf("footprint_typologies[%d]: %w", i, err)
		}
		typs = append(typs, t)
	}
	return district.New(typs, def.SiteArea, def.ClimateZone, def.options()...)
}

// Typology measures the footprints into a typology.
func (f FootprintDef) Typology() (*typology.Typology, error) {
	fps := make([]geo.Footprint, len(f.Footprints))
	for i, g := range f.Footprints {
		fp, err := geo.NewFootprint(g.Outer, g.Holes...)
		if err != nil {
			return nil, fmt.Errorf("footprints[%d]: %w", i, err)
		}
		fps[i] = fp
	}

	var opts []typology.Option
	if f.FloorToFloor != nil {
		opts = append(opts, typology.WithFloorToFloor(*f.FloorToFloor))
	}
	if f.GlzRatio != nil {
		opts = append(opts, typology.WithGlazingRatio(*f.GlzRatio))
	}
	if len(f.NumberOfStories) == 1 {
		return typology.FromFootprints(fps, f.NumberOfStories[0], f.BldgProgram, f.BldgEra, opts...)
	}
	return typology.FromFootprintsAndStories(fps, f.NumberOfStories, f.BldgProgram, f.BldgEra, opts...)
}

// SimulationParameter returns the validated simulation settings.
func (p *Project) SimulationParameter() (simpar.Parameter, error) {
	if err := p.Simulation.Validate(); err != nil {
		return simpar.Parameter{}, fmt.Errorf("simulation_parameter: %w", err)
	}
	return p.Simulation, nil
}
