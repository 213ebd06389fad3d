package spec

import (
	"github.com/ladybug-tools/dragonfly-uwg/pkg/simpar"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/typology"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/uwgpar"
)

// Project is the top-level project file: one district and the settings of
// the UWG run that simulates it.
type Project struct {
	SpecVersion string           `yaml:"spec_version" json:"spec_version" toml:"spec_version" validate:"required"`
	Name        string           `yaml:"name" json:"name" toml:"name"`
	District    DistrictDef      `yaml:"district" json:"district" toml:"district"`
	Simulation  simpar.Parameter `yaml:"simulation_parameter" json:"simulation_parameter" toml:"simulation_parameter"`
}

// DistrictDef describes a district either by its typologies (with SiteArea)
// or by aggregate geometry and BldgTypeRatios.
type DistrictDef struct {
	ClimateZone          string  `yaml:"climate_zone" json:"climate_zone" toml:"climate_zone" validate:"required"`
	SiteArea             float64 `yaml:"site_area,omitempty" json:"site_area,omitempty" toml:"site_area,omitempty" validate:"gte=0"`
	CharacteristicLength float64 `yaml:"characteristic_length,omitempty" json:"characteristic_length,omitempty" toml:"characteristic_length,omitempty" validate:"gte=0"`

	AverageBldgHeight float64 `yaml:"average_bldg_height,omitempty" json:"average_bldg_height,omitempty" toml:"average_bldg_height,omitempty" validate:"gte=0"`
	SiteCoverageRatio float64 `yaml:"site_coverage_ratio,omitempty" json:"site_coverage_ratio,omitempty" toml:"site_coverage_ratio,omitempty" validate:"gte=0,lte=1"`
	FacadeToSiteRatio float64 `yaml:"facade_to_site_ratio,omitempty" json:"facade_to_site_ratio,omitempty" toml:"facade_to_site_ratio,omitempty" validate:"gte=0"`
	// BldgTypeRatios values are coerced to numbers, so quoted numbers and
	// integers are accepted.
	BldgTypeRatios map[string]any `yaml:"bldg_type_ratios,omitempty" json:"bldg_type_ratios,omitempty" toml:"bldg_type_ratios,omitempty"`

	Typologies []typology.Record `yaml:"building_typologies,omitempty" json:"building_typologies,omitempty" toml:"building_typologies,omitempty" validate:"dive"`
	// FootprintTypologies are measured from building outlines and join
	// Typologies when the district is built.
	FootprintTypologies []FootprintDef `yaml:"footprint_typologies,omitempty" json:"footprint_typologies,omitempty" toml:"footprint_typologies,omitempty" validate:"dive"`

	TreeCoverageRatio  float64           `yaml:"tree_coverage_ratio" json:"tree_coverage_ratio" toml:"tree_coverage_ratio" validate:"gte=0,lte=1"`
	GrassCoverageRatio float64           `yaml:"grass_coverage_ratio" json:"grass_coverage_ratio" toml:"grass_coverage_ratio" validate:"gte=0,lte=1"`
	Traffic            *uwgpar.Traffic   `yaml:"traffic_parameters,omitempty" json:"traffic_parameters,omitempty" toml:"traffic_parameters,omitempty"`
	Vegetation         uwgpar.Vegetation `yaml:"vegetation_parameters" json:"vegetation_parameters" toml:"vegetation_parameters"`
	Pavement           uwgpar.Pavement   `yaml:"pavement_parameters" json:"pavement_parameters" toml:"pavement_parameters"`
}

// TopDown reports whether the district is described by ratios rather than
// typologies.
func (d DistrictDef) TopDown() bool {
	return len(d.Typologies) == 0 && len(d.FootprintTypologies) == 0
}

// FootprintDef is a typology given as building outlines in metres on a local
// plane. NumberOfStories holds either one average for all footprints or one
// value per footprint.
type FootprintDef struct {
	BldgProgram     string          `yaml:"bldg_program" json:"bldg_program" toml:"bldg_program" validate:"required"`
	BldgEra         string          `yaml:"bldg_era" json:"bldg_era" toml:"bldg_era" validate:"required"`
	Footprints      []FootprintGeom `yaml:"footprints" json:"footprints" toml:"footprints" validate:"required,min=1,dive"`
	NumberOfStories []float64       `yaml:"number_of_stories" json:"number_of_stories" toml:"number_of_stories" validate:"required,min=1,dive,gte=1"`
	FloorToFloor    *float64        `yaml:"floor_to_floor,omitempty" json:"floor_to_floor,omitempty" toml:"floor_to_floor,omitempty" validate:"omitempty,gt=0"`
	GlzRatio        *float64        `yaml:"glz_ratio,omitempty" json:"glz_ratio,omitempty" toml:"glz_ratio,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// FootprintGeom is one outline as [x, y] vertices with optional courtyard
// holes.
type FootprintGeom struct {
	Outer [][]float64   `yaml:"outer" json:"outer" toml:"outer" validate:"required,min=3,dive,len=2"`
	Holes [][][]float64 `yaml:"holes,omitempty" json:"holes,omitempty" toml:"holes,omitempty"`
}
