package district

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/bldgtypes"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/typology"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/uwgpar"
)

// Record is the serialized form of a District. BuildingTypologies is empty
// while the ratios are authoritative.
type Record struct {
	AverageBldgHeight    float64            `json:"average_bldg_height" yaml:"average_bldg_height" toml:"average_bldg_height" validate:"gte=0"`
	SiteCoverageRatio    float64            `json:"site_coverage_ratio" yaml:"site_coverage_ratio" toml:"site_coverage_ratio" validate:"gte=0,lte=1"`
	FacadeToSiteRatio    float64            `json:"facade_to_site_ratio" yaml:"facade_to_site_ratio" toml:"facade_to_site_ratio" validate:"gte=0"`
	SiteArea             float64            `json:"site_area" yaml:"site_area" toml:"site_area" validate:"gt=0"`
	CharacteristicLength float64            `json:"characteristic_length" yaml:"characteristic_length" toml:"characteristic_length" validate:"gt=0"`
	ClimateZone          string             `json:"climate_zone" yaml:"climate_zone" toml:"climate_zone" validate:"required"`
	BldgTypeRatios       map[string]float64 `json:"bldg_type_ratios" yaml:"bldg_type_ratios" toml:"bldg_type_ratios" validate:"required,min=1"`
	BuildingTypologies   []typology.Record  `json:"building_typologies,omitempty" yaml:"building_typologies,omitempty" toml:"building_typologies,omitempty" validate:"dive"`
	TreeCoverageRatio    float64            `json:"tree_coverage_ratio" yaml:"tree_coverage_ratio" toml:"tree_coverage_ratio" validate:"gte=0,lte=1"`
	GrassCoverageRatio   float64            `json:"grass_coverage_ratio" yaml:"grass_coverage_ratio" toml:"grass_coverage_ratio" validate:"gte=0,lte=1"`
	TrafficParameters    *uwgpar.Traffic    `json:"traffic_parameters,omitempty" yaml:"traffic_parameters,omitempty" toml:"traffic_parameters,omitempty"`
	VegetationParameters *uwgpar.Vegetation `json:"vegetation_parameters,omitempty" yaml:"vegetation_parameters,omitempty" toml:"vegetation_parameters,omitempty"`
	PavementParameters   *uwgpar.Pavement   `json:"pavement_parameters,omitempty" yaml:"pavement_parameters,omitempty" toml:"pavement_parameters,omitempty"`
}

// ToRecord returns the serialized form of d without forcing a rebuild of a
// stale typology list.
func (d *District) ToRecord() Record {
	tr := d.Traffic()
	veg := d.vegetation
	pav := d.pavement
	r := Record{
		AverageBldgHeight:    d.averageBldgHeight,
		SiteCoverageRatio:    d.siteCoverageRatio,
		FacadeToSiteRatio:    d.facadeToSiteRatio,
		SiteArea:             d.siteArea,
		CharacteristicLength: d.characteristicLength,
		ClimateZone:          d.climateZone.String(),
		BldgTypeRatios:       d.BldgTypeRatios(),
		TreeCoverageRatio:    d.treeCoverageRatio,
		GrassCoverageRatio:   d.grassCoverageRatio,
		TrafficParameters:    &tr,
		VegetationParameters: &veg,
		PavementParameters:   &pav,
	}
	if d.authority == TypologiesAuthoritative {
		r.BuildingTypologies = make([]typology.Record, len(d.typologies))
		for i, t := range d.typologies {
			r.BuildingTypologies[i] = t.ToRecord()
		}
	}
	return r
}

// FromRecord rebuilds a District. With typologies the district is built
// bottom-up and the stored geometry is recomputed from them. Without
// typologies the stored geometry and ratios are restored as they are and the
// district is left ratio-authoritative.
func FromRecord(r Record) (*District, error) {
	var opts []Option
	if r.CharacteristicLength != 0 {
		opts = append(opts, WithCharacteristicLength(r.CharacteristicLength))
	}
	opts = append(opts, WithTreeCoverage(r.TreeCoverageRatio), WithGrassCoverage(r.GrassCoverageRatio))
	if r.TrafficParameters != nil {
		opts = append(opts, WithTraffic(*r.TrafficParameters))
	}
	if r.VegetationParameters != nil {
		opts = append(opts, WithVegetation(*r.VegetationParameters))
	}
	if r.PavementParameters != nil {
		opts = append(opts, WithPavement(*r.PavementParameters))
	}

	if len(r.BuildingTypologies) > 0 {
		typs := make([]*typology.Typology, len(r.BuildingTypologies))
		for i, tr := range r.BuildingTypologies {
			t, err := typology.FromRecord(tr)
			if err != nil {
				return nil, fmt.Errorf("building_typologies[%d]: %w", i, err)
			}
			typs[i] = t
		}
		return New(typs, r.SiteArea, r.ClimateZone, opts...)
	}
	return fromStaleRecord(r, opts)
}

func fromStaleRecord(r Record, opts []Option) (*District, error) {
	zone, err := bldgtypes.ParseClimateZone(r.ClimateZone)
	if err != nil {
		return nil, err
	}
	if err := checkGeoParams(r.AverageBldgHeight, r.SiteCoverageRatio, r.FacadeToSiteRatio); err != nil {
		return nil, err
	}
	ratios, err := ParseRatios(r.BldgTypeRatios)
	if err != nil {
		return nil, err
	}
	d, err := newDistrict(zone, opts)
	if err != nil {
		return nil, err
	}
	if d.characteristicLength == 0 {
		d.characteristicLength = DefaultCharacteristicLength
	}
	d.siteArea = r.SiteArea
	if d.siteArea == 0 {
		d.siteArea = d.characteristicLength * d.characteristicLength
	}
	d.averageBldgHeight = r.AverageBldgHeight
	d.siteCoverageRatio = r.SiteCoverageRatio
	d.facadeToSiteRatio = r.FacadeToSiteRatio
	d.ratios = ratios
	d.authority = RatiosAuthoritative
	if d.traffic == nil {
		tr, err := uwgpar.NewTraffic(uwgpar.DefaultSensibleHeat(d.averageBldgHeight))
		if err != nil {
			return nil, err
		}
		d.traffic = &tr
	}
	return d, nil
}

// MarshalJSON encodes d as its Record.
func (d *District) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToRecord())
}

// UnmarshalJSON replaces d with the decoded district.
func (d *District) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	v, err := FromRecord(r)
	if err != nil {
		return err
	}
	*d = *v
	// Typologies point at v; move them to d.
	for _, t := range d.typologies {
		t.Detach()
		if err := t.Attach(d); err != nil {
			return err
		}
	}
	return nil
}

// String summarizes the district geometry and building mix for display.
func (d *District) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "District:\n  Average Height: %.1f m\n  Site Coverage Ratio: %.2f\n"+
		"  Facade to Site Ratio: %.2f\n  Site Area: %.0f m2\n  Climate Zone: %s\n  Building Types:",
		d.averageBldgHeight, d.siteCoverageRatio, d.facadeToSiteRatio, d.siteArea, d.climateZone)
	for _, r := range d.ratios {
		fmt.Fprintf(&b, "\n    %s: %.3f", r.Key, r.Fraction)
	}
	return b.String()
}
