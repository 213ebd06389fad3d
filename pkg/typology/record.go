package typology

import (
	"encoding/json"
	"fmt"
)

// Record is the serialized form of a Typology. Optional parameters that were
// never set, and an SHGC taken from the zone table, are omitted so that
// defaults keep resolving lazily after a round trip.
type Record struct {
	AverageHeight     float64  `json:"average_height" yaml:"average_height" toml:"average_height" validate:"gte=0"`
	FootprintArea     float64  `json:"footprint_area" yaml:"footprint_area" toml:"footprint_area" validate:"gte=0"`
	FacadeArea        float64  `json:"facade_area" yaml:"facade_area" toml:"facade_area" validate:"gte=0"`
	BldgProgram       string   `json:"bldg_program" yaml:"bldg_program" toml:"bldg_program" validate:"required"`
	BldgEra           string   `json:"bldg_era" yaml:"bldg_era" toml:"bldg_era" validate:"required"`
	FloorToFloor      *float64 `json:"floor_to_floor,omitempty" yaml:"floor_to_floor,omitempty" toml:"floor_to_floor,omitempty" validate:"omitempty,gt=0"`
	FloorArea         *float64 `json:"floor_area,omitempty" yaml:"floor_area,omitempty" toml:"floor_area,omitempty" validate:"omitempty,gte=0"`
	GlzRatio          *float64 `json:"glz_ratio,omitempty" yaml:"glz_ratio,omitempty" toml:"glz_ratio,omitempty" validate:"omitempty,gte=0,lte=1"`
	FractHeatToCanyon *float64 `json:"fract_heat_to_canyon,omitempty" yaml:"fract_heat_to_canyon,omitempty" toml:"fract_heat_to_canyon,omitempty" validate:"omitempty,gte=0,lte=1"`
	SHGC              *float64 `json:"shgc,omitempty" yaml:"shgc,omitempty" toml:"shgc,omitempty" validate:"omitempty,gte=0,lte=1"`
	WallAlbedo        *float64 `json:"wall_albedo,omitempty" yaml:"wall_albedo,omitempty" toml:"wall_albedo,omitempty" validate:"omitempty,gte=0,lte=1"`
	RoofAlbedo        *float64 `json:"roof_albedo,omitempty" yaml:"roof_albedo,omitempty" toml:"roof_albedo,omitempty" validate:"omitempty,gte=0,lte=1"`
	RoofVegFraction   *float64 `json:"roof_veg_fraction,omitempty" yaml:"roof_veg_fraction,omitempty" toml:"roof_veg_fraction,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// ToRecord returns the serialized form of t.
func (t *Typology) ToRecord() Record {
	ftf := t.floorToFloor
	heat := t.fractHeatToCanyon
	veg := t.roofVegFraction
	shgc := t.shgc
	if t.shgcDefaulted {
		shgc = nil
	}
	return Record{
		AverageHeight:     t.averageHeight,
		FootprintArea:     t.footprintArea,
		FacadeArea:        t.facadeArea,
		BldgProgram:       t.program.String(),
		BldgEra:           t.era.String(),
		FloorToFloor:      &ftf,
		FloorArea:         clonePtr(t.floorArea),
		GlzRatio:          clonePtr(t.glzRatio),
		FractHeatToCanyon: &heat,
		SHGC:              clonePtr(shgc),
		WallAlbedo:        clonePtr(t.wallAlbedo),
		RoofAlbedo:        clonePtr(t.roofAlbedo),
		RoofVegFraction:   &veg,
	}
}

// FromRecord builds a validated, unparented Typology from r.
func FromRecord(r Record) (*Typology, error) {
	var opts []Option
	if r.FloorToFloor != nil {
		opts = append(opts, WithFloorToFloor(*r.FloorToFloor))
	}
	if r.FloorArea != nil {
		opts = append(opts, WithFloorArea(*r.FloorArea))
	}
	if r.GlzRatio != nil {
		opts = append(opts, WithGlazingRatio(*r.GlzRatio))
	}
	if r.FractHeatToCanyon != nil {
		opts = append(opts, WithFractHeatToCanyon(*r.FractHeatToCanyon))
	}
	if r.SHGC != nil {
		opts = append(opts, WithSHGC(*r.SHGC))
	}
	if r.WallAlbedo != nil {
		opts = append(opts, WithWallAlbedo(*r.WallAlbedo))
	}
	if r.RoofAlbedo != nil {
		opts = append(opts, WithRoofAlbedo(*r.RoofAlbedo))
	}
	if r.RoofVegFraction != nil {
		opts = append(opts, WithRoofVegFraction(*r.RoofVegFraction))
	}
	t, err := New(r.AverageHeight, r.FootprintArea, r.FacadeArea, r.BldgProgram, r.BldgEra, opts...)
	if err != nil {
		return nil, fmt.Errorf("typology %s,%s: %w", r.BldgProgram, r.BldgEra, err)
	}
	return t, nil
}

// MarshalJSON encodes t as its Record.
func (t *Typology) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToRecord())
}

// UnmarshalJSON replaces t with the decoded typology. The parent link is not
// part of the serialized form and is cleared.
func (t *Typology) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	v, err := FromRecord(r)
	if err != nil {
		return err
	}
	*t = *v
	return nil
}
