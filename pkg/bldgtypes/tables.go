package bldgtypes

import (
	"fmt"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

// Default glazing ratios from an analysis of the DoE commercial reference
// buildings.
var glazingRatio = [NumPrograms]float64{
	FullServiceRestaurant:  0.182,
	Hospital:               0.1461,
	LargeHotel:             0.2663,
	LargeOffice:            0.38,
	MediumOffice:           0.33,
	MidRiseApartment:       0.1499,
	OutPatient:             0.1985,
	PrimarySchool:          0.35,
	QuickServiceRestaurant: 0.14,
	SecondarySchool:        0.34,
	SmallHotel:             0.1087,
	SmallOffice:            0.212,
	StandAloneRetail:       0.071,
	StripMall:              0.105,
	SuperMarket:            0.109,
	WareHouse:              0.0058,
}

var wallAlbedo = [NumPrograms]float64{
	FullServiceRestaurant:  0.15,
	Hospital:               0.08,
	LargeHotel:             0.08,
	LargeOffice:            0.08,
	MediumOffice:           0.15,
	MidRiseApartment:       0.15,
	OutPatient:             0.15,
	PrimarySchool:          0.15,
	QuickServiceRestaurant: 0.22,
	SecondarySchool:        0.15,
	SmallHotel:             0.15,
	SmallOffice:            0.08,
	StandAloneRetail:       0.08,
	StripMall:              0.08,
	SuperMarket:            0.08,
	WareHouse:              0.08,
}

var roofAlbedo = [NumEras]float64{
	Pre1980s:        0.2,
	Present1980s:    0.2,
	NewConstruction: 0.7,
}

// SHGC rows are indexed by climate zone. The reference table has no row for
// index 15 (zone 8), so lookups there fail.
var shgc = [NumEras][]float64{
	Pre1980s: {
		0.54, 0.54, 0.54, 0.54, 0.54, 0.54, 0.54, 0.54,
		0.54, 0.54, 0.407, 0.407, 0.407, 0.407, 0.407,
	},
	Present1980s: {
		0.251, 0.251, 0.251, 0.255, 0.44, 0.251, 0.392, 0.355,
		0.362, 0.392, 0.385, 0.385, 0.385, 0.385, 0.487,
	},
	NewConstruction: {
		0.251, 0.251, 0.251, 0.252, 0.252, 0.252, 0.39, 0.385,
		0.385, 0.385, 0.385, 0.385, 0.385, 0.385, 0.487,
	},
}

// GlazingRatio returns the default glazing ratio of a program.
func GlazingRatio(p Program) (float64, error) {
	if !p.Valid() {
		return 0, &check.LookupError{Table: "glazing_ratio", Key: p.String()}
	}
	return glazingRatio[p], nil
}

// WallAlbedo returns the default exterior wall albedo of a program.
func WallAlbedo(p Program) (float64, error) {
	if !p.Valid() {
		return 0, &check.LookupError{Table: "wall_albedo", Key: p.String()}
	}
	return wallAlbedo[p], nil
}

// RoofAlbedo returns the default roof albedo of a construction era.
func RoofAlbedo(e Era) (float64, error) {
	if !e.Valid() {
		return 0, &check.LookupError{Table: "roof_albedo", Key: e.String()}
	}
	return roofAlbedo[e], nil
}

// SHGC returns the default solar heat gain coefficient for an era in a
// climate zone. Zone 8 has no entry and yields a lookup error.
func SHGC(e Era, z ClimateZone) (float64, error) {
	if !e.Valid() {
		return 0, &check.LookupError{Table: "shgc", Key: e.String()}
	}
	row := shgc[e]
	if z < 0 || int(z) >= len(row) {
		return 0, &check.LookupError{Table: "shgc", Key: fmt.Sprintf("%s,%s", e, z)}
	}
	return row[z], nil
}
