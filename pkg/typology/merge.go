package typology

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

// WeightedMean returns Σ(values·weights)/Σ(weights). It fails with
// check.ErrEmptyAggregate when the weights sum to zero, including when there
// are no values.
func WeightedMean(field string, values, weights []float64) (float64, error) {
	if len(values) != len(weights) {
		return 0, fmt.Errorf("%s: %d values for %d weights: %w", field, len(values), len(weights), check.ErrMismatch)
	}
	if len(weights) == 0 || floats.Sum(weights) == 0 {
		return 0, fmt.Errorf("%s: %w", field, check.ErrEmptyAggregate)
	}
	return stat.Mean(values, weights), nil
}

// Merge combines two typologies of the same program and era. Areas are summed
// and every intensive property is averaged with the area it physically scales
// with: height and roof properties by footprint, floor-to-floor and canyon
// heat by floor area, glazing ratio and wall albedo by facade, SHGC by glazed
// area. Neither input is modified and the result has no parent.
func Merge(a, b *Typology) (*Typology, error) {
	if a.program != b.program {
		return nil, fmt.Errorf("merging %s with %s: bldg_program differs: %w", a.Key(), b.Key(), check.ErrMismatch)
	}
	if a.era != b.era {
		return nil, fmt.Errorf("merging %s with %s: bldg_era differs: %w", a.Key(), b.Key(), check.ErrMismatch)
	}

	footprint := []float64{a.footprintArea, b.footprintArea}
	facade := []float64{a.facadeArea, b.facadeArea}
	floor := []float64{a.FloorArea(), b.FloorArea()}

	height, err := WeightedMean("average_height", pair(a, b, (*Typology).AverageHeight), footprint)
	if err != nil {
		return nil, err
	}
	floorToFloor, err := WeightedMean("floor_to_floor", pair(a, b, (*Typology).FloorToFloor), floor)
	if err != nil {
		return nil, err
	}
	heatToCanyon, err := WeightedMean("fract_heat_to_canyon", pair(a, b, (*Typology).FractHeatToCanyon), floor)
	if err != nil {
		return nil, err
	}
	glzRatio, err := WeightedMean("glz_ratio", pair(a, b, (*Typology).GlazingRatio), facade)
	if err != nil {
		return nil, err
	}
	wallAlbedo, err := WeightedMean("wall_albedo", pair(a, b, (*Typology).WallAlbedo), facade)
	if err != nil {
		return nil, err
	}
	roofAlbedo, err := WeightedMean("roof_albedo", pair(a, b, (*Typology).RoofAlbedo), footprint)
	if err != nil {
		return nil, err
	}
	roofVeg, err := WeightedMean("roof_veg_fraction", pair(a, b, (*Typology).RoofVegFraction), footprint)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithFloorToFloor(floorToFloor),
		WithFloorArea(floats.Sum(floor)),
		WithGlazingRatio(unit(glzRatio)),
		WithWallAlbedo(unit(wallAlbedo)),
		WithRoofAlbedo(unit(roofAlbedo)),
		WithFractHeatToCanyon(unit(heatToCanyon)),
		WithRoofVegFraction(unit(roofVeg)),
	}

	// A missing SHGC stays missing rather than being defaulted mid-merge, and
	// two table defaults stay unset so the next district zone resolves them.
	shgcA, okA := a.SHGC()
	shgcB, okB := b.SHGC()
	if okA && okB && !(a.SHGCDefaulted() && b.SHGCDefaulted()) {
		glazed := []float64{a.facadeArea * a.GlazingRatio(), b.facadeArea * b.GlazingRatio()}
		shgc, err := WeightedMean("shgc", []float64{shgcA, shgcB}, glazed)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithSHGC(unit(shgc)))
	}

	return NewOf(height, floats.Sum(footprint), floats.Sum(facade), a.Key(), opts...)
}

func pair(a, b *Typology, get func(*Typology) float64) []float64 {
	return []float64{get(a), get(b)}
}

// unit absorbs rounding that pushes an average of fractions past 0 or 1.
func unit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
