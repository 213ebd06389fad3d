package typology

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/geo"
)

// maxStories bounds the story counts accepted from footprint input.
const maxStories = 200

// FromFootprints builds a typology from building outlines and an average
// story count (at least 1). Height is stories times floor-to-floor, facade
// area is the exposed perimeter times height, and floor area is footprint
// times stories.
func FromFootprints(footprints []geo.Footprint, avgStories float64, program, era string, opts ...Option) (*Typology, error) {
	if len(footprints) == 0 {
		return nil, check.Invalid("footprints", "at least one footprint", 0)
	}
	if err := check.InRange(avgStories, 1, maxStories, "number_of_stories"); err != nil {
		return nil, err
	}
	area, perimeter := geo.Measure(footprints)

	t, err := New(0, area, 0, program, era, opts...)
	if err != nil {
		return nil, err
	}
	t.averageHeight = t.floorToFloor * avgStories
	t.facadeArea = perimeter * t.averageHeight
	if t.floorArea == nil {
		floor := area * avgStories
		t.floorArea = &floor
	} else if *t.floorArea < area {
		return nil, floorAreaError(*t.floorArea, area)
	}
	return t, nil
}

// FromFootprintsAndStories is FromFootprints with one story count per
// footprint; the typology uses their footprint-weighted average.
func FromFootprintsAndStories(footprints []geo.Footprint, stories []float64, program, era string, opts ...Option) (*Typology, error) {
	if len(stories) != len(footprints) {
		return nil, fmt.Errorf("%w: %d story counts for %d footprints",
			check.ErrMismatch, len(stories), len(footprints))
	}
	areas := make([]float64, len(footprints))
	for i, f := range footprints {
		if err := check.InRange(stories[i], 1, maxStories, fmt.Sprintf("number_of_stories[%d]", i)); err != nil {
			return nil, err
		}
		areas[i] = f.Area()
	}
	total := floats.Sum(areas)
	if total <= 0 {
		return nil, check.Invalid("footprints", "a positive total area", total)
	}
	avg := floats.Dot(areas, stories) / total
	return FromFootprints(footprints, avg, program, era, opts...)
}
