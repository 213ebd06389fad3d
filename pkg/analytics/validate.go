package analytics

import (
	"fmt"
	"math"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/validation"
)

// matrixDriftTolerance is how far the rounded UWG matrix may sum from 1
// before it is reported.
const matrixDriftTolerance = 1e-3

// lengthMismatchTolerance is the relative gap allowed between the square of
// the characteristic length and the site area.
const lengthMismatchTolerance = 0.01

// validateAnalytical runs the analytical checks on a resolved district.
func validateAnalytical(s *Summary, report *validation.Report) {
	validateGroundCover(s, report)
	validateStories(s, report)
	validateMatrixDrift(s, report)
	validateCharacteristicLength(s, report)
	validateEmptyTypologies(s, report)
}

func validateGroundCover(s *Summary, report *validation.Report) {
	veg := s.TreeCover + s.GrassCover
	if veg > 1 {
		report.AddWarning(validation.Result{
			Level:        validation.LevelAnalytical,
			Message:      fmt.Sprintf("tree and grass coverage add up to %.2f of the site", veg),
			SpecPath:     "district.tree_coverage_ratio",
			ActualValue:  veg,
			Expected:     "<= 1",
			ConflictWith: "district.grass_coverage_ratio",
			Suggestions:  []string{"Reduce tree_coverage_ratio or grass_coverage_ratio"},
		})
		return
	}
	if open := 1 - s.Aggregates.SiteCoverageRatio; veg > open+1e-9 {
		report.AddInfo(validation.Result{
			Level:        validation.LevelAnalytical,
			Message:      fmt.Sprintf("vegetation covers %.2f of the site but only %.2f is free of buildings", veg, open),
			SpecPath:     "district.tree_coverage_ratio",
			ActualValue:  veg,
			ConflictWith: "district.site_coverage_ratio",
		})
	}
}

func validateStories(s *Summary, report *validation.Report) {
	for _, row := range s.Typologies {
		if row.AverageHeight < row.FloorToFloor {
			report.AddWarning(validation.Result{
				Level:       validation.LevelAnalytical,
				Message:     fmt.Sprintf("%s: average height %.2f m is below one floor (%.2f m); floor area assumes one story", row.Key, row.AverageHeight, row.FloorToFloor),
				SpecPath:    fmt.Sprintf("district.building_typologies[%s].average_height", row.Key),
				ActualValue: row.AverageHeight,
				Expected:    fmt.Sprintf(">= %.2f", row.FloorToFloor),
			})
		}
	}
}

func validateMatrixDrift(s *Summary, report *validation.Report) {
	total := 0.0
	for _, row := range s.Matrix {
		for _, v := range row {
			total += v
		}
	}
	if math.Abs(total-1) > matrixDriftTolerance {
		report.AddInfo(validation.Result{
			Level:       validation.LevelAnalytical,
			Message:     fmt.Sprintf("UWG matrix sums to %.3f after rounding to three decimals", total),
			SpecPath:    "district.bldg_type_ratios",
			ActualValue: total,
			Expected:    "1.000",
		})
	}
}

func validateCharacteristicLength(s *Summary, report *validation.Report) {
	a := s.Aggregates
	if a.SiteArea <= 0 {
		return
	}
	sq := a.CharacteristicLength * a.CharacteristicLength
	if math.Abs(sq-a.SiteArea)/a.SiteArea > lengthMismatchTolerance {
		report.AddInfo(validation.Result{
			Level:        validation.LevelAnalytical,
			Message:      fmt.Sprintf("characteristic length %.0f m encloses %.0f m2, site area is %.0f m2", a.CharacteristicLength, sq, a.SiteArea),
			SpecPath:     "district.characteristic_length",
			ActualValue:  a.CharacteristicLength,
			Expected:     fmt.Sprintf("%.0f", math.Sqrt(a.SiteArea)),
			ConflictWith: "district.site_area",
		})
	}
}

func validateEmptyTypologies(s *Summary, report *validation.Report) {
	for _, row := range s.Typologies {
		if row.FloorArea == 0 {
			report.AddWarning(validation.Result{
				Level:    validation.LevelAnalytical,
				Message:  fmt.Sprintf("%s has no floor area and does not contribute to the district", row.Key),
				SpecPath: fmt.Sprintf("district.building_typologies[%s]", row.Key),
			})
		}
	}
}
