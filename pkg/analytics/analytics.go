package analytics

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/district"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/typology"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/validation"
)

// Resolve builds the summary of a district: one row per typology, district
// totals, the weighted envelope parameters and the UWG matrix. A stale
// typology list is rebuilt from the ratios first. Returns the summary and a
// validation report; the summary is nil only when the typologies cannot be
// built.
func Resolve(d *district.District) (*Summary, *validation.Report) {
	report := validation.NewReport()

	// 1. Typologies
	typs, err := d.BuildingTypologies()
	if err != nil {
		report.AddError(validation.FromError(validation.LevelConstruction, "district.building_typologies", err))
		return nil, report
	}

	// 2. Rows
	ratios := d.BldgTypeRatios()
	rows := make([]TypologyRow, len(typs))
	for i, t := range typs {
		rows[i] = resolveRow(t, ratios[t.Key().String()])
	}

	// 3. Totals
	agg := resolveTotals(d, rows)

	// 4. Weighted envelope parameters
	resolveWeighted(d, &agg, report)

	// 5. Traffic
	tr := d.Traffic()
	traffic := TrafficSummary{
		SensibleHeat:    tr.SensibleHeat,
		WeekdayAvgHeat:  tr.WeekdayAvgHeat(),
		SaturdayAvgHeat: tr.SaturdayAvgHeat(),
		SundayAvgHeat:   tr.SundayAvgHeat(),
	}

	// 6. Matrix
	m := d.UWGMatrix()
	matrix := make([][]float64, len(m))
	for i := range m {
		matrix[i] = append([]float64(nil), m[i][:]...)
	}

	s := &Summary{
		ClimateZone: d.ClimateZone().String(),
		Authority:   d.Authority().String(),
		Typologies:  rows,
		Aggregates:  agg,
		Traffic:     traffic,
		TreeCover:   d.TreeCoverageRatio(),
		GrassCover:  d.GrassCoverageRatio(),
		Matrix:      matrix,
	}

	// 7. Analytical validation
	validateAnalytical(s, report)

	return s, report
}

func resolveRow(t *typology.Typology, ratio float64) TypologyRow {
	shgc, _ := t.SHGC()
	return TypologyRow{
		Key:               t.Key().String(),
		Program:           t.Program().String(),
		Era:               t.Era().String(),
		Ratio:             ratio,
		AverageHeight:     t.AverageHeight(),
		Stories:           t.NumberOfStories(),
		FloorToFloor:      t.FloorToFloor(),
		FootprintArea:     t.FootprintArea(),
		FacadeArea:        t.FacadeArea(),
		FloorArea:         t.FloorArea(),
		GlazingRatio:      t.GlazingRatio(),
		SHGC:              shgc,
		WallAlbedo:        t.WallAlbedo(),
		RoofAlbedo:        t.RoofAlbedo(),
		FractHeatToCanyon: t.FractHeatToCanyon(),
		RoofVegFraction:   t.RoofVegFraction(),
	}
}

func resolveTotals(d *district.District, rows []TypologyRow) Aggregates {
	footprints := make([]float64, len(rows))
	facades := make([]float64, len(rows))
	floorAreas := make([]float64, len(rows))
	for i, r := range rows {
		footprints[i] = r.FootprintArea
		facades[i] = r.FacadeArea
		floorAreas[i] = r.FloorArea
	}
	agg := Aggregates{
		AverageBldgHeight:    d.AverageBldgHeight(),
		SiteCoverageRatio:    d.SiteCoverageRatio(),
		FacadeToSiteRatio:    d.FacadeToSiteRatio(),
		SiteArea:             d.SiteArea(),
		CharacteristicLength: d.CharacteristicLength(),
		TotalFootprintArea:   floats.Sum(footprints),
		TotalFacadeArea:      floats.Sum(facades),
		TotalFloorArea:       floats.Sum(floorAreas),
	}
	if agg.SiteArea > 0 {
		agg.FloorAreaRatio = agg.TotalFloorArea / agg.SiteArea
	}
	return agg
}

func resolveWeighted(d *district.District, agg *Aggregates, report *validation.Report) {
	params := []struct {
		name string
		dst  *float64
		get  func() (float64, error)
	}{
		{"floor_height", &agg.FloorHeight, d.FloorHeight},
		{"glz_ratio", &agg.GlazingRatio, d.GlazingRatio},
		{"shgc", &agg.SHGC, d.SHGC},
		{"wall_albedo", &agg.WallAlbedo, d.WallAlbedo},
		{"roof_albedo", &agg.RoofAlbedo, d.RoofAlbedo},
		{"fract_heat_to_canyon", &agg.FractHeatToCanyon, d.FractHeatToCanyon},
		{"roof_veg_fraction", &agg.RoofVegFraction, d.RoofVegFraction},
	}
	for _, p := range params {
		v, err := p.get()
		switch {
		case err == nil:
			*p.dst = v
		case errors.Is(err, check.ErrEmptyAggregate):
			report.AddWarning(validation.Result{
				Level:    validation.LevelAnalytical,
				Message:  fmt.Sprintf("%s is undefined: the typologies carry no area to weight it by", p.name),
				SpecPath: "district." + p.name,
				Suggestions: []string{
					"Give the typologies non-zero footprint and facade areas",
				},
			})
		default:
			report.AddError(validation.FromError(validation.LevelAnalytical, "district."+p.name, err))
		}
	}
}
