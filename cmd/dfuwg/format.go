package main

import (
	"fmt"
	"io"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/analytics"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/bldgtypes"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	printFindings(w, "ERRORS", r.Errors, true)
	printFindings(w, "WARNINGS", r.Warnings, true)
	printFindings(w, "INFO", r.Info, false)

	verdict := "VALID"
	if !r.Valid {
		verdict = "INVALID"
	}
	fmt.Fprintf(w, "Result: %s (%s)\n", verdict, r.Summary)
}

// printFindings writes one severity section; detail adds the path, expected
// range, conflicts and suggestions under each message.
func printFindings(w io.Writer, title string, results []validation.Result, detail bool) {
	if len(results) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", title, len(results))
	for _, res := range results {
		fmt.Fprintf(w, "  [%s] %s\n", res.Level, res.Message)
		if !detail {
			continue
		}
		if res.SpecPath != "" {
			fmt.Fprintf(w, "    -> %s = %v\n", res.SpecPath, res.ActualValue)
		}
		if res.Expected != "" {
			fmt.Fprintf(w, "    expected: %s\n", res.Expected)
		}
		if res.ConflictWith != "" {
			fmt.Fprintf(w, "    conflicts with: %s\n", res.ConflictWith)
		}
		for _, s := range res.Suggestions {
			fmt.Fprintf(w, "    * %s\n", s)
		}
	}
	fmt.Fprintln(w)
}

func printSummary(w io.Writer, s *analytics.Summary) {
	fmt.Fprintf(w, "%-36s %7s %7s %7s %12s %12s %6s %6s\n",
		"Typology", "Ratio", "Height", "Stories", "Footprint", "Floor area", "Glz", "SHGC")
	fmt.Fprintf(w, "%-36s %7s %7s %7s %12s %12s %6s %6s\n",
		"------------------------------------", "-------", "-------", "-------",
		"------------", "------------", "------", "------")
	for _, r := range s.Typologies {
		fmt.Fprintf(w, "%-36s %7.3f %7.1f %7d %12.0f %12.0f %6.3f %6.3f\n",
			r.Key, r.Ratio, r.AverageHeight, r.Stories, r.FootprintArea, r.FloorArea, r.GlazingRatio, r.SHGC)
	}

	a := s.Aggregates
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Aggregates")
	fmt.Fprintln(w, "----------")
	fmt.Fprintf(w, "  Total floor area:       %.0f m2\n", a.TotalFloorArea)
	fmt.Fprintf(w, "  Floor area ratio:       %.3f\n", a.FloorAreaRatio)
	fmt.Fprintf(w, "  Floor height:           %.2f m\n", a.FloorHeight)
	fmt.Fprintf(w, "  Glazing ratio:          %.3f\n", a.GlazingRatio)
	fmt.Fprintf(w, "  SHGC:                   %.3f\n", a.SHGC)
	fmt.Fprintf(w, "  Wall albedo:            %.3f\n", a.WallAlbedo)
	fmt.Fprintf(w, "  Roof albedo:            %.3f\n", a.RoofAlbedo)
	fmt.Fprintf(w, "  Heat to canyon:         %.3f\n", a.FractHeatToCanyon)
	fmt.Fprintf(w, "  Roof vegetation:        %.3f\n", a.RoofVegFraction)
	fmt.Fprintf(w, "  Traffic heat:           %.1f W/m2 (weekday avg %.2f)\n",
		s.Traffic.SensibleHeat, s.Traffic.WeekdayAvgHeat)
}

func printMatrix(w io.Writer, m [][]float64) {
	eras := bldgtypes.Eras()
	fmt.Fprintf(w, "%-24s", "Program")
	for _, e := range eras {
		fmt.Fprintf(w, " %15s", e)
	}
	fmt.Fprintln(w)
	for i, p := range bldgtypes.Programs() {
		if i >= len(m) {
			break
		}
		fmt.Fprintf(w, "%-24s", p)
		for _, v := range m[i] {
			fmt.Fprintf(w, " %15.3f", v)
		}
		fmt.Fprintln(w)
	}
}
