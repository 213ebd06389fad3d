package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/bldgtypes"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/district"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/geo"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/spec"
)

var structValidator = newStructValidator()

// newStructValidator reports fields by their project file keys.
func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateSchema performs Level 1 (schema) validation on a parsed Project.
// It checks structural correctness before any district is built.
func ValidateSchema(p *spec.Project) *Report {
	r := NewReport()

	validateStruct(p, r)
	validateClimateZone(p, r)
	validateDescription(p, r)
	validateRatios(p, r)
	validateTypologies(p, r)
	validateSimulation(p, r)

	return r
}

func validateStruct(p *spec.Project, r *Report) {
	err := structValidator.Struct(p)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fe := range verrs {
		path := fe.Namespace()
		if _, rest, ok := strings.Cut(path, "."); ok {
			path = rest
		}
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s failed the %q constraint", path, fe.Tag()),
			SpecPath:    path,
			ActualValue: fe.Value(),
			Expected:    strings.TrimSpace(fe.Tag() + " " + fe.Param()),
		})
	}
}

func validateClimateZone(p *spec.Project, r *Report) {
	if p.District.ClimateZone == "" {
		return
	}
	if _, err := bldgtypes.ParseClimateZone(p.District.ClimateZone); err != nil {
		res := FromError(LevelSchema, "", err)
		res.SpecPath = "district.climate_zone"
		r.AddError(res)
	}
}

// validateDescription checks that the district is described either by
// typologies or by aggregate geometry and ratios.
func validateDescription(p *spec.Project, r *Report) {
	d := p.District
	if d.TopDown() {
		if len(d.BldgTypeRatios) == 0 {
			r.AddError(Result{
				Level:    LevelSchema,
				Message:  "district needs building_typologies, footprint_typologies or bldg_type_ratios",
				SpecPath: "district",
				Suggestions: []string{
					"List building_typologies with site_area",
					"Give average_bldg_height, site_coverage_ratio, facade_to_site_ratio and bldg_type_ratios",
				},
			})
		}
		if d.SiteArea > 0 {
			r.AddInfo(Result{
				Level:        LevelSchema,
				Message:      "site_area is derived from characteristic_length when the district is described by ratios",
				SpecPath:     "district.site_area",
				ActualValue:  d.SiteArea,
				ConflictWith: "district.bldg_type_ratios",
			})
		}
		return
	}

	if d.SiteArea <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "site_area must be greater than 0 when typologies are given",
			SpecPath:    "district.site_area",
			ActualValue: d.SiteArea,
			Expected:    "> 0",
		})
	}
	if len(d.BldgTypeRatios) > 0 {
		r.AddWarning(Result{
			Level:        LevelSchema,
			Message:      "bldg_type_ratios are ignored; ratios are derived from building_typologies",
			SpecPath:     "district.bldg_type_ratios",
			ConflictWith: "district.building_typologies",
		})
	}
}

func validateRatios(p *spec.Project, r *Report) {
	d := p.District
	if !d.TopDown() || len(d.BldgTypeRatios) == 0 {
		return
	}
	ratios, err := d.Ratios()
	if err != nil {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  err.Error(),
			SpecPath: "district.bldg_type_ratios",
			Expected: "numeric floor area fractions",
		})
		return
	}

	sum := 0.0
	for key, v := range ratios {
		path := fmt.Sprintf("district.bldg_type_ratios[%s]", key)
		if _, err := bldgtypes.ParseTypeKey(key); err != nil {
			r.AddError(FromError(LevelSchema, path, err))
		}
		if v < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s must be non-negative", path),
				SpecPath:    path,
				ActualValue: v,
				Expected:    ">= 0",
			})
		}
		sum += v
	}
	if math.Abs(sum-1.0) > district.RatioTolerance {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("bldg_type_ratios must sum to 1.0 (got %.6f)", sum),
			SpecPath:    "district.bldg_type_ratios",
			ActualValue: sum,
			Expected:    fmt.Sprintf("1.0 (±%g)", district.RatioTolerance),
			Suggestions: []string{"Adjust floor area ratios so they sum to 1.0"},
		})
	}
}

func validateTypologies(p *spec.Project, r *Report) {
	for i, t := range p.District.Typologies {
		path := fmt.Sprintf("district.building_typologies[%d]", i)
		if _, err := bldgtypes.ParseProgram(t.BldgProgram); err != nil && t.BldgProgram != "" {
			r.AddError(FromError(LevelSchema, path, err))
		}
		if _, err := bldgtypes.ParseEra(t.BldgEra); err != nil && t.BldgEra != "" {
			r.AddError(FromError(LevelSchema, path, err))
		}
		if t.FloorArea != nil && *t.FloorArea < t.FootprintArea {
			r.AddError(Result{
				Level:        LevelSchema,
				Message:      "floor_area must be at least footprint_area",
				SpecPath:     path + ".floor_area",
				ActualValue:  *t.FloorArea,
				Expected:     fmt.Sprintf(">= %v", t.FootprintArea),
				ConflictWith: path + ".footprint_area",
			})
		}
	}

	for i, f := range p.District.FootprintTypologies {
		path := fmt.Sprintf("district.footprint_typologies[%d]", i)
		if _, err := bldgtypes.ParseProgram(f.BldgProgram); err != nil && f.BldgProgram != "" {
			r.AddError(FromError(LevelSchema, path, err))
		}
		if _, err := bldgtypes.ParseEra(f.BldgEra); err != nil && f.BldgEra != "" {
			r.AddError(FromError(LevelSchema, path, err))
		}
		if n := len(f.NumberOfStories); n > 1 && n != len(f.Footprints) {
			r.AddError(Result{
				Level:        LevelSchema,
				Message:      fmt.Sprintf("number_of_stories has %d values for %d footprints", n, len(f.Footprints)),
				SpecPath:     path + ".number_of_stories",
				ActualValue:  n,
				Expected:     fmt.Sprintf("1 or %d values", len(f.Footprints)),
				ConflictWith: path + ".footprints",
			})
		}
		for j, g := range f.Footprints {
			if len(g.Outer) < 3 {
				continue // reported by the struct tags
			}
			if _, err := geo.NewFootprint(g.Outer, g.Holes...); err != nil {
				r.AddError(Result{
					Level:    LevelSchema,
					Message:  err.Error(),
					SpecPath: fmt.Sprintf("%s.footprints[%d]", path, j),
				})
			}
		}
	}
}

func validateSimulation(p *spec.Project, r *Report) {
	if err := p.Simulation.Validate(); err != nil {
		r.AddError(FromError(LevelSchema, "simulation_parameter", err))
	}
}
