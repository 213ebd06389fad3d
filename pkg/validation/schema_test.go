package validation

import (
	"testing"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/simpar"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/spec"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/typology"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/uwgpar"
)

func validSpec() *spec.Project {
	return &spec.Project{
		SpecVersion: "0.1.0",
		Name:        "test",
		District: spec.DistrictDef{
			ClimateZone:       "5A",
			AverageBldgHeight: 15,
			SiteCoverageRatio: 0.4,
			FacadeToSiteRatio: 0.6,
			BldgTypeRatios: map[string]any{
				"MidRiseApartment,1980sPresent": 0.7,
				"StripMall,New":                 0.3,
			},
			TreeCoverageRatio:  0.1,
			GrassCoverageRatio: 0.1,
			Vegetation:         uwgpar.DefaultVegetation(),
			Pavement:           uwgpar.DefaultPavement(),
		},
		Simulation: simpar.Default(),
	}
}

func typologySpec() *spec.Project {
	s := validSpec()
	s.District.BldgTypeRatios = nil
	s.District.SiteArea = 10000
	s.District.Typologies = []typology.Record{
		{AverageHeight: 12, FootprintArea: 2000, FacadeArea: 5000, BldgProgram: "LargeOffice", BldgEra: "New"},
		{AverageHeight: 6, FootprintArea: 1000, FacadeArea: 1500, BldgProgram: "SuperMarket", BldgEra: "Pre80"},
	}
	return s
}

func TestValidateSchemaValid(t *testing.T) {
	r := ValidateSchema(validSpec())
	if !r.Valid {
		t.Errorf("expected valid report, got %d errors: %v", len(r.Errors), r.Errors)
	}
	r = ValidateSchema(typologySpec())
	if !r.Valid {
		t.Errorf("expected valid typology report, got %d errors: %v", len(r.Errors), r.Errors)
	}
}

func TestValidateSchemaMissingVersion(t *testing.T) {
	s := validSpec()
	s.SpecVersion = ""
	r := ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid report for missing spec_version")
	}
	assertHasError(t, r, "spec_version")
}

func TestValidateSchemaClimateZone(t *testing.T) {
	s := validSpec()
	s.District.ClimateZone = "9Z"
	r := ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid report for unknown climate zone")
	}
	assertHasError(t, r, "district.climate_zone")

	s.District.ClimateZone = ""
	r = ValidateSchema(s)
	assertHasError(t, r, "district.climate_zone")
}

func TestValidateSchemaRatioSum(t *testing.T) {
	s := validSpec()
	s.District.BldgTypeRatios["StripMall,New"] = 0.5 // sum now 1.2
	r := ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid report for ratios sum != 1.0")
	}
	assertHasError(t, r, "district.bldg_type_ratios")
}

func TestValidateSchemaRatioKey(t *testing.T) {
	s := validSpec()
	delete(s.District.BldgTypeRatios, "StripMall,New")
	s.District.BldgTypeRatios["Castle,New"] = 0.3
	r := ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid report for unknown program")
	}
	assertHasError(t, r, "district.bldg_type_ratios[Castle,New].bldg_program")
}

func TestValidateSchemaNegativeRatio(t *testing.T) {
	s := validSpec()
	s.District.BldgTypeRatios["StripMall,New"] = -0.1
	s.District.BldgTypeRatios["MidRiseApartment,1980sPresent"] = 1.1 // keep sum at 1.0
	r := ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid for negative ratio")
	}
	assertHasError(t, r, "district.bldg_type_ratios[StripMall,New]")
}

func TestValidateSchemaRatioCoercion(t *testing.T) {
	s := validSpec()
	s.District.BldgTypeRatios["StripMall,New"] = "0.3"
	r := ValidateSchema(s)
	if !r.Valid {
		t.Errorf("quoted ratio should coerce, got errors: %v", r.Errors)
	}

	s.District.BldgTypeRatios["StripMall,New"] = "a third"
	r = ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid for non-numeric ratio")
	}
	assertHasError(t, r, "district.bldg_type_ratios")
}

func TestValidateSchemaNoDescription(t *testing.T) {
	s := validSpec()
	s.District.BldgTypeRatios = nil
	r := ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid when neither typologies nor ratios are given")
	}
	assertHasError(t, r, "district")
}

func TestValidateSchemaCoverage(t *testing.T) {
	s := validSpec()
	s.District.SiteCoverageRatio = 1.4
	r := ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid for site_coverage_ratio above 1")
	}
	assertHasError(t, r, "district.site_coverage_ratio")
}

func TestValidateSchemaSiteArea(t *testing.T) {
	s := typologySpec()
	s.District.SiteArea = 0
	r := ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid for missing site_area")
	}
	assertHasError(t, r, "district.site_area")
}

func TestValidateSchemaIgnoredRatios(t *testing.T) {
	s := typologySpec()
	s.District.BldgTypeRatios = map[string]any{"LargeOffice,New": 1}
	r := ValidateSchema(s)
	if !r.Valid {
		t.Errorf("ignored ratios should only warn, got errors: %v", r.Errors)
	}
	if len(r.Warnings) != 1 || r.Warnings[0].SpecPath != "district.bldg_type_ratios" {
		t.Errorf("expected one bldg_type_ratios warning, got %v", r.Warnings)
	}
}

func TestValidateSchemaTypology(t *testing.T) {
	s := typologySpec()
	s.District.Typologies[0].BldgProgram = ""
	glz := 1.5
	s.District.Typologies[1].GlzRatio = &glz
	floor := 500.0
	s.District.Typologies[1].FloorArea = &floor
	s.District.Typologies[1].BldgEra = "Medieval"

	r := ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid typologies")
	}
	assertHasError(t, r, "district.building_typologies[0].bldg_program")
	assertHasError(t, r, "district.building_typologies[1].glz_ratio")
	assertHasError(t, r, "district.building_typologies[1].floor_area")
	assertHasError(t, r, "district.building_typologies[1].bldg_era")
}

func TestValidateSchemaFootprints(t *testing.T) {
	s := typologySpec()
	s.District.Typologies = nil
	s.District.FootprintTypologies = []spec.FootprintDef{{
		BldgProgram: "MidRiseApartment",
		BldgEra:     "New",
		Footprints: []spec.FootprintGeom{
			{Outer: [][]float64{{0, 0}, {20, 0}, {20, 10}, {0, 10}}},
			{Outer: [][]float64{{20, 0}, {40, 0}, {40, 10}, {20, 10}}},
		},
		NumberOfStories: []float64{4, 6},
	}}
	r := ValidateSchema(s)
	if !r.Valid {
		t.Fatalf("expected valid footprint report, got %v", r.Errors)
	}

	s.District.FootprintTypologies[0].NumberOfStories = []float64{4, 5, 6}
	s.District.FootprintTypologies[0].Footprints[1].Outer = [][]float64{{0, 0}, {1, 1}, {2, 2}}
	s.District.FootprintTypologies[0].Footprints[0].Holes = [][][]float64{{{50, 50}, {60, 50}, {60, 60}}}
	r = ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid footprints")
	}
	assertHasError(t, r, "district.footprint_typologies[0].number_of_stories")
	assertHasError(t, r, "district.footprint_typologies[0].footprints[0]")
	assertHasError(t, r, "district.footprint_typologies[0].footprints[1]")
}

func TestValidateSchemaSimulation(t *testing.T) {
	s := validSpec()
	s.Simulation.Timestep = 7
	r := ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid for timestep 7")
	}
	assertHasError(t, r, "simulation_parameter.timestep")

	s = validSpec()
	s.Simulation.RunPeriod.Start = simpar.Date{Month: 13, Day: 1}
	r = ValidateSchema(s)
	assertHasError(t, r, "simulation_parameter.run_period.start_date.month")
}

func assertHasError(t *testing.T, r *Report, specPath string) {
	t.Helper()
	for _, e := range r.Errors {
		if e.SpecPath == specPath {
			return
		}
	}
	t.Errorf("expected error with spec_path %q, got errors: %v", specPath, r.Errors)
}
