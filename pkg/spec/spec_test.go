package spec

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/district"
)

func TestLoadProjectYAML(t *testing.T) {
	p, err := LoadProject("../../examples/default-district")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if p.SpecVersion != "0.1.0" {
		t.Errorf("spec_version = %q, want %q", p.SpecVersion, "0.1.0")
	}
	if p.District.ClimateZone != "5A" {
		t.Errorf("climate_zone = %q, want %q", p.District.ClimateZone, "5A")
	}
	if !p.District.TopDown() {
		t.Error("expected a ratio-described district")
	}
	if p.District.Vegetation.StartMonth != 4 || p.District.Vegetation.EndMonth != 10 {
		t.Errorf("vegetation months = %d-%d, want 4-10",
			p.District.Vegetation.StartMonth, p.District.Vegetation.EndMonth)
	}

	// Absent fields keep their defaults.
	if p.District.Vegetation.TreeLatentFraction != 0.7 {
		t.Errorf("tree_latent_fraction = %v, want default 0.7", p.District.Vegetation.TreeLatentFraction)
	}
	if p.District.Pavement.Albedo != 0.12 || p.District.Pavement.Thickness != 0.5 {
		t.Errorf("pavement = %+v, want albedo 0.12 and default thickness", p.District.Pavement)
	}
	if p.Simulation.BoundaryLayer.DayHeight != 900 || p.Simulation.BoundaryLayer.NightHeight != 80 {
		t.Errorf("boundary layer = %+v, want day 900 and default night", p.Simulation.BoundaryLayer)
	}

	d, err := p.BuildDistrict()
	if err != nil {
		t.Fatalf("BuildDistrict failed: %v", err)
	}
	if d.SiteArea() != 250000 {
		t.Errorf("site_area = %v, want 250000", d.SiteArea())
	}
	if math.Abs(d.SiteCoverageRatio()-0.4) > 1e-9 {
		t.Errorf("site_coverage_ratio = %v, want 0.4", d.SiteCoverageRatio())
	}
	if got := len(d.BldgTypeRatios()); got != 4 {
		t.Errorf("building types = %d, want 4", got)
	}

	sp, err := p.SimulationParameter()
	if err != nil {
		t.Fatalf("SimulationParameter failed: %v", err)
	}
	if sp.RunPeriod.DayCount() != 92 {
		t.Errorf("day count = %d, want 92", sp.RunPeriod.DayCount())
	}
}

func TestLoadProjectTOML(t *testing.T) {
	p, err := LoadProject("../../examples/typology-district")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if p.District.TopDown() {
		t.Fatal("expected a typology-described district")
	}
	if len(p.District.Typologies) != 2 {
		t.Fatalf("typologies = %d, want 2", len(p.District.Typologies))
	}
	if p.Simulation.ClimateZone == nil || p.Simulation.ClimateZone.String() != "5A" {
		t.Errorf("simulation climate_zone = %v, want 5A", p.Simulation.ClimateZone)
	}

	d, err := p.BuildDistrict()
	if err != nil {
		t.Fatalf("BuildDistrict failed: %v", err)
	}
	ratios := d.BldgTypeRatios()
	if math.Abs(ratios["Hospital,Pre1980s"]-0.8) > 1e-9 {
		t.Errorf("hospital ratio = %v, want 0.8", ratios["Hospital,Pre1980s"])
	}
	if math.Abs(d.SiteCoverageRatio()-25000.0/90000) > 1e-9 {
		t.Errorf("site_coverage_ratio = %v, want %v", d.SiteCoverageRatio(), 25000.0/90000)
	}
	if d.Traffic().SensibleHeat != 6 {
		t.Errorf("sensible_heat = %v, want 6", d.Traffic().SensibleHeat)
	}
	if len(d.Traffic().WeekdaySchedule) != 24 {
		t.Errorf("weekday schedule = %d values, want default 24", len(d.Traffic().WeekdaySchedule))
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"spec_version": "0.1.0",
		"district": {
			"climate_zone": "3",
			"average_bldg_height": 9,
			"site_coverage_ratio": 0.3,
			"facade_to_site_ratio": 0.4,
			"bldg_type_ratios": {"SmallHotel,New": "0.5", "QuickServiceRestaurant,Pst80": 0.5}
		}
	}`)
	p, err := Parse(data, ".json")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ratios, err := p.District.Ratios()
	if err != nil {
		t.Fatalf("Ratios failed: %v", err)
	}
	if ratios["SmallHotel,New"] != 0.5 {
		t.Errorf("quoted ratio = %v, want 0.5", ratios["SmallHotel,New"])
	}
	d, err := p.BuildDistrict()
	if err != nil {
		t.Fatalf("BuildDistrict failed: %v", err)
	}
	if d.Authority() != district.TypologiesAuthoritative {
		t.Errorf("authority = %v, want typologies", d.Authority())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{"bad yaml", "district: [", ".yaml"},
		{"bad toml", "district = ", ".toml"},
		{"bad json", "{", ".json"},
		{"unknown format", "", ".ini"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data), tt.ext); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRatiosCoercionError(t *testing.T) {
	def := DistrictDef{BldgTypeRatios: map[string]any{"Hospital,New": "lots"}}
	if _, err := def.Ratios(); err == nil {
		t.Error("expected error for non-numeric ratio")
	}
}

func TestLoadProjectMissing(t *testing.T) {
	_, err := LoadProject("/nonexistent/path")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	body := "spec_version: \"0.1.0\"\ndistrict:\n  climate_zone: 2A\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p.District.ClimateZone != "2A" {
		t.Errorf("climate_zone = %q, want 2A", p.District.ClimateZone)
	}
	if p.Simulation.Timestep != 12 {
		t.Errorf("timestep = %d, want default 12", p.Simulation.Timestep)
	}

	if _, err := Resolve(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFootprintProject(t *testing.T) {
	p, err := LoadProject("../../examples/footprint-district")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if p.District.TopDown() {
		t.Fatal("expected a typology-described district")
	}
	if got := len(p.District.FootprintTypologies); got != 2 {
		t.Fatalf("footprint typologies = %d, want 2", got)
	}
	if got := len(p.District.FootprintTypologies[0].Footprints[2].Holes); got != 1 {
		t.Errorf("courtyard holes = %d, want 1", got)
	}

	d, err := p.BuildDistrict()
	if err != nil {
		t.Fatalf("BuildDistrict failed: %v", err)
	}
	typs, err := d.BuildingTypologies()
	if err != nil {
		t.Fatal(err)
	}
	if len(typs) != 3 {
		t.Fatalf("typologies = %d, want 3", len(typs))
	}

	// Three attached blocks, the last with an 8x8 courtyard.
	apt := typs[1]
	if apt.Key().String() != "MidRiseApartment,1980sPresent" {
		t.Fatalf("typology order: got %s", apt.Key())
	}
	stories := 3120.0 / 816
	if math.Abs(apt.FootprintArea()-816) > 1e-6 {
		t.Errorf("footprint_area = %v, want 816", apt.FootprintArea())
	}
	if math.Abs(apt.AverageHeight()-3*stories) > 1e-6 {
		t.Errorf("average_height = %v, want %v", apt.AverageHeight(), 3*stories)
	}
	if math.Abs(apt.FacadeArea()-160*3*stories) > 1e-6 {
		t.Errorf("facade_area = %v, want %v", apt.FacadeArea(), 160*3*stories)
	}
	if math.Abs(apt.FloorArea()-3120) > 1e-6 {
		t.Errorf("floor_area = %v, want 3120", apt.FloorArea())
	}

	if math.Abs(d.SiteCoverageRatio()-1516.0/6400) > 1e-9 {
		t.Errorf("site_coverage_ratio = %v, want %v", d.SiteCoverageRatio(), 1516.0/6400)
	}
	ratios := d.BldgTypeRatios()
	if math.Abs(ratios["MidRiseApartment,1980sPresent"]-3120.0/4620) > 1e-9 {
		t.Errorf("apartment ratio = %v, want %v", ratios["MidRiseApartment,1980sPresent"], 3120.0/4620)
	}
}
