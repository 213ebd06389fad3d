package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/validation"
)

func testServer(t *testing.T, projectPath string) http.Handler {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(projectPath, 0, log).Routes()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func typologyProject() string {
	return filepath.Join("..", "..", "examples", "typology-district")
}

func TestSummary(t *testing.T) {
	h := testServer(t, typologyProject())
	rec := get(t, h, "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		ClimateZone string `json:"climate_zone"`
		Typologies  []struct {
			Key   string  `json:"key"`
			Ratio float64 `json:"floor_area_ratio"`
		} `json:"typologies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "5A", body.ClimateZone)
	require.Len(t, body.Typologies, 2)
	assert.Equal(t, "Hospital,Pre1980s", body.Typologies[0].Key)
	assert.InDelta(t, 0.8, body.Typologies[0].Ratio, 1e-9)
}

func TestDistrictAndMatrix(t *testing.T) {
	h := testServer(t, typologyProject())

	rec := get(t, h, "/api/district")
	require.Equal(t, http.StatusOK, rec.Code)
	var district map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &district))
	assert.Equal(t, 90000.0, district["site_area"])

	rec = get(t, h, "/api/matrix")
	require.Equal(t, http.StatusOK, rec.Code)
	var m matrixResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Len(t, m.Programs, 16)
	assert.Equal(t, []string{"Pre1980s", "1980sPresent", "NewConstruction"}, m.Eras)
	require.Len(t, m.Matrix, 16)
}

func TestTypology(t *testing.T) {
	h := testServer(t, typologyProject())

	rec := get(t, h, "/api/typologies/SmallOffice,New")
	require.Equal(t, http.StatusOK, rec.Code)
	var typ map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &typ))
	assert.Equal(t, "SmallOffice", typ["bldg_program"])
	assert.Equal(t, 5000.0, typ["footprint_area"])

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/typologies/Warehouse,New").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/typologies/Castle,New").Code)
}

func TestUWG(t *testing.T) {
	h := testServer(t, typologyProject())
	rec := get(t, h, "/api/uwg")
	require.Equal(t, http.StatusOK, rec.Code)

	var in map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &in))
	assert.Equal(t, 6.0, in["sensanth"])
	assert.Equal(t, "5A", in["zone"])
}

func TestInvalidProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "district.yaml"), []byte(`
spec_version: "0.1.0"
district:
  climate_zone: 5A
  average_bldg_height: 10
  site_coverage_ratio: 0.3
  facade_to_site_ratio: 0.4
  bldg_type_ratios:
    "MidRiseApartment,New": 0.6
`), 0o644))
	h := testServer(t, dir)

	rec := get(t, h, "/api/validation")
	require.Equal(t, http.StatusOK, rec.Code)
	var report validation.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.False(t, report.Valid)
	require.NotEmpty(t, report.Errors)
	assert.Equal(t, "district.bldg_type_ratios", report.Errors[0].SpecPath)

	assert.Equal(t, http.StatusUnprocessableEntity, get(t, h, "/api/summary").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, get(t, h, "/api/uwg").Code)
}

func TestMissingProject(t *testing.T) {
	h := testServer(t, filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, http.StatusInternalServerError, get(t, h, "/api/summary").Code)
}

func TestIndex(t *testing.T) {
	rec := get(t, testServer(t, typologyProject()), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/summary")
}
