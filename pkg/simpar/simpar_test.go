package simpar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/bldgtypes"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

func TestRunPeriod(t *testing.T) {
	rp := DefaultRunPeriod()
	require.NoError(t, rp.Validate())
	assert.Equal(t, 365, rp.DayCount())
	assert.Equal(t, "UWGRunPeriod: [Jan 1 - Dec 31]", rp.String())

	rp, err := NewRunPeriod(Date{2, 1}, Date{3, 1}, true)
	require.NoError(t, err)
	assert.Equal(t, 30, rp.DayCount())

	rp, err = NewRunPeriod(Date{6, 21}, Date{6, 21}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, rp.DayCount())
}

func TestRunPeriodErrors(t *testing.T) {
	_, err := NewRunPeriod(Date{2, 29}, Date{3, 1}, false)
	assert.ErrorIs(t, err, check.ErrInvalid)

	_, err = NewRunPeriod(Date{7, 1}, Date{3, 1}, false)
	require.ErrorIs(t, err, check.ErrInvalid)
	assert.Contains(t, err.Error(), "on or before Mar 1")

	_, err = NewRunPeriod(Date{1, 1}, Date{13, 1}, false)
	assert.ErrorIs(t, err, check.ErrInvalid)
}

func TestDefaultParameter(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())
	assert.Equal(t, 300, p.SimulationStep())
	assert.Equal(t, bldgtypes.Zone4A, p.Zone(bldgtypes.Zone4A))
	assert.Contains(t, p.String(), "Climate Zone: Autocalculate")

	require.NoError(t, p.SetClimateZone("7B"))
	assert.Equal(t, bldgtypes.Zone7, p.Zone(bldgtypes.Zone4A))
	require.NoError(t, p.SetClimateZone(""))
	assert.Nil(t, p.ClimateZone)

	assert.ErrorIs(t, p.SetClimateZone("10"), check.ErrInvalid)
}

func TestTimesteps(t *testing.T) {
	p := Default()
	for _, ts := range ValidTimesteps {
		p.Timestep = ts
		require.NoError(t, p.Validate(), ts)
		assert.Equal(t, 3600, p.SimulationStep()*ts)
	}
	p.Timestep = 7
	assert.ErrorIs(t, p.Validate(), check.ErrInvalid)
}

func TestParameterValidation(t *testing.T) {
	p := Default()
	p.ReferenceEPWSite.VegetationCoverage = 1.5
	err := p.Validate()
	require.ErrorIs(t, err, check.ErrInvalid)
	assert.Contains(t, err.Error(), "reference_epw_site")

	p = Default()
	p.BoundaryLayer.NightHeight = -80
	err = p.Validate()
	require.ErrorIs(t, err, check.ErrInvalid)
	assert.Contains(t, err.Error(), "night_boundary_layer_height")
}

func TestParameterJSON(t *testing.T) {
	p := Default()
	require.NoError(t, p.SetClimateZone("3B-CA"))
	p.Timestep = 6

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"climate_zone":"3B-CA"`)

	var back Parameter
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p, back)

	data, err = json.Marshal(Default())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "climate_zone")
}
