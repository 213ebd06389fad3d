package typology

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/bldgtypes"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

type fakeParent struct {
	zone    bldgtypes.ClimateZone
	updates int
	fail    error
}

func (p *fakeParent) ClimateZone() bldgtypes.ClimateZone { return p.zone }

func (p *fakeParent) UpdateGeometry() error {
	p.updates++
	return p.fail
}

func mustNew(t *testing.T, h, footprint, facade float64, program, era string, opts ...Option) *Typology {
	t.Helper()
	typ, err := New(h, footprint, facade, program, era, opts...)
	require.NoError(t, err)
	return typ
}

func TestNewDefaults(t *testing.T) {
	typ := mustNew(t, 35, 45, 300, "hospital", "1980sPresent")

	assert.Equal(t, bldgtypes.Hospital, typ.Program())
	assert.Equal(t, bldgtypes.Present1980s, typ.Era())
	assert.Equal(t, DefaultFloorToFloor, typ.FloorToFloor())
	assert.Equal(t, 11, typ.NumberOfStories())
	assert.InDelta(t, 495.0, typ.FloorArea(), 1e-9)
	assert.False(t, typ.HasExplicitFloorArea())
	assert.Equal(t, 0.1461, typ.GlazingRatio())
	assert.Equal(t, 0.08, typ.WallAlbedo())
	assert.Equal(t, 0.2, typ.RoofAlbedo())
	assert.Equal(t, 0.5, typ.FractHeatToCanyon())
	assert.Equal(t, 0.0, typ.RoofVegFraction())

	_, ok := typ.SHGC()
	assert.False(t, ok, "shgc needs a climate zone")

	v, err := typ.DefaultSHGC(bldgtypes.Zone5A)
	require.NoError(t, err)
	assert.Equal(t, 0.385, v)
}

func TestNewOptions(t *testing.T) {
	typ := mustNew(t, 35, 20000, 45000, "Hospital", "1980sPresent",
		WithFloorToFloor(3),
		WithGlazingRatio(0.4),
		WithSHGC(0.3),
		WithWallAlbedo(0.25),
		WithRoofAlbedo(0.6),
		WithFractHeatToCanyon(0.7),
		WithRoofVegFraction(0.1),
	)

	assert.Equal(t, 12, typ.NumberOfStories())
	assert.Equal(t, 240000.0, typ.FloorArea())
	assert.Equal(t, 0.4, typ.GlazingRatio())
	shgc, ok := typ.SHGC()
	assert.True(t, ok)
	assert.Equal(t, 0.3, shgc)
	assert.Equal(t, 0.25, typ.WallAlbedo())
	assert.Equal(t, 0.6, typ.RoofAlbedo())
	assert.Equal(t, 0.7, typ.FractHeatToCanyon())
	assert.Equal(t, 0.1, typ.RoofVegFraction())
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Typology, error)
		field string
	}{
		{"negative height", func() (*Typology, error) { return New(-1, 10, 10, "Hospital", "Pre1980s") }, "average_height"},
		{"negative footprint", func() (*Typology, error) { return New(10, -1, 10, "Hospital", "Pre1980s") }, "footprint_area"},
		{"negative facade", func() (*Typology, error) { return New(10, 10, -5, "Hospital", "Pre1980s") }, "facade_area"},
		{"unknown program", func() (*Typology, error) { return New(10, 10, 10, "Castle", "Pre1980s") }, "bldg_program"},
		{"unknown era", func() (*Typology, error) { return New(10, 10, 10, "Hospital", "Future") }, "bldg_era"},
		{"glazing above one", func() (*Typology, error) {
			return New(10, 10, 10, "Hospital", "Pre1980s", WithGlazingRatio(1.2))
		}, "glz_ratio"},
		{"zero floor to floor", func() (*Typology, error) {
			return New(10, 10, 10, "Hospital", "Pre1980s", WithFloorToFloor(0))
		}, "floor_to_floor"},
		{"floor area below footprint", func() (*Typology, error) {
			return New(10, 100, 10, "Hospital", "Pre1980s", WithFloorArea(50))
		}, "floor_area"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			require.ErrorIs(t, err, check.ErrInvalid)
			var fe *check.FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestFloorAreaAtLeastFootprint(t *testing.T) {
	typ := mustNew(t, 1, 100, 40, "WareHouse", "NewConstruction")

	assert.Equal(t, 0, typ.NumberOfStories())
	assert.Equal(t, 100.0, typ.FloorArea())
}

func TestSetters(t *testing.T) {
	typ := mustNew(t, 35, 45, 300, "Hospital", "Pre1980s", WithFloorArea(500))

	require.NoError(t, typ.SetAverageHeight(40))
	assert.Equal(t, 40.0, typ.AverageHeight())

	err := typ.SetFootprintArea(600)
	require.ErrorIs(t, err, check.ErrInvalid, "footprint cannot exceed explicit floor area")
	assert.Equal(t, 45.0, typ.FootprintArea())

	require.ErrorIs(t, typ.SetFloorArea(10), check.ErrInvalid)
	require.NoError(t, typ.SetFloorArea(900))
	assert.Equal(t, 900.0, typ.FloorArea())

	require.ErrorIs(t, typ.SetFacadeArea(-1), check.ErrInvalid)
	require.ErrorIs(t, typ.SetRoofAlbedo(2), check.ErrInvalid)
	require.ErrorIs(t, typ.SetSHGC(-0.1), check.ErrInvalid)
}

func TestSettersNotifyParent(t *testing.T) {
	typ := mustNew(t, 35, 20000, 45000, "Hospital", "1980sPresent")
	p := &fakeParent{zone: bldgtypes.Zone5A}
	require.NoError(t, typ.Attach(p))

	require.NoError(t, typ.SetFootprintArea(40000))
	require.NoError(t, typ.SetFacadeArea(50000))
	require.NoError(t, typ.SetAverageHeight(30))
	require.NoError(t, typ.SetFloorToFloor(3))
	require.NoError(t, typ.SetFloorArea(400000))
	assert.Equal(t, 5, p.updates)

	require.NoError(t, typ.SetGlazingRatio(0.3))
	assert.Equal(t, 5, p.updates, "envelope parameters do not change geometry")

	require.Error(t, typ.SetFootprintArea(-1))
	assert.Equal(t, 5, p.updates, "invalid values never reach the parent")
}

func TestSetterRollsBackWhenParentFails(t *testing.T) {
	typ := mustNew(t, 35, 20000, 45000, "Hospital", "1980sPresent")
	p := &fakeParent{fail: check.ErrEmptyAggregate}
	require.NoError(t, typ.Attach(p))

	err := typ.SetFootprintArea(0)
	require.ErrorIs(t, err, check.ErrEmptyAggregate)
	assert.Equal(t, 20000.0, typ.FootprintArea())
}

func TestAttachSingleParent(t *testing.T) {
	typ := mustNew(t, 35, 45, 300, "Hospital", "1980sPresent")
	first := &fakeParent{zone: bldgtypes.Zone5A}
	second := &fakeParent{zone: bldgtypes.Zone1A}

	require.NoError(t, typ.Attach(first))
	require.NoError(t, typ.Attach(first), "re-attaching the same parent is allowed")
	assert.ErrorIs(t, typ.Attach(second), check.ErrParented)

	shgc, ok := typ.SHGC()
	assert.True(t, ok)
	assert.Equal(t, 0.385, shgc)

	typ.Detach()
	assert.Nil(t, typ.Parent())
	require.NoError(t, typ.Attach(second))
}

func TestResolveSHGC(t *testing.T) {
	typ := mustNew(t, 35, 45, 300, "SmallOffice", "NewConstruction")

	require.NoError(t, typ.ResolveSHGC(bldgtypes.Zone7))
	v, ok := typ.SHGC()
	require.True(t, ok)
	assert.Equal(t, 0.487, v)

	require.NoError(t, typ.ResolveSHGC(bldgtypes.Zone1A), "explicit value wins")
	v, _ = typ.SHGC()
	assert.Equal(t, 0.487, v)

	other := mustNew(t, 35, 45, 300, "SmallOffice", "NewConstruction")
	assert.ErrorIs(t, other.ResolveSHGC(bldgtypes.Zone8), check.ErrLookup)
}

func TestSHGCFor(t *testing.T) {
	typ := mustNew(t, 20, 1000, 3000, "LargeOffice", "1980sPresent")
	assert.False(t, typ.SHGCDefaulted())

	require.NoError(t, typ.ResolveSHGC(bldgtypes.Zone5A))
	assert.True(t, typ.SHGCDefaulted())
	v, err := typ.SHGCFor(bldgtypes.Zone1A)
	require.NoError(t, err)
	assert.Equal(t, 0.251, v, "table default follows the requested zone")
	assert.Nil(t, typ.ToRecord().SHGC, "table defaults are not serialized")

	require.NoError(t, typ.SetSHGC(0.3))
	assert.False(t, typ.SHGCDefaulted())
	v, err = typ.SHGCFor(bldgtypes.Zone1A)
	require.NoError(t, err)
	assert.Equal(t, 0.3, v)
	require.NotNil(t, typ.ToRecord().SHGC)
	assert.Equal(t, 0.3, *typ.ToRecord().SHGC)
}

func TestMergeDefaultedSHGC(t *testing.T) {
	a := mustNew(t, 10, 100, 100, "SuperMarket", "Pre1980s")
	b := mustNew(t, 10, 100, 100, "SuperMarket", "Pre1980s")
	require.NoError(t, a.ResolveSHGC(bldgtypes.Zone5A))
	require.NoError(t, b.ResolveSHGC(bldgtypes.Zone5A))

	m, err := Merge(a, b)
	require.NoError(t, err)
	_, ok := m.SHGC()
	assert.False(t, ok, "two table defaults are left for the next zone")

	require.NoError(t, b.SetSHGC(0.6))
	m, err = Merge(a, b)
	require.NoError(t, err)
	v, ok := m.SHGC()
	require.True(t, ok)
	assert.InDelta(t, (0.407+0.6)/2, v, 1e-12)
	assert.False(t, m.SHGCDefaulted())
}

func TestMergeWeights(t *testing.T) {
	a := mustNew(t, 30, 45, 100, "Hospital", "1980sPresent",
		WithGlazingRatio(0.2), WithSHGC(0.3), WithWallAlbedo(0.1),
		WithRoofAlbedo(0.2), WithRoofVegFraction(0.0), WithFractHeatToCanyon(0.4),
		WithFloorArea(450), WithFloorToFloor(3))
	b := mustNew(t, 40, 45, 300, "Hospital", "1980sPresent",
		WithGlazingRatio(0.4), WithSHGC(0.5), WithWallAlbedo(0.3),
		WithRoofAlbedo(0.6), WithRoofVegFraction(0.5), WithFractHeatToCanyon(0.6),
		WithFloorArea(1350), WithFloorToFloor(4))

	m, err := Merge(a, b)
	require.NoError(t, err)

	assert.Equal(t, 90.0, m.FootprintArea())
	assert.Equal(t, 400.0, m.FacadeArea())
	assert.Equal(t, 1800.0, m.FloorArea())
	assert.InDelta(t, 35.0, m.AverageHeight(), 1e-12, "height by footprint")
	assert.InDelta(t, (3*450+4*1350)/1800.0, m.FloorToFloor(), 1e-12, "floor-to-floor by floor area")
	assert.InDelta(t, (0.4*450+0.6*1350)/1800.0, m.FractHeatToCanyon(), 1e-12, "canyon heat by floor area")
	assert.InDelta(t, 0.35, m.GlazingRatio(), 1e-12, "glazing by facade")
	assert.InDelta(t, 0.25, m.WallAlbedo(), 1e-12, "wall albedo by facade")
	assert.InDelta(t, 0.4, m.RoofAlbedo(), 1e-12, "roof albedo by footprint")
	assert.InDelta(t, 0.25, m.RoofVegFraction(), 1e-12, "roof vegetation by footprint")

	shgc, ok := m.SHGC()
	require.True(t, ok)
	assert.InDelta(t, (0.3*20+0.5*120)/140.0, shgc, 1e-12, "shgc by glazed area")

	assert.Nil(t, m.Parent())
	assert.Equal(t, 45.0, a.FootprintArea(), "inputs untouched")
	assert.Equal(t, 300.0, b.FacadeArea(), "inputs untouched")
}

func TestMergeHeightExample(t *testing.T) {
	a := mustNew(t, 30, 45, 100, "LargeOffice", "Pre1980s")
	b := mustNew(t, 40, 45, 100, "LargeOffice", "Pre1980s")

	m, err := Merge(a, b)
	require.NoError(t, err)
	assert.Equal(t, 35.0, m.AverageHeight())
}

func TestMergeCommutative(t *testing.T) {
	a := mustNew(t, 12, 300, 900, "MidRiseApartment", "NewConstruction", WithSHGC(0.25), WithFloorToFloor(3.2))
	b := mustNew(t, 27, 1200, 2100, "midrise apartment", "New Construction", WithSHGC(0.4), WithRoofVegFraction(0.3))

	ab, err := Merge(a, b)
	require.NoError(t, err)
	ba, err := Merge(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab.ToRecord(), ba.ToRecord())
}

func TestMergeUnresolvedSHGC(t *testing.T) {
	a := mustNew(t, 10, 100, 100, "SuperMarket", "Pre1980s", WithSHGC(0.5))
	b := mustNew(t, 10, 100, 100, "SuperMarket", "Pre1980s")

	m, err := Merge(a, b)
	require.NoError(t, err)
	_, ok := m.SHGC()
	assert.False(t, ok)
}

func TestMergeMismatch(t *testing.T) {
	a := mustNew(t, 10, 100, 100, "SuperMarket", "Pre1980s")
	b := mustNew(t, 10, 100, 100, "SuperMarket", "NewConstruction")
	c := mustNew(t, 10, 100, 100, "StripMall", "Pre1980s")

	_, err := Merge(a, b)
	assert.ErrorIs(t, err, check.ErrMismatch)
	_, err = Merge(a, c)
	assert.ErrorIs(t, err, check.ErrMismatch)
}

func TestMergeZeroWeights(t *testing.T) {
	a := mustNew(t, 10, 100, 0, "SuperMarket", "Pre1980s")
	b := mustNew(t, 10, 100, 0, "SuperMarket", "Pre1980s")

	_, err := Merge(a, b)
	assert.ErrorIs(t, err, check.ErrEmptyAggregate)
}

func TestWeightedMean(t *testing.T) {
	v, err := WeightedMean("x", []float64{1, 3}, []float64{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	_, err = WeightedMean("x", nil, nil)
	assert.ErrorIs(t, err, check.ErrEmptyAggregate)

	_, err = WeightedMean("x", []float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, check.ErrMismatch)
}

func TestJSONRoundTrip(t *testing.T) {
	typs := []*Typology{
		mustNew(t, 35, 45, 300, "Hospital", "1980sPresent"),
		mustNew(t, 35, 20000, 45000, "Hospital", "1980sPresent", WithFloorToFloor(3), WithSHGC(0.385)),
		mustNew(t, 8, 500, 640, "StandAloneRetail", "Pre1980s",
			WithFloorArea(1000), WithGlazingRatio(0.2), WithWallAlbedo(0.3),
			WithRoofAlbedo(0.5), WithRoofVegFraction(0.2), WithFractHeatToCanyon(0.9)),
	}
	for _, typ := range typs {
		first, err := json.Marshal(typ)
		require.NoError(t, err)

		var back Typology
		require.NoError(t, json.Unmarshal(first, &back))

		second, err := json.Marshal(&back)
		require.NoError(t, err)
		assert.JSONEq(t, string(first), string(second))
		assert.Equal(t, typ.FloorArea(), back.FloorArea())
		assert.Equal(t, typ.HasExplicitFloorArea(), back.HasExplicitFloorArea())
	}
}

func TestRecordUsesCanonicalNames(t *testing.T) {
	typ := mustNew(t, 35, 45, 300, "medoffice", "0")
	r := typ.ToRecord()

	assert.Equal(t, "MediumOffice", r.BldgProgram)
	assert.Equal(t, "Pre1980s", r.BldgEra)
	assert.Nil(t, r.GlzRatio)
	require.NotNil(t, r.FloorToFloor)
	assert.Equal(t, 3.05, *r.FloorToFloor)
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	var typ Typology
	err := json.Unmarshal([]byte(`{"average_height":10,"footprint_area":10,"facade_area":10,"bldg_program":"Castle","bldg_era":"Pre1980s"}`), &typ)
	assert.ErrorIs(t, err, check.ErrInvalid)
}

func TestCloneDropsParent(t *testing.T) {
	typ := mustNew(t, 35, 45, 300, "Hospital", "1980sPresent", WithGlazingRatio(0.3))
	require.NoError(t, typ.Attach(&fakeParent{}))

	c := typ.Clone()
	assert.Nil(t, c.Parent())
	require.NoError(t, c.SetGlazingRatio(0.5))
	assert.Equal(t, 0.3, typ.GlazingRatio())
}

func TestString(t *testing.T) {
	typ := mustNew(t, 35, 45, 300, "Hospital", "1980sPresent")
	s := typ.String()
	assert.Contains(t, s, "Hospital, 1980sPresent")
	assert.Contains(t, s, "Number of Stories: 11")
	assert.Contains(t, s, "Glazing Ratio: 14 %")
}
