// Package typology models a cohort of buildings that share one program and
// one construction era, described by aggregate geometry and the envelope
// parameters the UWG needs.
package typology

import (
	"fmt"
	"math"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/bldgtypes"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

// Default values applied when a parameter is not given.
const (
	DefaultFloorToFloor      = 3.05 // m
	DefaultFractHeatToCanyon = 0.5
	DefaultRoofVegFraction   = 0.0
)

// Parent is the district a typology reports geometry changes to.
type Parent interface {
	ClimateZone() bldgtypes.ClimateZone
	UpdateGeometry() error
}

// Typology is a homogeneous group of buildings. Zero values are not usable;
// construct with New.
type Typology struct {
	averageHeight float64
	footprintArea float64
	facadeArea    float64
	floorToFloor  float64
	floorArea     *float64

	program bldgtypes.Program
	era     bldgtypes.Era

	glzRatio          *float64
	shgc              *float64
	shgcDefaulted     bool
	wallAlbedo        *float64
	roofAlbedo        *float64
	fractHeatToCanyon float64
	roofVegFraction   float64

	parent Parent
}

// Option sets an optional typology parameter at construction.
type Option func(*Typology) error

// WithFloorToFloor sets the average floor-to-floor height in meters.
func WithFloorToFloor(h float64) Option {
	return func(t *Typology) error {
		if err := check.Positive(h, "floor_to_floor"); err != nil {
			return err
		}
		t.floorToFloor = h
		return nil
	}
}

// WithFloorArea sets an explicit floor area instead of deriving it from the
// footprint and story count.
func WithFloorArea(a float64) Option {
	return func(t *Typology) error {
		if err := check.NonNegative(a, "floor_area"); err != nil {
			return err
		}
		t.floorArea = &a
		return nil
	}
}

// WithGlazingRatio overrides the program default glazing ratio.
func WithGlazingRatio(r float64) Option {
	return func(t *Typology) error { return t.SetGlazingRatio(r) }
}

// WithSHGC sets the solar heat gain coefficient.
func WithSHGC(v float64) Option {
	return func(t *Typology) error { return t.SetSHGC(v) }
}

// WithWallAlbedo overrides the program default wall albedo.
func WithWallAlbedo(v float64) Option {
	return func(t *Typology) error { return t.SetWallAlbedo(v) }
}

// WithRoofAlbedo overrides the era default roof albedo.
func WithRoofAlbedo(v float64) Option {
	return func(t *Typology) error { return t.SetRoofAlbedo(v) }
}

// WithFractHeatToCanyon sets the fraction of building heat rejected to the canyon.
func WithFractHeatToCanyon(v float64) Option {
	return func(t *Typology) error { return t.SetFractHeatToCanyon(v) }
}

// WithRoofVegFraction sets the fraction of roofs covered in vegetation.
func WithRoofVegFraction(v float64) Option {
	return func(t *Typology) error { return t.SetRoofVegFraction(v) }
}

// New validates the geometry, normalizes program and era, and applies opts.
func New(averageHeight, footprintArea, facadeArea float64, program, era string, opts ...Option) (*Typology, error) {
	p, err := bldgtypes.ParseProgram(program)
	if err != nil {
		return nil, err
	}
	e, err := bldgtypes.ParseEra(era)
	if err != nil {
		return nil, err
	}
	return NewOf(averageHeight, footprintArea, facadeArea, bldgtypes.TypeKey{Program: p, Era: e}, opts...)
}

// NewOf is New for an already parsed program/era key.
func NewOf(averageHeight, footprintArea, facadeArea float64, key bldgtypes.TypeKey, opts ...Option) (*Typology, error) {
	if !key.Program.Valid() || !key.Era.Valid() {
		return nil, check.Invalid("bldg_type", "an enumerated program and era", key.String())
	}
	if err := check.NonNegative(averageHeight, "average_height"); err != nil {
		return nil, err
	}
	if err := check.NonNegative(footprintArea, "footprint_area"); err != nil {
		return nil, err
	}
	if err := check.NonNegative(facadeArea, "facade_area"); err != nil {
		return nil, err
	}

	t := &Typology{
		averageHeight:     averageHeight,
		footprintArea:     footprintArea,
		facadeArea:        facadeArea,
		floorToFloor:      DefaultFloorToFloor,
		program:           key.Program,
		era:               key.Era,
		fractHeatToCanyon: DefaultFractHeatToCanyon,
		roofVegFraction:   DefaultRoofVegFraction,
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	if t.floorArea != nil && *t.floorArea < t.footprintArea {
		return nil, floorAreaError(*t.floorArea, t.footprintArea)
	}
	return t, nil
}

func floorAreaError(floor, footprint float64) error {
	return check.Invalid("floor_area", fmt.Sprintf(">= footprint_area (%v)", footprint), floor)
}

// Program returns the building program.
func (t *Typology) Program() bldgtypes.Program { return t.program }

// Era returns the construction era.
func (t *Typology) Era() bldgtypes.Era { return t.era }

// Key returns the program/era combination.
func (t *Typology) Key() bldgtypes.TypeKey {
	return bldgtypes.TypeKey{Program: t.program, Era: t.era}
}

// AverageHeight returns the footprint-weighted building height in meters.
func (t *Typology) AverageHeight() float64 { return t.averageHeight }

// FootprintArea returns the total building footprint in square meters.
func (t *Typology) FootprintArea() float64 { return t.footprintArea }

// FacadeArea returns the total exterior wall area in square meters.
func (t *Typology) FacadeArea() float64 { return t.facadeArea }

// FloorToFloor returns the average floor-to-floor height in meters.
func (t *Typology) FloorToFloor() float64 { return t.floorToFloor }

// NumberOfStories is the average height divided by the floor-to-floor height,
// rounded half to even.
func (t *Typology) NumberOfStories() int {
	return int(math.RoundToEven(t.averageHeight / t.floorToFloor))
}

// FloorArea returns the explicit floor area, or footprint times story count.
// A typology always has at least one story's worth of floor area.
func (t *Typology) FloorArea() float64 {
	if t.floorArea != nil {
		return *t.floorArea
	}
	return t.footprintArea * float64(max(1, t.NumberOfStories()))
}

// HasExplicitFloorArea reports whether the floor area was set rather than derived.
func (t *Typology) HasExplicitFloorArea() bool { return t.floorArea != nil }

// GlazingRatio returns the explicit glazing ratio or the program default.
func (t *Typology) GlazingRatio() float64 {
	if t.glzRatio != nil {
		return *t.glzRatio
	}
	// program is validated on construction, so the lookup cannot miss.
	v, _ := bldgtypes.GlazingRatio(t.program)
	return v
}

// WallAlbedo returns the explicit wall albedo or the program default.
func (t *Typology) WallAlbedo() float64 {
	if t.wallAlbedo != nil {
		return *t.wallAlbedo
	}
	v, _ := bldgtypes.WallAlbedo(t.program)
	return v
}

// RoofAlbedo returns the explicit roof albedo or the era default.
func (t *Typology) RoofAlbedo() float64 {
	if t.roofAlbedo != nil {
		return *t.roofAlbedo
	}
	v, _ := bldgtypes.RoofAlbedo(t.era)
	return v
}

// FractHeatToCanyon returns the fraction of building waste heat released
// into the street canyon.
func (t *Typology) FractHeatToCanyon() float64 { return t.fractHeatToCanyon }

// RoofVegFraction returns the fraction of roof area covered in vegetation.
func (t *Typology) RoofVegFraction() float64 { return t.roofVegFraction }

// SHGC returns the solar heat gain coefficient. Without an explicit value it
// falls back to the table default for the parent district's climate zone.
// The second result is false when neither is available.
func (t *Typology) SHGC() (float64, bool) {
	if t.shgc != nil {
		return *t.shgc, true
	}
	if t.parent != nil {
		if v, err := t.DefaultSHGC(t.parent.ClimateZone()); err == nil {
			return v, true
		}
	}
	return 0, false
}

// DefaultSHGC returns the table SHGC for this typology's era in zone.
func (t *Typology) DefaultSHGC(zone bldgtypes.ClimateZone) (float64, error) {
	return bldgtypes.SHGC(t.era, zone)
}

// ResolveSHGC stores the table SHGC for zone when no value is set yet. The
// stored value stays marked as a table default.
func (t *Typology) ResolveSHGC(zone bldgtypes.ClimateZone) error {
	if t.shgc != nil {
		return nil
	}
	v, err := t.DefaultSHGC(zone)
	if err != nil {
		return err
	}
	t.shgc = &v
	t.shgcDefaulted = true
	return nil
}

// SHGCDefaulted reports whether the SHGC was taken from the zone table rather
// than set explicitly.
func (t *Typology) SHGCDefaulted() bool { return t.shgc != nil && t.shgcDefaulted }

// SHGCFor returns the SHGC the typology has in zone: the explicit value when
// one was set, otherwise the table value for zone.
func (t *Typology) SHGCFor(zone bldgtypes.ClimateZone) (float64, error) {
	if t.shgc != nil && !t.shgcDefaulted {
		return *t.shgc, nil
	}
	return t.DefaultSHGC(zone)
}

// Parent returns the owning district, or nil.
func (t *Typology) Parent() Parent { return t.parent }

// Attach registers p as the parent district. A typology belongs to at most one
// district at a time.
func (t *Typology) Attach(p Parent) error {
	if t.parent != nil && t.parent != p {
		return fmt.Errorf("attaching %s: %w", t.Key(), check.ErrParented)
	}
	t.parent = p
	return nil
}

// Detach clears the parent district.
func (t *Typology) Detach() { t.parent = nil }

// SetAverageHeight sets the average building height in meters.
func (t *Typology) SetAverageHeight(h float64) error {
	if err := check.NonNegative(h, "average_height"); err != nil {
		return err
	}
	old := t.averageHeight
	t.averageHeight = h
	return t.notifyParent(func() { t.averageHeight = old })
}

// SetFootprintArea sets the total footprint area in square meters.
func (t *Typology) SetFootprintArea(a float64) error {
	if err := check.NonNegative(a, "footprint_area"); err != nil {
		return err
	}
	if t.floorArea != nil && *t.floorArea < a {
		return check.Invalid("footprint_area", fmt.Sprintf("<= floor_area (%v)", *t.floorArea), a)
	}
	old := t.footprintArea
	t.footprintArea = a
	return t.notifyParent(func() { t.footprintArea = old })
}

// SetFacadeArea sets the total facade area in square meters.
func (t *Typology) SetFacadeArea(a float64) error {
	if err := check.NonNegative(a, "facade_area"); err != nil {
		return err
	}
	old := t.facadeArea
	t.facadeArea = a
	return t.notifyParent(func() { t.facadeArea = old })
}

// SetFloorArea sets an explicit floor area, which may not be smaller than the
// footprint area.
func (t *Typology) SetFloorArea(a float64) error {
	if err := check.NonNegative(a, "floor_area"); err != nil {
		return err
	}
	if a < t.footprintArea {
		return floorAreaError(a, t.footprintArea)
	}
	old := t.floorArea
	t.floorArea = &a
	return t.notifyParent(func() { t.floorArea = old })
}

// SetFloorToFloor sets the floor-to-floor height, which changes the derived
// floor area.
func (t *Typology) SetFloorToFloor(h float64) error {
	if err := check.Positive(h, "floor_to_floor"); err != nil {
		return err
	}
	old := t.floorToFloor
	t.floorToFloor = h
	return t.notifyParent(func() { t.floorToFloor = old })
}

// notifyParent asks the parent to recompute and restores the previous value
// when it cannot.
func (t *Typology) notifyParent(undo func()) error {
	if t.parent == nil {
		return nil
	}
	if err := t.parent.UpdateGeometry(); err != nil {
		undo()
		return fmt.Errorf("updating district geometry: %w", err)
	}
	return nil
}

// SetGlazingRatio sets the window-to-wall ratio.
func (t *Typology) SetGlazingRatio(v float64) error {
	return setFraction(&t.glzRatio, v, "glz_ratio")
}

// SetSHGC sets an explicit solar heat gain coefficient, which no climate
// zone overrides.
func (t *Typology) SetSHGC(v float64) error {
	if err := setFraction(&t.shgc, v, "shgc"); err != nil {
		return err
	}
	t.shgcDefaulted = false
	return nil
}

// SetWallAlbedo sets the exterior wall albedo.
func (t *Typology) SetWallAlbedo(v float64) error {
	return setFraction(&t.wallAlbedo, v, "wall_albedo")
}

// SetRoofAlbedo sets the roof albedo.
func (t *Typology) SetRoofAlbedo(v float64) error {
	return setFraction(&t.roofAlbedo, v, "roof_albedo")
}

// SetFractHeatToCanyon sets the fraction of waste heat released to the canyon.
func (t *Typology) SetFractHeatToCanyon(v float64) error {
	if err := check.Fraction(v, "fract_heat_to_canyon"); err != nil {
		return err
	}
	t.fractHeatToCanyon = v
	return nil
}

// SetRoofVegFraction sets the fraction of roof area covered in vegetation.
func (t *Typology) SetRoofVegFraction(v float64) error {
	if err := check.Fraction(v, "roof_veg_fraction"); err != nil {
		return err
	}
	t.roofVegFraction = v
	return nil
}

func setFraction(dst **float64, v float64, field string) error {
	if err := check.Fraction(v, field); err != nil {
		return err
	}
	*dst = &v
	return nil
}

// Clone returns an unparented copy of t.
func (t *Typology) Clone() *Typology {
	c := *t
	c.parent = nil
	c.floorArea = clonePtr(t.floorArea)
	c.glzRatio = clonePtr(t.glzRatio)
	c.shgc = clonePtr(t.shgc)
	c.wallAlbedo = clonePtr(t.wallAlbedo)
	c.roofAlbedo = clonePtr(t.roofAlbedo)
	return &c
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// String summarizes the typology for display.
func (t *Typology) String() string {
	return fmt.Sprintf("Building Typology:\n  %s, %s\n  Average Height: %d m\n  Number of Stories: %d\n"+
		"  Floor Area: %.0f m2\n  Footprint Area: %.0f m2\n  Facade Area: %.0f m2\n  Glazing Ratio: %d %%",
		t.program, t.era, int(t.averageHeight), t.NumberOfStories(),
		t.FloorArea(), t.footprintArea, t.facadeArea, int(t.GlazingRatio()*100))
}
