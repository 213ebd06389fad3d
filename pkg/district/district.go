// Package district aggregates building typologies into the neighborhood-scale
// geometry and envelope parameters the UWG consumes.
//
// A District is built either bottom-up from typologies with absolute areas,
// or top-down from ratios and district geometry (FromGeoParams), in which case
// one typology per ratio is synthesized and the bottom-up path is reused.
// Typologies keep a back-reference to their district and call UpdateGeometry
// whenever their geometry changes.
package district

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/bldgtypes"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/typology"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/uwgpar"
)

// DefaultCharacteristicLength is the side of the square assumed to enclose a
// typical mid-density neighborhood, in meters.
const DefaultCharacteristicLength = 500.0

// RatioTolerance bounds how far a ratio dictionary may sum from 1.
const RatioTolerance = 1e-6

// Authority records which representation of the building stock is the
// source of truth.
type Authority int

const (
	// TypologiesAuthoritative: ratios are derived from the typology list.
	TypologiesAuthoritative Authority = iota
	// RatiosAuthoritative: the typology list is stale and is rebuilt from the
	// ratios on the next read.
	RatiosAuthoritative
)

// String returns "typologies" or "ratios".
func (a Authority) String() string {
	switch a {
	case TypologiesAuthoritative:
		return "typologies"
	case RatiosAuthoritative:
		return "ratios"
	default:
		return fmt.Sprintf("Authority(%d)", int(a))
	}
}

// Ratio is the share of district floor area held by one program/era.
type Ratio struct {
	Key      bldgtypes.TypeKey
	Fraction float64
}

// District is an urban neighborhood described by its building stock.
type District struct {
	averageBldgHeight    float64
	siteCoverageRatio    float64
	facadeToSiteRatio    float64
	siteArea             float64
	characteristicLength float64
	climateZone          bldgtypes.ClimateZone

	ratios     []Ratio
	typologies []*typology.Typology
	authority  Authority

	treeCoverageRatio  float64
	grassCoverageRatio float64
	traffic            *uwgpar.Traffic
	vegetation         uwgpar.Vegetation
	pavement           uwgpar.Pavement
}

// Option sets an optional district parameter.
type Option func(*District) error

// WithCharacteristicLength sets the side of the square enclosing the district.
func WithCharacteristicLength(l float64) Option {
	return func(d *District) error {
		if err := check.Positive(l, "characteristic_length"); err != nil {
			return err
		}
		d.characteristicLength = l
		return nil
	}
}

// WithTreeCoverage sets the fraction of the site covered by trees.
func WithTreeCoverage(r float64) Option {
	return func(d *District) error { return d.SetTreeCoverageRatio(r) }
}

// WithGrassCoverage sets the fraction of the site covered by grass.
func WithGrassCoverage(r float64) Option {
	return func(d *District) error { return d.SetGrassCoverageRatio(r) }
}

// WithTraffic replaces the height-based default traffic parameters.
func WithTraffic(t uwgpar.Traffic) Option {
	return func(d *District) error { return d.SetTraffic(t) }
}

// WithVegetation replaces the default vegetation parameters.
func WithVegetation(v uwgpar.Vegetation) Option {
	return func(d *District) error { return d.SetVegetation(v) }
}

// WithPavement replaces the default pavement parameters.
func WithPavement(p uwgpar.Pavement) Option {
	return func(d *District) error { return d.SetPavement(p) }
}

func newDistrict(zone bldgtypes.ClimateZone, opts []Option) (*District, error) {
	d := &District{
		climateZone: zone,
		vegetation:  uwgpar.DefaultVegetation(),
		pavement:    uwgpar.DefaultPavement(),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// New builds a district bottom-up. Typologies sharing a program and era are
// merged in input order; every resulting typology is attached to the
// district and any unresolved SHGC is taken from the climate zone table.
// The characteristic length defaults to the square root of the site area.
func New(typologies []*typology.Typology, siteArea float64, climateZone string, opts ...Option) (*District, error) {
	zone, err := bldgtypes.ParseClimateZone(climateZone)
	if err != nil {
		return nil, err
	}
	if err := check.Positive(siteArea, "site_area"); err != nil {
		return nil, err
	}
	merged, err := mergeByType(typologies)
	if err != nil {
		return nil, err
	}

	d, err := newDistrict(zone, opts)
	if err != nil {
		return nil, err
	}
	d.siteArea = siteArea
	if d.characteristicLength == 0 {
		d.characteristicLength = math.Sqrt(siteArea)
	}

	geo, err := computeGeometry(siteArea, merged)
	if err != nil {
		return nil, err
	}

	// Check every attachment before mutating any typology.
	for _, t := range merged {
		if p := t.Parent(); p != nil {
			return nil, fmt.Errorf("attaching %s: %w", t.Key(), check.ErrParented)
		}
		if _, ok := t.SHGC(); !ok {
			if _, err := t.DefaultSHGC(zone); err != nil {
				return nil, fmt.Errorf("resolving shgc of %s: %w", t.Key(), err)
			}
		}
	}
	for _, t := range merged {
		if err := t.Attach(d); err != nil {
			return nil, err
		}
		if err := t.ResolveSHGC(zone); err != nil {
			return nil, err
		}
	}

	d.typologies = merged
	d.authority = TypologiesAuthoritative
	d.applyGeometry(geo)
	if d.traffic == nil {
		tr, err := uwgpar.NewTraffic(uwgpar.DefaultSensibleHeat(d.averageBldgHeight))
		if err != nil {
			return nil, err
		}
		d.traffic = &tr
	}
	return d, nil
}

// FromGeoParams builds a district top-down from aggregate geometry and floor
// area ratios keyed "{program},{era}". The site area is the square of the
// characteristic length, which defaults to DefaultCharacteristicLength.
func FromGeoParams(averageBldgHeight, siteCoverageRatio, facadeToSiteRatio float64,
	bldgTypeRatios map[string]float64, climateZone string, opts ...Option) (*District, error) {
	if err := checkGeoParams(averageBldgHeight, siteCoverageRatio, facadeToSiteRatio); err != nil {
		return nil, err
	}
	ratios, err := ParseRatios(bldgTypeRatios)
	if err != nil {
		return nil, err
	}

	cfg := &District{characteristicLength: DefaultCharacteristicLength}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	siteArea := cfg.characteristicLength * cfg.characteristicLength

	typs, err := synthesize(averageBldgHeight, siteCoverageRatio, facadeToSiteRatio, siteArea, ratios)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithCharacteristicLength(cfg.characteristicLength)}, opts...)
	return New(typs, siteArea, climateZone, opts...)
}

func checkGeoParams(height, coverage, facadeRatio float64) error {
	if err := check.NonNegative(height, "average_bldg_height"); err != nil {
		return err
	}
	if err := check.Fraction(coverage, "site_coverage_ratio"); err != nil {
		return err
	}
	return check.NonNegative(facadeRatio, "facade_to_site_ratio")
}

// synthesize creates one typology per ratio, distributing footprint and
// facade area over the site in proportion to the ratio.
func synthesize(height, coverage, facadeRatio, siteArea float64, ratios []Ratio) ([]*typology.Typology, error) {
	typs := make([]*typology.Typology, 0, len(ratios))
	for _, r := range ratios {
		footprint := siteArea * coverage * r.Fraction
		facade := siteArea * facadeRatio * r.Fraction
		t, err := typology.NewOf(height, footprint, facade, r.Key)
		if err != nil {
			return nil, fmt.Errorf("synthesizing %s: %w", r.Key, err)
		}
		typs = append(typs, t)
	}
	return typs, nil
}

// mergeByType folds typologies with the same program/era together, keeping
// the order in which each key was first seen. Every input must be free of a
// district, including those folded into a merged typology.
func mergeByType(typologies []*typology.Typology) ([]*typology.Typology, error) {
	if len(typologies) == 0 {
		return nil, fmt.Errorf("building_typologies: %w", check.ErrEmptyAggregate)
	}
	index := make(map[bldgtypes.TypeKey]int, len(typologies))
	merged := make([]*typology.Typology, 0, len(typologies))
	for i, t := range typologies {
		if t == nil {
			return nil, check.Invalid(fmt.Sprintf("building_typologies[%d]", i), "a typology", "nil")
		}
		if t.Parent() != nil {
			return nil, fmt.Errorf("building_typologies[%d]: attaching %s: %w", i, t.Key(), check.ErrParented)
		}
		k := t.Key()
		j, seen := index[k]
		if !seen {
			index[k] = len(merged)
			merged = append(merged, t)
			continue
		}
		m, err := typology.Merge(merged[j], t)
		if err != nil {
			return nil, err
		}
		merged[j] = m
	}
	return merged, nil
}

// ParseRatios validates a ratio dictionary: every key must parse as
// "{program},{era}", every value must be non-negative, and the values must
// sum to 1. Entries are returned in UWG matrix order.
func ParseRatios(m map[string]float64) ([]Ratio, error) {
	if len(m) == 0 {
		return nil, check.Invalid("bldg_type_ratios", "at least one entry", "{}")
	}
	seen := make(map[bldgtypes.TypeKey]string, len(m))
	out := make([]Ratio, 0, len(m))
	total := 0.0
	for raw, v := range m {
		k, err := bldgtypes.ParseTypeKey(raw)
		if err != nil {
			return nil, fmt.Errorf("bldg_type_ratios: %w", err)
		}
		if other, dup := seen[k]; dup {
			return nil, check.Invalid("bldg_type_ratios", "one entry per program and era", fmt.Sprintf("%q and %q", other, raw))
		}
		seen[k] = raw
		if err := check.NonNegative(v, "bldg_type_ratios["+raw+"]"); err != nil {
			return nil, err
		}
		total += v
		out = append(out, Ratio{Key: k, Fraction: v})
	}
	if math.Abs(total-1) > RatioTolerance {
		return nil, fmt.Errorf("bldg_type_ratios sum to %v, not 1: %w", total, check.ErrMismatch)
	}
	sortRatios(out)
	return out, nil
}

func sortRatios(rs []Ratio) {
	slices.SortFunc(rs, func(a, b Ratio) int {
		if c := cmp.Compare(a.Key.Program, b.Key.Program); c != 0 {
			return c
		}
		return cmp.Compare(a.Key.Era, b.Key.Era)
	})
}

// AverageBldgHeight returns the footprint-weighted building height in meters.
func (d *District) AverageBldgHeight() float64 { return d.averageBldgHeight }

// SiteCoverageRatio returns the fraction of the site covered by footprints.
func (d *District) SiteCoverageRatio() float64 { return d.siteCoverageRatio }

// FacadeToSiteRatio returns total facade area over site area.
func (d *District) FacadeToSiteRatio() float64 { return d.facadeToSiteRatio }

// SiteArea returns the district site area in square meters.
func (d *District) SiteArea() float64 { return d.siteArea }

// CharacteristicLength returns the side of the square enclosing the district.
func (d *District) CharacteristicLength() float64 { return d.characteristicLength }

// ClimateZone returns the ASHRAE zone. It also makes District a
// typology.Parent.
func (d *District) ClimateZone() bldgtypes.ClimateZone { return d.climateZone }

// Authority reports whether typologies or ratios are the source of truth.
func (d *District) Authority() Authority { return d.authority }

// Ratios returns the floor area ratios in their stored order.
func (d *District) Ratios() []Ratio {
	return append([]Ratio(nil), d.ratios...)
}

// BldgTypeRatios returns the ratios keyed by canonical "{program},{era}".
func (d *District) BldgTypeRatios() map[string]float64 {
	m := make(map[string]float64, len(d.ratios))
	for _, r := range d.ratios {
		m[r.Key.String()] = r.Fraction
	}
	return m
}

// BldgTypes returns the program/era combinations present in the district.
func (d *District) BldgTypes() []bldgtypes.TypeKey {
	keys := make([]bldgtypes.TypeKey, len(d.ratios))
	for i, r := range d.ratios {
		keys[i] = r.Key
	}
	return keys
}

// TreeCoverageRatio returns the fraction of the site covered by trees.
func (d *District) TreeCoverageRatio() float64 { return d.treeCoverageRatio }

// GrassCoverageRatio returns the fraction of the site covered by grass.
func (d *District) GrassCoverageRatio() float64 { return d.grassCoverageRatio }

// Traffic returns the anthropogenic traffic heat parameters, defaulting from
// the average building height when none were set.
func (d *District) Traffic() uwgpar.Traffic {
	if d.traffic == nil {
		tr, _ := uwgpar.NewTraffic(uwgpar.DefaultSensibleHeat(d.averageBldgHeight))
		return tr
	}
	return *d.traffic
}

// Vegetation returns the urban vegetation parameters.
func (d *District) Vegetation() uwgpar.Vegetation { return d.vegetation }

// Pavement returns the road pavement parameters.
func (d *District) Pavement() uwgpar.Pavement { return d.pavement }

// SetTreeCoverageRatio sets the fraction of the site covered by trees.
func (d *District) SetTreeCoverageRatio(r float64) error {
	if err := check.Fraction(r, "tree_coverage_ratio"); err != nil {
		return err
	}
	d.treeCoverageRatio = r
	return nil
}

// SetGrassCoverageRatio sets the fraction of the site covered by grass.
func (d *District) SetGrassCoverageRatio(r float64) error {
	if err := check.Fraction(r, "grass_coverage_ratio"); err != nil {
		return err
	}
	d.grassCoverageRatio = r
	return nil
}

// SetTraffic validates and stores traffic parameters. Empty schedules are
// filled with the typical commercial schedules.
func (d *District) SetTraffic(t uwgpar.Traffic) error {
	t.ApplyDefaults()
	if err := t.Validate(); err != nil {
		return fmt.Errorf("traffic_parameters: %w", err)
	}
	d.traffic = &t
	return nil
}

// SetVegetation validates and stores vegetation parameters.
func (d *District) SetVegetation(v uwgpar.Vegetation) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("vegetation_parameters: %w", err)
	}
	d.vegetation = v
	return nil
}

// SetPavement validates and stores pavement parameters.
func (d *District) SetPavement(p uwgpar.Pavement) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("pavement_parameters: %w", err)
	}
	d.pavement = p
	return nil
}
