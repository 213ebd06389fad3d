package district

import (
	"fmt"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/typology"
)

// SetBldgTypeRatios makes the ratio dictionary authoritative. The ratios are
// validated before anything changes; the current typologies are detached and
// a new list is synthesized from the ratios on the next read.
func (d *District) SetBldgTypeRatios(m map[string]float64) error {
	ratios, err := ParseRatios(m)
	if err != nil {
		return err
	}
	for _, t := range d.typologies {
		t.Detach()
	}
	d.typologies = nil
	d.ratios = ratios
	d.authority = RatiosAuthoritative
	return nil
}

// BuildingTypologies returns the typologies of the district. When the ratios
// are authoritative the list is first rebuilt from them, distributing the site
// area by ratio, coverage and facade-to-site ratio at the district average
// height.
func (d *District) BuildingTypologies() ([]*typology.Typology, error) {
	if d.authority == RatiosAuthoritative {
		if err := d.rebuildTypologies(); err != nil {
			return nil, err
		}
	}
	return append([]*typology.Typology(nil), d.typologies...), nil
}

func (d *District) rebuildTypologies() error {
	typs, err := synthesize(d.averageBldgHeight, d.siteCoverageRatio, d.facadeToSiteRatio, d.siteArea, d.ratios)
	if err != nil {
		return err
	}
	for _, t := range typs {
		if err := t.ResolveSHGC(d.climateZone); err != nil {
			return fmt.Errorf("resolving shgc of %s: %w", t.Key(), err)
		}
	}
	for _, t := range typs {
		if err := t.Attach(d); err != nil {
			return err
		}
	}
	d.typologies = typs
	d.authority = TypologiesAuthoritative
	return nil
}
