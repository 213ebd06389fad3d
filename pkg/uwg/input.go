// Package uwg assembles the flat input record the Urban Weather Generator
// reads from a district and a simulation parameter set.
package uwg

import (
	"fmt"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/district"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/simpar"
)

// Vegetation months used when the district leaves them to be computed from
// weather data.
const (
	DefaultVegStart = 4
	DefaultVegEnd   = 10
)

// Input is the UWG input schema. Keys match the UWG's own parameter names.
type Input struct {
	BldHeight  float64     `json:"bldheight"`
	BldDensity float64     `json:"blddensity"`
	VerToHor   float64     `json:"vertohor"`
	HMix       float64     `json:"h_mix"`
	CharLength float64     `json:"charlength"`
	AlbRoad    float64     `json:"albroad"`
	DRoad      float64     `json:"droad"`
	KRoad      float64     `json:"kroad"`
	CRoad      float64     `json:"croad"`
	SensAnth   float64     `json:"sensanth"`
	SchTraffic [][]float64 `json:"schtraffic"`
	Bld        [][]float64 `json:"bld"`
	Zone       string      `json:"zone"`

	VegCover     float64 `json:"vegcover"`
	TreeCoverage float64 `json:"treecoverage"`
	AlbVeg       float64 `json:"albveg"`
	LatGrss      float64 `json:"latgrss"`
	LatTree      float64 `json:"lattree"`
	VegStart     int     `json:"vegstart"`
	VegEnd       int     `json:"vegend"`

	Glzr    float64 `json:"glzr"`
	SHGC    float64 `json:"shgc"`
	AlbWall float64 `json:"albwall"`
	AlbRoof float64 `json:"albroof"`
	VegRoof float64 `json:"vegroof"`
	FlrH    float64 `json:"flr_h"`

	Month       int     `json:"month"`
	Day         int     `json:"day"`
	NDay        int     `json:"nday"`
	DtSim       int     `json:"dtsim"`
	DtWeather   int     `json:"dtweather"`
	RurVegCover float64 `json:"rurvegcover"`
	HUBL1       float64 `json:"h_ubl1"`
	HUBL2       float64 `json:"h_ubl2"`
	HRef        float64 `json:"h_ref"`
	HTemp       float64 `json:"h_temp"`
	HWind       float64 `json:"h_wind"`
	CCirc       float64 `json:"c_circ"`
	CExch       float64 `json:"c_exch"`
	HObs        float64 `json:"h_obs"`

	MaxDay    float64 `json:"maxday"`
	MaxNight  float64 `json:"maxnight"`
	WindMin   float64 `json:"windmin"`
	Autosize  bool    `json:"autosize"`
	SensOcc   float64 `json:"sensocc"`
	LatFOcc   float64 `json:"latfocc"`
	RadFOcc   float64 `json:"radfocc"`
	RadFEquip float64 `json:"radfequip"`
	RadFLight float64 `json:"radflight"`
}

// NewInput builds the UWG input for d under p. The simulation parameter's
// climate zone, when set, replaces the district zone in the output, and SHGC
// values taken from the zone table are looked up again for it.
func NewInput(d *district.District, p simpar.Parameter) (*Input, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("simulation parameter: %w", err)
	}
	zone := p.Zone(d.ClimateZone())

	shgc, err := d.SHGCFor(zone)
	if err != nil {
		return nil, err
	}

	in := &Input{
		BldHeight:  d.AverageBldgHeight(),
		BldDensity: d.SiteCoverageRatio(),
		VerToHor:   d.FacadeToSiteRatio(),
		CharLength: d.CharacteristicLength(),
		Zone:       zone.String(),
		SHGC:       shgc,
	}
	if err := in.setEnvelope(d); err != nil {
		return nil, err
	}
	in.setMatrix(d)
	in.setSite(d)
	in.setSimulation(p)
	in.setConstants()
	return in, nil
}

func (in *Input) setEnvelope(d *district.District) error {
	var err error
	params := []struct {
		dst *float64
		get func() (float64, error)
	}{
		{&in.HMix, d.FractHeatToCanyon},
		{&in.Glzr, d.GlazingRatio},
		{&in.AlbWall, d.WallAlbedo},
		{&in.AlbRoof, d.RoofAlbedo},
		{&in.VegRoof, d.RoofVegFraction},
		{&in.FlrH, d.FloorHeight},
	}
	for _, p := range params {
		if *p.dst, err = p.get(); err != nil {
			return err
		}
	}
	return nil
}

func (in *Input) setMatrix(d *district.District) {
	m := d.UWGMatrix()
	in.Bld = make([][]float64, len(m))
	for i := range m {
		in.Bld[i] = append([]float64(nil), m[i][:]...)
	}
	tr := d.Traffic()
	in.SensAnth = tr.SensibleHeat
	in.SchTraffic = tr.UWGMatrix()
}

func (in *Input) setSite(d *district.District) {
	pav := d.Pavement()
	in.AlbRoad = pav.Albedo
	in.DRoad = pav.Thickness
	in.KRoad = pav.Conductivity
	in.CRoad = pav.VolumetricHeatCapacity

	veg := d.Vegetation()
	in.VegCover = d.GrassCoverageRatio()
	in.TreeCoverage = d.TreeCoverageRatio()
	in.AlbVeg = veg.Albedo
	in.LatGrss = veg.GrassLatentFraction
	in.LatTree = veg.TreeLatentFraction
	in.VegStart = veg.StartMonth
	if in.VegStart == 0 {
		in.VegStart = DefaultVegStart
	}
	in.VegEnd = veg.EndMonth
	if in.VegEnd == 0 {
		in.VegEnd = DefaultVegEnd
	}
}

func (in *Input) setSimulation(p simpar.Parameter) {
	in.Month = p.RunPeriod.Start.Month
	in.Day = p.RunPeriod.Start.Day
	in.NDay = p.RunPeriod.DayCount()
	in.DtSim = p.SimulationStep()

	in.RurVegCover = p.ReferenceEPWSite.VegetationCoverage
	in.HTemp = p.ReferenceEPWSite.TempMeasureHeight
	in.HWind = p.ReferenceEPWSite.WindMeasureHeight
	in.HObs = p.ReferenceEPWSite.AverageObstacleHeight

	in.HUBL1 = p.BoundaryLayer.DayHeight
	in.HUBL2 = p.BoundaryLayer.NightHeight
	in.HRef = p.BoundaryLayer.InversionHeight
	in.CCirc = p.BoundaryLayer.CirculationCoefficient
	in.CExch = p.BoundaryLayer.ExchangeCoefficient
}

// setConstants fills the parameters the UWG needs that no district or
// simulation setting controls.
func (in *Input) setConstants() {
	in.DtWeather = 3600
	in.Autosize = false
	in.SensOcc = 100
	in.LatFOcc = 0.3
	in.RadFOcc = 0.2
	in.RadFEquip = 0.5
	in.RadFLight = 0.7
	in.MaxDay = 150
	in.MaxNight = 20
	in.WindMin = 1
}
