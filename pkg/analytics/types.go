package analytics

// TypologyRow holds the resolved parameters of one typology.
type TypologyRow struct {
	Key               string  `json:"key"`
	Program           string  `json:"bldg_program"`
	Era               string  `json:"bldg_era"`
	Ratio             float64 `json:"floor_area_ratio"`
	AverageHeight     float64 `json:"average_height_m"`
	Stories           int     `json:"number_of_stories"`
	FloorToFloor      float64 `json:"floor_to_floor_m"`
	FootprintArea     float64 `json:"footprint_area_m2"`
	FacadeArea        float64 `json:"facade_area_m2"`
	FloorArea         float64 `json:"floor_area_m2"`
	GlazingRatio      float64 `json:"glz_ratio"`
	SHGC              float64 `json:"shgc"`
	WallAlbedo        float64 `json:"wall_albedo"`
	RoofAlbedo        float64 `json:"roof_albedo"`
	FractHeatToCanyon float64 `json:"fract_heat_to_canyon"`
	RoofVegFraction   float64 `json:"roof_veg_fraction"`
}

// Aggregates holds district totals and the area-weighted envelope
// parameters. Parameters whose weights sum to zero are left at zero and
// reported as warnings.
type Aggregates struct {
	AverageBldgHeight    float64 `json:"average_bldg_height_m"`
	SiteCoverageRatio    float64 `json:"site_coverage_ratio"`
	FacadeToSiteRatio    float64 `json:"facade_to_site_ratio"`
	SiteArea             float64 `json:"site_area_m2"`
	CharacteristicLength float64 `json:"characteristic_length_m"`
	TotalFootprintArea   float64 `json:"total_footprint_area_m2"`
	TotalFacadeArea      float64 `json:"total_facade_area_m2"`
	TotalFloorArea       float64 `json:"total_floor_area_m2"`
	FloorAreaRatio       float64 `json:"floor_area_ratio"`
	FloorHeight          float64 `json:"floor_height_m"`
	GlazingRatio         float64 `json:"glz_ratio"`
	SHGC                 float64 `json:"shgc"`
	WallAlbedo           float64 `json:"wall_albedo"`
	RoofAlbedo           float64 `json:"roof_albedo"`
	FractHeatToCanyon    float64 `json:"fract_heat_to_canyon"`
	RoofVegFraction      float64 `json:"roof_veg_fraction"`
}

// TrafficSummary holds the daily average anthropogenic heat per day type.
type TrafficSummary struct {
	SensibleHeat    float64 `json:"sensible_heat_w_m2"`
	WeekdayAvgHeat  float64 `json:"weekday_avg_heat_w_m2"`
	SaturdayAvgHeat float64 `json:"saturday_avg_heat_w_m2"`
	SundayAvgHeat   float64 `json:"sunday_avg_heat_w_m2"`
}

// Summary is the resolved view of a district.
type Summary struct {
	ClimateZone string         `json:"climate_zone"`
	Authority   string         `json:"authority"`
	Typologies  []TypologyRow  `json:"typologies"`
	Aggregates  Aggregates     `json:"aggregates"`
	Traffic     TrafficSummary `json:"traffic"`
	TreeCover   float64        `json:"tree_coverage_ratio"`
	GrassCover  float64        `json:"grass_coverage_ratio"`
	Matrix      [][]float64    `json:"uwg_matrix"`
}
