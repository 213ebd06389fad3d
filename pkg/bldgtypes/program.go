// Package bldgtypes defines the building programs, construction eras and
// ASHRAE climate zones understood by the UWG, along with the reference tables
// that supply default envelope parameters for each of them.
//
// The ordinal value of every enumeration is the index the UWG expects in its
// building-stock matrix and zone field.
package bldgtypes

import (
	"strconv"
	"strings"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

// Program is one of the 16 DoE commercial reference building programs.
type Program int

const (
	FullServiceRestaurant Program = iota
	Hospital
	LargeHotel
	LargeOffice
	MediumOffice
	MidRiseApartment
	OutPatient
	PrimarySchool
	QuickServiceRestaurant
	SecondarySchool
	SmallHotel
	SmallOffice
	StandAloneRetail
	StripMall
	SuperMarket
	WareHouse
)

// NumPrograms is the row count of the UWG building-stock matrix.
const NumPrograms = 16

var programNames = [NumPrograms]string{
	"FullServiceRestaurant",
	"Hospital",
	"LargeHotel",
	"LargeOffice",
	"MediumOffice",
	"MidRiseApartment",
	"OutPatient",
	"PrimarySchool",
	"QuickServiceRestaurant",
	"SecondarySchool",
	"SmallHotel",
	"SmallOffice",
	"StandAloneRetail",
	"StripMall",
	"SuperMarket",
	"WareHouse",
}

// programAliases maps upper-cased input spellings to programs. Numeric codes
// are the legacy UWG reference-building indices.
var programAliases = map[string]Program{
	"FULLSERVICERESTAURANT":  FullServiceRestaurant,
	"HOSPITAL":               Hospital,
	"LARGEHOTEL":             LargeHotel,
	"LARGEOFFICE":            LargeOffice,
	"MEDIUMOFFICE":           MediumOffice,
	"MIDRISEAPARTMENT":       MidRiseApartment,
	"OUTPATIENT":             OutPatient,
	"PRIMARYSCHOOL":          PrimarySchool,
	"QUICKSERVICERESTAURANT": QuickServiceRestaurant,
	"SECONDARYSCHOOL":        SecondarySchool,
	"SMALLHOTEL":             SmallHotel,
	"SMALLOFFICE":            SmallOffice,
	"STANDALONERETAIL":       StandAloneRetail,
	"STRIPMALL":              StripMall,
	"SUPERMARKET":            SuperMarket,
	"WAREHOUSE":              WareHouse,

	"FULL SERVICE RESTAURANT":  FullServiceRestaurant,
	"LARGE HOTEL":              LargeHotel,
	"LARGE OFFICE":             LargeOffice,
	"MEDIUM OFFICE":            MediumOffice,
	"MIDRISE APARTMENT":        MidRiseApartment,
	"OUT PATIENT":              OutPatient,
	"PRIMARY SCHOOL":           PrimarySchool,
	"QUICK SERVICE RESTAURANT": QuickServiceRestaurant,
	"SECONDARY SCHOOL":         SecondarySchool,
	"SMALL HOTEL":              SmallHotel,
	"SMALL OFFICE":             SmallOffice,
	"STANDALONE RETAIL":        StandAloneRetail,
	"STRIP MALL":               StripMall,

	"MEDOFFICE": MediumOffice,
	"OFFICE":    LargeOffice,
	"RETAIL":    StandAloneRetail,

	"0":  LargeOffice,
	"1":  StandAloneRetail,
	"2":  MidRiseApartment,
	"3":  PrimarySchool,
	"4":  SecondarySchool,
	"5":  SmallHotel,
	"6":  LargeHotel,
	"7":  Hospital,
	"8":  OutPatient,
	"9":  WareHouse,
	"10": SuperMarket,
	"11": FullServiceRestaurant,
	"12": QuickServiceRestaurant,
}

// Programs returns every program in matrix order.
func Programs() []Program {
	out := make([]Program, NumPrograms)
	for i := range out {
		out[i] = Program(i)
	}
	return out
}

func (p Program) String() string {
	if !p.Valid() {
		return "Program(" + strconv.Itoa(int(p)) + ")"
	}
	return programNames[p]
}

// Valid reports whether p is one of the enumerated programs.
func (p Program) Valid() bool { return p >= 0 && int(p) < NumPrograms }

// Index returns the UWG matrix row of p.
func (p Program) Index() int { return int(p) }

// ParseProgram normalizes a program name, alias or legacy numeric code.
func ParseProgram(s string) (Program, error) {
	if p, ok := programAliases[normalize(s)]; ok {
		return p, nil
	}
	return 0, check.Invalid("bldg_program", "one of "+strings.Join(programNames[:], ", "), s)
}

func (p Program) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, check.Invalid("bldg_program", "an enumerated program", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Program) UnmarshalText(text []byte) error {
	v, err := ParseProgram(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
