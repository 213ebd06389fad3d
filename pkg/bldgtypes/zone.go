package bldgtypes

import (
	"strconv"
	"strings"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

// ClimateZone is an ASHRAE climate zone as indexed by the UWG.
type ClimateZone int

const (
	Zone1A ClimateZone = iota
	Zone2A
	Zone2B
	Zone3A
	Zone3BCA
	Zone3B
	Zone3C
	Zone4A
	Zone4B
	Zone4C
	Zone5A
	Zone5B
	Zone6A
	Zone6B
	Zone7
	Zone8
)

// NumClimateZones is the number of zones the UWG distinguishes.
const NumClimateZones = 16

var zoneNames = [NumClimateZones]string{
	"1A", "2A", "2B", "3A", "3B-CA", "3B", "3C", "4A",
	"4B", "4C", "5A", "5B", "6A", "6B", "7", "8",
}

// zoneAliases resolves subzones the UWG does not model to the nearest zone
// it does.
var zoneAliases = map[string]ClimateZone{
	"1": Zone1A,
	"2": Zone2A,
	"3": Zone3A,
	"4": Zone4A,
	"5": Zone5A,
	"6": Zone6A,

	"1B": Zone1A,
	"1C": Zone1A,
	"2C": Zone2A,
	"5C": Zone5A,
	"6C": Zone6A,
	"7A": Zone7,
	"7B": Zone7,
	"7C": Zone7,
	"8A": Zone8,
	"8B": Zone8,
	"8C": Zone8,
}

func init() {
	for i, name := range zoneNames {
		zoneAliases[name] = ClimateZone(i)
	}
}

// ClimateZones returns every zone in index order.
func ClimateZones() []ClimateZone {
	out := make([]ClimateZone, NumClimateZones)
	for i := range out {
		out[i] = ClimateZone(i)
	}
	return out
}

func (z ClimateZone) String() string {
	if !z.Valid() {
		return "ClimateZone(" + strconv.Itoa(int(z)) + ")"
	}
	return zoneNames[z]
}

// Valid reports whether z is one of the enumerated zones.
func (z ClimateZone) Valid() bool { return z >= 0 && int(z) < NumClimateZones }

// Index returns the UWG zone index of z.
func (z ClimateZone) Index() int { return int(z) }

// ParseClimateZone normalizes a zone code, resolving legacy aliases such as
// "5" to "5A" and "7B" to "7".
func ParseClimateZone(s string) (ClimateZone, error) {
	if z, ok := zoneAliases[normalize(s)]; ok {
		return z, nil
	}
	return 0, check.Invalid("climate_zone", "one of "+strings.Join(zoneNames[:], ", "), s)
}

func (z ClimateZone) MarshalText() ([]byte, error) {
	if !z.Valid() {
		return nil, check.Invalid("climate_zone", "an enumerated climate zone", int(z))
	}
	return []byte(z.String()), nil
}

func (z *ClimateZone) UnmarshalText(text []byte) error {
	v, err := ParseClimateZone(string(text))
	if err != nil {
		return err
	}
	*z = v
	return nil
}
