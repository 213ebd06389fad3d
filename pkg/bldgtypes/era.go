package bldgtypes

import (
	"strconv"
	"strings"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

// Era is the construction vintage of a building typology.
type Era int

const (
	Pre1980s Era = iota
	Present1980s
	NewConstruction
)

// NumEras is the column count of the UWG building-stock matrix.
const NumEras = 3

var eraNames = [NumEras]string{"Pre1980s", "1980sPresent", "NewConstruction"}

// uwgEraNames are the era labels used inside the UWG reference library.
var uwgEraNames = [NumEras]string{"Pre80", "Pst80", "New"}

var eraAliases = map[string]Era{
	"PRE1980S":        Pre1980s,
	"1980SPRESENT":    Present1980s,
	"NEWCONSTRUCTION": NewConstruction,

	"0": Pre1980s,
	"1": Present1980s,
	"2": NewConstruction,

	"PRE-1980'S":       Pre1980s,
	"1980'S-PRESENT":   Present1980s,
	"NEW CONSTRUCTION": NewConstruction,

	"PRE80": Pre1980s,
	"PST80": Present1980s,
	"NEW":   NewConstruction,
}

// Eras returns every era in matrix order.
func Eras() []Era {
	return []Era{Pre1980s, Present1980s, NewConstruction}
}

func (e Era) String() string {
	if !e.Valid() {
		return "Era(" + strconv.Itoa(int(e)) + ")"
	}
	return eraNames[e]
}

// Valid reports whether e is one of the enumerated eras.
func (e Era) Valid() bool { return e >= 0 && int(e) < NumEras }

// Index returns the UWG matrix column of e.
func (e Era) Index() int { return int(e) }

// UWGName returns the label of e in the UWG reference library.
func (e Era) UWGName() string {
	if !e.Valid() {
		return ""
	}
	return uwgEraNames[e]
}

// ParseEra normalizes an era name, alias or legacy numeric code.
func ParseEra(s string) (Era, error) {
	if e, ok := eraAliases[normalize(s)]; ok {
		return e, nil
	}
	return 0, check.Invalid("bldg_era", "one of "+strings.Join(eraNames[:], ", "), s)
}

func (e Era) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, check.Invalid("bldg_era", "an enumerated era", int(e))
	}
	return []byte(e.String()), nil
}

func (e *Era) UnmarshalText(text []byte) error {
	v, err := ParseEra(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
