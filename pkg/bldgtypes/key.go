package bldgtypes

import (
	"strings"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

// TypeKey identifies a program/era combination.
type TypeKey struct {
	Program Program
	Era     Era
}

// String returns the canonical "{program},{era}" form used in ratio maps.
func (k TypeKey) String() string {
	return k.Program.String() + "," + k.Era.String()
}

// ParseTypeKey parses "{program},{era}", accepting any alias of either part.
func ParseTypeKey(s string) (TypeKey, error) {
	prog, era, ok := strings.Cut(s, ",")
	if !ok || strings.Contains(era, ",") {
		return TypeKey{}, check.Invalid("bldg_type", "of the form BldgProgram,BldgEra", s)
	}
	p, err := ParseProgram(prog)
	if err != nil {
		return TypeKey{}, err
	}
	e, err := ParseEra(era)
	if err != nil {
		return TypeKey{}, err
	}
	return TypeKey{Program: p, Era: e}, nil
}

func (k TypeKey) MarshalText() ([]byte, error) {
	if !k.Program.Valid() || !k.Era.Valid() {
		return nil, check.Invalid("bldg_type", "an enumerated program and era", k.String())
	}
	return []byte(k.String()), nil
}

func (k *TypeKey) UnmarshalText(text []byte) error {
	v, err := ParseTypeKey(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
