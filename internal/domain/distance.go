package domain

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

type DistanceUnit string

const (
	UnitMeters     DistanceUnit = "m"
	UnitKilometers DistanceUnit = "km"
	UnitFeet       DistanceUnit = "ft"
	UnitMiles      DistanceUnit = "mi"
)

const (
	metersPerFoot = 0.3048
	metersPerMile = 1609.344
)

// ParseDistanceUnit maps a unit name to a DistanceUnit, case-insensitively.
func ParseDistanceUnit(value string, fallback DistanceUnit) DistanceUnit {
	switch DistanceUnit(strings.ToLower(strings.TrimSpace(value))) {
	case UnitMeters:
		return UnitMeters
	case UnitKilometers:
		return UnitKilometers
	case UnitFeet:
		return UnitFeet
	case UnitMiles:
		return UnitMiles
	}
	return fallback
}

// Distance is a length stored in meters.
type Distance struct {
	meters float64
}

// NewDistance converts value given in unit. Unknown units are read as meters.
func NewDistance(value float64, unit DistanceUnit) Distance {
	switch unit {
	case UnitKilometers:
		return Distance{meters: value * 1000}
	case UnitFeet:
		return Distance{meters: value * metersPerFoot}
	case UnitMiles:
		return Distance{meters: value * metersPerMile}
	default:
		return Distance{meters: value}
	}
}

func Meters(m float64) Distance {
	return Distance{meters: m}
}

func (d Distance) Meters() float64 { return d.meters }

// In returns the distance expressed in unit.
func (d Distance) In(unit DistanceUnit) float64 {
	switch unit {
	case UnitKilometers:
		return d.meters / 1000
	case UnitFeet:
		return d.meters / metersPerFoot
	case UnitMiles:
		return d.meters / metersPerMile
	default:
		return d.meters
	}
}

// Format renders the distance in unit with a unit-specific precision,
// e.g. "1.500 km" or "4921.3 ft".
func (d Distance) Format(unit DistanceUnit) string {
	precision := 2
	switch unit {
	case UnitKilometers, UnitMiles:
		precision = 3
	case UnitFeet:
		precision = 1
	case UnitMeters:
	default:
		unit = UnitMeters
	}
	return fmt.Sprintf("%.*f %s", precision, d.In(unit), unit)
}

// Humanize renders the distance with an SI prefix ("12.35 km", "850 m").
func (d Distance) Humanize() string {
	return humanize.SIWithDigits(d.meters, 2, "m")
}

func (d Distance) String() string {
	return d.Format(UnitMeters)
}
