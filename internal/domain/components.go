package domain

import (
	"errors"
	"fmt"
	"math"
)

// signedHemisphere marks a component given as a signed decimal with no
// hemisphere letter. It only comes from the pattern table defaults.
const signedHemisphere = "+"

var (
	ErrInvalidComponents = errors.New("invalid coordinate components")

	ErrSameAxis          = fmt.Errorf("%w: both hemispheres on the same axis", ErrInvalidComponents)
	ErrNegativeDegrees   = fmt.Errorf("%w: negative degrees with a hemisphere letter", ErrInvalidComponents)
	ErrMinutesOutOfRange = fmt.Errorf("%w: minutes out of range", ErrInvalidComponents)
	ErrSecondsOutOfRange = fmt.Errorf("%w: seconds out of range", ErrInvalidComponents)
	ErrNonFinite         = fmt.Errorf("%w: value is not finite", ErrInvalidComponents)
)

// FromComponents assembles coordinates from two hemisphere/degree/minute/second
// groups. The groups may be given latitude first or longitude first; h1 and h2
// are one of N, S, E, W or "+" (signed decimal, no letter).
//
// Minutes and seconds must lie in [0, 61); 60 is accepted for UNESCO style
// coordinates.
func FromComponents(
	h1 string, d1, m1, s1 float64,
	h2 string, d2, m2, s2 float64,
) (Coordinates, error) {
	if (isLatHemisphere(h1) && isLatHemisphere(h2)) || (isLngHemisphere(h1) && isLngHemisphere(h2)) {
		return Coordinates{}, ErrSameAxis
	}

	if isLngHemisphere(h1) && isLatHemisphere(h2) {
		return FromComponents(h2, d2, m2, s2, h1, d1, m1, s1)
	}

	if err := checkComponent(h1, d1, m1, s1); err != nil {
		return Coordinates{}, fmt.Errorf("latitude: %w", err)
	}
	if err := checkComponent(h2, d2, m2, s2); err != nil {
		return Coordinates{}, fmt.Errorf("longitude: %w", err)
	}

	lat := d1 + m1/60 + s1/3600
	lng := d2 + m2/60 + s2/3600

	if h1 == "S" {
		lat = -lat
	}
	if h2 == "W" {
		lng = -lng
	}

	return NewCoordinates(lat, lng), nil
}

func checkComponent(h string, d, m, s float64) error {
	for _, v := range [...]float64{d, m, s} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	// Avoid N-12° 34.567: negative degrees only make sense for signed decimals.
	if h != signedHemisphere && d < 0 {
		return ErrNegativeDegrees
	}
	if m < 0 || m >= 61 {
		return ErrMinutesOutOfRange
	}
	if s < 0 || s >= 61 {
		return ErrSecondsOutOfRange
	}
	return nil
}

func isLatHemisphere(h string) bool { return h == "N" || h == "S" }

func isLngHemisphere(h string) bool { return h == "E" || h == "W" }
