package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Immutable geographic coordinates (signed degrees).
//
// The raw values are stored exactly as constructed: latitude is never
// clamped and longitude may lie outside [-180, 180]. Use Lng or NextLng
// for a wrapped longitude.
type Coordinates struct {
	rawLat float64
	rawLng float64
}

func NewCoordinates(lat, lng float64) Coordinates {
	return Coordinates{rawLat: lat, rawLng: lng}
}

// Equal reports exact equality of the raw values (no epsilon).
func (c Coordinates) Equal(other Coordinates) bool {
	return c.rawLat == other.rawLat && c.rawLng == other.rawLng
}

func (c Coordinates) RawLat() float64 { return c.rawLat }

func (c Coordinates) RawLng() float64 { return c.rawLng }

func (c Coordinates) Lat() float64 { return c.rawLat }

// Beyond this magnitude longitudes are reduced with math.Remainder before
// the ±360 steps, which stay exact for ordinary values. Stepping alone does
// not terminate once 360 is below the float spacing.
const wrapReduceAbove = 720

// Lng returns the longitude normalized into [-180, 180]. A non-finite raw
// longitude yields NaN.
func (c Coordinates) Lng() float64 {
	lng := c.rawLng
	if math.Abs(lng) > wrapReduceAbove {
		lng = math.Remainder(lng, 360)
	}
	for lng < -180 {
		lng += 360
	}
	for lng > 180 {
		lng -= 360
	}
	return lng
}

// NextLng returns the longitude normalized into [ref-180, ref+180] so that
// two points can be compared or interpolated without a wraparound jump.
func (c Coordinates) NextLng(ref float64) float64 {
	lng := c.rawLng
	if math.Abs(lng-ref) > wrapReduceAbove {
		lng = math.Remainder(lng-ref, 360) + ref
	}
	for lng < ref-180 {
		lng += 360
	}
	for lng > ref+180 {
		lng -= 360
	}
	return lng
}

// NS returns the latitude hemisphere letter. Zero (and -0) is north.
func (c Coordinates) NS() string {
	if c.Lat() >= 0 {
		return "N"
	}
	return "S"
}

// EW returns the longitude hemisphere letter. Zero (and -0) is east.
func (c Coordinates) EW() string {
	if c.Lng() >= 0 {
		return "E"
	}
	return "W"
}

// MarshalText encodes the raw values as "lat;lng".
func (c Coordinates) MarshalText() ([]byte, error) {
	lat := strconv.FormatFloat(c.rawLat, 'f', -1, 64)
	lng := strconv.FormatFloat(c.rawLng, 'f', -1, 64)
	return []byte(lat + ";" + lng), nil
}

// UnmarshalText accepts the "lat;lng" storage form or any text FromString
// understands.
func (c *Coordinates) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if latStr, lngStr, ok := strings.Cut(s, ";"); ok {
		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil {
			return fmt.Errorf("unmarshal coordinates: latitude %q: %w", latStr, err)
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
		if err != nil {
			return fmt.Errorf("unmarshal coordinates: longitude %q: %w", lngStr, err)
		}
		*c = NewCoordinates(lat, lng)
		return nil
	}

	parsed, err := FromString(s)
	if err != nil {
		return fmt.Errorf("unmarshal coordinates: %w", err)
	}
	*c = parsed
	return nil
}
