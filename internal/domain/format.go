package domain

import (
	"fmt"
	"math"
	"strings"
)

// Format selects one of the textual coordinate renderings.
type Format string

const (
	FormatDEC Format = "DEC"
	FormatDMM Format = "DMM"
	FormatDMS Format = "DMS"
)

// ParseFormat maps a user supplied format name to a Format. Unknown or empty
// values return fallback.
func ParseFormat(value string, fallback Format) Format {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "D", "DEC":
		return FormatDEC
	case "DM", "DMM":
		return FormatDMM
	case "DMS":
		return FormatDMS
	}
	return fallback
}

// Format renders the coordinates in f. Anything but DEC or DMS renders DMM.
func (c Coordinates) Format(f Format) string {
	switch f {
	case FormatDEC:
		return c.StringDEC()
	case FormatDMS:
		return c.StringDMS()
	default:
		return c.StringDMM()
	}
}

func (c Coordinates) String() string {
	return c.StringDMM()
}

// StringDEC renders decimal degrees, e.g. "N 50.110420° E 008.682130°".
func (c Coordinates) StringDEC() string {
	lat := math.Abs(c.Lat())
	lng := math.Abs(c.Lng())
	return fmt.Sprintf("%s %09.6f° %s %010.6f°", c.NS(), lat, c.EW(), lng)
}

// StringDMM renders degrees and decimal minutes, e.g.
// "N 50° 06.625' E 008° 40.928'".
func (c Coordinates) StringDMM() string {
	latDeg, latMin, latMilli := toDMM(math.Abs(c.Lat()))
	lngDeg, lngMin, lngMilli := toDMM(math.Abs(c.Lng()))
	return fmt.Sprintf("%s %02d° %02d.%03d' %s %03d° %02d.%03d'",
		c.NS(), latDeg, latMin, latMilli,
		c.EW(), lngDeg, lngMin, lngMilli)
}

// StringDMS renders degrees, minutes and decimal seconds, e.g.
// "N 50° 11' 03.11\" E 008° 30' 03.68\"".
func (c Coordinates) StringDMS() string {
	latDeg, latMin, latSec := toDMS(math.Abs(c.Lat()))
	lngDeg, lngMin, lngSec := toDMS(math.Abs(c.Lng()))
	return fmt.Sprintf("%s %02d° %02d' %05.2f\" %s %03d° %02d' %05.2f\"",
		c.NS(), latDeg, latMin, latSec,
		c.EW(), lngDeg, lngMin, lngSec)
}

// toDMM splits a non-negative angle. Rounding up to 1000 milli-minutes is
// carried into the minutes, which are not carried further: 59.9996 minutes
// renders as 60.000.
func toDMM(x float64) (deg, min, milli int) {
	d := math.Floor(x)
	frac := x - d
	m := math.Floor(float64(frac * 60))
	rest := float64(frac*60) - m
	mm := math.Floor(math.Round(float64(rest * 1000)))
	for mm >= 1000 {
		mm -= 1000
		m++
	}
	return int(d), int(m), int(mm)
}

func toDMS(x float64) (deg, min int, sec float64) {
	d := math.Floor(x)
	frac := x - d
	m := math.Floor(float64(frac * 60))
	rest := float64(frac*60) - m
	return int(d), int(m), float64(rest * 60)
}
