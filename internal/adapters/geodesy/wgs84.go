package geodesy

import (
	"coordinates-service/internal/ports"

	"github.com/tidwall/geodesic"
)

// WGS84 implements ports.Geodesic on the WGS84 ellipsoid using Karney's
// algorithms (tidwall/geodesic, a port of GeographicLib).
type WGS84 struct{}

func NewWGS84() WGS84 {
	return WGS84{}
}

func (WGS84) Inverse(lat1, lng1, lat2, lng2 float64) ports.InverseResult {
	var s12, azi1, azi2 float64
	geodesic.WGS84.Inverse(lat1, lng1, lat2, lng2, &s12, &azi1, &azi2)
	return ports.InverseResult{
		DistanceMeters: s12,
		InitialBearing: azi1,
		FinalBearing:   azi2,
	}
}

func (WGS84) Direct(lat, lng, bearing, distanceMeters float64) (float64, float64) {
	var lat2, lng2 float64
	geodesic.WGS84.Direct(lat, lng, bearing, distanceMeters, &lat2, &lng2, nil)
	return lat2, lng2
}

var _ ports.Geodesic = WGS84{}
