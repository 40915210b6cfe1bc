package services

import (
	"coordinates-service/internal/domain"
	"coordinates-service/internal/ports"
)

const (
	// Number of equal steps in an interpolated geodesic line.
	lineSegments = 50
	// Bearing step of a geodesic circle, degrees.
	circleStep = 1
)

// DistanceBearingResult is the length and initial bearing of the geodesic
// between two points.
type DistanceBearingResult struct {
	Distance domain.Distance
	// Degrees clockwise from north in [0, 360).
	Bearing float64
}

// Distance returns the geodesic distance from a to b. b's longitude is
// unrolled next to a's so the shorter way around is measured.
func Distance(g ports.Geodesic, a, b domain.Coordinates) domain.Distance {
	r := g.Inverse(a.RawLat(), a.RawLng(), b.RawLat(), b.NextLng(a.RawLng()))
	return domain.Meters(r.DistanceMeters)
}

func DistanceBearing(g ports.Geodesic, a, b domain.Coordinates) DistanceBearingResult {
	r := g.Inverse(a.RawLat(), a.RawLng(), b.RawLat(), b.NextLng(a.RawLng()))

	bearing := r.InitialBearing
	for bearing < 0 {
		bearing += 360
	}
	for bearing >= 360 {
		bearing -= 360
	}

	return DistanceBearingResult{Distance: domain.Meters(r.DistanceMeters), Bearing: bearing}
}

// Project returns the point reached from a after travelling distance along
// bearing (degrees). The longitude is unrolled relative to a's.
func Project(g ports.Geodesic, a domain.Coordinates, bearing float64, distance domain.Distance) domain.Coordinates {
	lat, lng := g.Direct(a.Lat(), a.Lng(), bearing, distance.Meters())
	return domain.NewCoordinates(lat, domain.NewCoordinates(lat, lng).NextLng(a.Lng()))
}

// InterpolateGeodesicLine returns lineSegments+1 points along the geodesic
// from a to b. The first point is a and the last is b unrolled next to a;
// every longitude is continuous with its predecessor, so the path can cross
// the antimeridian without a jump. Points are spaced by equal distance, not
// equal arc length.
func InterpolateGeodesicLine(g ports.Geodesic, a, b domain.Coordinates) []domain.Coordinates {
	end := domain.NewCoordinates(b.RawLat(), b.NextLng(a.RawLng()))

	r := g.Inverse(a.RawLat(), a.RawLng(), end.RawLat(), end.RawLng())
	step := r.DistanceMeters / lineSegments

	points := make([]domain.Coordinates, lineSegments+1)
	points[0] = a
	points[lineSegments] = end

	prev := a.RawLng()
	for i := 1; i < lineSegments; i++ {
		lat, lng := g.Direct(a.RawLat(), a.RawLng(), r.InitialBearing, float64(i)*step)
		lng = domain.NewCoordinates(lat, lng).NextLng(prev)
		points[i] = domain.NewCoordinates(lat, lng)
		prev = lng
	}

	return points
}

// GeodesicCircle returns the points at radius from center for bearings
// 0, 1, ..., 359 degrees.
func GeodesicCircle(g ports.Geodesic, center domain.Coordinates, radius domain.Distance) []domain.Coordinates {
	points := make([]domain.Coordinates, 0, 360/circleStep)
	for bearing := 0; bearing < 360; bearing += circleStep {
		points = append(points, Project(g, center, float64(bearing), radius))
	}
	return points
}

// Midpoint returns the point halfway along the geodesic from a to b.
func Midpoint(g ports.Geodesic, a, b domain.Coordinates) domain.Coordinates {
	db := DistanceBearing(g, a, b)
	return Project(g, a, db.Bearing, domain.Meters(db.Distance.Meters()/2))
}
