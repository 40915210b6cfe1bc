package ports

// Result of an inverse geodesic problem between two points.
type InverseResult struct {
	DistanceMeters float64
	// Forward azimuth at the first point, degrees clockwise from north
	// in (-180, 180].
	InitialBearing float64
	// Forward azimuth at the second point.
	FinalBearing float64
}

// Contract for geodesic computations on the WGS84 ellipsoid.
type Geodesic interface {
	// Solve the inverse problem: distance and bearing from point 1 to point 2.
	Inverse(lat1, lng1, lat2, lng2 float64) InverseResult
	// Solve the direct problem: the point reached from (lat, lng) after
	// travelling distanceMeters along bearing. The returned longitude lies
	// in [-180, 180].
	Direct(lat, lng, bearing, distanceMeters float64) (lat2, lng2 float64)
}
