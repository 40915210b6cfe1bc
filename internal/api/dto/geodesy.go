package dto

// Points in geodesy requests are free-text coordinates in any supported
// notation.
type DistanceRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Unit string `json:"unit"`
}

type DistanceResponse struct {
	From           CoordinatesResponse `json:"from"`
	To             CoordinatesResponse `json:"to"`
	DistanceMeters float64             `json:"distance_meters"`
	Distance       string              `json:"distance"`
	Humanized      string              `json:"humanized"`
	Bearing        float64             `json:"bearing"`
}

type ProjectRequest struct {
	From     string   `json:"from"`
	Bearing  *float64 `json:"bearing"`
	Distance *float64 `json:"distance"`
	Unit     string   `json:"unit"`
}

type ProjectResponse struct {
	From        CoordinatesResponse `json:"from"`
	Coordinates CoordinatesResponse `json:"coordinates"`
}

type LineRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type CircleRequest struct {
	Center string   `json:"center"`
	Radius *float64 `json:"radius"`
	Unit   string   `json:"unit"`
}

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PathResponse struct {
	Points   []PointResponse      `json:"points"`
	Midpoint *CoordinatesResponse `json:"midpoint,omitempty"`
}
