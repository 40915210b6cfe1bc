package dto

type CoordinatesResponse struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	DEC       string  `json:"dec"`
	DMM       string  `json:"dmm"`
	DMS       string  `json:"dms"`
	Formatted string  `json:"formatted"`
}

type ParseResponse struct {
	Input       string              `json:"input"`
	Sanitized   string              `json:"sanitized"`
	Notation    string              `json:"notation"`
	Coordinates CoordinatesResponse `json:"coordinates"`
}

type SanitizeResponse struct {
	Input     string `json:"input"`
	Sanitized string `json:"sanitized"`
}

type FormatRequest struct {
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
	Format string   `json:"format"`
}

type WherigoRequest struct {
	A *int `json:"a"`
	B *int `json:"b"`
	C *int `json:"c"`
}
