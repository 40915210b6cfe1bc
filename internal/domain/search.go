package domain

import "time"

// PlaceSource tells where a search result came from.
type PlaceSource string

const (
	SourceCoordinates PlaceSource = "coordinates"
	SourceGeocoder    PlaceSource = "geocoder"
)

// Place is a named location returned by a search.
type Place struct {
	Name        string      `json:"name"`
	CountryCode string      `json:"country_code,omitempty"`
	CountryName string      `json:"country_name,omitempty"`
	Region      string      `json:"region,omitempty"`
	Feature     string      `json:"feature,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

// SearchResult is one page of places for a query. Total counts every match
// known to the source, so More reports whether another page exists.
type SearchResult struct {
	Query  string
	Source PlaceSource
	Places []Place
	Offset int
	Total  int
}

func (r SearchResult) More() bool {
	return r.Offset+len(r.Places) < r.Total
}

// HistoryEntry is one recorded search. Coordinates is nil when the query
// did not resolve to a location.
type HistoryEntry struct {
	ID          int64
	Query       string
	Source      PlaceSource
	Coordinates *Coordinates
	CreatedAt   time.Time
}
