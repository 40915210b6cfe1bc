package dto

import "time"

type PlaceResponse struct {
	Name        string              `json:"name"`
	CountryCode string              `json:"country_code"`
	CountryName string              `json:"country_name"`
	Region      string              `json:"region"`
	Feature     string              `json:"feature"`
	Coordinates CoordinatesResponse `json:"coordinates"`
}

type SearchResponse struct {
	Query  string          `json:"query"`
	Source string          `json:"source"`
	Offset int             `json:"offset"`
	Total  int             `json:"total"`
	More   bool            `json:"more"`
	Places []PlaceResponse `json:"places"`
}

type BatchSearchRequest struct {
	Queries []string `json:"queries"`
	Name    string   `json:"name"`
	Format  string   `json:"format"`
	Limit   int      `json:"limit"`
}

type BatchSearchItemResponse struct {
	Result *SearchResponse `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type BatchSearchResponse struct {
	Results []BatchSearchItemResponse `json:"results"`
}

type HistoryEntryResponse struct {
	ID          int64                `json:"id"`
	Query       string               `json:"query"`
	Source      string               `json:"source"`
	Coordinates *CoordinatesResponse `json:"coordinates"`
	CreatedAt   time.Time            `json:"created_at"`
}

type ListHistoryResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
}
