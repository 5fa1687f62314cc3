package models

import "time"

const (
	SortNewest = "newest"
	SortRating = "rating"
	SortName   = "name"
)

// SearchQuery is one discovery request. Blank strings mean "no filter"; the
// radius constraint only applies once a center is available, either supplied
// by the caller or geocoded from Location.
type SearchQuery struct {
	Service   string
	Location  string
	Sort      string
	MinRating *int
	Lat       *float64
	Lng       *float64
	RadiusKm  *float64
	Limit     int
}

// ProviderRecord is a raw discovery candidate as fetched from the store,
// before rating aggregation and geospatial filtering.
type ProviderRecord struct {
	UserID       int64
	Name         string
	Bio          *string
	AvatarURL    *string
	PostalCode   *string
	City         *string
	Canton       *string
	Latitude     *float64
	Longitude    *float64
	CreatedAt    time.Time
	Ratings      []int
	ServiceNames []string
	Photos       []string
}

// ServiceRef is the summary projection of one offering name.
type ServiceRef struct {
	Name string `json:"name"`
}

// ProviderSearchResult is one row of a discovery response.
type ProviderSearchResult struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	AvatarURL   string       `json:"avatar_url"`
	Bio         string       `json:"bio"`
	PostalCode  string       `json:"postal_code"`
	City        string       `json:"city"`
	Canton      string       `json:"canton"`
	Services    []ServiceRef `json:"services"`
	Rating      float64      `json:"rating"`
	ReviewCount int          `json:"review_count"`
	Photos      []string     `json:"photos"`
}
