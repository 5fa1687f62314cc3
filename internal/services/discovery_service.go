package services

import (
	"context"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/leesummerdesigns/swissconnection/internal/geo"
	"github.com/leesummerdesigns/swissconnection/internal/geocode"
	"github.com/leesummerdesigns/swissconnection/internal/models"
	"github.com/leesummerdesigns/swissconnection/internal/repository"
)

type candidateSearcher interface {
	Search(ctx context.Context, filter repository.SearchFilter) ([]models.ProviderRecord, error)
}

type placeGeocoder interface {
	Geocode(ctx context.Context, place string) (*geocode.Point, error)
}

// DiscoveryService runs the provider discovery pipeline: normalize filters,
// optionally geocode the location text, fetch candidates, aggregate ratings,
// apply the min-rating and radius passes and shape the response.
type DiscoveryService struct {
	providerRepo candidateSearcher
	geocoder     placeGeocoder
}

func NewDiscoveryService(providerRepo candidateSearcher, geocoder placeGeocoder) *DiscoveryService {
	return &DiscoveryService{
		providerRepo: providerRepo,
		geocoder:     geocoder,
	}
}

// Search never fails for geocoder problems or empty matches; the only error it
// returns is a failure of the underlying store.
func (s *DiscoveryService) Search(
	ctx context.Context,
	query models.SearchQuery,
) ([]models.ProviderSearchResult, error) {
	query = normalizeQuery(query)

	center, radius := s.resolveCenter(ctx, query)

	location := query.Location
	if center != nil {
		// Once geospatially anchored, substring location matching could only
		// exclude nearby providers whose city text differs from the query.
		location = ""
	}

	records, err := s.providerRepo.Search(ctx, repository.SearchFilter{
		Service:  query.Service,
		Location: location,
		Sort:     query.Sort,
		Limit:    query.Limit,
	})
	if err != nil {
		return nil, err
	}

	type scored struct {
		record  models.ProviderRecord
		summary RatingSummary
	}

	kept := make([]scored, 0, len(records))
	for _, record := range records {
		summary := SummarizeRatings(record.Ratings)

		if query.MinRating != nil && summary.Average < float64(*query.MinRating) {
			continue
		}

		if center != nil {
			if record.Latitude == nil || record.Longitude == nil {
				continue
			}
			distance := geo.DistanceKm(center.Lat, center.Lng, *record.Latitude, *record.Longitude)
			if distance > radius {
				continue
			}
		}

		kept = append(kept, scored{record: record, summary: summary})
	}

	// The repository's "rating" order is a review-count proxy because the
	// average is not a stored column; restore true average order here.
	if query.Sort == models.SortRating {
		sort.SliceStable(kept, func(i, j int) bool {
			if kept[i].summary.Average != kept[j].summary.Average {
				return kept[i].summary.Average > kept[j].summary.Average
			}
			if kept[i].summary.Count != kept[j].summary.Count {
				return kept[i].summary.Count > kept[j].summary.Count
			}
			return kept[i].record.UserID > kept[j].record.UserID
		})
	}

	results := make([]models.ProviderSearchResult, 0, len(kept))
	for _, entry := range kept {
		results = append(results, buildSearchResult(entry.record, entry.summary))
	}
	return results, nil
}

// resolveCenter returns the radius-filter center, if any. A caller-supplied
// center wins; otherwise the location text is geocoded when a radius was
// requested. Geocode failure degrades to text-only filtering.
func (s *DiscoveryService) resolveCenter(
	ctx context.Context,
	query models.SearchQuery,
) (*geocode.Point, float64) {
	if query.RadiusKm == nil || *query.RadiusKm <= 0 {
		return nil, 0
	}

	if query.Lat != nil && query.Lng != nil {
		return &geocode.Point{Lat: *query.Lat, Lng: *query.Lng}, *query.RadiusKm
	}

	if query.Location == "" {
		return nil, 0
	}

	point, err := s.geocoder.Geocode(ctx, query.Location)
	if err != nil {
		log.Printf("discovery: geocode %q: %v", query.Location, err)
		return nil, 0
	}
	if point == nil {
		return nil, 0
	}
	return point, *query.RadiusKm
}

func normalizeQuery(query models.SearchQuery) models.SearchQuery {
	query.Service = strings.TrimSpace(query.Service)
	query.Location = strings.TrimSpace(query.Location)

	switch query.Sort {
	case models.SortRating, models.SortName:
	default:
		query.Sort = models.SortNewest
	}

	if query.MinRating != nil && (*query.MinRating < 1 || *query.MinRating > 5) {
		query.MinRating = nil
	}

	if query.Limit <= 0 || query.Limit > repository.SearchCap {
		query.Limit = repository.SearchCap
	}

	return query
}

func buildSearchResult(
	record models.ProviderRecord,
	summary RatingSummary,
) models.ProviderSearchResult {
	services := make([]models.ServiceRef, 0, len(record.ServiceNames))
	for _, name := range record.ServiceNames {
		services = append(services, models.ServiceRef{Name: name})
	}

	photos := record.Photos
	if photos == nil {
		photos = []string{}
	}

	return models.ProviderSearchResult{
		ID:          formatUserID(record.UserID),
		Name:        record.Name,
		AvatarURL:   stringValue(record.AvatarURL),
		Bio:         stringValue(record.Bio),
		PostalCode:  stringValue(record.PostalCode),
		City:        stringValue(record.City),
		Canton:      stringValue(record.Canton),
		Services:    services,
		Rating:      summary.Average,
		ReviewCount: summary.Count,
		Photos:      photos,
	}
}

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
