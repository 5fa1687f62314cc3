package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/leesummerdesigns/swissconnection/internal/models"
)

// SearchCap bounds every discovery query; there is no pagination cursor, a
// single capped page per request.
const SearchCap = 100

type ProviderRepository struct {
	db DBTX
}

func NewProviderRepository(db DBTX) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// SearchFilter carries the structured filters of one discovery query. Blank
// strings disable the corresponding filter.
type SearchFilter struct {
	Service  string
	Location string
	Sort     string
	Limit    int
}

// Search returns discovery candidates: providers with at least one offering,
// matching the service and location text filters, with raw review ratings,
// offering names and photos attached. Zero matches is an empty slice.
func (r *ProviderRepository) Search(
	ctx context.Context,
	filter SearchFilter,
) ([]models.ProviderRecord, error) {
	args := []any{}
	whereParts := []string{
		"u.role = 'provider'",
		"EXISTS (SELECT 1 FROM service_offerings so WHERE so.provider_profile_id = pp.id)",
	}

	if service := strings.TrimSpace(filter.Service); service != "" {
		args = append(args, likePattern(service))
		whereParts = append(whereParts, `EXISTS (
			SELECT 1
			FROM service_offerings so
			LEFT JOIN services s ON s.id = so.service_id
			WHERE so.provider_profile_id = pp.id
			  AND (s.slug ILIKE $1 OR s.name ILIKE $1 OR so.custom_name ILIKE $1)
		)`)
	}

	if location := strings.TrimSpace(filter.Location); location != "" {
		args = append(args, likePattern(location))
		whereParts = append(whereParts, fmt.Sprintf(
			"(u.postal_code ILIKE $%d OR u.city ILIKE $%d OR u.canton ILIKE $%d)",
			len(args), len(args), len(args),
		))
	}

	limit := filter.Limit
	if limit <= 0 || limit > SearchCap {
		limit = SearchCap
	}
	args = append(args, limit)

	query := `
		SELECT u.id, u.name, u.bio, u.avatar_url, u.postal_code, u.city, u.canton,
			   u.latitude, u.longitude, u.created_at, pp.photos
		FROM users u
		JOIN provider_profiles pp ON pp.user_id = u.id
		WHERE ` + strings.Join(whereParts, "\n\t\t  AND ") + `
		ORDER BY ` + searchOrderClause(filter.Sort) + `
		LIMIT $` + fmt.Sprint(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.ProviderRecord, 0)
	for rows.Next() {
		var record models.ProviderRecord
		if err := rows.Scan(
			&record.UserID,
			&record.Name,
			&record.Bio,
			&record.AvatarURL,
			&record.PostalCode,
			&record.City,
			&record.Canton,
			&record.Latitude,
			&record.Longitude,
			&record.CreatedAt,
			&record.Photos,
		); err != nil {
			return nil, err
		}
		record.Ratings = []int{}
		record.ServiceNames = []string{}
		if record.Photos == nil {
			record.Photos = []string{}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}

	index := make(map[int64]int, len(records))
	ids := make([]int64, 0, len(records))
	for i, record := range records {
		index[record.UserID] = i
		ids = append(ids, record.UserID)
	}

	if err := r.attachRatings(ctx, ids, index, records); err != nil {
		return nil, err
	}
	if err := r.attachServiceNames(ctx, ids, index, records); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *ProviderRepository) attachRatings(
	ctx context.Context,
	ids []int64,
	index map[int64]int,
	records []models.ProviderRecord,
) error {
	rows, err := r.db.Query(ctx, `
		SELECT provider_id, rating
		FROM reviews
		WHERE provider_id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var providerID int64
		var rating int
		if err := rows.Scan(&providerID, &rating); err != nil {
			return err
		}
		if i, ok := index[providerID]; ok {
			records[i].Ratings = append(records[i].Ratings, rating)
		}
	}
	return rows.Err()
}

func (r *ProviderRepository) attachServiceNames(
	ctx context.Context,
	ids []int64,
	index map[int64]int,
	records []models.ProviderRecord,
) error {
	rows, err := r.db.Query(ctx, `
		SELECT pp.user_id, COALESCE(s.name, so.custom_name, 'Other')
		FROM service_offerings so
		JOIN provider_profiles pp ON pp.id = so.provider_profile_id
		LEFT JOIN services s ON s.id = so.service_id
		WHERE pp.user_id = ANY($1)
		ORDER BY so.id ASC
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var name string
		if err := rows.Scan(&userID, &name); err != nil {
			return err
		}
		if i, ok := index[userID]; ok {
			records[i].ServiceNames = append(records[i].ServiceNames, name)
		}
	}
	return rows.Err()
}

// likePattern builds a contains-match ILIKE pattern from user text, escaping
// the LIKE metacharacters so "%" or "_" in a filter match literally.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

// searchOrderClause maps a sort key to SQL. "rating" orders by review count
// as a cheap proxy; the discovery service re-sorts by the computed average.
func searchOrderClause(sort string) string {
	switch sort {
	case models.SortRating:
		return "(SELECT COUNT(*) FROM reviews rv WHERE rv.provider_id = u.id) DESC, u.id DESC"
	case models.SortName:
		return "u.name ASC, u.id ASC"
	default:
		return "u.created_at DESC, u.id DESC"
	}
}

func (r *ProviderRepository) CreateProfile(
	ctx context.Context,
	userID int64,
	photos []string,
) (*models.ProviderProfile, error) {
	if photos == nil {
		photos = []string{}
	}
	var profile models.ProviderProfile
	err := r.db.QueryRow(ctx, `
		INSERT INTO provider_profiles (user_id, photos)
		VALUES ($1, $2)
		RETURNING id, user_id, photos, created_at, updated_at
	`, userID, photos).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Photos,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProviderRepository) GetProfileByUserID(
	ctx context.Context,
	userID int64,
) (*models.ProviderProfile, error) {
	var profile models.ProviderProfile
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, photos, created_at, updated_at
		FROM provider_profiles
		WHERE user_id = $1
	`, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Photos,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProviderRepository) InsertOffering(
	ctx context.Context,
	profileID int64,
	input models.OfferingInput,
) (*models.ServiceOffering, error) {
	var serviceID *int64
	var customName *string
	if id, ok := input.Label.ServiceID(); ok {
		serviceID = &id
	} else if name, ok := input.Label.CustomName(); ok {
		customName = &name
	}

	var offering models.ServiceOffering
	err := r.db.QueryRow(ctx, `
		INSERT INTO service_offerings (provider_profile_id, service_id, custom_name, description, price_type, price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, provider_profile_id, service_id,
			(SELECT slug FROM services WHERE id = $2),
			(SELECT name FROM services WHERE id = $2),
			custom_name, description, price_type, price
	`, profileID, serviceID, customName, input.Description, input.PriceType, input.Price).Scan(
		&offering.ID,
		&offering.ProfileID,
		&offering.ServiceID,
		&offering.ServiceSlug,
		&offering.ServiceName,
		&offering.CustomName,
		&offering.Description,
		&offering.PriceType,
		&offering.Price,
	)
	if err != nil {
		return nil, err
	}
	return &offering, nil
}

func (r *ProviderRepository) ListOfferings(
	ctx context.Context,
	profileID int64,
) ([]models.ServiceOffering, error) {
	rows, err := r.db.Query(ctx, `
		SELECT so.id, so.provider_profile_id, so.service_id, s.slug, s.name,
			   so.custom_name, so.description, so.price_type, so.price
		FROM service_offerings so
		LEFT JOIN services s ON s.id = so.service_id
		WHERE so.provider_profile_id = $1
		ORDER BY so.id ASC
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offerings := make([]models.ServiceOffering, 0)
	for rows.Next() {
		var offering models.ServiceOffering
		if err := rows.Scan(
			&offering.ID,
			&offering.ProfileID,
			&offering.ServiceID,
			&offering.ServiceSlug,
			&offering.ServiceName,
			&offering.CustomName,
			&offering.Description,
			&offering.PriceType,
			&offering.Price,
		); err != nil {
			return nil, err
		}
		offerings = append(offerings, offering)
	}
	return offerings, rows.Err()
}
