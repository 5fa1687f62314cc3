package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leesummerdesigns/swissconnection/internal/models"
	"github.com/leesummerdesigns/swissconnection/internal/repository"
)

type ProviderService struct {
	db           *pgxpool.Pool
	userRepo     *repository.UserRepository
	providerRepo *repository.ProviderRepository
	serviceRepo  *repository.ServiceRepository
	reviewRepo   *repository.ReviewRepository
}

func NewProviderService(
	db *pgxpool.Pool,
	userRepo *repository.UserRepository,
	providerRepo *repository.ProviderRepository,
	serviceRepo *repository.ServiceRepository,
	reviewRepo *repository.ReviewRepository,
) *ProviderService {
	return &ProviderService{
		db:           db,
		userRepo:     userRepo,
		providerRepo: providerRepo,
		serviceRepo:  serviceRepo,
		reviewRepo:   reviewRepo,
	}
}

type CreateProfileInput struct {
	Photos    []string
	Offerings []models.OfferingInput
}

type CreatedProfile struct {
	Profile   *models.ProviderProfile
	Offerings []models.ServiceOffering
}

// CreateProfile publishes a user as a provider: the profile and its offerings
// are created in one transaction and the user role flips to "provider".
func (s *ProviderService) CreateProfile(
	ctx context.Context,
	userID int64,
	input CreateProfileInput,
) (*CreatedProfile, error) {
	if len(input.Offerings) == 0 {
		return nil, ErrInvalidInput
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidInput
		}
		return nil, err
	}

	_, err := s.providerRepo.GetProfileByUserID(ctx, userID)
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	predefinedNames := make(map[int64]string)
	for _, offering := range input.Offerings {
		serviceID, ok := offering.Label.ServiceID()
		if !ok {
			continue
		}
		if _, seen := predefinedNames[serviceID]; seen {
			return nil, ErrDuplicateOffering
		}
		service, err := s.serviceRepo.GetByID(ctx, serviceID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrUnknownService
			}
			return nil, err
		}
		predefinedNames[serviceID] = service.Name
	}

	if err := validateOfferings(input.Offerings, predefinedNames); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txProviderRepo := repository.NewProviderRepository(tx)
	txUserRepo := repository.NewUserRepository(tx)

	profile, err := txProviderRepo.CreateProfile(ctx, userID, input.Photos)
	if err != nil {
		return nil, err
	}

	offerings := make([]models.ServiceOffering, 0, len(input.Offerings))
	for _, offeringInput := range input.Offerings {
		offering, err := txProviderRepo.InsertOffering(ctx, profile.ID, offeringInput)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, *offering)
	}

	if err := txUserRepo.SetRole(ctx, userID, models.RoleProvider); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &CreatedProfile{Profile: profile, Offerings: offerings}, nil
}

// validateOfferings enforces the offering invariants that the storage layer
// cannot: every label set, price rules per price type, predefined services
// held at most once, and all offering names case-insensitively distinct.
func validateOfferings(
	offerings []models.OfferingInput,
	predefinedNames map[int64]string,
) error {
	seenNames := make(map[string]struct{}, len(offerings))
	for _, name := range predefinedNames {
		seenNames[strings.ToLower(name)] = struct{}{}
	}

	for _, offering := range offerings {
		if offering.Label.IsZero() {
			return ErrInvalidInput
		}

		switch offering.PriceType {
		case models.PriceNegotiable:
			if offering.Price != nil {
				return ErrInvalidInput
			}
		case models.PriceHourly, models.PriceFixed:
			if offering.Price != nil && *offering.Price < 0 {
				return ErrInvalidInput
			}
		default:
			return ErrInvalidInput
		}

		name, ok := offering.Label.CustomName()
		if !ok {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return ErrInvalidInput
		}
		if _, exists := seenNames[key]; exists {
			return ErrDuplicateOffering
		}
		seenNames[key] = struct{}{}
	}

	return nil
}

// GetDetail assembles the public provider page: profile, offerings, reviews
// and the aggregated rating.
func (s *ProviderService) GetDetail(
	ctx context.Context,
	userID int64,
) (*models.ProviderDetail, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	if user.Role != models.RoleProvider {
		return nil, ErrProviderNotFound
	}

	profile, err := s.providerRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}

	offerings, err := s.providerRepo.ListOfferings(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListForProvider(ctx, userID)
	if err != nil {
		return nil, err
	}

	ratings := make([]int, 0, len(reviews))
	for _, review := range reviews {
		ratings = append(ratings, review.Rating)
	}
	summary := SummarizeRatings(ratings)

	languages := user.Languages
	if languages == nil {
		languages = []string{}
	}
	photos := profile.Photos
	if photos == nil {
		photos = []string{}
	}

	return &models.ProviderDetail{
		ID:          formatUserID(user.ID),
		Name:        user.Name,
		Bio:         stringValue(user.Bio),
		AvatarURL:   stringValue(user.AvatarURL),
		PostalCode:  stringValue(user.PostalCode),
		City:        stringValue(user.City),
		Canton:      stringValue(user.Canton),
		Languages:   languages,
		Photos:      photos,
		Services:    offerings,
		Rating:      summary.Average,
		ReviewCount: summary.Count,
		Reviews:     reviews,
	}, nil
}
