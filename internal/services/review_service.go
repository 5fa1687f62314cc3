package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/leesummerdesigns/swissconnection/internal/models"
)

const minReviewTextLength = 10

type reviewWriter interface {
	Create(ctx context.Context, review *models.Review) error
	ListForProvider(ctx context.Context, providerID int64) ([]models.ReviewWithReviewer, error)
}

type exchangeChecker interface {
	HasMessageExchange(ctx context.Context, a int64, b int64) (bool, error)
}

type reviewUserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type ReviewService struct {
	reviewRepo reviewWriter
	threadRepo exchangeChecker
	userRepo   reviewUserReader
}

func NewReviewService(
	reviewRepo reviewWriter,
	threadRepo exchangeChecker,
	userRepo reviewUserReader,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		threadRepo: threadRepo,
		userRepo:   userRepo,
	}
}

// CreateReview stores an immutable review. Reviews are only accepted from
// users who have exchanged at least one message with the provider.
func (s *ReviewService) CreateReview(
	ctx context.Context,
	reviewerID int64,
	providerID int64,
	rating int,
	text string,
) (*models.Review, error) {
	if providerID <= 0 || providerID == reviewerID {
		return nil, ErrInvalidInput
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidInput
	}
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minReviewTextLength {
		return nil, ErrInvalidInput
	}

	provider, err := s.userRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	if provider.Role != models.RoleProvider {
		return nil, ErrProviderNotFound
	}

	exchanged, err := s.threadRepo.HasMessageExchange(ctx, reviewerID, providerID)
	if err != nil {
		return nil, err
	}
	if !exchanged {
		return nil, ErrNotMessaged
	}

	review := &models.Review{
		ReviewerID: reviewerID,
		ProviderID: providerID,
		Rating:     rating,
		Text:       text,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// CanReview mirrors the CreateReview gate without writing anything, so the
// client can decide whether to offer the review form.
func (s *ReviewService) CanReview(
	ctx context.Context,
	reviewerID int64,
	providerID int64,
) (bool, error) {
	if providerID <= 0 || providerID == reviewerID {
		return false, nil
	}
	return s.threadRepo.HasMessageExchange(ctx, reviewerID, providerID)
}

func (s *ReviewService) ListForProvider(
	ctx context.Context,
	providerID int64,
) ([]models.ReviewWithReviewer, error) {
	return s.reviewRepo.ListForProvider(ctx, providerID)
}
