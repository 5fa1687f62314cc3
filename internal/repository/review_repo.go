package repository

import (
	"context"

	"github.com/leesummerdesigns/swissconnection/internal/models"
)

type ReviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (reviewer_id, provider_id, rating, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		review.ReviewerID, review.ProviderID, review.Rating, review.Text,
	).Scan(&review.ID, &review.CreatedAt)
}

func (r *ReviewRepository) ListForProvider(
	ctx context.Context,
	providerID int64,
) ([]models.ReviewWithReviewer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT rv.id, rv.reviewer_id, rv.provider_id, rv.rating, rv.text, rv.created_at,
			   u.name, u.avatar_url
		FROM reviews rv
		JOIN users u ON u.id = rv.reviewer_id
		WHERE rv.provider_id = $1
		ORDER BY rv.created_at DESC, rv.id DESC
	`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]models.ReviewWithReviewer, 0)
	for rows.Next() {
		var review models.ReviewWithReviewer
		if err := rows.Scan(
			&review.ID,
			&review.ReviewerID,
			&review.ProviderID,
			&review.Rating,
			&review.Text,
			&review.CreatedAt,
			&review.ReviewerName,
			&review.ReviewerAvatarURL,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
