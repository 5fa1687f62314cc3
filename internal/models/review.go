package models

import "time"

// Review is immutable once created.
type Review struct {
	ID         int64     `json:"id"`
	ReviewerID int64     `json:"reviewer_id"`
	ProviderID int64     `json:"provider_id"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewWithReviewer struct {
	Review
	ReviewerName      string  `json:"reviewer_name"`
	ReviewerAvatarURL *string `json:"reviewer_avatar_url"`
}
