package repository

import (
	"context"
	"database/sql"

	"github.com/leesummerdesigns/swissconnection/internal/models"
)

type ThreadRepository struct {
	db DBTX
}

func NewThreadRepository(db DBTX) *ThreadRepository {
	return &ThreadRepository{db: db}
}

// CreateOrGet returns the single thread between two participants, creating it
// on first contact. The pair is stored lower id first to satisfy the
// thread_pair_order constraint and to dedupe regardless of who starts.
func (r *ThreadRepository) CreateOrGet(
	ctx context.Context,
	userID int64,
	providerID int64,
) (*models.Thread, error) {
	if userID > providerID {
		userID, providerID = providerID, userID
	}
	query := `
		INSERT INTO threads (user_id, provider_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, provider_id)
		DO UPDATE SET updated_at = threads.updated_at
		RETURNING id, user_id, provider_id, created_at, updated_at
	`
	var thread models.Thread
	err := r.db.QueryRow(ctx, query, userID, providerID).Scan(
		&thread.ID,
		&thread.UserID,
		&thread.ProviderID,
		&thread.CreatedAt,
		&thread.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *ThreadRepository) GetByIDForParticipant(
	ctx context.Context,
	threadID int64,
	participantID int64,
) (*models.Thread, error) {
	query := `
		SELECT id, user_id, provider_id, created_at, updated_at
		FROM threads
		WHERE id = $1 AND (user_id = $2 OR provider_id = $2)
	`
	var thread models.Thread
	err := r.db.QueryRow(ctx, query, threadID, participantID).Scan(
		&thread.ID,
		&thread.UserID,
		&thread.ProviderID,
		&thread.CreatedAt,
		&thread.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *ThreadRepository) ListForParticipant(
	ctx context.Context,
	participantID int64,
) ([]models.ThreadSummary, error) {
	query := `
		SELECT
			t.id,
			t.user_id,
			t.provider_id,
			t.created_at,
			t.updated_at,
			lm.id,
			lm.thread_id,
			lm.sender_id,
			lm.content,
			lm.is_read,
			lm.created_at,
			COALESCE(uc.unread_count, 0)
		FROM threads t
		LEFT JOIN LATERAL (
			SELECT id, thread_id, sender_id, content, is_read, created_at
			FROM messages
			WHERE thread_id = t.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) lm ON TRUE
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS unread_count
			FROM messages
			WHERE thread_id = t.id
			  AND sender_id <> $1
			  AND is_read = FALSE
		) uc ON TRUE
		WHERE t.user_id = $1 OR t.provider_id = $1
		ORDER BY COALESCE(lm.created_at, t.updated_at, t.created_at) DESC, t.id DESC
	`

	rows, err := r.db.Query(ctx, query, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.ThreadSummary, 0)
	for rows.Next() {
		var summary models.ThreadSummary
		var messageID sql.NullInt64
		var messageThreadID sql.NullInt64
		var messageSenderID sql.NullInt64
		var messageContent sql.NullString
		var messageIsRead sql.NullBool
		var messageCreatedAt sql.NullTime

		if err := rows.Scan(
			&summary.ID,
			&summary.UserID,
			&summary.ProviderID,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&messageID,
			&messageThreadID,
			&messageSenderID,
			&messageContent,
			&messageIsRead,
			&messageCreatedAt,
			&summary.UnreadCount,
		); err != nil {
			return nil, err
		}

		if messageID.Valid {
			summary.LastMessage = &models.Message{
				ID:        messageID.Int64,
				ThreadID:  messageThreadID.Int64,
				SenderID:  messageSenderID.Int64,
				Content:   messageContent.String,
				IsRead:    messageIsRead.Bool,
				CreatedAt: messageCreatedAt.Time,
			}
		}

		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// HasMessageExchange reports whether a thread with at least one message exists
// between the two users, in either direction. The review gate depends on it.
func (r *ThreadRepository) HasMessageExchange(
	ctx context.Context,
	a int64,
	b int64,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM threads t
			WHERE ((t.user_id = $1 AND t.provider_id = $2)
				OR (t.user_id = $2 AND t.provider_id = $1))
			  AND EXISTS (SELECT 1 FROM messages m WHERE m.thread_id = t.id)
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, a, b).Scan(&exists)
	return exists, err
}

func (r *ThreadRepository) Touch(ctx context.Context, threadID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE threads
		SET updated_at = NOW()
		WHERE id = $1
	`, threadID)
	return err
}
