package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leesummerdesigns/swissconnection/internal/models"
	"github.com/leesummerdesigns/swissconnection/internal/repository"
)

type messagingUserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type threadStore interface {
	CreateOrGet(ctx context.Context, userID int64, providerID int64) (*models.Thread, error)
	GetByIDForParticipant(ctx context.Context, threadID int64, participantID int64) (*models.Thread, error)
	ListForParticipant(ctx context.Context, participantID int64) ([]models.ThreadSummary, error)
}

type MessagingService struct {
	db         *pgxpool.Pool
	threadRepo threadStore
	userRepo   messagingUserReader
}

// MessageDelivery is the result of a sent message, including who should be
// notified over the websocket hub.
type MessageDelivery struct {
	Thread      *models.Thread
	Message     *models.Message
	RecipientID int64
}

func NewMessagingService(
	db *pgxpool.Pool,
	threadRepo threadStore,
	userRepo messagingUserReader,
) *MessagingService {
	return &MessagingService{
		db:         db,
		threadRepo: threadRepo,
		userRepo:   userRepo,
	}
}

func (s *MessagingService) ListThreads(
	ctx context.Context,
	actorID int64,
) ([]models.ThreadSummary, error) {
	return s.threadRepo.ListForParticipant(ctx, actorID)
}

// StartThread opens (or returns) the thread between the actor and a provider.
func (s *MessagingService) StartThread(
	ctx context.Context,
	actorID int64,
	providerID int64,
) (*models.Thread, error) {
	if providerID <= 0 || providerID == actorID {
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

	// Threads are keyed on the unordered pair, stored lower id first, so the
	// same two people share one thread no matter who opens it.
	a, b := actorID, providerID
	if a > b {
		a, b = b, a
	}
	return s.threadRepo.CreateOrGet(ctx, a, b)
}

func (s *MessagingService) ListMessages(
	ctx context.Context,
	actorID int64,
	threadID int64,
	page int,
	limit int,
) ([]models.Message, int, error) {
	if threadID <= 0 || page <= 0 || limit <= 0 {
		return nil, 0, ErrInvalidInput
	}

	if _, err := s.threadRepo.GetByIDForParticipant(ctx, threadID, actorID); err != nil {
		return nil, 0, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txMessageRepo := repository.NewMessageRepository(tx)

	messages, total, err := txMessageRepo.ListByThread(ctx, threadID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	messageIDs := make([]int64, 0, len(messages))
	for _, message := range messages {
		messageIDs = append(messageIDs, message.ID)
	}
	if err := txMessageRepo.MarkMessagesRead(ctx, messageIDs, actorID); err != nil {
		return nil, 0, err
	}
	for i := range messages {
		if messages[i].SenderID != actorID {
			messages[i].IsRead = true
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (s *MessagingService) SendMessage(
	ctx context.Context,
	actorID int64,
	threadID int64,
	content string,
) (*MessageDelivery, error) {
	if threadID <= 0 {
		return nil, ErrInvalidInput
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}

	thread, err := s.threadRepo.GetByIDForParticipant(ctx, threadID, actorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	recipientID := thread.UserID
	if actorID == thread.UserID {
		recipientID = thread.ProviderID
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txMessageRepo := repository.NewMessageRepository(tx)
	txThreadRepo := repository.NewThreadRepository(tx)

	message, err := txMessageRepo.Create(ctx, threadID, actorID, trimmed)
	if err != nil {
		return nil, err
	}
	if err := txThreadRepo.Touch(ctx, threadID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &MessageDelivery{
		Thread:      thread,
		Message:     message,
		RecipientID: recipientID,
	}, nil
}

func FormatMessageTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}
