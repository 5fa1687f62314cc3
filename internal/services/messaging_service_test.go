package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/leesummerdesigns/swissconnection/internal/models"
)

type stubThreadStore struct {
	thread      *models.Thread
	summaries   []models.ThreadSummary
	err         error
	createdA    int64
	createdB    int64
	participant int64
}

func (s *stubThreadStore) CreateOrGet(
	_ context.Context,
	userID int64,
	providerID int64,
) (*models.Thread, error) {
	s.createdA = userID
	s.createdB = providerID
	if s.err != nil {
		return nil, s.err
	}
	return s.thread, nil
}

func (s *stubThreadStore) GetByIDForParticipant(
	_ context.Context,
	_ int64,
	participantID int64,
) (*models.Thread, error) {
	s.participant = participantID
	if s.err != nil {
		return nil, s.err
	}
	return s.thread, nil
}

func (s *stubThreadStore) ListForParticipant(
	_ context.Context,
	participantID int64,
) ([]models.ThreadSummary, error) {
	s.participant = participantID
	return s.summaries, s.err
}

func newMessagingService(threads *stubThreadStore, users map[int64]*models.User) *MessagingService {
	return NewMessagingService(nil, threads, &stubUserReader{users: users})
}

func TestStartThreadSharesOneThreadPerPair(t *testing.T) {
	threads := &stubThreadStore{thread: &models.Thread{ID: 1, UserID: 4, ProviderID: 9}}
	service := newMessagingService(threads, map[int64]*models.User{4: providerUser(4)})

	// Provider 9 contacts provider 4: the stored pair keeps the lower id
	// first so a later thread from 4 to 9 lands on the same row.
	thread, err := service.StartThread(context.Background(), 9, 4)
	if err != nil {
		t.Fatalf("StartThread: %v", err)
	}
	if thread.ID != 1 {
		t.Fatalf("unexpected thread: %+v", thread)
	}
	if threads.createdA != 4 || threads.createdB != 9 {
		t.Fatalf("expected canonical pair (4, 9), got (%d, %d)", threads.createdA, threads.createdB)
	}
}

func TestStartThreadKeepsAscendingPair(t *testing.T) {
	threads := &stubThreadStore{thread: &models.Thread{ID: 2, UserID: 3, ProviderID: 8}}
	service := newMessagingService(threads, map[int64]*models.User{8: providerUser(8)})

	if _, err := service.StartThread(context.Background(), 3, 8); err != nil {
		t.Fatalf("StartThread: %v", err)
	}
	if threads.createdA != 3 || threads.createdB != 8 {
		t.Fatalf("expected pair (3, 8), got (%d, %d)", threads.createdA, threads.createdB)
	}
}

func TestStartThreadRejectsNonProvider(t *testing.T) {
	service := newMessagingService(&stubThreadStore{}, map[int64]*models.User{
		2: {ID: 2, Role: models.RoleUser, Name: "Maja"},
	})

	if _, err := service.StartThread(context.Background(), 1, 2); !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
}

func TestStartThreadRejectsMissingTarget(t *testing.T) {
	service := newMessagingService(&stubThreadStore{}, map[int64]*models.User{})

	if _, err := service.StartThread(context.Background(), 1, 99); !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
}

func TestStartThreadRejectsSelf(t *testing.T) {
	service := newMessagingService(&stubThreadStore{}, map[int64]*models.User{2: providerUser(2)})

	if _, err := service.StartThread(context.Background(), 2, 2); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListThreadsScopedToActor(t *testing.T) {
	threads := &stubThreadStore{summaries: []models.ThreadSummary{
		{Thread: models.Thread{ID: 1, UserID: 3, ProviderID: 7}, UnreadCount: 2},
	}}
	service := newMessagingService(threads, nil)

	summaries, err := service.ListThreads(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListThreads: %v", err)
	}
	if threads.participant != 7 {
		t.Fatalf("expected lookup for actor 7, got %d", threads.participant)
	}
	if len(summaries) != 1 || summaries[0].UnreadCount != 2 {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}

func TestListMessagesRequiresParticipant(t *testing.T) {
	threads := &stubThreadStore{err: pgx.ErrNoRows}
	service := newMessagingService(threads, nil)

	_, _, err := service.ListMessages(context.Background(), 5, 1, 1, 20)
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows for a non-participant, got %v", err)
	}
	if threads.participant != 5 {
		t.Fatalf("expected membership check for actor 5, got %d", threads.participant)
	}
}

func TestListMessagesValidatesPaging(t *testing.T) {
	service := newMessagingService(&stubThreadStore{}, nil)

	if _, _, err := service.ListMessages(context.Background(), 5, 1, 0, 20); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for page 0, got %v", err)
	}
	if _, _, err := service.ListMessages(context.Background(), 5, 0, 1, 20); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for thread 0, got %v", err)
	}
}

func TestSendMessageRejectsBlankContent(t *testing.T) {
	service := newMessagingService(&stubThreadStore{}, nil)

	if _, err := service.SendMessage(context.Background(), 5, 1, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSendMessageRequiresParticipant(t *testing.T) {
	threads := &stubThreadStore{err: pgx.ErrNoRows}
	service := newMessagingService(threads, nil)

	if _, err := service.SendMessage(context.Background(), 5, 1, "Hello"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a non-participant, got %v", err)
	}
}
