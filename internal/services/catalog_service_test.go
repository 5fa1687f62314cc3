package services

import (
	"context"
	"errors"
	"testing"

	"github.com/leesummerdesigns/swissconnection/internal/models"
)

type stubServiceRepo struct {
	count    int
	countErr error
	inserted []models.Service
}

func (s *stubServiceRepo) List(_ context.Context) ([]models.Service, error) {
	return s.inserted, nil
}

func (s *stubServiceRepo) Count(_ context.Context) (int, error) {
	return s.count, s.countErr
}

func (s *stubServiceRepo) Insert(_ context.Context, service *models.Service) error {
	service.ID = int64(len(s.inserted) + 1)
	s.inserted = append(s.inserted, *service)
	return nil
}

func TestEnsureDefaultsSeedsEmptyCatalog(t *testing.T) {
	repo := &stubServiceRepo{}
	service := NewCatalogService(repo)

	if err := service.EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("EnsureDefaults: %v", err)
	}
	if len(repo.inserted) != len(defaultServices) {
		t.Fatalf("expected %d seeded services, got %d", len(defaultServices), len(repo.inserted))
	}
	if repo.inserted[0].Slug != "haircuts" {
		t.Errorf("unexpected first service: %+v", repo.inserted[0])
	}
}

func TestEnsureDefaultsLeavesPopulatedCatalogAlone(t *testing.T) {
	repo := &stubServiceRepo{count: 13}
	service := NewCatalogService(repo)

	if err := service.EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("EnsureDefaults: %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("expected no inserts, got %d", len(repo.inserted))
	}
}

func TestEnsureDefaultsPropagatesCountError(t *testing.T) {
	repo := &stubServiceRepo{countErr: errors.New("connection refused")}
	service := NewCatalogService(repo)

	if err := service.EnsureDefaults(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
