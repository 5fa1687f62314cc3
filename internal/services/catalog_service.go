package services

import (
	"context"
	"log"

	"github.com/leesummerdesigns/swissconnection/internal/models"
)

// defaultServices is the catalog seeded into an empty services table.
var defaultServices = []models.Service{
	{Slug: "haircuts", Name: "Haircuts"},
	{Slug: "cleaning", Name: "Cleaning"},
	{Slug: "massages", Name: "Massages"},
	{Slug: "nails", Name: "Nails"},
	{Slug: "fitness", Name: "Fitness Trainer"},
	{Slug: "sewing", Name: "Sewing"},
	{Slug: "repairs", Name: "Home Repairs"},
	{Slug: "cooking", Name: "Cooking"},
	{Slug: "beauty", Name: "Beauty"},
	{Slug: "tutoring", Name: "Tutoring"},
	{Slug: "childcare", Name: "Childcare"},
	{Slug: "translation", Name: "Translation"},
	{Slug: "photography", Name: "Photography"},
}

type serviceCatalogRepo interface {
	List(ctx context.Context) ([]models.Service, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, service *models.Service) error
}

type CatalogService struct {
	serviceRepo serviceCatalogRepo
}

func NewCatalogService(serviceRepo serviceCatalogRepo) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// EnsureDefaults seeds the predefined service catalog when the table is
// empty. It runs once at startup as an explicit bootstrap step and is
// idempotent: a non-empty catalog is left untouched.
func (s *CatalogService) EnsureDefaults(ctx context.Context) error {
	count, err := s.serviceRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range defaultServices {
		service := defaultServices[i]
		if err := s.serviceRepo.Insert(ctx, &service); err != nil {
			return err
		}
	}
	log.Printf("catalog: seeded %d default services", len(defaultServices))
	return nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Service, error) {
	return s.serviceRepo.List(ctx)
}
