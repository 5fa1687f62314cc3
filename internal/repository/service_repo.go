package repository

import (
	"context"

	"github.com/leesummerdesigns/swissconnection/internal/models"
)

type ServiceRepository struct {
	db DBTX
}

func NewServiceRepository(db DBTX) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) List(ctx context.Context) ([]models.Service, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, slug, name
		FROM services
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]models.Service, 0)
	for rows.Next() {
		var service models.Service
		if err := rows.Scan(&service.ID, &service.Slug, &service.Name); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&count)
	return count, err
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	var service models.Service
	err := r.db.QueryRow(ctx, `
		SELECT id, slug, name
		FROM services
		WHERE id = $1
	`, id).Scan(&service.ID, &service.Slug, &service.Name)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepository) Insert(ctx context.Context, service *models.Service) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO services (slug, name)
		VALUES ($1, $2)
		ON CONFLICT (slug) DO UPDATE SET name = services.name
		RETURNING id
	`, service.Slug, service.Name).Scan(&service.ID)
}
