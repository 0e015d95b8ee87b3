package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Maxito7/studio_backend/internal/db"
	"github.com/Maxito7/studio_backend/internal/domain"
)

type servicioRepository struct {
	db *db.DB
}

// NewServicioRepository returns the services table repository.
func NewServicioRepository(db *db.DB) domain.ServicioRepository {
	return &servicioRepository{
		db: db,
	}
}

// CreateService inserts a service row and fills servicio.ID
func (r *servicioRepository) CreateService(ctx context.Context, servicio *domain.Servicio) error {
	query := r.db.Rebind(`INSERT INTO services (slug, name, description, price, icon_key, features, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING service_id`)
	return r.db.QueryRowContext(ctx, query,
		servicio.Slug, servicio.Name, servicio.Description, servicio.Price,
		servicio.IconKey, strings.Join(servicio.Features, "\n"), servicio.SortOrder,
	).Scan(&servicio.ID)
}

func (r *servicioRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting services: %w", err)
	}
	return n, nil
}

// GetAllServices implementa domain.ServicioRepository
func (r *servicioRepository) GetAllServices(ctx context.Context) ([]domain.Servicio, error) {
	query := `
		SELECT
			service_id,
			slug,
			name,
			description,
			price,
			icon_key,
			features,
			sort_order
		FROM
			services
		ORDER BY
			sort_order, service_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying services: %w", err)
	}
	defer rows.Close()

	servicios := []domain.Servicio{}
	for rows.Next() {
		var (
			s        domain.Servicio
			features string
		)
		err := rows.Scan(
			&s.ID,
			&s.Slug,
			&s.Name,
			&s.Description,
			&s.Price,
			&s.IconKey,
			&features,
			&s.SortOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning service: %w", err)
		}
		if features != "" {
			s.Features = strings.Split(features, "\n")
		}
		servicios = append(servicios, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}

	return servicios, nil
}
