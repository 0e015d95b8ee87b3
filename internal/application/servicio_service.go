package application

import (
	"context"
	"fmt"

	"github.com/Maxito7/studio_backend/internal/domain"
)

type ServicioService struct {
	repo domain.ServicioRepository
}

func NewServicioService(repo domain.ServicioRepository) *ServicioService {
	return &ServicioService{
		repo: repo,
	}
}

func (s *ServicioService) GetAllServices(ctx context.Context) ([]domain.Servicio, error) {
	return s.repo.GetAllServices(ctx)
}

// Seed inserts services when the table is empty and reports how many rows
// were written. A populated table is left alone.
func (s *ServicioService) Seed(ctx context.Context, services []domain.Servicio) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for i := range services {
		svc := services[i]
		if err := s.repo.CreateService(ctx, &svc); err != nil {
			return i, fmt.Errorf("seeding service %q: %w", svc.Slug, err)
		}
	}
	return len(services), nil
}
