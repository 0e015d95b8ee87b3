package domain

import "context"

// Servicio is a photography package offered on the services section.
type Servicio struct {
	ID          int64    `json:"id"`
	Slug        string   `json:"slug" yaml:"slug"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Price       float64  `json:"price" yaml:"price"`
	IconKey     string   `json:"icon_key" yaml:"icon"`
	Features    []string `json:"features" yaml:"features"`
	SortOrder   int      `json:"sort_order" yaml:"-"`
}

// ServicioRepository is the read side of the services table plus the seed
// used at deploy time.
type ServicioRepository interface {
	// GetAllServices returns every service in display order
	GetAllServices(ctx context.Context) ([]Servicio, error)
	// Count returns the number of stored services
	Count(ctx context.Context) (int, error)
	// CreateService inserts a service and fills its ID
	CreateService(ctx context.Context, servicio *Servicio) error
}
