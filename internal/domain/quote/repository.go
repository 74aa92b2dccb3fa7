package quote

import (
	"context"

	"github.com/everestpress/printshop-api/internal/models"
)

type ListFilters struct {
	// Status filters by exact status when non-empty.
	Status string
	// OwnerID restricts results to quotes owned by this user. Nil means no
	// ownership restriction (admin view).
	OwnerID *string
}

type Repository interface {
	Create(ctx context.Context, q *models.Quote) error
	FindByID(ctx context.Context, id string) (*models.Quote, error)
	List(ctx context.Context, f ListFilters) ([]models.Quote, error)
	Update(ctx context.Context, q *models.Quote) error
}
