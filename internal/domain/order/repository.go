package order

import (
	"context"

	"github.com/everestpress/printshop-api/internal/models"
)

type ListFilters struct {
	Status        string
	PaymentStatus string
	// OwnerID restricts results to orders owned by this user. Nil means no
	// ownership restriction (admin view).
	OwnerID *string
}

type Repository interface {
	// GetService resolves the service an order is being placed against.
	GetService(ctx context.Context, serviceID string) (*models.Service, error)

	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, f ListFilters) ([]models.Order, error)
	Update(ctx context.Context, o *models.Order) error

	// AttachPaymentIntent sets the intent id only when none is attached yet.
	// A concurrent or repeated attach surfaces as a Conflict, never as a
	// silent overwrite.
	AttachPaymentIntent(ctx context.Context, orderID, intentID string) error
}
