package order

import (
	"context"

	domain "github.com/everestpress/printshop-api/internal/domain/order"
	"github.com/everestpress/printshop-api/internal/models"
)

type ListOrders struct {
	repo domain.Repository
}

func NewListOrders(repo domain.Repository) *ListOrders {
	return &ListOrders{repo: repo}
}

// Execute lists orders visible to the caller: admins see everything, anyone
// else sees only their own.
func (uc *ListOrders) Execute(ctx context.Context, caller *models.User, status, paymentStatus string) ([]models.Order, error) {
	f := domain.ListFilters{Status: status, PaymentStatus: paymentStatus}
	if caller.Role != models.RoleAdmin {
		f.OwnerID = &caller.ID
	}
	return uc.repo.List(ctx, f)
}
