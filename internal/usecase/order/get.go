package order

import (
	"context"

	domain "github.com/everestpress/printshop-api/internal/domain/order"
	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/models"
)

type GetOrder struct {
	repo domain.Repository
}

func NewGetOrder(repo domain.Repository) *GetOrder {
	return &GetOrder{repo: repo}
}

func (uc *GetOrder) Execute(ctx context.Context, caller *models.User, id string) (*models.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Guest orders have no owner and are visible to admins only.
	if caller.Role != models.RoleAdmin {
		if o.UserID == nil || *o.UserID != caller.ID {
			return nil, httperr.Forbidden("not_order_owner", "You are not allowed to access this order.")
		}
	}

	return o, nil
}
