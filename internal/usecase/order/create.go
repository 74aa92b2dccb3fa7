package order

import (
	"context"

	domain "github.com/everestpress/printshop-api/internal/domain/order"
	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/models"
	"github.com/everestpress/printshop-api/internal/notify"
)

type CreateOrderInput struct {
	ServiceID string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Address         string
	SpecialRequests string
	Quantity        int

	// UserID is the authenticated caller, when there is one. Guest checkout
	// leaves it nil.
	UserID *string
}

type CreateOrder struct {
	repo   domain.Repository
	notify *notify.Dispatcher
}

func NewCreateOrder(repo domain.Repository, notify *notify.Dispatcher) *CreateOrder {
	return &CreateOrder{repo: repo, notify: notify}
}

func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if in.Quantity < 1 {
		return nil, httperr.Validation("invalid_quantity", "Quantity must be at least 1.")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, httperr.InvalidState("service_unavailable", "This service is currently unavailable.")
	}

	o := &models.Order{
		ServiceID:       svc.ID,
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		Address:         in.Address,
		SpecialRequests: in.SpecialRequests,
		Quantity:        in.Quantity,
		// Price snapshot; later service edits never touch this order.
		TotalAmount:   domain.ComputeTotal(svc.Price, in.Quantity),
		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.InitialPaymentStatus()),
		UserID:        in.UserID,
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	o.Service = *svc

	uc.notify.EnqueueAdmin(notify.OrderAdminAlert(o, svc.Name))
	uc.notify.Enqueue(notify.OrderConfirmation(o, svc.Name))

	return o, nil
}
