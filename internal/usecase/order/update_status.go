package order

import (
	"context"

	"github.com/everestpress/printshop-api/internal/audit"
	domain "github.com/everestpress/printshop-api/internal/domain/order"
	"github.com/everestpress/printshop-api/internal/models"
	"github.com/everestpress/printshop-api/internal/notify"
)

type UpdateOrderStatusInput struct {
	OrderID       string
	Status        *string
	PaymentStatus *string
}

type UpdateOrderStatus struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	audit  *audit.Dispatcher
}

func NewUpdateOrderStatus(repo domain.Repository, notify *notify.Dispatcher, audit *audit.Dispatcher) *UpdateOrderStatus {
	return &UpdateOrderStatus{repo: repo, notify: notify, audit: audit}
}

// Execute applies an admin fulfilment/payment status change. Either axis may
// move independently; the customer is told about both.
func (uc *UpdateOrderStatus) Execute(ctx context.Context, actor *models.User, in UpdateOrderStatusInput) (*models.Order, error) {
	o, err := uc.repo.FindByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}

	changed := (in.Status != nil && *in.Status != o.Status) ||
		(in.PaymentStatus != nil && *in.PaymentStatus != o.PaymentStatus)

	if err := domain.ApplyAdminUpdate(o, in.Status, in.PaymentStatus); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if changed {
		uc.notify.Enqueue(notify.OrderStatusUpdate(o))
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "order_status_updated",
		Entity:   "order",
		EntityID: o.ID,
		Metadata: map[string]any{"status": o.Status, "payment_status": o.PaymentStatus},
	})

	return o, nil
}
