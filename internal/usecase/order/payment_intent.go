package order

import (
	"context"
	"fmt"

	"github.com/everestpress/printshop-api/internal/audit"
	domain "github.com/everestpress/printshop-api/internal/domain/order"
	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/models"
	"github.com/everestpress/printshop-api/internal/payment"
)

type CreatePaymentIntent struct {
	repo      domain.Repository
	processor payment.Processor
	currency  string
	audit     *audit.Dispatcher
}

func NewCreatePaymentIntent(repo domain.Repository, processor payment.Processor, currency string, audit *audit.Dispatcher) *CreatePaymentIntent {
	return &CreatePaymentIntent{repo: repo, processor: processor, currency: currency, audit: audit}
}

// Execute authorizes a charge for the order's snapshotted total and binds
// the resulting intent to the order. It never marks the order as paid;
// payment confirmation is a separate, explicit step.
func (uc *CreatePaymentIntent) Execute(ctx context.Context, caller *models.User, orderID string) (*payment.Intent, error) {
	o, err := uc.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if caller.Role != models.RoleAdmin {
		if o.UserID == nil || *o.UserID != caller.ID {
			return nil, httperr.Forbidden("not_order_owner", "You are not allowed to pay for this order.")
		}
	}

	// Cheap early exit; the conditional attach below still closes the race
	// between two concurrent requests that both pass this check.
	if o.PaymentIntentID != nil {
		return nil, httperr.Conflict("payment_intent_exists", "A payment intent is already attached to this order.")
	}

	shortID := o.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	intent, err := uc.processor.Authorize(ctx, payment.AuthorizeRequest{
		AmountMinor: payment.MinorUnits(o.TotalAmount),
		Currency:    uc.currency,
		Description: fmt.Sprintf("Payment for %s - Order #%s", o.Service.Name, shortID),
		Metadata: map[string]string{
			"order_id":       o.ID,
			"customer_email": o.CustomerEmail,
			"service_name":   o.Service.Name,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := uc.repo.AttachPaymentIntent(ctx, o.ID, intent.ID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &caller.ID,
		Action:   "payment_intent_created",
		Entity:   "order",
		EntityID: o.ID,
		Metadata: map[string]any{"payment_intent_id": intent.ID},
	})

	return intent, nil
}
