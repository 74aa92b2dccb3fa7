package order

import "github.com/everestpress/printshop-api/internal/models"

// ComputeTotal snapshots the charge at creation time. The total is never
// recomputed from a later service price.
func ComputeTotal(unitPrice float64, quantity int) float64 {
	return unitPrice * float64(quantity)
}

// ApplyAdminUpdate mutates the fulfilment and/or payment status in place.
// TotalAmount, the service reference, and the customer fields are immutable
// under status updates.
func ApplyAdminUpdate(o *models.Order, status *string, paymentStatus *string) error {
	if status != nil {
		next, err := ParseStatus(*status)
		if err != nil {
			return err
		}
		if err := CanTransition(Status(o.Status), next); err != nil {
			return err
		}
		o.Status = string(next)
	}

	if paymentStatus != nil {
		next, err := ParsePaymentStatus(*paymentStatus)
		if err != nil {
			return err
		}
		if err := CanTransitionPayment(PaymentStatus(o.PaymentStatus), next); err != nil {
			return err
		}
		o.PaymentStatus = string(next)
	}

	return nil
}
