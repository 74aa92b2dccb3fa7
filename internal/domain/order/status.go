package order

import "github.com/everestpress/printshop-api/internal/httperr"

// Fulfilment and payment are independent axes; each has its own closed enum
// and its own transition table.

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
	PaymentFailed PaymentStatus = "failed"
)

// Permissive tables: the admin workflow is free-form today, but every move
// still has to land on a known state.
var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCompleted, StatusCancelled},
	StatusProcessing: {StatusPending, StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusPending, StatusProcessing, StatusCancelled},
	StatusCancelled:  {StatusPending, StatusProcessing, StatusCompleted},
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentUnpaid: {PaymentPaid, PaymentFailed},
	PaymentPaid:   {PaymentUnpaid, PaymentFailed},
	PaymentFailed: {PaymentUnpaid, PaymentPaid},
}

func InitialStatus() Status {
	return StatusPending
}

func InitialPaymentStatus() PaymentStatus {
	return PaymentUnpaid
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", httperr.Validation("unknown_status", "Unknown order status.")
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentUnpaid, PaymentPaid, PaymentFailed:
		return PaymentStatus(s), nil
	}
	return "", httperr.Validation("unknown_payment_status", "Unknown payment status.")
}

func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.InvalidState("invalid_transition", "This status change is not allowed.")
}

func CanTransitionPayment(from, to PaymentStatus) error {
	if from == to {
		return nil
	}
	for _, next := range paymentTransitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.InvalidState("invalid_transition", "This payment status change is not allowed.")
}
