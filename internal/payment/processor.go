// Package payment bridges orders to the external card processor. It only
// authorizes charges; marking an order as paid stays an explicit admin (or
// webhook-driven) action, so authorization and confirmation never blur.
package payment

import (
	"context"
	"math"
)

type Intent struct {
	ID           string
	ClientSecret string
}

type AuthorizeRequest struct {
	// AmountMinor is the charge in the currency's minor unit (cents).
	AmountMinor int64
	Currency    string
	Description string
	// Metadata tags the authorization for later reconciliation.
	Metadata map[string]string
}

type Processor interface {
	Authorize(ctx context.Context, req AuthorizeRequest) (*Intent, error)
}

// MinorUnits converts a decimal amount to the processor's integer minor-unit
// representation, rounding to the nearest cent.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
