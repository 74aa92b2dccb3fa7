package quote

import (
	"context"

	domain "github.com/everestpress/printshop-api/internal/domain/quote"
	"github.com/everestpress/printshop-api/internal/models"
	"github.com/everestpress/printshop-api/internal/notify"
)

type CreateQuoteInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceType   string
	Description   string
	Budget        *float64

	// UserID is the authenticated caller, when there is one. Guests submit
	// quotes too.
	UserID *string
}

type CreateQuote struct {
	repo   domain.Repository
	notify *notify.Dispatcher
}

func NewCreateQuote(repo domain.Repository, notify *notify.Dispatcher) *CreateQuote {
	return &CreateQuote{repo: repo, notify: notify}
}

func (uc *CreateQuote) Execute(ctx context.Context, in CreateQuoteInput) (*models.Quote, error) {
	q := &models.Quote{
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		ServiceType:   in.ServiceType,
		Description:   in.Description,
		Budget:        in.Budget,
		Status:        string(domain.InitialStatus()),
		UserID:        in.UserID,
	}

	if err := uc.repo.Create(ctx, q); err != nil {
		return nil, err
	}

	// Mail goes out only after the quote is persisted.
	uc.notify.EnqueueAdmin(notify.QuoteAdminAlert(q))
	uc.notify.Enqueue(notify.QuoteAcknowledgment(q))

	return q, nil
}
