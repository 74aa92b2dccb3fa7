package quote

import (
	"context"

	"github.com/everestpress/printshop-api/internal/audit"
	domain "github.com/everestpress/printshop-api/internal/domain/quote"
	"github.com/everestpress/printshop-api/internal/models"
	"github.com/everestpress/printshop-api/internal/notify"
)

type UpdateQuoteStatusInput struct {
	QuoteID    string
	Status     *string
	AdminNotes *string
}

type UpdateQuoteStatus struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	audit  *audit.Dispatcher
}

func NewUpdateQuoteStatus(repo domain.Repository, notify *notify.Dispatcher, audit *audit.Dispatcher) *UpdateQuoteStatus {
	return &UpdateQuoteStatus{repo: repo, notify: notify, audit: audit}
}

// Execute applies an admin status/notes change. Role enforcement happens at
// the route; this use case enforces the state machine itself.
func (uc *UpdateQuoteStatus) Execute(ctx context.Context, actor *models.User, in UpdateQuoteStatusInput) (*models.Quote, error) {
	q, err := uc.repo.FindByID(ctx, in.QuoteID)
	if err != nil {
		return nil, err
	}

	statusChanged := in.Status != nil && *in.Status != q.Status

	if err := domain.ApplyAdminUpdate(q, in.Status, in.AdminNotes); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, q); err != nil {
		return nil, err
	}

	// The customer hears about status moves, not about note edits.
	if statusChanged {
		uc.notify.Enqueue(notify.QuoteStatusUpdate(q))
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "quote_status_updated",
		Entity:   "quote",
		EntityID: q.ID,
		Metadata: map[string]any{"status": q.Status},
	})

	return q, nil
}
