package quote

import (
	"context"

	domain "github.com/everestpress/printshop-api/internal/domain/quote"
	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/models"
)

type GetQuote struct {
	repo domain.Repository
}

func NewGetQuote(repo domain.Repository) *GetQuote {
	return &GetQuote{repo: repo}
}

func (uc *GetQuote) Execute(ctx context.Context, caller *models.User, id string) (*models.Quote, error) {
	q, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Guest submissions have no owner and are visible to admins only.
	if caller.Role != models.RoleAdmin {
		if q.UserID == nil || *q.UserID != caller.ID {
			return nil, httperr.Forbidden("not_quote_owner", "You are not allowed to access this quote.")
		}
	}

	return q, nil
}
