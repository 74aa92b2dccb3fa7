package quote

import (
	"context"

	domain "github.com/everestpress/printshop-api/internal/domain/quote"
	"github.com/everestpress/printshop-api/internal/models"
)

type ListQuotes struct {
	repo domain.Repository
}

func NewListQuotes(repo domain.Repository) *ListQuotes {
	return &ListQuotes{repo: repo}
}

// Execute lists quotes visible to the caller: admins see everything, anyone
// else sees only their own submissions.
func (uc *ListQuotes) Execute(ctx context.Context, caller *models.User, status string) ([]models.Quote, error) {
	f := domain.ListFilters{Status: status}
	if caller.Role != models.RoleAdmin {
		f.OwnerID = &caller.ID
	}
	return uc.repo.List(ctx, f)
}
