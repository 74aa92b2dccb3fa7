package quote

import "github.com/everestpress/printshop-api/internal/models"

// ApplyAdminUpdate mutates status and admin notes in place. Either field may
// be absent; customer identity fields are never touched here.
func ApplyAdminUpdate(q *models.Quote, status *string, adminNotes *string) error {
	if status != nil {
		next, err := ParseStatus(*status)
		if err != nil {
			return err
		}
		if err := CanTransition(Status(q.Status), next); err != nil {
			return err
		}
		q.Status = string(next)
	}

	if adminNotes != nil {
		q.AdminNotes = *adminNotes
	}

	return nil
}
