package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "reviewed", "quoted", "accepted", "rejected"} {
		got, err := ParseStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, Status(s), got)
	}

	_, err := ParseStatus("approved")
	assert.True(t, httperr.IsCode(err, "unknown_status"))

	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestCanTransition_AnyKnownPair(t *testing.T) {
	all := []Status{StatusPending, StatusReviewed, StatusQuoted, StatusAccepted, StatusRejected}
	for _, from := range all {
		for _, to := range all {
			assert.NoError(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestApplyAdminUpdate(t *testing.T) {
	q := &models.Quote{Status: string(StatusPending)}

	status := "quoted"
	notes := "Estimated at $120 for 500 units."
	require.NoError(t, ApplyAdminUpdate(q, &status, &notes))
	assert.Equal(t, "quoted", q.Status)
	assert.Equal(t, notes, q.AdminNotes)

	// Notes alone leave the status where it is.
	moreNotes := "Customer confirmed by phone."
	require.NoError(t, ApplyAdminUpdate(q, nil, &moreNotes))
	assert.Equal(t, "quoted", q.Status)
	assert.Equal(t, moreNotes, q.AdminNotes)
}

func TestApplyAdminUpdate_UnknownStatus(t *testing.T) {
	q := &models.Quote{Status: string(StatusPending)}

	bad := "archived"
	err := ApplyAdminUpdate(q, &bad, nil)
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	assert.Equal(t, "pending", q.Status, "a rejected update must not mutate the quote")
}
