package quote

import "github.com/everestpress/printshop-api/internal/httperr"

type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusQuoted   Status = "quoted"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// transitions is deliberately permissive for now: admins move quotes freely
// between known states. Tightening the workflow later means removing rows
// here, nothing else.
var transitions = map[Status][]Status{
	StatusPending:  {StatusReviewed, StatusQuoted, StatusAccepted, StatusRejected},
	StatusReviewed: {StatusPending, StatusQuoted, StatusAccepted, StatusRejected},
	StatusQuoted:   {StatusPending, StatusReviewed, StatusAccepted, StatusRejected},
	StatusAccepted: {StatusPending, StatusReviewed, StatusQuoted, StatusRejected},
	StatusRejected: {StatusPending, StatusReviewed, StatusQuoted, StatusAccepted},
}

func InitialStatus() Status {
	return StatusPending
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusReviewed, StatusQuoted, StatusAccepted, StatusRejected:
		return Status(s), nil
	}
	return "", httperr.Validation("unknown_status", "Unknown quote status.")
}

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	if from == to {
		return nil
	}
	return httperr.InvalidState("invalid_transition", "This status change is not allowed.")
}
