package workflow

import "errors"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// ErrMissingRejectionComment is returned when a rejection from the approval
// view carries no comment. No mutation happens in that case.
var ErrMissingRejectionComment = errors.New("a comment is required to reject a ticket")

// KnownStatus reports whether s is one of the three ticket statuses.
func KnownStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether a ticket may move from one status to
// another. Pending is the only non-terminal status; decisions are never
// reversed.
func CanTransition(from, to string) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusApproved || to == StatusRejected
}

// ValidateDecision checks an approve/reject request before any mutation.
// Rejecting from the approval view requires a non-empty comment.
func ValidateDecision(newStatus, comment string, isApprovalView bool) error {
	if newStatus != StatusApproved && newStatus != StatusRejected {
		return errors.New("decision must be Approved or Rejected")
	}
	if isApprovalView && newStatus == StatusRejected && comment == "" {
		return ErrMissingRejectionComment
	}
	return nil
}
