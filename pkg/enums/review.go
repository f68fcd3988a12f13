package enums

import "fmt"

// ReviewAction is the decision a reviewer records on a submission.
type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "approve"
	ReviewActionReject  ReviewAction = "reject"
)

// IsValid reports whether the value is a known ReviewAction.
func (r ReviewAction) IsValid() bool {
	return r == ReviewActionApprove || r == ReviewActionReject
}

// SubmissionStatus maps the action onto the resulting submission status.
func (r ReviewAction) SubmissionStatus() SubmissionStatus {
	if r == ReviewActionApprove {
		return SubmissionStatusClientApproved
	}
	return SubmissionStatusClientRejected
}

// ParseReviewAction converts raw input into a ReviewAction.
func ParseReviewAction(value string) (ReviewAction, error) {
	switch ReviewAction(value) {
	case ReviewActionApprove, ReviewActionReject:
		return ReviewAction(value), nil
	}
	return "", fmt.Errorf("invalid review action %q", value)
}

// ReviewerType records which population performed a review.
type ReviewerType string

const (
	ReviewerTypeInternal ReviewerType = "internal"
	ReviewerTypeAccount  ReviewerType = "account"
)

// IsValid reports whether the value is a known ReviewerType.
func (r ReviewerType) IsValid() bool {
	return r == ReviewerTypeInternal || r == ReviewerTypeAccount
}
