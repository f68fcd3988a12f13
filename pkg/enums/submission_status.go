package enums

import "fmt"

// SubmissionStatus reflects the client's review decision on a proposed site.
type SubmissionStatus string

const (
	SubmissionStatusPending        SubmissionStatus = "pending"
	SubmissionStatusClientApproved SubmissionStatus = "client_approved"
	SubmissionStatusClientRejected SubmissionStatus = "client_rejected"
)

var validSubmissionStatuses = []SubmissionStatus{
	SubmissionStatusPending,
	SubmissionStatusClientApproved,
	SubmissionStatusClientRejected,
}

// IsValid reports whether the value is a known SubmissionStatus.
func (s SubmissionStatus) IsValid() bool {
	for _, candidate := range validSubmissionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSubmissionStatus converts raw input into a SubmissionStatus.
func ParseSubmissionStatus(value string) (SubmissionStatus, error) {
	for _, candidate := range validSubmissionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid submission status %q", value)
}
