package enums

import "fmt"

// PublisherOrderStatus is the fulfillment lifecycle of a line item from the
// assigned publisher's perspective.
type PublisherOrderStatus string

const (
	PublisherOrderStatusPending    PublisherOrderStatus = "pending"
	PublisherOrderStatusNotified   PublisherOrderStatus = "notified"
	PublisherOrderStatusAccepted   PublisherOrderStatus = "accepted"
	PublisherOrderStatusInProgress PublisherOrderStatus = "in_progress"
	PublisherOrderStatusSubmitted  PublisherOrderStatus = "submitted"
	PublisherOrderStatusCompleted  PublisherOrderStatus = "completed"
	PublisherOrderStatusRejected   PublisherOrderStatus = "rejected"
)

var validPublisherOrderStatuses = []PublisherOrderStatus{
	PublisherOrderStatusPending,
	PublisherOrderStatusNotified,
	PublisherOrderStatusAccepted,
	PublisherOrderStatusInProgress,
	PublisherOrderStatusSubmitted,
	PublisherOrderStatusCompleted,
	PublisherOrderStatusRejected,
}

// String implements fmt.Stringer.
func (p PublisherOrderStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PublisherOrderStatus.
func (p PublisherOrderStatus) IsValid() bool {
	for _, candidate := range validPublisherOrderStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePublisherOrderStatus converts raw input into a PublisherOrderStatus.
func ParsePublisherOrderStatus(value string) (PublisherOrderStatus, error) {
	for _, candidate := range validPublisherOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid publisher order status %q", value)
}
