package enums

import "fmt"

// EarningsStatus maps to the earnings_status enum in Postgres.
type EarningsStatus string

const (
	EarningsStatusPending   EarningsStatus = "pending"
	EarningsStatusConfirmed EarningsStatus = "confirmed"
	EarningsStatusPaid      EarningsStatus = "paid"
	EarningsStatusReversed  EarningsStatus = "reversed"
)

var validEarningsStatuses = []EarningsStatus{
	EarningsStatusPending,
	EarningsStatusConfirmed,
	EarningsStatusPaid,
	EarningsStatusReversed,
}

// IsValid reports whether the value matches the canonical earnings status enum.
func (s EarningsStatus) IsValid() bool {
	for _, candidate := range validEarningsStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseEarningsStatus converts raw input into an EarningsStatus.
func ParseEarningsStatus(value string) (EarningsStatus, error) {
	for _, candidate := range validEarningsStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid earnings status %q", value)
}

// EarningsType classifies how an earnings entry originated.
type EarningsType string

const (
	EarningsTypeOrderCompletion EarningsType = "order_completion"
	EarningsTypeBonus           EarningsType = "bonus"
	EarningsTypeAdjustment      EarningsType = "adjustment"
)

var validEarningsTypes = []EarningsType{
	EarningsTypeOrderCompletion,
	EarningsTypeBonus,
	EarningsTypeAdjustment,
}

// IsValid reports whether the value matches the canonical earnings type enum.
func (t EarningsType) IsValid() bool {
	for _, candidate := range validEarningsTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseEarningsType converts raw input into an EarningsType.
func ParseEarningsType(value string) (EarningsType, error) {
	for _, candidate := range validEarningsTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid earnings type %q", value)
}
