package enums

import "fmt"

// InclusionStatus controls a submission's visibility inside an order without
// deleting the underlying row.
type InclusionStatus string

const (
	InclusionStatusIncluded      InclusionStatus = "included"
	InclusionStatusExcluded      InclusionStatus = "excluded"
	InclusionStatusSavedForLater InclusionStatus = "saved_for_later"
)

var validInclusionStatuses = []InclusionStatus{
	InclusionStatusIncluded,
	InclusionStatusExcluded,
	InclusionStatusSavedForLater,
}

// String implements fmt.Stringer.
func (i InclusionStatus) String() string {
	return string(i)
}

// IsValid reports whether the value is a known InclusionStatus.
func (i InclusionStatus) IsValid() bool {
	for _, candidate := range validInclusionStatuses {
		if candidate == i {
			return true
		}
	}
	return false
}

// Pool maps the inclusion status onto the legacy selection pool. Included
// submissions are the only primary-pool members; everything else is
// alternative.
func (i InclusionStatus) Pool() SelectionPool {
	if i == InclusionStatusIncluded {
		return SelectionPoolPrimary
	}
	return SelectionPoolAlternative
}

// ParseInclusionStatus converts raw input into an InclusionStatus.
func ParseInclusionStatus(value string) (InclusionStatus, error) {
	for _, candidate := range validInclusionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inclusion status %q", value)
}
