package enums

import "fmt"

// OrderState is the operational sub-state internal tooling advances while an
// order moves through production. It carries no transition table.
type OrderState string

const (
	OrderStateAnalyzing       OrderState = "analyzing"
	OrderStateSitesReady      OrderState = "sites_ready"
	OrderStateClientReviewing OrderState = "client_reviewing"
	OrderStateInProduction    OrderState = "in_production"
	OrderStateDelivered       OrderState = "delivered"
)

var validOrderStates = []OrderState{
	OrderStateAnalyzing,
	OrderStateSitesReady,
	OrderStateClientReviewing,
	OrderStateInProduction,
	OrderStateDelivered,
}

// IsValid reports whether the value is a known OrderState.
func (o OrderState) IsValid() bool {
	for _, candidate := range validOrderStates {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderState converts raw input into an OrderState.
func ParseOrderState(value string) (OrderState, error) {
	for _, candidate := range validOrderStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order state %q", value)
}
