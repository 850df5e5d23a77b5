package enums

import "fmt"

// DealStatus tracks an agreed sale from handshake to meetup.
type DealStatus string

const (
	DealStatusPending   DealStatus = "PENDING"
	DealStatusAccepted  DealStatus = "ACCEPTED"
	DealStatusCompleted DealStatus = "COMPLETED"
	DealStatusCancelled DealStatus = "CANCELLED"
)

var validDealStatuses = []DealStatus{
	DealStatusPending,
	DealStatusAccepted,
	DealStatusCompleted,
	DealStatusCancelled,
}

// IsValid reports whether the value matches the canonical deal status enum.
func (s DealStatus) IsValid() bool {
	for _, candidate := range validDealStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDealStatus converts the raw string to DealStatus.
func ParseDealStatus(value string) (DealStatus, error) {
	for _, candidate := range validDealStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid deal status %q", value)
}

// CanTransitionTo enforces PENDING -> ACCEPTED -> COMPLETED, with
// cancellation allowed until completion.
func (s DealStatus) CanTransitionTo(next DealStatus) bool {
	switch s {
	case DealStatusPending:
		return next == DealStatusAccepted || next == DealStatusCancelled
	case DealStatusAccepted:
		return next == DealStatusCompleted || next == DealStatusCancelled
	default:
		return false
	}
}
