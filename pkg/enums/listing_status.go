package enums

import "fmt"

// ListingStatus is the lifecycle state of a listing. DELETED is terminal;
// soft-deleted rows stay addressable by id for threads and deals.
type ListingStatus string

const (
	ListingStatusAvailable ListingStatus = "AVAILABLE"
	ListingStatusPending   ListingStatus = "PENDING"
	ListingStatusSold      ListingStatus = "SOLD"
	ListingStatusDeleted   ListingStatus = "DELETED"
)

var validListingStatuses = []ListingStatus{
	ListingStatusAvailable,
	ListingStatusPending,
	ListingStatusSold,
	ListingStatusDeleted,
}

// IsValid reports whether the value matches the canonical listing status enum.
func (s ListingStatus) IsValid() bool {
	for _, candidate := range validListingStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseListingStatus converts the raw string to ListingStatus.
func ParseListingStatus(value string) (ListingStatus, error) {
	for _, candidate := range validListingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing status %q", value)
}
