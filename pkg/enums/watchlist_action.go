package enums

import "fmt"

// WatchlistAction is the mutation verb accepted by the watchlist endpoint.
type WatchlistAction string

const (
	WatchlistActionAdd    WatchlistAction = "add"
	WatchlistActionRemove WatchlistAction = "remove"
)

var validWatchlistActions = []WatchlistAction{
	WatchlistActionAdd,
	WatchlistActionRemove,
}

// IsValid reports whether the value matches the canonical watchlist action enum.
func (a WatchlistAction) IsValid() bool {
	for _, candidate := range validWatchlistActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseWatchlistAction converts the raw string to WatchlistAction.
func ParseWatchlistAction(value string) (WatchlistAction, error) {
	for _, candidate := range validWatchlistActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid watchlist action %q", value)
}
