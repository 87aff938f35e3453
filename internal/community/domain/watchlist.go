package domain

import (
	"strings"
	"time"

	auction "github.com/niazroky/Commerce/internal/auction/domain"
)

// WatchEntry marks listingID as watched by UserID
type WatchEntry struct {
	UserID    string
	ListingID auction.ListingID
	CreatedAt time.Time
}

func NewWatchEntry(userID string, listingID auction.ListingID, now time.Time) (WatchEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return WatchEntry{}, auction.ErrMissingIdentity
	}
	return WatchEntry{UserID: userID, ListingID: listingID, CreatedAt: now}, nil
}
