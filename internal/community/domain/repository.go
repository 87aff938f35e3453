package domain

import (
	"context"

	auction "github.com/niazroky/Commerce/internal/auction/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, c Comment) error
	// ListByListing returns the comments of a listing oldest first.
	ListByListing(ctx context.Context, id auction.ListingID) ([]Comment, error)
}

// WatchlistRepository stores at most one entry per user and listing.
type WatchlistRepository interface {
	// Add reports false when the entry already existed.
	Add(ctx context.Context, e WatchEntry) (bool, error)
	// Remove reports false when there was nothing to remove.
	Remove(ctx context.Context, userID string, id auction.ListingID) (bool, error)
	Contains(ctx context.Context, userID string, id auction.ListingID) (bool, error)
	// ListByUser returns entries newest first.
	ListByUser(ctx context.Context, userID string) ([]WatchEntry, error)
}
