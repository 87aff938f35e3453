package domain

import "context"

// ListingFilter narrows ListActive, an empty Category matches every category.
type ListingFilter struct {
	Category string
}

type ListingRepository interface {
	// Create inserts a new listing and its current bid row, assigning the listing ID.
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id ListingID) (*Listing, error)
	// GetByIDForUpdate loads the listing holding its exclusive lock until the transaction ends.
	GetByIDForUpdate(ctx context.Context, id ListingID) (*Listing, error)
	// Save persists the active flag and the current-price pointer.
	Save(ctx context.Context, l *Listing) error
	ListActive(ctx context.Context, filter ListingFilter) ([]*Listing, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type BidRepository interface {
	Create(ctx context.Context, bid Bid) error
	// ListByListing returns the bid history oldest first.
	ListByListing(ctx context.Context, id ListingID) ([]Bid, error)
}

// Tx is the unit of work a ledger mutation runs in.
type Tx interface {
	Listings() ListingRepository
	Bids() BidRepository
}

// Store gives non transactional reads and runs mutations through WithinTx.
// fn returning an error discards every write made through tx.
type Store interface {
	Tx
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
