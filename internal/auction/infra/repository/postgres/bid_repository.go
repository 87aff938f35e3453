package postgres

import (
	"context"

	"github.com/niazroky/Commerce/internal/auction/domain"
)

// BidRepository implements domain.BidRepository interface
type BidRepository struct {
	db querier
}

// NewBidRepository creates new instance of BidRepository.
func NewBidRepository(db querier) *BidRepository {
	return &BidRepository{db: db}
}

// Create only inserts the bid, repointing the listing is done by the use case in the same transaction
func (r *BidRepository) Create(ctx context.Context, bid domain.Bid) error {
	query := `
        INSERT INTO bids (id, listing_id, bidder_id, amount, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.Exec(ctx, query,
		bid.ID,
		int64(bid.ListingID),
		bid.BidderID,
		bid.Amount,
		bid.CreatedAt,
	)
	return err
}

func (r *BidRepository) ListByListing(ctx context.Context, id domain.ListingID) ([]domain.Bid, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM listings WHERE id = $1)`, int64(id)).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrListingNotFound
	}

	query := `
        SELECT id, listing_id, bidder_id, amount, created_at
        FROM bids
        WHERE listing_id = $1
        ORDER BY created_at ASC, amount ASC
    `
	rows, err := r.db.Query(ctx, query, int64(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := []domain.Bid{}
	for rows.Next() {
		var (
			bid       domain.Bid
			listingID int64
		)
		if err := rows.Scan(&bid.ID, &listingID, &bid.BidderID, &bid.Amount, &bid.CreatedAt); err != nil {
			return nil, err
		}
		bid.ListingID = domain.ListingID(listingID)
		bids = append(bids, bid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bids, nil
}
