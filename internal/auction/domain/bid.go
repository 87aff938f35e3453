package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Bid is an immutable (amount, bidder) record in the price history of a listing.
// it is a value type so a copy handed out can never alter the ledger
type Bid struct {
	ID        uuid.UUID
	ListingID ListingID
	BidderID  string
	Amount    int64
	CreatedAt time.Time
}

// NewBid creates a new Bid instance
func NewBid(id uuid.UUID, listingID ListingID, bidderID string, amount int64, createdAt time.Time) Bid {
	return Bid{
		ID:        id,
		ListingID: listingID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: createdAt,
	}
}

// ParseAmount turns a raw form value into a bid amount.
// only non negative base 10 integers are accepted
func ParseAmount(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	amount, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidAmount, raw)
	}
	if amount < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrInvalidAmount, amount)
	}
	return amount, nil
}
