package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/niazroky/Commerce/internal/shared/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// ListingID identifies a listing, the catalog hands them out as integers.
type ListingID int64

// ListingState represents the lifecycle state of a listing, Active -> Closed only
type ListingState string

const (
	StateActive ListingState = "active"
	StateClosed ListingState = "closed"
)

const (
	maxTitleLen       = 45
	maxDescriptionLen = 250
	maxImageURLLen    = 1000
	maxCategoryLen    = 25
)

// ListingDetails is the catalog metadata of a listing, opaque to the ledger.
type ListingDetails struct {
	Title       string
	Description string
	ImageURL    string
	Category    string
	OwnerID     string
}

// Validate checks the details against the catalog column limits.
func (d ListingDetails) Validate() error {
	switch {
	case strings.TrimSpace(d.OwnerID) == "":
		return ErrMissingIdentity
	case strings.TrimSpace(d.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidListing)
	case utf8.RuneCountInString(d.Title) > maxTitleLen:
		return fmt.Errorf("%w: title longer than %d characters", ErrInvalidListing, maxTitleLen)
	case utf8.RuneCountInString(d.Description) > maxDescriptionLen:
		return fmt.Errorf("%w: description longer than %d characters", ErrInvalidListing, maxDescriptionLen)
	case utf8.RuneCountInString(d.ImageURL) > maxImageURLLen:
		return fmt.Errorf("%w: image url longer than %d characters", ErrInvalidListing, maxImageURLLen)
	case utf8.RuneCountInString(d.Category) > maxCategoryLen:
		return fmt.Errorf("%w: category longer than %d characters", ErrInvalidListing, maxCategoryLen)
	}
	return nil
}

// Listing is the auction aggregate. The active flag and the current-price pointer
// are only reachable through methods, repositories rebuild it with RestoreListing.
type Listing struct {
	ID ListingID
	ListingDetails
	CreatedAt time.Time
	UpdatedAt time.Time

	active  bool
	current Bid
}

// NewListing seeds an active listing whose current price is a bid by the owner for initialAmount.
// the ID is zero until the repository assigns one
func NewListing(details ListingDetails, initialAmount int64, now time.Time) (*Listing, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}
	if initialAmount < 0 {
		return nil, fmt.Errorf("%w: %d is negative", ErrInvalidAmount, initialAmount)
	}
	return &Listing{
		ListingDetails: details,
		CreatedAt:      now,
		UpdatedAt:      now,
		active:         true,
		current:        NewBid(uuid.New(), 0, details.OwnerID, initialAmount, now),
	}, nil
}

// RestoreListing rebuilds a persisted listing.
func RestoreListing(id ListingID, details ListingDetails, active bool, current Bid, createdAt, updatedAt time.Time) *Listing {
	return &Listing{
		ID:             id,
		ListingDetails: details,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
		active:         active,
		current:        current,
	}
}

// AssignID is called once by the repository after inserting a new listing,
// the seed bid gets the same back-reference.
func (l *Listing) AssignID(id ListingID) {
	if l.ID != 0 {
		return
	}
	l.ID = id
	if l.current.ListingID == 0 {
		l.current.ListingID = id
	}
}

func (l *Listing) IsActive() bool { return l.active }

func (l *Listing) State() ListingState {
	if l.active {
		return StateActive
	}
	return StateClosed
}

// CurrentBid returns a copy of the bid the current-price pointer references.
func (l *Listing) CurrentBid() Bid { return l.current }

func (l *Listing) CurrentPrice() int64 { return l.current.Amount }

func (l *Listing) IsOwnedBy(userID string) bool {
	return userID != "" && l.OwnerID == userID
}

// PlaceBid validates a challenger bid against the current price and promotes it on success.
// A rejected bid is a normal outcome and leaves the listing untouched, the returned *Bid is
// only non nil when the bid was accepted and must be persisted with the listing.
// callers must hold the listing's exclusive lock
func (l *Listing) PlaceBid(bidderID string, amount int64, now time.Time) (BidOutcome, *Bid, error) {
	if strings.TrimSpace(bidderID) == "" {
		return BidOutcome{}, nil, ErrMissingIdentity
	}
	if amount < 0 {
		return BidOutcome{}, nil, fmt.Errorf("%w: %d is negative", ErrInvalidAmount, amount)
	}

	if !l.active {
		log.Warn("Bid rejected: auction closed",
			zap.Int64("listingID", int64(l.ID)),
			zap.Int64("bidAmount", amount),
			zap.String("bidderID", bidderID),
		)
		return BidOutcome{}, nil, ErrAuctionClosed
	}

	if amount <= l.current.Amount {
		log.Info("Bid rejected: amount not higher than current price",
			zap.Int64("listingID", int64(l.ID)),
			zap.Int64("bidAmount", amount),
			zap.Int64("currentPrice", l.current.Amount),
			zap.String("bidderID", bidderID),
		)
		return BidOutcome{
			Status:        BidRejected,
			ListingID:     l.ID,
			CurrentAmount: l.current.Amount,
			CurrentBidID:  l.current.ID,
			Reason:        RejectReasonNotHigher,
		}, nil, nil
	}

	bid := NewBid(uuid.New(), l.ID, bidderID, amount, now)
	previous := l.current.Amount
	l.current = bid
	l.UpdatedAt = now

	log.Info("Bid accepted",
		zap.Int64("listingID", int64(l.ID)),
		zap.String("bidID", bid.ID.String()),
		zap.String("bidderID", bidderID),
		zap.Int64("previousPrice", previous),
		zap.Int64("newCurrentPrice", bid.Amount),
	)

	return BidOutcome{
		Status:        BidAccepted,
		ListingID:     l.ID,
		CurrentAmount: bid.Amount,
		CurrentBidID:  bid.ID,
	}, &bid, nil
}

// Close moves the listing to Closed, only its owner may do it.
// closing a closed listing confirms the state without error
func (l *Listing) Close(requesterID string, now time.Time) (CloseOutcome, error) {
	if strings.TrimSpace(requesterID) == "" {
		return CloseOutcome{}, ErrMissingIdentity
	}
	if !l.IsOwnedBy(requesterID) {
		log.Warn("Close rejected: requester is not the owner",
			zap.Int64("listingID", int64(l.ID)),
			zap.String("requesterID", requesterID),
		)
		return CloseOutcome{}, ErrNotOwner
	}

	outcome := CloseOutcome{
		ListingID:   l.ID,
		State:       StateClosed,
		FinalAmount: l.current.Amount,
	}
	if !l.active {
		outcome.AlreadyClosed = true
		return outcome, nil
	}

	l.active = false
	l.UpdatedAt = now
	log.Info("Auction closed",
		zap.Int64("listingID", int64(l.ID)),
		zap.Int64("finalPrice", l.current.Amount),
		zap.String("winnerID", l.current.BidderID),
	)
	return outcome, nil
}
