package domain

import "github.com/google/uuid"

// BidStatus is the business result of a bid attempt that reached the price comparison.
type BidStatus string

const (
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

// BidOutcome is returned by PlaceBid. CurrentAmount is the listing price after the call,
// for a rejected bid it is the unchanged price the challenger failed to beat.
type BidOutcome struct {
	Status        BidStatus
	ListingID     ListingID
	CurrentAmount int64
	CurrentBidID  uuid.UUID
	Reason        string
}

func (o BidOutcome) Accepted() bool { return o.Status == BidAccepted }

// CloseOutcome is returned by Close. AlreadyClosed is set when the call only confirmed the state.
type CloseOutcome struct {
	ListingID     ListingID
	State         ListingState
	FinalAmount   int64
	AlreadyClosed bool
}
