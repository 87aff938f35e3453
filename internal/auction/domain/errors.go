package domain

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrAuctionClosed   = errors.New("auction is closed")
	ErrInvalidAmount   = errors.New("amount must be a non-negative integer")
	ErrNotOwner        = errors.New("only the listing owner can close the auction")
	ErrMissingIdentity = errors.New("user identity is required")
	ErrInvalidListing  = errors.New("invalid listing details")
)

// RejectReasonNotHigher is the reason attached to a rejected bid.
const RejectReasonNotHigher = "amount not higher than current price"
