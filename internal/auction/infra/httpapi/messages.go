package httpapi

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/niazroky/Commerce/internal/auction/application"
	"github.com/niazroky/Commerce/internal/auction/domain"
)

var (
	errTitleRequired  = errors.New("title is required")
	errPriceRequired  = errors.New("price is required")
	errAmountRequired = errors.New("amount is required")
)

// RawAmount keeps the amount exactly as the client sent it, a JSON string or number.
// parsing it is left to the ledger
type RawAmount string

func (a *RawAmount) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*a = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = RawAmount(s)
	default:
		*a = RawAmount(raw)
	}
	return nil
}

// CreateListingRequest is the create listing form, JSON or urlencoded
type CreateListingRequest struct {
	Title       string    `json:"title" form:"title"`
	Description string    `json:"description" form:"description"`
	ImageURL    string    `json:"image_url" form:"image_url"`
	Category    string    `json:"category" form:"category"`
	Price       RawAmount `json:"price" form:"price"`
}

func (r CreateListingRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errTitleRequired
	}
	if strings.TrimSpace(string(r.Price)) == "" {
		return errPriceRequired
	}
	return nil
}

type CreateListingResponse struct {
	ListingID domain.ListingID `json:"listing_id"`
}

// PlaceBidRequest is the bid form of the listing page
type PlaceBidRequest struct {
	Amount RawAmount `json:"amount" form:"amount"`
}

func (r PlaceBidRequest) Validate() error {
	if strings.TrimSpace(string(r.Amount)) == "" {
		return errAmountRequired
	}
	return nil
}

type BidOutcomeResponse struct {
	Status        string           `json:"status"`
	ListingID     domain.ListingID `json:"listing_id"`
	CurrentAmount int64            `json:"current_amount"`
	CurrentBidID  uuid.UUID        `json:"current_bid_id"`
	Reason        string           `json:"reason,omitempty"`
}

func newBidOutcomeResponse(o domain.BidOutcome) BidOutcomeResponse {
	return BidOutcomeResponse{
		Status:        string(o.Status),
		ListingID:     o.ListingID,
		CurrentAmount: o.CurrentAmount,
		CurrentBidID:  o.CurrentBidID,
		Reason:        o.Reason,
	}
}

type CloseAuctionResponse struct {
	ListingID     domain.ListingID `json:"listing_id"`
	State         string           `json:"state"`
	FinalAmount   int64            `json:"final_amount"`
	AlreadyClosed bool             `json:"already_closed"`
}

// ListingDetailResponse is the listing page, IsOwner tells the client to offer closing
type ListingDetailResponse struct {
	application.ListingDetailDTO
	IsOwner bool `json:"is_owner"`
}
