package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/samber/lo"
)

// SeedListingDTO is the input of SeedListing, InitialAmount is the raw form value
type SeedListingDTO struct {
	Title         string
	Description   string
	ImageURL      string
	Category      string
	OwnerID       string
	InitialAmount string
}

// PlaceBidDTO is the input of PlaceBid, Amount is the raw form value re-validated by the ledger
type PlaceBidDTO struct {
	ListingID domain.ListingID
	BidderID  string
	Amount    string
}

type CloseAuctionDTO struct {
	ListingID   domain.ListingID
	RequesterID string
}

// ListingDTO is the output DTO for exposing listing state to the transport
type ListingDTO struct {
	ID              domain.ListingID `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	ImageURL        string           `json:"image_url"`
	Category        string           `json:"category"`
	OwnerID         string           `json:"owner_id"`
	State           string           `json:"state"`
	CurrentPrice    int64            `json:"current_price"`
	CurrentBidID    uuid.UUID        `json:"current_bid_id"`
	CurrentBidderID string           `json:"current_bidder_id"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type BidDTO struct {
	ID        uuid.UUID `json:"id"`
	BidderID  string    `json:"bidder_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// ListingDetailDTO adds the price history, oldest bid (the seed) first
type ListingDetailDTO struct {
	ListingDTO
	Bids []BidDTO `json:"bids"`
}

func toListingDTO(l *domain.Listing) ListingDTO {
	current := l.CurrentBid()
	return ListingDTO{
		ID:              l.ID,
		Title:           l.Title,
		Description:     l.Description,
		ImageURL:        l.ImageURL,
		Category:        l.Category,
		OwnerID:         l.OwnerID,
		State:           string(l.State()),
		CurrentPrice:    current.Amount,
		CurrentBidID:    current.ID,
		CurrentBidderID: current.BidderID,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func toBidDTOs(bids []domain.Bid) []BidDTO {
	return lo.Map(bids, func(b domain.Bid, _ int) BidDTO {
		return BidDTO{
			ID:        b.ID,
			BidderID:  b.BidderID,
			Amount:    b.Amount,
			CreatedAt: b.CreatedAt,
		}
	})
}
