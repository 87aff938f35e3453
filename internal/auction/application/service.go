package application

import (
	"context"

	"github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/niazroky/Commerce/internal/shared/metrics"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/niazroky/Commerce/internal/auction/application AuctionService

// AuctionService defines application interface layer of auction module
// exposes use cases to external layer, aka infra
type AuctionService interface {
	SeedListing(ctx context.Context, cmd SeedListingDTO) (domain.ListingID, error)
	// PlaceBid returns Accepted or Rejected, AuctionClosed, NotFound and InvalidAmount come back as errors
	PlaceBid(ctx context.Context, cmd PlaceBidDTO) (domain.BidOutcome, error)
	CloseAuction(ctx context.Context, cmd CloseAuctionDTO) (domain.CloseOutcome, error)
	GetListing(ctx context.Context, id domain.ListingID) (*ListingDetailDTO, error)
	ListListings(ctx context.Context, category string) ([]ListingDTO, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// concrete implementation of AuctionService
type auctionService struct {
	seedListingUC  *SeedListingUseCase
	placeBidUC     *PlaceBidUseCase
	closeAuctionUC *CloseAuctionUseCase
	getListingUC   *GetListingUseCase
	listListingsUC *ListListingsUseCase
}

// NewAuctionService wires every use case on the same store, m may be nil.
func NewAuctionService(store domain.Store, m *metrics.Metrics) AuctionService {
	return &auctionService{
		seedListingUC:  NewSeedListingUseCase(store, m),
		placeBidUC:     NewPlaceBidUseCase(store, m),
		closeAuctionUC: NewCloseAuctionUseCase(store, m),
		getListingUC:   NewGetListingUseCase(store),
		listListingsUC: NewListListingsUseCase(store),
	}
}

func (as *auctionService) SeedListing(ctx context.Context, cmd SeedListingDTO) (domain.ListingID, error) {
	return as.seedListingUC.Execute(ctx, cmd)
}

func (as *auctionService) PlaceBid(ctx context.Context, cmd PlaceBidDTO) (domain.BidOutcome, error) {
	return as.placeBidUC.Execute(ctx, cmd)
}

func (as *auctionService) CloseAuction(ctx context.Context, cmd CloseAuctionDTO) (domain.CloseOutcome, error) {
	return as.closeAuctionUC.Execute(ctx, cmd)
}

func (as *auctionService) GetListing(ctx context.Context, id domain.ListingID) (*ListingDetailDTO, error) {
	return as.getListingUC.Execute(ctx, id)
}

func (as *auctionService) ListListings(ctx context.Context, category string) ([]ListingDTO, error) {
	return as.listListingsUC.Execute(ctx, category)
}

func (as *auctionService) ListCategories(ctx context.Context) ([]string, error) {
	return as.listListingsUC.Categories(ctx)
}
