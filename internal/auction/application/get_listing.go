package application

import (
	"context"
	"fmt"

	"github.com/niazroky/Commerce/internal/auction/domain"
)

// GetListingUseCase retrieves a listing with its price history
type GetListingUseCase struct {
	store domain.Store
}

func NewGetListingUseCase(store domain.Store) *GetListingUseCase {
	return &GetListingUseCase{store: store}
}

// Execute reads the listing and its bids under the listing lock so the current
// price always matches the last bid in the history.
func (uc *GetListingUseCase) Execute(ctx context.Context, id domain.ListingID) (*ListingDetailDTO, error) {
	var detail *ListingDetailDTO
	err := uc.store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		lot, err := tx.Listings().GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("listing %d: %w", id, err)
		}
		bids, err := tx.Bids().ListByListing(ctx, id)
		if err != nil {
			return fmt.Errorf("bids of listing %d: %w", id, err)
		}
		detail = &ListingDetailDTO{
			ListingDTO: toListingDTO(lot),
			Bids:       toBidDTOs(bids),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get listing use case: %w", err)
	}
	return detail, nil
}

// ListListingsUseCase backs the index and category pages, only active listings are shown
type ListListingsUseCase struct {
	store domain.Store
}

func NewListListingsUseCase(store domain.Store) *ListListingsUseCase {
	return &ListListingsUseCase{store: store}
}

func (uc *ListListingsUseCase) Execute(ctx context.Context, category string) ([]ListingDTO, error) {
	lots, err := uc.store.Listings().ListActive(ctx, domain.ListingFilter{Category: category})
	if err != nil {
		return nil, fmt.Errorf("list listings use case: %w", err)
	}
	out := make([]ListingDTO, 0, len(lots))
	for _, l := range lots {
		out = append(out, toListingDTO(l))
	}
	return out, nil
}

func (uc *ListListingsUseCase) Categories(ctx context.Context) ([]string, error) {
	categories, err := uc.store.Listings().ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories use case: %w", err)
	}
	return categories, nil
}
