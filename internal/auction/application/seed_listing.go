package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/niazroky/Commerce/internal/shared/metrics"
	"github.com/niazroky/Commerce/internal/shared/sanitize"
	"go.uber.org/zap"
)

// SeedListingUseCase creates a listing together with the seed bid holding its asking price
type SeedListingUseCase struct {
	store   domain.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewSeedListingUseCase(store domain.Store, m *metrics.Metrics) *SeedListingUseCase {
	return &SeedListingUseCase{store: store, metrics: m, now: time.Now}
}

func (uc *SeedListingUseCase) Execute(ctx context.Context, cmd SeedListingDTO) (domain.ListingID, error) {
	log.Info("Executing SeedListingUseCase",
		zap.String("ownerID", cmd.OwnerID),
		zap.String("category", cmd.Category),
	)

	// 1. the ledger is the trust boundary for the amount, parse again even if the form layer did
	amount, err := domain.ParseAmount(cmd.InitialAmount)
	if err != nil {
		log.Warn("SeedListingUseCase: invalid initial amount",
			zap.String("ownerID", cmd.OwnerID),
			zap.String("rawAmount", cmd.InitialAmount),
		)
		return 0, fmt.Errorf("seed listing use case: %w", err)
	}

	details := domain.ListingDetails{
		Title:       sanitize.Text(cmd.Title),
		Description: sanitize.RichText(cmd.Description),
		ImageURL:    strings.TrimSpace(cmd.ImageURL),
		Category:    sanitize.Text(cmd.Category),
		OwnerID:     strings.TrimSpace(cmd.OwnerID),
	}
	listing, err := domain.NewListing(details, amount, uc.now())
	if err != nil {
		return 0, fmt.Errorf("seed listing use case: %w", err)
	}

	// 2. listing row and seed bid are written in one transaction
	err = uc.store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		return tx.Listings().Create(ctx, listing)
	})
	if err != nil {
		log.Error("SeedListingUseCase: failed to create listing",
			zap.String("ownerID", cmd.OwnerID),
			zap.Error(err),
		)
		return 0, fmt.Errorf("seed listing use case: failed to create listing: %w", err)
	}

	uc.metrics.ObserveSeed()
	log.Info("SeedListingUseCase: listing created",
		zap.Int64("listingID", int64(listing.ID)),
		zap.Int64("initialAmount", amount),
	)
	return listing.ID, nil
}
