package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/niazroky/Commerce/internal/shared/logger"
	"github.com/niazroky/Commerce/internal/shared/metrics"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// PlaceBidUseCase is useCase to make a bid on a listing, orchestrate business logic and persistence
type PlaceBidUseCase struct {
	store   domain.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewPlaceBidUseCase creates a new instance of PlaceBidUseCase, it receives dependencies through injection
func NewPlaceBidUseCase(store domain.Store, m *metrics.Metrics) *PlaceBidUseCase {
	return &PlaceBidUseCase{store: store, metrics: m, now: time.Now}
}

// Execute returns an Accepted or Rejected outcome, AuctionClosed, NotFound and InvalidAmount are errors.
func (uc *PlaceBidUseCase) Execute(ctx context.Context, cmd PlaceBidDTO) (domain.BidOutcome, error) {
	log.Info("Executing PlaceBidUseCase",
		zap.Int64("listingID", int64(cmd.ListingID)),
		zap.String("bidderID", cmd.BidderID),
		zap.String("rawAmount", cmd.Amount),
	)

	// 1. validates input DTO, not business logic
	amount, err := domain.ParseAmount(cmd.Amount)
	if err != nil {
		log.Warn("PlaceBidUseCase: invalid bid amount",
			zap.Int64("listingID", int64(cmd.ListingID)),
			zap.String("bidderID", cmd.BidderID),
			zap.String("rawAmount", cmd.Amount),
		)
		uc.metrics.ObserveBid(metrics.OutcomeInvalid)
		return domain.BidOutcome{}, fmt.Errorf("place bid use case: %w", err)
	}

	// 2. read, compare and repoint under the listing lock, nothing is written for a rejected bid
	var outcome domain.BidOutcome
	err = uc.store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		lot, err := tx.Listings().GetByIDForUpdate(ctx, cmd.ListingID)
		if err != nil {
			return err
		}

		o, bid, err := lot.PlaceBid(cmd.BidderID, amount, uc.now())
		if err != nil {
			return err
		}
		outcome = o
		if bid == nil {
			return nil
		}

		if err := tx.Bids().Create(ctx, *bid); err != nil {
			log.Error("PlaceBidUseCase: failed to save new bid",
				zap.Int64("listingID", int64(cmd.ListingID)),
				zap.String("bidID", bid.ID.String()),
				zap.Error(err),
			)
			return fmt.Errorf("failed to save new bid: %w", err)
		}
		if err := tx.Listings().Save(ctx, lot); err != nil {
			log.Error("PlaceBidUseCase: failed to repoint current price",
				zap.Int64("listingID", int64(cmd.ListingID)),
				zap.Error(err),
			)
			return fmt.Errorf("failed to save updated listing: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.metrics.ObserveBid(bidErrorOutcome(err))
		return domain.BidOutcome{}, fmt.Errorf("place bid use case: listing %d: %w", cmd.ListingID, err)
	}

	if outcome.Accepted() {
		uc.metrics.ObserveBid(metrics.OutcomeAccepted)
	} else {
		uc.metrics.ObserveBid(metrics.OutcomeRejected)
	}
	return outcome, nil
}

func bidErrorOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuctionClosed):
		return metrics.OutcomeClosed
	case errors.Is(err, domain.ErrListingNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrMissingIdentity):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
