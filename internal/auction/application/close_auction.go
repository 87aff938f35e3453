package application

import (
	"context"
	"fmt"
	"time"

	"github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/niazroky/Commerce/internal/shared/metrics"
	"go.uber.org/zap"
)

// CloseAuctionUseCase moves a listing to Closed, serialized with bids on the same listing
type CloseAuctionUseCase struct {
	store   domain.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewCloseAuctionUseCase(store domain.Store, m *metrics.Metrics) *CloseAuctionUseCase {
	return &CloseAuctionUseCase{store: store, metrics: m, now: time.Now}
}

func (uc *CloseAuctionUseCase) Execute(ctx context.Context, cmd CloseAuctionDTO) (domain.CloseOutcome, error) {
	log.Info("Executing CloseAuctionUseCase",
		zap.Int64("listingID", int64(cmd.ListingID)),
		zap.String("requesterID", cmd.RequesterID),
	)

	var outcome domain.CloseOutcome
	err := uc.store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		lot, err := tx.Listings().GetByIDForUpdate(ctx, cmd.ListingID)
		if err != nil {
			return err
		}
		outcome, err = lot.Close(cmd.RequesterID, uc.now())
		if err != nil {
			return err
		}
		if outcome.AlreadyClosed {
			return nil
		}
		return tx.Listings().Save(ctx, lot)
	})
	if err != nil {
		return domain.CloseOutcome{}, fmt.Errorf("close auction use case: listing %d: %w", cmd.ListingID, err)
	}

	if !outcome.AlreadyClosed {
		uc.metrics.ObserveClose()
	}
	return outcome, nil
}
