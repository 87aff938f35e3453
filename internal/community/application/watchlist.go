package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	auction "github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/niazroky/Commerce/internal/community/domain"
	"go.uber.org/zap"
)

// WatchlistUseCase keeps the per user watchlist, Add and Remove are idempotent
type WatchlistUseCase struct {
	listings ListingFinder
	repo     domain.WatchlistRepository
	now      func() time.Time
}

func NewWatchlistUseCase(listings ListingFinder, repo domain.WatchlistRepository) *WatchlistUseCase {
	return &WatchlistUseCase{listings: listings, repo: repo, now: time.Now}
}

func (uc *WatchlistUseCase) Add(ctx context.Context, userID string, listingID auction.ListingID) error {
	entry, err := domain.NewWatchEntry(userID, listingID, uc.now())
	if err != nil {
		return fmt.Errorf("watchlist add: %w", err)
	}
	if _, err := uc.listings.GetByID(ctx, listingID); err != nil {
		return fmt.Errorf("watchlist add: listing %d: %w", listingID, err)
	}
	added, err := uc.repo.Add(ctx, entry)
	if err != nil {
		return fmt.Errorf("watchlist add: %w", err)
	}
	log.Debug("WatchlistUseCase: add",
		zap.String("userID", userID),
		zap.Int64("listingID", int64(listingID)),
		zap.Bool("added", added),
	)
	return nil
}

func (uc *WatchlistUseCase) Remove(ctx context.Context, userID string, listingID auction.ListingID) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("watchlist remove: %w", auction.ErrMissingIdentity)
	}
	if _, err := uc.listings.GetByID(ctx, listingID); err != nil {
		return fmt.Errorf("watchlist remove: listing %d: %w", listingID, err)
	}
	removed, err := uc.repo.Remove(ctx, userID, listingID)
	if err != nil {
		return fmt.Errorf("watchlist remove: %w", err)
	}
	log.Debug("WatchlistUseCase: remove",
		zap.String("userID", userID),
		zap.Int64("listingID", int64(listingID)),
		zap.Bool("removed", removed),
	)
	return nil
}

func (uc *WatchlistUseCase) Contains(ctx context.Context, userID string, listingID auction.ListingID) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, nil
	}
	ok, err := uc.repo.Contains(ctx, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("watchlist contains: %w", err)
	}
	return ok, nil
}

// List resolves every watched listing, closed ones included.
func (uc *WatchlistUseCase) List(ctx context.Context, userID string) ([]WatchedListingDTO, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("watchlist list: %w", auction.ErrMissingIdentity)
	}
	entries, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("watchlist list: %w", err)
	}

	out := make([]WatchedListingDTO, 0, len(entries))
	for _, e := range entries {
		l, err := uc.listings.GetByID(ctx, e.ListingID)
		if errors.Is(err, auction.ErrListingNotFound) {
			log.Warn("WatchlistUseCase: watched listing vanished", zap.Int64("listingID", int64(e.ListingID)))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("watchlist list: listing %d: %w", e.ListingID, err)
		}
		out = append(out, toWatchedListingDTO(e, l))
	}
	return out, nil
}
