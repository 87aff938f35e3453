package application

import (
	"context"

	auction "github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/niazroky/Commerce/internal/community/domain"
	"github.com/niazroky/Commerce/internal/shared/logger"
)

var log = logger.GetLogger()

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/niazroky/Commerce/internal/community/application CommunityService

// ListingFinder resolves listings owned by the auction context
type ListingFinder interface {
	GetByID(ctx context.Context, id auction.ListingID) (*auction.Listing, error)
}

// CommunityService exposes comments and the watchlist to the transport
type CommunityService interface {
	AddComment(ctx context.Context, cmd AddCommentDTO) (CommentDTO, error)
	ListComments(ctx context.Context, listingID auction.ListingID) ([]CommentDTO, error)
	Watch(ctx context.Context, userID string, listingID auction.ListingID) error
	Unwatch(ctx context.Context, userID string, listingID auction.ListingID) error
	IsWatching(ctx context.Context, userID string, listingID auction.ListingID) (bool, error)
	Watchlist(ctx context.Context, userID string) ([]WatchedListingDTO, error)
}

type communityService struct {
	comments  *CommentUseCase
	watchlist *WatchlistUseCase
}

func NewCommunityService(listings ListingFinder, comments domain.CommentRepository, watchlist domain.WatchlistRepository) CommunityService {
	return &communityService{
		comments:  NewCommentUseCase(listings, comments),
		watchlist: NewWatchlistUseCase(listings, watchlist),
	}
}

func (s *communityService) AddComment(ctx context.Context, cmd AddCommentDTO) (CommentDTO, error) {
	return s.comments.Add(ctx, cmd)
}

func (s *communityService) ListComments(ctx context.Context, listingID auction.ListingID) ([]CommentDTO, error) {
	return s.comments.List(ctx, listingID)
}

func (s *communityService) Watch(ctx context.Context, userID string, listingID auction.ListingID) error {
	return s.watchlist.Add(ctx, userID, listingID)
}

func (s *communityService) Unwatch(ctx context.Context, userID string, listingID auction.ListingID) error {
	return s.watchlist.Remove(ctx, userID, listingID)
}

func (s *communityService) IsWatching(ctx context.Context, userID string, listingID auction.ListingID) (bool, error) {
	return s.watchlist.Contains(ctx, userID, listingID)
}

func (s *communityService) Watchlist(ctx context.Context, userID string) ([]WatchedListingDTO, error) {
	return s.watchlist.List(ctx, userID)
}
