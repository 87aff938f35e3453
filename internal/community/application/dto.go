package application

import (
	"time"

	"github.com/google/uuid"
	auction "github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/niazroky/Commerce/internal/community/domain"
	"github.com/samber/lo"
)

type AddCommentDTO struct {
	ListingID auction.ListingID
	AuthorID  string
	Body      string
}

type CommentDTO struct {
	ID        uuid.UUID         `json:"id"`
	ListingID auction.ListingID `json:"listing_id"`
	AuthorID  string            `json:"author_id"`
	Body      string            `json:"body"`
	CreatedAt time.Time         `json:"created_at"`
}

// WatchedListingDTO is one row of a user's watchlist page
type WatchedListingDTO struct {
	ListingID    auction.ListingID `json:"listing_id"`
	Title        string            `json:"title"`
	ImageURL     string            `json:"image_url"`
	Category     string            `json:"category"`
	State        string            `json:"state"`
	CurrentPrice int64             `json:"current_price"`
	WatchedAt    time.Time         `json:"watched_at"`
}

func toCommentDTO(c domain.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		ListingID: c.ListingID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

func toCommentDTOs(comments []domain.Comment) []CommentDTO {
	return lo.Map(comments, func(c domain.Comment, _ int) CommentDTO { return toCommentDTO(c) })
}

func toWatchedListingDTO(e domain.WatchEntry, l *auction.Listing) WatchedListingDTO {
	return WatchedListingDTO{
		ListingID:    l.ID,
		Title:        l.Title,
		ImageURL:     l.ImageURL,
		Category:     l.Category,
		State:        string(l.State()),
		CurrentPrice: l.CurrentPrice(),
		WatchedAt:    e.CreatedAt,
	}
}
