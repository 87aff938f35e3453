package application

import (
	"context"
	"fmt"
	"time"

	auction "github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/niazroky/Commerce/internal/community/domain"
	"github.com/niazroky/Commerce/internal/shared/sanitize"
	"go.uber.org/zap"
)

// CommentUseCase appends to and reads the comment log of a listing
type CommentUseCase struct {
	listings ListingFinder
	repo     domain.CommentRepository
	now      func() time.Time
}

func NewCommentUseCase(listings ListingFinder, repo domain.CommentRepository) *CommentUseCase {
	return &CommentUseCase{listings: listings, repo: repo, now: time.Now}
}

func (uc *CommentUseCase) Add(ctx context.Context, cmd AddCommentDTO) (CommentDTO, error) {
	comment, err := domain.NewComment(cmd.ListingID, cmd.AuthorID, sanitize.Text(cmd.Body), uc.now())
	if err != nil {
		return CommentDTO{}, fmt.Errorf("add comment use case: %w", err)
	}
	if _, err := uc.listings.GetByID(ctx, cmd.ListingID); err != nil {
		return CommentDTO{}, fmt.Errorf("add comment use case: listing %d: %w", cmd.ListingID, err)
	}
	if err := uc.repo.Create(ctx, comment); err != nil {
		log.Error("CommentUseCase: failed to store comment",
			zap.Int64("listingID", int64(cmd.ListingID)),
			zap.String("authorID", cmd.AuthorID),
			zap.Error(err),
		)
		return CommentDTO{}, fmt.Errorf("add comment use case: %w", err)
	}

	log.Info("CommentUseCase: comment added",
		zap.Int64("listingID", int64(cmd.ListingID)),
		zap.String("commentID", comment.ID.String()),
	)
	return toCommentDTO(comment), nil
}

func (uc *CommentUseCase) List(ctx context.Context, listingID auction.ListingID) ([]CommentDTO, error) {
	if _, err := uc.listings.GetByID(ctx, listingID); err != nil {
		return nil, fmt.Errorf("list comments use case: listing %d: %w", listingID, err)
	}
	comments, err := uc.repo.ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("list comments use case: %w", err)
	}
	return toCommentDTOs(comments), nil
}
