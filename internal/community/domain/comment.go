package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	auction "github.com/niazroky/Commerce/internal/auction/domain"
)

// Comment is an append-only remark left on a listing
type Comment struct {
	ID        uuid.UUID
	ListingID auction.ListingID
	AuthorID  string
	Body      string
	CreatedAt time.Time
}

// NewComment validates an already sanitized body.
func NewComment(listingID auction.ListingID, authorID, body string, now time.Time) (Comment, error) {
	if strings.TrimSpace(authorID) == "" {
		return Comment{}, auction.ErrMissingIdentity
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return Comment{}, ErrEmptyComment
	}
	if utf8.RuneCountInString(body) > MaxCommentLength {
		return Comment{}, ErrCommentTooLong
	}
	return Comment{
		ID:        uuid.New(),
		ListingID: listingID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: now,
	}, nil
}
