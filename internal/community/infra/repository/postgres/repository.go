package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	auction "github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/niazroky/Commerce/internal/community/domain"
)

const foreignKeyViolation = "23503"

// CommentRepository implements domain.CommentRepository interface
type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c domain.Comment) error {
	query := `
        INSERT INTO comments (id, listing_id, author_id, body, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.pool.Exec(ctx, query, c.ID, int64(c.ListingID), c.AuthorID, c.Body, c.CreatedAt)
	return mapWriteError(err)
}

func (r *CommentRepository) ListByListing(ctx context.Context, id auction.ListingID) ([]domain.Comment, error) {
	query := `
        SELECT id, listing_id, author_id, body, created_at
        FROM comments
        WHERE listing_id = $1
        ORDER BY created_at ASC, id ASC
    `
	rows, err := r.pool.Query(ctx, query, int64(id))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Comment, error) {
		var (
			c         domain.Comment
			listingID int64
		)
		err := row.Scan(&c.ID, &listingID, &c.AuthorID, &c.Body, &c.CreatedAt)
		c.ListingID = auction.ListingID(listingID)
		return c, err
	})
}

// WatchlistRepository implements domain.WatchlistRepository interface
type WatchlistRepository struct {
	pool *pgxpool.Pool
}

func NewWatchlistRepository(pool *pgxpool.Pool) *WatchlistRepository {
	return &WatchlistRepository{pool: pool}
}

func (r *WatchlistRepository) Add(ctx context.Context, e domain.WatchEntry) (bool, error) {
	query := `
        INSERT INTO watchlist_entries (user_id, listing_id, created_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, listing_id) DO NOTHING
    `
	tag, err := r.pool.Exec(ctx, query, e.UserID, int64(e.ListingID), e.CreatedAt)
	if err != nil {
		return false, mapWriteError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *WatchlistRepository) Remove(ctx context.Context, userID string, id auction.ListingID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM watchlist_entries WHERE user_id = $1 AND listing_id = $2`, userID, int64(id))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *WatchlistRepository) Contains(ctx context.Context, userID string, id auction.ListingID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM watchlist_entries WHERE user_id = $1 AND listing_id = $2)`,
		userID, int64(id),
	).Scan(&ok)
	return ok, err
}

func (r *WatchlistRepository) ListByUser(ctx context.Context, userID string) ([]domain.WatchEntry, error) {
	query := `
        SELECT user_id, listing_id, created_at
        FROM watchlist_entries
        WHERE user_id = $1
        ORDER BY created_at DESC, listing_id DESC
    `
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WatchEntry, error) {
		var (
			e         domain.WatchEntry
			listingID int64
		)
		err := row.Scan(&e.UserID, &listingID, &e.CreatedAt)
		e.ListingID = auction.ListingID(listingID)
		return e, err
	})
}

// mapWriteError turns a missing parent listing into the ledger's not found error.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return fmt.Errorf("%w: %s", auction.ErrListingNotFound, pgErr.ConstraintName)
	}
	return err
}
