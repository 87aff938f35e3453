package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/niazroky/Commerce/internal/auction/domain"
)

// ListingRepository implements domain.ListingRepository interface
type ListingRepository struct {
	db querier
}

// NewListingRepository creates a new instance of ListingRepository
func NewListingRepository(db querier) *ListingRepository {
	return &ListingRepository{db: db}
}

const selectListing = `
        SELECT l.id, l.title, l.description, l.image_url, l.category, l.owner_id, l.is_active,
               l.created_at, l.updated_at,
               b.id, b.listing_id, b.bidder_id, b.amount, b.created_at
        FROM listings l
        JOIN bids b ON b.id = l.current_bid_id
`

// Create inserts the listing and its seed bid. current_bid_id is checked at commit,
// so both rows must be written in the same transaction.
func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	query := `
        INSERT INTO listings (title, description, image_url, category, owner_id, is_active, current_bid_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	seed := l.CurrentBid()
	var id int64
	err := r.db.QueryRow(ctx, query,
		l.Title,
		l.Description,
		l.ImageURL,
		l.Category,
		l.OwnerID,
		l.IsActive(),
		seed.ID,
		l.CreatedAt,
		l.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	l.AssignID(domain.ListingID(id))

	if err := NewBidRepository(r.db).Create(ctx, l.CurrentBid()); err != nil {
		return fmt.Errorf("insert seed bid: %w", err)
	}
	return nil
}

// GetByID retrieves a listing with its current bid.
func (r *ListingRepository) GetByID(ctx context.Context, id domain.ListingID) (*domain.Listing, error) {
	return r.get(ctx, selectListing+` WHERE l.id = $1`, id)
}

// GetByIDForUpdate locks the listing row until the surrounding transaction ends.
// The lock is taken on listings alone; the current bid is read by a second
// statement once the lock is held, so a waiter always sees the bid committed
// by the writer it queued behind.
func (r *ListingRepository) GetByIDForUpdate(ctx context.Context, id domain.ListingID) (*domain.Listing, error) {
	var locked int64
	err := r.db.QueryRow(ctx, `SELECT id FROM listings WHERE id = $1 FOR UPDATE`, int64(id)).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("lock listing: %w", err)
	}
	return r.get(ctx, selectListing+` WHERE l.id = $1`, id)
}

func (r *ListingRepository) get(ctx context.Context, query string, id domain.ListingID) (*domain.Listing, error) {
	lot, err := scanListing(r.db.QueryRow(ctx, query, int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return lot, nil
}

// Save persists the active flag and the current-price pointer.
func (r *ListingRepository) Save(ctx context.Context, l *domain.Listing) error {
	query := `
        UPDATE listings
        SET is_active = $2, current_bid_id = $3, updated_at = $4
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query, int64(l.ID), l.IsActive(), l.CurrentBid().ID, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update listing %d: %w", l.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// ListActive returns active listings in creation order.
func (r *ListingRepository) ListActive(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	query := selectListing + `
        WHERE l.is_active AND ($1 = '' OR l.category = $1)
        ORDER BY l.id
    `
	rows, err := r.db.Query(ctx, query, filter.Category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lots []*domain.Listing
	for rows.Next() {
		lot, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lots, nil
}

func (r *ListingRepository) ListCategories(ctx context.Context) ([]string, error) {
	query := `
        SELECT DISTINCT category
        FROM listings
        WHERE is_active AND category <> ''
        ORDER BY category
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var (
		id, bidListingID     int64
		details              domain.ListingDetails
		active               bool
		createdAt, updatedAt time.Time
		bidID                uuid.UUID
		bidderID             string
		amount               int64
		bidCreatedAt         time.Time
	)
	err := row.Scan(
		&id,
		&details.Title,
		&details.Description,
		&details.ImageURL,
		&details.Category,
		&details.OwnerID,
		&active,
		&createdAt,
		&updatedAt,
		&bidID,
		&bidListingID,
		&bidderID,
		&amount,
		&bidCreatedAt,
	)
	if err != nil {
		return nil, err
	}
	current := domain.NewBid(bidID, domain.ListingID(bidListingID), bidderID, amount, bidCreatedAt)
	return domain.RestoreListing(domain.ListingID(id), details, active, current, createdAt, updatedAt), nil
}
