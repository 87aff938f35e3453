package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/niazroky/Commerce/internal/shared/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so repositories run inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements domain.Store on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new instance of Store
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ domain.Store = (*Store)(nil)

func (s *Store) Listings() domain.ListingRepository {
	return poolListings{ListingRepository: NewListingRepository(s.pool), store: s}
}

func (s *Store) Bids() domain.BidRepository { return NewBidRepository(s.pool) }

// WithinTx runs fn in a READ COMMITTED transaction. Mutations lock the listing row with
// GetByIDForUpdate so concurrent writers on the same listing queue behind each other.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		log.Error("WithinTx: failed to begin transaction", zap.Error(err))
		return fmt.Errorf("postgres store: failed to begin transaction: %w", err)
	}

	// commit on success, rollback on error or panic
	defer func() {
		rollbackCtx := context.WithoutCancel(ctx)
		if r := recover(); r != nil {
			log.Error("WithinTx: recovered from panic during transaction", zap.Any("panic", r))
			_ = tx.Rollback(rollbackCtx)
			panic(r)
		}
		if err != nil {
			if rbErr := tx.Rollback(rollbackCtx); rbErr != nil {
				log.Warn("WithinTx: rollback failed", zap.Error(rbErr), zap.NamedError("cause", err))
			}
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			log.Error("WithinTx: failed to commit transaction", zap.Error(commitErr))
			err = fmt.Errorf("postgres store: failed to commit transaction: %w", commitErr)
		}
	}()

	return fn(ctx, pgTx{tx: tx})
}

type pgTx struct {
	tx pgx.Tx
}

func (t pgTx) Listings() domain.ListingRepository { return NewListingRepository(t.tx) }

func (t pgTx) Bids() domain.BidRepository { return NewBidRepository(t.tx) }

// poolListings runs Create in its own transaction; the seed bid and the deferred
// current_bid_id check must land in one commit.
type poolListings struct {
	*ListingRepository
	store *Store
}

func (p poolListings) Create(ctx context.Context, l *domain.Listing) error {
	return p.store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		return tx.Listings().Create(ctx, l)
	})
}
