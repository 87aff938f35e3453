package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/niazroky/Commerce/internal/auction/domain"
)

// Store is a concurrency-safe in-memory implementation of domain.Store.
// WithinTx holds the exclusive lock for the whole unit of work and stages its writes,
// they reach the shared state only when fn returns nil.
type Store struct {
	mu   sync.RWMutex
	data state
}

type state struct {
	nextID   domain.ListingID
	listings map[domain.ListingID]domain.Listing
	bids     map[domain.ListingID][]domain.Bid
}

func newState(nextID domain.ListingID) state {
	return state{
		nextID:   nextID,
		listings: make(map[domain.ListingID]domain.Listing),
		bids:     make(map[domain.ListingID][]domain.Bid),
	}
}

// NewStore creates a new in-memory store instance
func NewStore() *Store {
	return &Store{data: newState(0)}
}

var _ domain.Store = (*Store)(nil)

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{base: &s.data, staged: newState(s.data.nextID)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (s *Store) Listings() domain.ListingRepository { return storeListings{s: s} }

func (s *Store) Bids() domain.BidRepository { return storeBids{s: s} }

// read runs fn on a view with nothing staged under the shared lock.
func (s *Store) read(fn func(tx *memTx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&memTx{base: &s.data, staged: newState(s.data.nextID)})
}

// memTx is a view of the base state with an overlay of staged writes.
type memTx struct {
	base   *state
	staged state
}

func (tx *memTx) Listings() domain.ListingRepository { return txListings{tx: tx} }

func (tx *memTx) Bids() domain.BidRepository { return txBids{tx: tx} }

func (tx *memTx) commit() {
	tx.base.nextID = tx.staged.nextID
	for id, l := range tx.staged.listings {
		tx.base.listings[id] = l
	}
	for id, bids := range tx.staged.bids {
		tx.base.bids[id] = append(tx.base.bids[id], bids...)
	}
}

func (tx *memTx) listing(id domain.ListingID) (domain.Listing, bool) {
	if l, ok := tx.staged.listings[id]; ok {
		return l, true
	}
	l, ok := tx.base.listings[id]
	return l, ok
}

func (tx *memTx) bidsOf(id domain.ListingID) []domain.Bid {
	out := make([]domain.Bid, 0, len(tx.base.bids[id])+len(tx.staged.bids[id]))
	out = append(out, tx.base.bids[id]...)
	return append(out, tx.staged.bids[id]...)
}

func (tx *memTx) hasBid(listingID domain.ListingID, bidID uuid.UUID) bool {
	for _, b := range tx.bidsOf(listingID) {
		if b.ID == bidID {
			return true
		}
	}
	return false
}

func (tx *memTx) activeListings(filter domain.ListingFilter) []domain.Listing {
	seen := make(map[domain.ListingID]struct{})
	var out []domain.Listing
	collect := func(m map[domain.ListingID]domain.Listing) {
		for id := range m {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			l, _ := tx.listing(id)
			if !l.IsActive() {
				continue
			}
			if filter.Category != "" && l.Category != filter.Category {
				continue
			}
			out = append(out, l)
		}
	}
	collect(tx.staged.listings)
	collect(tx.base.listings)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type txListings struct{ tx *memTx }

func (r txListings) Create(_ context.Context, l *domain.Listing) error {
	r.tx.staged.nextID++
	id := r.tx.staged.nextID
	l.AssignID(id)
	r.tx.staged.listings[id] = *l
	r.tx.staged.bids[id] = append(r.tx.staged.bids[id], l.CurrentBid())
	return nil
}

func (r txListings) GetByID(_ context.Context, id domain.ListingID) (*domain.Listing, error) {
	l, ok := r.tx.listing(id)
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return &l, nil
}

// GetByIDForUpdate needs no extra locking, the transaction already holds the store lock.
func (r txListings) GetByIDForUpdate(ctx context.Context, id domain.ListingID) (*domain.Listing, error) {
	return r.GetByID(ctx, id)
}

func (r txListings) Save(_ context.Context, l *domain.Listing) error {
	if _, ok := r.tx.listing(l.ID); !ok {
		return domain.ErrListingNotFound
	}
	current := l.CurrentBid()
	if !r.tx.hasBid(l.ID, current.ID) {
		return fmt.Errorf("save listing %d: current bid %s was not stored", l.ID, current.ID)
	}
	r.tx.staged.listings[l.ID] = *l
	return nil
}

func (r txListings) ListActive(_ context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	active := r.tx.activeListings(filter)
	out := make([]*domain.Listing, len(active))
	for i := range active {
		out[i] = &active[i]
	}
	return out, nil
}

func (r txListings) ListCategories(_ context.Context) ([]string, error) {
	set := make(map[string]struct{})
	for _, l := range r.tx.activeListings(domain.ListingFilter{}) {
		if l.Category != "" {
			set[l.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

type txBids struct{ tx *memTx }

func (r txBids) Create(_ context.Context, bid domain.Bid) error {
	if _, ok := r.tx.listing(bid.ListingID); !ok {
		return fmt.Errorf("record bid for listing %d: %w", bid.ListingID, domain.ErrListingNotFound)
	}
	r.tx.staged.bids[bid.ListingID] = append(r.tx.staged.bids[bid.ListingID], bid)
	return nil
}

func (r txBids) ListByListing(_ context.Context, id domain.ListingID) ([]domain.Bid, error) {
	if _, ok := r.tx.listing(id); !ok {
		return nil, domain.ErrListingNotFound
	}
	return r.tx.bidsOf(id), nil
}

// storeListings and storeBids serve calls made outside WithinTx.
type storeListings struct{ s *Store }

func (r storeListings) Create(ctx context.Context, l *domain.Listing) error {
	return r.s.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		return tx.Listings().Create(ctx, l)
	})
}

func (r storeListings) GetByID(ctx context.Context, id domain.ListingID) (l *domain.Listing, err error) {
	err = r.s.read(func(tx *memTx) error {
		l, err = tx.Listings().GetByID(ctx, id)
		return err
	})
	return l, err
}

func (r storeListings) GetByIDForUpdate(ctx context.Context, id domain.ListingID) (*domain.Listing, error) {
	return r.GetByID(ctx, id)
}

func (r storeListings) Save(ctx context.Context, l *domain.Listing) error {
	return r.s.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		return tx.Listings().Save(ctx, l)
	})
}

func (r storeListings) ListActive(ctx context.Context, filter domain.ListingFilter) (out []*domain.Listing, err error) {
	err = r.s.read(func(tx *memTx) error {
		out, err = tx.Listings().ListActive(ctx, filter)
		return err
	})
	return out, err
}

func (r storeListings) ListCategories(ctx context.Context) (out []string, err error) {
	err = r.s.read(func(tx *memTx) error {
		out, err = tx.Listings().ListCategories(ctx)
		return err
	})
	return out, err
}

type storeBids struct{ s *Store }

func (r storeBids) Create(ctx context.Context, bid domain.Bid) error {
	return r.s.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		return tx.Bids().Create(ctx, bid)
	})
}

func (r storeBids) ListByListing(ctx context.Context, id domain.ListingID) (out []domain.Bid, err error) {
	err = r.s.read(func(tx *memTx) error {
		out, err = tx.Bids().ListByListing(ctx, id)
		return err
	})
	return out, err
}
