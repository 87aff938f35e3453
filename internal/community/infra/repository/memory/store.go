package memory

import (
	"context"
	"sort"
	"sync"

	auction "github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/niazroky/Commerce/internal/community/domain"
)

// Store keeps comments and watchlist entries in process.
type Store struct {
	mu        sync.RWMutex
	comments  map[auction.ListingID][]domain.Comment
	watchlist map[string]map[auction.ListingID]domain.WatchEntry
}

func NewStore() *Store {
	return &Store{
		comments:  make(map[auction.ListingID][]domain.Comment),
		watchlist: make(map[string]map[auction.ListingID]domain.WatchEntry),
	}
}

var (
	_ domain.CommentRepository   = commentRepo{}
	_ domain.WatchlistRepository = watchlistRepo{}
)

func (s *Store) Comments() domain.CommentRepository { return commentRepo{s: s} }

func (s *Store) Watchlist() domain.WatchlistRepository { return watchlistRepo{s: s} }

type commentRepo struct{ s *Store }

func (r commentRepo) Create(ctx context.Context, c domain.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.comments[c.ListingID] = append(r.s.comments[c.ListingID], c)
	return nil
}

func (r commentRepo) ListByListing(ctx context.Context, id auction.ListingID) ([]domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Comment, len(r.s.comments[id]))
	copy(out, r.s.comments[id])
	return out, nil
}

type watchlistRepo struct{ s *Store }

func (r watchlistRepo) Add(ctx context.Context, e domain.WatchEntry) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entries, ok := r.s.watchlist[e.UserID]
	if !ok {
		entries = make(map[auction.ListingID]domain.WatchEntry)
		r.s.watchlist[e.UserID] = entries
	}
	if _, exists := entries[e.ListingID]; exists {
		return false, nil
	}
	entries[e.ListingID] = e
	return true, nil
}

func (r watchlistRepo) Remove(ctx context.Context, userID string, id auction.ListingID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.watchlist[userID][id]; !exists {
		return false, nil
	}
	delete(r.s.watchlist[userID], id)
	return true, nil
}

func (r watchlistRepo) Contains(ctx context.Context, userID string, id auction.ListingID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.watchlist[userID][id]
	return ok, nil
}

func (r watchlistRepo) ListByUser(ctx context.Context, userID string) ([]domain.WatchEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.WatchEntry, 0, len(r.s.watchlist[userID]))
	for _, e := range r.s.watchlist[userID] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ListingID > out[j].ListingID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
