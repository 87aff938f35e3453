package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	auctionapp "github.com/niazroky/Commerce/internal/auction/application"
	auction "github.com/niazroky/Commerce/internal/auction/domain"
	auctionpg "github.com/niazroky/Commerce/internal/auction/infra/repository/postgres"
	"github.com/niazroky/Commerce/internal/community/domain"
	"github.com/niazroky/Commerce/internal/shared/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *dbtest.Postgres

func TestMain(m *testing.M) {
	flag.Parse()
	if !testing.Short() {
		pg, err := dbtest.StartPostgres(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "postgres integration tests disabled: %v\n", err)
		} else {
			testDB = pg
		}
	}

	code := m.Run()
	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}

// seedListing resets the database and creates one listing to hang rows on.
func seedListing(t *testing.T) auction.ListingID {
	t.Helper()
	if testDB == nil {
		t.Skip("postgres not available")
	}
	ctx := context.Background()
	require.NoError(t, testDB.Reset(ctx))

	svc := auctionapp.NewAuctionService(auctionpg.NewStore(testDB.Pool), nil)
	id, err := svc.SeedListing(ctx, auctionapp.SeedListingDTO{
		Title: "Lamp", Category: "Home", OwnerID: "alice", InitialAmount: "100",
	})
	require.NoError(t, err)
	return id
}

func TestCommentRepository(t *testing.T) {
	listingID := seedListing(t)
	ctx := context.Background()
	repo := NewCommentRepository(testDB.Pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	first, err := domain.NewComment(listingID, "bob", "first", now)
	require.NoError(t, err)
	second, err := domain.NewComment(listingID, "carol", "second", now.Add(time.Second))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	got, err := repo.ListByListing(ctx, listingID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, "second", got[1].Body)
	assert.True(t, now.Equal(got[0].CreatedAt))

	orphan, err := domain.NewComment(listingID+100, "bob", "nowhere", now)
	require.NoError(t, err)
	require.ErrorIs(t, repo.Create(ctx, orphan), auction.ErrListingNotFound)
}

func TestWatchlistRepository(t *testing.T) {
	listingID := seedListing(t)
	ctx := context.Background()
	repo := NewWatchlistRepository(testDB.Pool)
	now := time.Now().UTC()

	added, err := repo.Add(ctx, domain.WatchEntry{UserID: "bob", ListingID: listingID, CreatedAt: now})
	require.NoError(t, err)
	assert.True(t, added)
	added, err = repo.Add(ctx, domain.WatchEntry{UserID: "bob", ListingID: listingID, CreatedAt: now})
	require.NoError(t, err)
	assert.False(t, added)

	ok, err := repo.Contains(ctx, "bob", listingID)
	require.NoError(t, err)
	assert.True(t, ok)

	entries, err := repo.ListByUser(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, listingID, entries[0].ListingID)

	_, err = repo.Add(ctx, domain.WatchEntry{UserID: "bob", ListingID: listingID + 100, CreatedAt: now})
	require.ErrorIs(t, err, auction.ErrListingNotFound)

	removed, err := repo.Remove(ctx, "bob", listingID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = repo.Remove(ctx, "bob", listingID)
	require.NoError(t, err)
	assert.False(t, removed)

	entries, err = repo.ListByUser(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
