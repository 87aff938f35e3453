package application_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/niazroky/Commerce/internal/auction/application"
	"github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/niazroky/Commerce/internal/auction/infra/repository/memory"
	"github.com/niazroky/Commerce/internal/shared/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newService(t *testing.T) (application.AuctionService, *memory.Store, *metrics.Metrics) {
	t.Helper()
	store := memory.NewStore()
	m := metrics.New("test")
	return application.NewAuctionService(store, m), store, m
}

func seedListing(t *testing.T, svc application.AuctionService, amount string) domain.ListingID {
	t.Helper()
	id, err := svc.SeedListing(context.Background(), application.SeedListingDTO{
		Title:         "Antique clock",
		Description:   "<p>works</p>",
		ImageURL:      "https://img.example/clock.png",
		Category:      "home",
		OwnerID:       "owner",
		InitialAmount: amount,
	})
	require.NoError(t, err)
	return id
}

func currentPrice(t *testing.T, svc application.AuctionService, id domain.ListingID) int64 {
	t.Helper()
	detail, err := svc.GetListing(context.Background(), id)
	require.NoError(t, err)
	return detail.CurrentPrice
}

func TestAuctionService_Scenario(t *testing.T) {
	ctx := context.Background()
	svc, _, m := newService(t)

	id := seedListing(t, svc, "100")
	detail, err := svc.GetListing(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "active", detail.State)
	require.Equal(t, int64(100), detail.CurrentPrice)
	require.Equal(t, "owner", detail.CurrentBidderID)

	outcome, err := svc.PlaceBid(ctx, application.PlaceBidDTO{ListingID: id, BidderID: "userA", Amount: "90"})
	require.NoError(t, err)
	require.Equal(t, domain.BidRejected, outcome.Status)
	require.Equal(t, domain.RejectReasonNotHigher, outcome.Reason)
	require.Equal(t, int64(100), currentPrice(t, svc, id))

	outcome, err = svc.PlaceBid(ctx, application.PlaceBidDTO{ListingID: id, BidderID: "userB", Amount: "150"})
	require.NoError(t, err)
	require.Equal(t, domain.BidAccepted, outcome.Status)
	require.Equal(t, int64(150), outcome.CurrentAmount)

	closed, err := svc.CloseAuction(ctx, application.CloseAuctionDTO{ListingID: id, RequesterID: "owner"})
	require.NoError(t, err)
	require.Equal(t, domain.StateClosed, closed.State)
	require.False(t, closed.AlreadyClosed)

	_, err = svc.PlaceBid(ctx, application.PlaceBidDTO{ListingID: id, BidderID: "userC", Amount: "500"})
	require.ErrorIs(t, err, domain.ErrAuctionClosed)
	require.Equal(t, int64(150), currentPrice(t, svc, id))

	// rejected bids are not kept, history is seed + accepted
	detail, err = svc.GetListing(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "closed", detail.State)
	require.Len(t, detail.Bids, 2)
	require.Equal(t, int64(100), detail.Bids[0].Amount)
	require.Equal(t, "userB", detail.Bids[1].BidderID)

	require.Equal(t, 1.0, testutil.ToFloat64(m.ListingsSeeded))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Bids.WithLabelValues(metrics.OutcomeAccepted)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Bids.WithLabelValues(metrics.OutcomeRejected)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Bids.WithLabelValues(metrics.OutcomeClosed)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.AuctionsClosed))
}

func TestAuctionService_SeedListing_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	tests := []struct {
		name    string
		cmd     application.SeedListingDTO
		wantErr error
	}{
		{name: "non_integer_amount", cmd: application.SeedListingDTO{Title: "t", OwnerID: "o", InitialAmount: "ten"}, wantErr: domain.ErrInvalidAmount},
		{name: "decimal_amount", cmd: application.SeedListingDTO{Title: "t", OwnerID: "o", InitialAmount: "10.5"}, wantErr: domain.ErrInvalidAmount},
		{name: "negative_amount", cmd: application.SeedListingDTO{Title: "t", OwnerID: "o", InitialAmount: "-1"}, wantErr: domain.ErrInvalidAmount},
		{name: "missing_owner", cmd: application.SeedListingDTO{Title: "t", InitialAmount: "1"}, wantErr: domain.ErrMissingIdentity},
		{name: "markup_only_title", cmd: application.SeedListingDTO{Title: "<script>x</script>", OwnerID: "o", InitialAmount: "1"}, wantErr: domain.ErrInvalidListing},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SeedListing(ctx, tc.cmd)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}

	listings, err := svc.ListListings(ctx, "")
	require.NoError(t, err)
	require.Empty(t, listings)
}

func TestAuctionService_SeedListing_Sanitizes(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	id, err := svc.SeedListing(ctx, application.SeedListingDTO{
		Title:         " <b>Lamp</b> ",
		Description:   `<p onclick="x()">nice</p>`,
		Category:      "home",
		OwnerID:       "owner",
		InitialAmount: " 5 ",
	})
	require.NoError(t, err)

	detail, err := svc.GetListing(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Lamp", detail.Title)
	require.Equal(t, "<p>nice</p>", detail.Description)
	require.Equal(t, int64(5), detail.CurrentPrice)
}

func TestAuctionService_PlaceBid_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _, m := newService(t)
	id := seedListing(t, svc, "100")

	_, err := svc.PlaceBid(ctx, application.PlaceBidDTO{ListingID: id, BidderID: "u", Amount: "abc"})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.PlaceBid(ctx, application.PlaceBidDTO{ListingID: 999, BidderID: "u", Amount: "200"})
	require.ErrorIs(t, err, domain.ErrListingNotFound)

	_, err = svc.PlaceBid(ctx, application.PlaceBidDTO{ListingID: id, BidderID: "", Amount: "200"})
	require.ErrorIs(t, err, domain.ErrMissingIdentity)

	require.Equal(t, int64(100), currentPrice(t, svc, id))
	require.Equal(t, 2.0, testutil.ToFloat64(m.Bids.WithLabelValues(metrics.OutcomeInvalid)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Bids.WithLabelValues(metrics.OutcomeNotFound)))
}

func TestAuctionService_CloseAuction(t *testing.T) {
	ctx := context.Background()
	svc, _, m := newService(t)
	id := seedListing(t, svc, "100")

	_, err := svc.CloseAuction(ctx, application.CloseAuctionDTO{ListingID: id, RequesterID: "stranger"})
	require.ErrorIs(t, err, domain.ErrNotOwner)

	_, err = svc.CloseAuction(ctx, application.CloseAuctionDTO{ListingID: 404, RequesterID: "owner"})
	require.ErrorIs(t, err, domain.ErrListingNotFound)

	first, err := svc.CloseAuction(ctx, application.CloseAuctionDTO{ListingID: id, RequesterID: "owner"})
	require.NoError(t, err)
	require.False(t, first.AlreadyClosed)

	second, err := svc.CloseAuction(ctx, application.CloseAuctionDTO{ListingID: id, RequesterID: "owner"})
	require.NoError(t, err)
	require.True(t, second.AlreadyClosed)
	require.Equal(t, domain.StateClosed, second.State)

	require.Equal(t, 1.0, testutil.ToFloat64(m.AuctionsClosed))

	listings, err := svc.ListListings(ctx, "")
	require.NoError(t, err)
	require.Empty(t, listings)
}

func TestAuctionService_ListListingsByCategory(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	seedListing(t, svc, "1")
	_, err := svc.SeedListing(ctx, application.SeedListingDTO{Title: "kite", Category: "toys", OwnerID: "o", InitialAmount: "3"})
	require.NoError(t, err)

	home, err := svc.ListListings(ctx, "home")
	require.NoError(t, err)
	require.Len(t, home, 1)
	require.Equal(t, "Antique clock", home[0].Title)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"home", "toys"}, categories)
}

func TestAuctionService_ConcurrentEqualBids(t *testing.T) {
	defer goleak.VerifyNone(t)

	for round := 0; round < 50; round++ {
		ctx := context.Background()
		svc, _, _ := newService(t)
		id := seedListing(t, svc, "100")
		_, err := svc.PlaceBid(ctx, application.PlaceBidDTO{ListingID: id, BidderID: "userB", Amount: "150"})
		require.NoError(t, err)

		var wg sync.WaitGroup
		outcomes := make([]domain.BidOutcome, 2)
		errs := make([]error, 2)
		for i, bidder := range []string{"userX", "userY"} {
			wg.Add(1)
			go func(i int, bidder string) {
				defer wg.Done()
				outcomes[i], errs[i] = svc.PlaceBid(ctx, application.PlaceBidDTO{ListingID: id, BidderID: bidder, Amount: "200"})
			}(i, bidder)
		}
		wg.Wait()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])
		accepted := 0
		for _, o := range outcomes {
			if o.Accepted() {
				accepted++
			} else {
				require.Equal(t, int64(200), o.CurrentAmount)
			}
		}
		require.Equal(t, 1, accepted)
		require.Equal(t, int64(200), currentPrice(t, svc, id))
	}
}

func TestAuctionService_ConcurrentBidsStayMonotonic(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	svc, _, _ := newService(t)
	id := seedListing(t, svc, "0")

	var wg sync.WaitGroup
	for i := 1; i <= 64; i++ {
		wg.Add(1)
		go func(amount int) {
			defer wg.Done()
			_, err := svc.PlaceBid(ctx, application.PlaceBidDTO{ListingID: id, BidderID: "bidder", Amount: strconv.Itoa(amount)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	detail, err := svc.GetListing(ctx, id)
	require.NoError(t, err)
	require.Equal(t, int64(64), detail.CurrentPrice)
	for i := 1; i < len(detail.Bids); i++ {
		require.Greater(t, detail.Bids[i].Amount, detail.Bids[i-1].Amount)
	}
}

func TestAuctionService_GetListing_ConsistentUnderBids(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	svc, _, _ := newService(t)
	id := seedListing(t, svc, "0")

	var wg sync.WaitGroup
	for i := 1; i <= 32; i++ {
		wg.Add(2)
		go func(amount int) {
			defer wg.Done()
			_, err := svc.PlaceBid(ctx, application.PlaceBidDTO{ListingID: id, BidderID: "bidder", Amount: strconv.Itoa(amount)})
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			detail, err := svc.GetListing(ctx, id)
			if !assert.NoError(t, err) {
				return
			}
			last := detail.Bids[len(detail.Bids)-1]
			assert.Equal(t, last.Amount, detail.CurrentPrice)
			assert.Equal(t, last.ID, detail.CurrentBidID)
		}()
	}
	wg.Wait()
}

// failingBidStore turns every bid insert inside a transaction into an error.
type failingBidStore struct {
	*memory.Store
}

type failingTx struct {
	domain.Tx
}

type failingBids struct {
	domain.BidRepository
}

var errDisk = errors.New("disk full")

func (failingBids) Create(context.Context, domain.Bid) error { return errDisk }

func (t failingTx) Bids() domain.BidRepository { return failingBids{t.Tx.Bids()} }

func (s failingBidStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Tx) error) error {
	return s.Store.WithinTx(ctx, func(ctx context.Context, tx domain.Tx) error {
		return fn(ctx, failingTx{tx})
	})
}

func TestAuctionService_PlaceBid_NoPartialState(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	id := seedListing(t, application.NewAuctionService(store, nil), "100")

	svc := application.NewAuctionService(failingBidStore{store}, nil)
	_, err := svc.PlaceBid(ctx, application.PlaceBidDTO{ListingID: id, BidderID: "u", Amount: "200"})
	require.ErrorIs(t, err, errDisk)

	require.Equal(t, int64(100), currentPrice(t, svc, id))
}
