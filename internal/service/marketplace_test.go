package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketforge/ticketforge/internal/apperror"
	"github.com/ticketforge/ticketforge/internal/cache"
	"github.com/ticketforge/ticketforge/internal/domain"
	"github.com/ticketforge/ticketforge/internal/events"
)

const (
	adminID     = 10
	organizerID = 11
	sellerID    = 12
	buyerID     = 13

	collection = "tf-tickets"
)

func newMarketService(store *fakeStore, now time.Time) *MarketplaceService {
	svc := NewMarketplaceService(fakeMarketRepo{store}, fakeTicketRepo{store}, fakeEventRepo{store}, fakeUserRepo{store}, cache.NopEventCache{}, events.NopPublisher{})
	svc.now = func() time.Time { return now }

	return svc
}

// setupMarket seeds an initialized marketplace with one event and one
// ticket minted to sellerID. Mint price is 0.1 ETH.
func setupMarket(t *testing.T) (*fakeStore, *MarketplaceService, domain.Event, domain.Ticket) {
	t.Helper()
	ctx := context.Background()
	price := decimal.New(1, 17)

	store := newFakeStore()
	store.addUser(adminID, domain.RoleAdmin)
	store.addUser(organizerID, domain.RoleOrganizer)
	store.addUser(sellerID, domain.RoleUser)
	store.addUser(buyerID, domain.RoleUser)
	store.fund(sellerID, price)

	event := seedEvent(store, organizerID, price, 10, testNow.Add(time.Hour), testNow.Add(2*time.Hour))

	tickets := newTicketService(store, testNow)
	ticket, err := tickets.MintTicket(ctx, sellerID, event.ID, price)
	require.NoError(t, err)

	svc := newMarketService(store, testNow)
	require.NoError(t, svc.Initialize(ctx, adminID))

	return store, svc, event, ticket
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore()
	store.addUser(adminID, domain.RoleAdmin)
	store.addUser(sellerID, domain.RoleUser)

	svc := newMarketService(store, testNow)

	err := svc.Initialize(ctx, sellerID)
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))

	require.NoError(t, svc.Initialize(ctx, adminID))

	conf, err := svc.GetConfig(ctx)
	require.NoError(t, err)
	assert.False(t, conf.Paused)
	assert.True(t, conf.Initialized)

	err = svc.Initialize(ctx, adminID)
	assert.True(t, apperror.IsKind(err, apperror.KindState), "initialize is one-time")
}

func TestListTicket_PauseGate(t *testing.T) {
	ctx := context.Background()
	store, svc, _, ticket := setupMarket(t)

	_, err := svc.TogglePause(ctx, adminID)
	require.NoError(t, err)

	_, err = svc.ListTicket(ctx, sellerID, collection, ticket.ID, decimal.New(1, 17))
	require.True(t, apperror.IsKind(err, apperror.KindState))
	assert.EqualError(t, apperror.AsError(err), "paused")

	_, err = svc.TogglePause(ctx, adminID)
	require.NoError(t, err)

	_, err = svc.ListTicket(ctx, sellerID, collection, ticket.ID, decimal.New(1, 17))
	require.NoError(t, err, "the identical call succeeds after unpausing")

	listing, err := svc.GetListing(ctx, collection, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(sellerID), listing.SellerID)
	assert.Equal(t, uint(fakeEscrowAccountID), store.tickets[ticket.ID].OwnerID, "the marketplace takes custody")
}

func TestListTicket_PriceCeiling(t *testing.T) {
	ctx := context.Background()
	_, svc, _, ticket := setupMarket(t)

	// Mint price is 0.1 ETH, so the ceiling is 0.2 ETH.
	overCeiling := decimal.New(2, 17).Add(decimal.NewFromInt(1))

	_, err := svc.ListTicket(ctx, sellerID, collection, ticket.ID, overCeiling)
	require.True(t, apperror.IsKind(err, apperror.KindState))
	assert.EqualError(t, apperror.AsError(err), "Price exceeds maximum allowed")

	enabled, err := svc.TogglePriceCeiling(ctx, adminID)
	require.NoError(t, err)
	assert.False(t, enabled)

	_, err = svc.ListTicket(ctx, sellerID, collection, ticket.ID, overCeiling)
	assert.NoError(t, err, "the same call succeeds once enforcement is off")
}

func TestListTicket_Preconditions(t *testing.T) {
	ctx := context.Background()
	store, svc, event, ticket := setupMarket(t)

	t.Run("rejects a non-owner", func(t *testing.T) {
		_, err := svc.ListTicket(ctx, buyerID, collection, ticket.ID, decimal.New(1, 17))
		require.True(t, apperror.IsKind(err, apperror.KindAuthorization))
		assert.EqualError(t, apperror.AsError(err), "Not token owner")
	})

	t.Run("rejects an ended event", func(t *testing.T) {
		ended := newMarketService(store, event.EndTime)

		_, err := ended.ListTicket(ctx, sellerID, collection, ticket.ID, decimal.New(1, 17))
		require.True(t, apperror.IsKind(err, apperror.KindState))
		assert.EqualError(t, apperror.AsError(err), "Event has ended")
	})

	t.Run("rejects a non-positive price", func(t *testing.T) {
		_, err := svc.ListTicket(ctx, sellerID, collection, ticket.ID, decimal.Zero)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}

func TestBuyTicket_FeeSplit(t *testing.T) {
	ctx := context.Background()
	store, svc, event, ticket := setupMarket(t)

	require.NoError(t, svc.SetEventRoyalty(ctx, adminID, event.ID, 500))
	require.NoError(t, svc.SetFeeRecipient(ctx, adminID, adminID))

	// Resale at 0.15 ETH with a 2.5% platform fee and 5% royalty.
	salePrice := decimal.New(15, 16)
	store.fund(buyerID, salePrice)

	_, err := svc.ListTicket(ctx, sellerID, collection, ticket.ID, salePrice)
	require.NoError(t, err)

	require.NoError(t, svc.BuyTicket(ctx, buyerID, collection, ticket.ID, salePrice))

	require.NotNil(t, store.lastSale)
	sale := *store.lastSale
	assert.Equal(t, "3750000000000000", sale.PlatformFee.String())
	assert.Equal(t, "7500000000000000", sale.Royalty.String())
	assert.Equal(t, "138750000000000000", sale.Proceeds.String())
	assert.True(t, sale.PlatformFee.Add(sale.Royalty).Add(sale.Proceeds).Equal(salePrice), "the split sums to the price exactly")

	assert.True(t, store.balances[buyerID].IsZero())
	assert.True(t, store.balances[adminID].Equal(sale.PlatformFee))
	assert.True(t, store.balances[organizerID].Equal(sale.Royalty))
	assert.True(t, store.balances[sellerID].Equal(sale.Proceeds))
	assert.Equal(t, uint(buyerID), store.tickets[ticket.ID].OwnerID)
}

func TestBuyTicket_ExactPaymentRequired(t *testing.T) {
	ctx := context.Background()
	store, svc, _, ticket := setupMarket(t)

	salePrice := decimal.New(15, 16)
	store.fund(buyerID, salePrice)

	_, err := svc.ListTicket(ctx, sellerID, collection, ticket.ID, salePrice)
	require.NoError(t, err)

	err = svc.BuyTicket(ctx, buyerID, collection, ticket.ID, salePrice.Sub(decimal.NewFromInt(1)))
	assert.True(t, apperror.IsKind(err, apperror.KindPayment))
}

func TestCancelListing(t *testing.T) {
	ctx := context.Background()
	store, svc, _, ticket := setupMarket(t)

	_, err := svc.ListTicket(ctx, sellerID, collection, ticket.ID, decimal.New(1, 17))
	require.NoError(t, err)

	err = svc.CancelListing(ctx, buyerID, collection, ticket.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization), "only the seller may cancel")

	require.NoError(t, svc.CancelListing(ctx, sellerID, collection, ticket.ID))
	assert.Equal(t, uint(sellerID), store.tickets[ticket.ID].OwnerID, "custody returns to the seller")

	// The buy side of the race observes the closed listing.
	err = svc.BuyTicket(ctx, buyerID, collection, ticket.ID, decimal.New(1, 17))
	assert.Error(t, err)
}

func TestSetEventRoyalty_Cap(t *testing.T) {
	ctx := context.Background()
	store, svc, event, _ := setupMarket(t)

	err := svc.SetEventRoyalty(ctx, adminID, event.ID, 1001)
	require.True(t, apperror.IsKind(err, apperror.KindState))
	assert.EqualError(t, apperror.AsError(err), "Royalty too high")

	require.NoError(t, svc.SetEventRoyalty(ctx, adminID, event.ID, 1000))
	assert.Equal(t, uint(1000), store.events[event.ID].RoyaltyBps)

	err = svc.SetEventRoyalty(ctx, sellerID, event.ID, 100)
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))
}

func TestSetFeeBasisPoints(t *testing.T) {
	ctx := context.Background()
	_, svc, _, _ := setupMarket(t)

	// The fee plus the 1000 bps royalty cap must stay within the price.
	err := svc.SetFeeBasisPoints(ctx, adminID, 9001)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	require.NoError(t, svc.SetFeeBasisPoints(ctx, adminID, 9000))

	require.NoError(t, svc.SetFeeBasisPoints(ctx, adminID, 300))

	conf, err := svc.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(300), conf.PlatformFeeBps)
}

func TestBuyTicket_SplitCannotExceedPrice(t *testing.T) {
	ctx := context.Background()
	store, svc, event, ticket := setupMarket(t)

	require.NoError(t, svc.SetEventRoyalty(ctx, adminID, event.ID, 500))

	salePrice := decimal.New(1, 17)
	store.fund(buyerID, salePrice)

	_, err := svc.ListTicket(ctx, sellerID, collection, ticket.ID, salePrice)
	require.NoError(t, err)

	// A fee this high can no longer be configured through the service, but
	// a record predating the combined cap could still carry it.
	conf := store.conf
	conf.PlatformFeeBps = 9900
	store.conf = conf

	err = svc.BuyTicket(ctx, buyerID, collection, ticket.ID, salePrice)
	require.True(t, apperror.IsKind(err, apperror.KindState))
	assert.EqualError(t, apperror.AsError(err), "fee and royalty exceed sale price")

	assert.True(t, store.balances[buyerID].Equal(salePrice), "the buyer keeps their funds")
	assert.True(t, store.balances[sellerID].IsZero(), "the seller's wallet is untouched, never negative")

	listing, err := svc.GetListing(ctx, collection, ticket.ID)
	require.NoError(t, err)
	assert.True(t, listing.Active, "the listing stays open")
}

func TestOffers(t *testing.T) {
	ctx := context.Background()
	price := decimal.New(1, 17)

	t.Run("make and cancel refunds the escrow", func(t *testing.T) {
		store, svc, _, ticket := setupMarket(t)
		store.fund(buyerID, price)

		offer, err := svc.MakeOffer(ctx, buyerID, collection, ticket.ID, price)
		require.NoError(t, err)
		assert.True(t, store.balances[buyerID].IsZero(), "the offer amount moves to escrow")

		_, err = svc.MakeOffer(ctx, buyerID, collection, ticket.ID, price)
		assert.True(t, apperror.IsKind(err, apperror.KindState), "one live offer per offerer per ticket")

		require.NoError(t, svc.CancelOffer(ctx, buyerID, collection, ticket.ID))
		assert.True(t, store.balances[buyerID].Equal(price), "cancelling refunds the escrow")

		_, err = svc.GetOffer(ctx, collection, ticket.ID, buyerID)
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
		_ = offer
	})

	t.Run("cannot offer on an own ticket", func(t *testing.T) {
		_, svc, _, ticket := setupMarket(t)

		_, err := svc.MakeOffer(ctx, sellerID, collection, ticket.ID, price)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("accept on a held ticket settles the split", func(t *testing.T) {
		store, svc, event, ticket := setupMarket(t)
		require.NoError(t, svc.SetEventRoyalty(ctx, adminID, event.ID, 500))
		store.fund(buyerID, price)

		_, err := svc.MakeOffer(ctx, buyerID, collection, ticket.ID, price)
		require.NoError(t, err)

		err = svc.AcceptOffer(ctx, buyerID, collection, ticket.ID, buyerID)
		assert.True(t, apperror.IsKind(err, apperror.KindAuthorization), "only the holder may accept")

		require.NoError(t, svc.AcceptOffer(ctx, sellerID, collection, ticket.ID, buyerID))
		assert.Equal(t, uint(buyerID), store.tickets[ticket.ID].OwnerID)

		require.NotNil(t, store.lastSale)
		assert.True(t, store.lastSale.Price.Equal(price))
		assert.True(t, store.balances[sellerID].Equal(store.lastSale.Proceeds))
	})

	t.Run("accept on a listed ticket closes the listing", func(t *testing.T) {
		store, svc, _, ticket := setupMarket(t)
		store.fund(buyerID, price)

		_, err := svc.ListTicket(ctx, sellerID, collection, ticket.ID, price)
		require.NoError(t, err)

		_, err = svc.MakeOffer(ctx, buyerID, collection, ticket.ID, price)
		require.NoError(t, err)

		require.NoError(t, svc.AcceptOffer(ctx, sellerID, collection, ticket.ID, buyerID))
		assert.Equal(t, uint(buyerID), store.tickets[ticket.ID].OwnerID)

		_, err = svc.GetListing(ctx, collection, ticket.ID)
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound), "the listing closed with the sale")
	})

	t.Run("other open offers survive a sale and stay cancellable", func(t *testing.T) {
		store, svc, _, ticket := setupMarket(t)
		store.addUser(14, domain.RoleUser)
		store.fund(buyerID, price)
		store.fund(14, price)

		_, err := svc.MakeOffer(ctx, buyerID, collection, ticket.ID, price)
		require.NoError(t, err)
		_, err = svc.MakeOffer(ctx, 14, collection, ticket.ID, price)
		require.NoError(t, err)

		require.NoError(t, svc.AcceptOffer(ctx, sellerID, collection, ticket.ID, buyerID))

		remaining, err := svc.GetOffer(ctx, collection, ticket.ID, 14)
		require.NoError(t, err)
		assert.True(t, remaining.Active)

		require.NoError(t, svc.CancelOffer(ctx, 14, collection, ticket.ID))
		assert.True(t, store.balances[14].Equal(price))
	})
}
