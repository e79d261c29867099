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

func newTicketService(store *fakeStore, now time.Time) *TicketLedgerService {
	svc := NewTicketLedgerService(fakeTicketRepo{store}, fakeEventRepo{store}, fakeUserRepo{store}, cache.NopEventCache{}, events.NopPublisher{})
	svc.now = func() time.Time { return now }

	return svc
}

// seedEvent creates an active event directly in the store.
func seedEvent(store *fakeStore, organizerID uint, price decimal.Decimal, maxTickets uint, startTime, endTime time.Time) domain.Event {
	event := domain.Event{
		ID:            store.allocID(),
		OrganizerID:   organizerID,
		MetadataURI:   "ipfs://meta",
		StartTime:     startTime,
		EndTime:       endTime,
		TicketPrice:   price,
		MaxTickets:    maxTickets,
		EscrowBalance: decimal.Zero,
		Active:        true,
	}
	store.events[event.ID] = event
	store.eventIDs = append(store.eventIDs, event.ID)

	return event
}

func TestMintTicket_CapacityInvariant(t *testing.T) {
	ctx := context.Background()
	price := decimal.New(1, 17)

	store := newFakeStore()
	store.addUser(1, domain.RoleOrganizer)
	for id := uint(2); id <= 4; id++ {
		store.addUser(id, domain.RoleUser)
		store.fund(id, price)
	}

	event := seedEvent(store, 1, price, 2, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	svc := newTicketService(store, testNow)

	first, err := svc.MintTicket(ctx, 2, event.ID, price)
	require.NoError(t, err)
	second, err := svc.MintTicket(ctx, 3, event.ID, price)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = svc.MintTicket(ctx, 4, event.ID, price)
	require.True(t, apperror.IsKind(err, apperror.KindState))
	assert.EqualError(t, apperror.AsError(err), "Event sold out")

	assert.Equal(t, uint(2), store.events[event.ID].TicketsSold)
}

func TestMintTicket_ExactPaymentRequired(t *testing.T) {
	ctx := context.Background()
	price := decimal.New(1, 17)

	store := newFakeStore()
	store.addUser(1, domain.RoleOrganizer)
	store.addUser(2, domain.RoleUser)
	store.fund(2, price.Mul(decimal.NewFromInt(2)))

	event := seedEvent(store, 1, price, 10, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	svc := newTicketService(store, testNow)

	// Overpaying is as invalid as underpaying.
	_, err := svc.MintTicket(ctx, 2, event.ID, price.Add(decimal.NewFromInt(1)))
	assert.True(t, apperror.IsKind(err, apperror.KindPayment))

	_, err = svc.MintTicket(ctx, 2, event.ID, price.Sub(decimal.NewFromInt(1)))
	assert.True(t, apperror.IsKind(err, apperror.KindPayment))

	_, err = svc.MintTicket(ctx, 2, event.ID, price)
	assert.NoError(t, err)
}

func TestMintTicket_InactiveEvent(t *testing.T) {
	ctx := context.Background()
	price := decimal.New(1, 17)

	store := newFakeStore()
	store.addUser(1, domain.RoleOrganizer)
	store.addUser(2, domain.RoleUser)
	store.fund(2, price)

	event := seedEvent(store, 1, price, 10, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	cancelled := store.events[event.ID]
	cancelled.Active = false
	cancelled.Cancelled = true
	store.events[event.ID] = cancelled

	svc := newTicketService(store, testNow)

	_, err := svc.MintTicket(ctx, 2, event.ID, price)
	assert.True(t, apperror.IsKind(err, apperror.KindState))
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	price := decimal.New(1, 17)

	store := newFakeStore()
	store.addUser(1, domain.RoleOrganizer)
	store.addUser(2, domain.RoleUser)
	store.addUser(3, domain.RoleUser)
	store.fund(2, price)

	t.Run("succeeds before the event starts", func(t *testing.T) {
		event := seedEvent(store, 1, price, 10, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
		svc := newTicketService(store, testNow)

		ticket, err := svc.MintTicket(ctx, 2, event.ID, price)
		require.NoError(t, err)

		require.NoError(t, svc.Transfer(ctx, 2, ticket.ID, 3))

		moved, err := svc.GetTicket(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, uint(3), moved.OwnerID)
	})

	t.Run("locks at start time even for an unused ticket", func(t *testing.T) {
		store.fund(2, price)
		event := seedEvent(store, 1, price, 10, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
		svc := newTicketService(store, testNow)

		ticket, err := svc.MintTicket(ctx, 2, event.ID, price)
		require.NoError(t, err)

		started := newTicketService(store, event.StartTime)
		err = started.Transfer(ctx, 2, ticket.ID, 3)
		require.True(t, apperror.IsKind(err, apperror.KindState))
		assert.EqualError(t, apperror.AsError(err), "Transfers not allowed after event starts")
	})

	t.Run("rejects a non-owner", func(t *testing.T) {
		store.fund(2, price)
		event := seedEvent(store, 1, price, 10, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
		svc := newTicketService(store, testNow)

		ticket, err := svc.MintTicket(ctx, 2, event.ID, price)
		require.NoError(t, err)

		err = svc.Transfer(ctx, 3, ticket.ID, 3)
		assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))
	})
}

func TestMarkUsed_OrganizerOnly(t *testing.T) {
	ctx := context.Background()
	price := decimal.New(1, 17)

	store := newFakeStore()
	store.addUser(1, domain.RoleOrganizer)
	store.addUser(2, domain.RoleUser)
	store.fund(2, price)

	event := seedEvent(store, 1, price, 10, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	svc := newTicketService(store, testNow)

	ticket, err := svc.MintTicket(ctx, 2, event.ID, price)
	require.NoError(t, err)

	err = svc.MarkUsed(ctx, 2, ticket.ID, true)
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization), "the holder cannot check themselves in")

	require.NoError(t, svc.MarkUsed(ctx, 1, ticket.ID, true))
	used, err := svc.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.True(t, used.Used)

	// The organizer may flip it back.
	require.NoError(t, svc.MarkUsed(ctx, 1, ticket.ID, false))
}

func TestRequestRefund_RoundTrip(t *testing.T) {
	ctx := context.Background()
	price := decimal.New(1, 17)

	store := newFakeStore()
	store.addUser(1, domain.RoleOrganizer)
	store.addUser(2, domain.RoleUser)
	store.fund(2, price)

	event := seedEvent(store, 1, price, 10, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	svc := newTicketService(store, testNow)

	ticket, err := svc.MintTicket(ctx, 2, event.ID, price)
	require.NoError(t, err)
	assert.True(t, store.balances[2].IsZero())

	refunded, err := svc.RequestRefund(ctx, 2, ticket.ID)
	require.NoError(t, err)
	assert.True(t, refunded.Equal(price), "refund returns exactly the mint price")
	assert.True(t, store.balances[2].Equal(price))

	_, err = svc.GetTicket(ctx, ticket.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound), "a refunded ticket is burned")

	assert.Equal(t, uint(1), store.events[event.ID].TicketsSold, "capacity stays consumed after the refund")
}

func TestRequestRefund_ClosesAtStartTime(t *testing.T) {
	ctx := context.Background()
	price := decimal.New(1, 17)

	store := newFakeStore()
	store.addUser(1, domain.RoleOrganizer)
	store.addUser(2, domain.RoleUser)
	store.fund(2, price)

	event := seedEvent(store, 1, price, 10, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	svc := newTicketService(store, testNow)

	ticket, err := svc.MintTicket(ctx, 2, event.ID, price)
	require.NoError(t, err)

	started := newTicketService(store, event.StartTime)
	_, err = started.RequestRefund(ctx, 2, ticket.ID)
	require.True(t, apperror.IsKind(err, apperror.KindState))
	assert.EqualError(t, apperror.AsError(err), "Refund period has ended")
}
