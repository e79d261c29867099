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

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newEventService(store *fakeStore, now time.Time) *EventRegistryService {
	svc := NewEventRegistryService(fakeEventRepo{store}, fakeUserRepo{store}, cache.NopEventCache{}, events.NopPublisher{})
	svc.now = func() time.Time { return now }

	return svc
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()
	price := decimal.New(1, 17)

	store := newFakeStore()
	store.addUser(1, domain.RoleOrganizer)
	store.addUser(2, domain.RoleUser)

	svc := newEventService(store, testNow)

	t.Run("requires the organizer capability", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, 2, "ipfs://meta", testNow.Add(time.Hour), testNow.Add(2*time.Hour), price, 10)
		assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))
	})

	t.Run("rejects a start time in the past", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, 1, "ipfs://meta", testNow.Add(-time.Minute), testNow.Add(time.Hour), price, 10)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("rejects an end time before the start time", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, 1, "ipfs://meta", testNow.Add(2*time.Hour), testNow.Add(time.Hour), price, 10)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("rejects zero capacity", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, 1, "ipfs://meta", testNow.Add(time.Hour), testNow.Add(2*time.Hour), price, 0)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("creates and indexes by organizer in creation order", func(t *testing.T) {
		first, err := svc.CreateEvent(ctx, 1, "ipfs://first", testNow.Add(time.Hour), testNow.Add(2*time.Hour), price, 10)
		require.NoError(t, err)
		second, err := svc.CreateEvent(ctx, 1, "ipfs://second", testNow.Add(time.Hour), testNow.Add(2*time.Hour), price, 5)
		require.NoError(t, err)

		assert.Greater(t, second.ID, first.ID)
		assert.True(t, first.Active)

		listed, err := svc.GetOrganizerEvents(ctx, 1)
		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, first.ID, listed[0].ID)
		assert.Equal(t, second.ID, listed[1].ID)
	})
}

func TestUpdateEvent_OrganizerOnly(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore()
	store.addUser(1, domain.RoleOrganizer)
	store.addUser(2, domain.RoleUser)

	svc := newEventService(store, testNow)

	event, err := svc.CreateEvent(ctx, 1, "ipfs://meta", testNow.Add(time.Hour), testNow.Add(2*time.Hour), decimal.New(1, 17), 10)
	require.NoError(t, err)

	_, err = svc.UpdateEvent(ctx, 2, event.ID, "ipfs://other", testNow.Add(time.Hour), testNow.Add(3*time.Hour))
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))

	updated, err := svc.UpdateEvent(ctx, 1, event.ID, "ipfs://other", testNow.Add(time.Hour), testNow.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "ipfs://other", updated.MetadataURI)
	assert.Equal(t, event.MaxTickets, updated.MaxTickets)
}

func TestCancelEvent(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore()
	store.addUser(1, domain.RoleOrganizer)

	svc := newEventService(store, testNow)

	event, err := svc.CreateEvent(ctx, 1, "ipfs://meta", testNow.Add(time.Hour), testNow.Add(2*time.Hour), decimal.New(1, 17), 10)
	require.NoError(t, err)

	require.NoError(t, svc.CancelEvent(ctx, 1, event.ID))

	cancelled, err := svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, cancelled.Cancelled)
	assert.False(t, cancelled.Active)

	err = svc.CancelEvent(ctx, 1, event.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindState))
}

func TestWithdrawProceeds(t *testing.T) {
	ctx := context.Background()
	price := decimal.New(1, 17)

	store := newFakeStore()
	store.addUser(1, domain.RoleOrganizer)
	store.addUser(2, domain.RoleUser)
	store.fund(2, price)

	svc := newEventService(store, testNow)
	tickets := NewTicketLedgerService(fakeTicketRepo{store}, fakeEventRepo{store}, fakeUserRepo{store}, cache.NopEventCache{}, events.NopPublisher{})
	tickets.now = func() time.Time { return testNow }

	event, err := svc.CreateEvent(ctx, 1, "ipfs://meta", testNow.Add(time.Hour), testNow.Add(2*time.Hour), price, 10)
	require.NoError(t, err)

	_, err = tickets.MintTicket(ctx, 2, event.ID, price)
	require.NoError(t, err)

	_, err = svc.WithdrawProceeds(ctx, 1, event.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindState), "withdraw before the event ends must fail")

	after := newEventService(store, testNow.Add(3*time.Hour))
	amount, err := after.WithdrawProceeds(ctx, 1, event.ID)
	require.NoError(t, err)
	assert.True(t, amount.Equal(price))
	assert.True(t, store.balances[1].Equal(price))

	_, err = after.WithdrawProceeds(ctx, 1, event.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindState), "second withdraw has nothing left")
}
