package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ticketforge/ticketforge/internal/apperror"
	"github.com/ticketforge/ticketforge/internal/domain"
)

// fakeStore is an in-memory stand-in for the repository layer. It mirrors
// the database semantics the services rely on (capacity guard, custody
// moves, escrowed offers, config versioning) without a real backend. The
// per-repository views below adapt it to the service interfaces.
type fakeStore struct {
	users    map[uint]domain.User
	balances map[uint]decimal.Decimal
	events   map[uint]domain.Event
	eventIDs []uint
	tickets  map[uint]domain.Ticket
	listings map[string]domain.Listing
	offers   map[string]domain.Offer
	conf     domain.MarketConfig

	lastSale *domain.Sale
	nextID   uint
}

const fakeEscrowAccountID = 900

func newFakeStore() *fakeStore {
	s := &fakeStore{
		users:    make(map[uint]domain.User),
		balances: make(map[uint]decimal.Decimal),
		events:   make(map[uint]domain.Event),
		tickets:  make(map[uint]domain.Ticket),
		listings: make(map[string]domain.Listing),
		offers:   make(map[string]domain.Offer),
		conf: domain.MarketConfig{
			ID:                  1,
			FeeRecipientID:      fakeEscrowAccountID,
			PlatformFeeBps:      250,
			EnforcePriceCeiling: true,
			Paused:              true,
			Initialized:         false,
			EscrowAccountID:     fakeEscrowAccountID,
			Version:             1,
		},
		nextID: 1,
	}

	s.addUser(fakeEscrowAccountID, domain.RoleMarketplace)

	return s
}

func (s *fakeStore) addUser(id uint, role string) {
	s.users[id] = domain.User{
		ID:    id,
		Email: fmt.Sprintf("user%d@example.com", id),
		Role:  role,
	}
	s.balances[id] = decimal.Zero
}

func (s *fakeStore) fund(id uint, amount decimal.Decimal) {
	s.balances[id] = s.balances[id].Add(amount)
}

func (s *fakeStore) allocID() uint {
	id := s.nextID
	s.nextID++

	return id
}

func (s *fakeStore) debit(id uint, amount decimal.Decimal) error {
	if s.balances[id].LessThan(amount) {
		return apperror.Payment("insufficient wallet balance")
	}
	s.balances[id] = s.balances[id].Sub(amount)

	return nil
}

func (s *fakeStore) findEvent(id uint) (domain.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return domain.Event{}, apperror.NotFound("event not found")
	}

	return event, nil
}

func (s *fakeStore) findTicket(id uint) (domain.Ticket, error) {
	ticket, ok := s.tickets[id]
	if !ok {
		return domain.Ticket{}, apperror.NotFound("ticket not found")
	}

	return ticket, nil
}

func (s *fakeStore) paySplit(sale domain.Sale) {
	if sale.PlatformFee.IsPositive() {
		s.fund(sale.FeeRecipientID, sale.PlatformFee)
	}
	if sale.Royalty.IsPositive() {
		s.fund(sale.OrganizerID, sale.Royalty)
	}
	s.fund(sale.SellerID, sale.Proceeds)
}

func listingKey(collection string, tokenID uint) string {
	return fmt.Sprintf("%s/%d", collection, tokenID)
}

func offerKey(collection string, tokenID, offererID uint) string {
	return fmt.Sprintf("%s/%d/%d", collection, tokenID, offererID)
}

type fakeUserRepo struct{ s *fakeStore }

func (r fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := r.s.users[id]
	if !ok {
		return domain.User{}, apperror.NotFound("user not found")
	}
	user.Balance = r.s.balances[id]

	return user, nil
}

type fakeEventRepo struct{ s *fakeStore }

func (r fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = r.s.allocID()
	event.Active = true
	event.EscrowBalance = decimal.Zero
	r.s.events[event.ID] = event
	r.s.eventIDs = append(r.s.eventIDs, event.ID)

	return event, nil
}

func (r fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	return r.s.findEvent(id)
}

func (r fakeEventRepo) FindByOrganizerID(_ context.Context, organizerID uint) ([]domain.Event, error) {
	var out []domain.Event
	for _, id := range r.s.eventIDs {
		if r.s.events[id].OrganizerID == organizerID {
			out = append(out, r.s.events[id])
		}
	}

	return out, nil
}

func (r fakeEventRepo) UpdateSchedule(_ context.Context, id uint, metadataURI string, startTime, endTime time.Time) (domain.Event, error) {
	event, err := r.s.findEvent(id)
	if err != nil {
		return domain.Event{}, err
	}

	event.MetadataURI = metadataURI
	event.StartTime = startTime
	event.EndTime = endTime
	r.s.events[id] = event

	return event, nil
}

func (r fakeEventRepo) Cancel(_ context.Context, id uint) error {
	event, err := r.s.findEvent(id)
	if err != nil {
		return err
	}
	if event.Cancelled {
		return apperror.State("event already cancelled")
	}

	event.Active = false
	event.Cancelled = true
	r.s.events[id] = event

	return nil
}

func (r fakeEventRepo) SetRoyaltyBps(_ context.Context, id uint, bps uint) error {
	event, err := r.s.findEvent(id)
	if err != nil {
		return err
	}

	event.RoyaltyBps = bps
	r.s.events[id] = event

	return nil
}

func (r fakeEventRepo) WithdrawEscrow(_ context.Context, id uint, now time.Time) (decimal.Decimal, error) {
	event, err := r.s.findEvent(id)
	if err != nil {
		return decimal.Zero, err
	}
	if event.Cancelled {
		return decimal.Zero, apperror.State("cancelled event escrow is reserved for refunds")
	}
	if now.Before(event.EndTime) {
		return decimal.Zero, apperror.State("event has not ended")
	}
	if !event.EscrowBalance.IsPositive() {
		return decimal.Zero, apperror.State("nothing to withdraw")
	}

	amount := event.EscrowBalance
	event.EscrowBalance = decimal.Zero
	r.s.events[id] = event
	r.s.fund(event.OrganizerID, amount)

	return amount, nil
}

type fakeTicketRepo struct{ s *fakeStore }

func (r fakeTicketRepo) FindByID(_ context.Context, id uint) (domain.Ticket, error) {
	return r.s.findTicket(id)
}

func (r fakeTicketRepo) FindByOwnerID(_ context.Context, ownerID uint) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range r.s.tickets {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}

	return out, nil
}

func (r fakeTicketRepo) Mint(_ context.Context, eventID, buyerID uint, payment decimal.Decimal) (domain.Ticket, error) {
	event, err := r.s.findEvent(eventID)
	if err != nil {
		return domain.Ticket{}, err
	}
	if !event.Active || event.Cancelled {
		return domain.Ticket{}, apperror.State("Event is not active")
	}
	if !payment.Equal(event.TicketPrice) {
		return domain.Ticket{}, apperror.Payment("Incorrect payment amount")
	}
	if event.SoldOut() {
		return domain.Ticket{}, apperror.State("Event sold out")
	}

	if err := r.s.debit(buyerID, payment); err != nil {
		return domain.Ticket{}, err
	}

	event.TicketsSold++
	event.EscrowBalance = event.EscrowBalance.Add(payment)
	r.s.events[eventID] = event

	ticket := domain.Ticket{
		ID:      r.s.allocID(),
		EventID: eventID,
		OwnerID: buyerID,
	}
	r.s.tickets[ticket.ID] = ticket

	return ticket, nil
}

func (r fakeTicketRepo) UpdateOwner(_ context.Context, id, fromID, toID uint) error {
	ticket, err := r.s.findTicket(id)
	if err != nil {
		return err
	}
	if ticket.OwnerID != fromID {
		return apperror.Authorization("Not token owner")
	}

	ticket.OwnerID = toID
	r.s.tickets[id] = ticket

	return nil
}

func (r fakeTicketRepo) SetUsed(_ context.Context, id uint, used bool) error {
	ticket, err := r.s.findTicket(id)
	if err != nil {
		return err
	}

	ticket.Used = used
	r.s.tickets[id] = ticket

	return nil
}

func (r fakeTicketRepo) Refund(_ context.Context, id, ownerID uint) (decimal.Decimal, error) {
	ticket, err := r.s.findTicket(id)
	if err != nil {
		return decimal.Zero, err
	}
	if ticket.OwnerID != ownerID {
		return decimal.Zero, apperror.Authorization("Not token owner")
	}

	event, err := r.s.findEvent(ticket.EventID)
	if err != nil {
		return decimal.Zero, err
	}

	refunded := event.TicketPrice
	event.EscrowBalance = event.EscrowBalance.Sub(refunded)
	r.s.events[event.ID] = event
	r.s.fund(ownerID, refunded)
	delete(r.s.tickets, id)

	return refunded, nil
}

type fakeMarketRepo struct{ s *fakeStore }

func (r fakeMarketRepo) GetConfig(context.Context) (domain.MarketConfig, error) {
	return r.s.conf, nil
}

func (r fakeMarketRepo) UpdateConfig(_ context.Context, conf domain.MarketConfig) error {
	if conf.Version != r.s.conf.Version {
		return apperror.State("config version conflict")
	}

	conf.Version++
	r.s.conf = conf

	return nil
}

func (r fakeMarketRepo) FindListing(_ context.Context, collection string, tokenID uint) (domain.Listing, error) {
	listing, ok := r.s.listings[listingKey(collection, tokenID)]
	if !ok || !listing.Active {
		return domain.Listing{}, apperror.NotFound("listing not found")
	}

	return listing, nil
}

func (r fakeMarketRepo) CreateListing(_ context.Context, listing domain.Listing, escrowAccountID uint) (domain.Listing, error) {
	ticket, err := r.s.findTicket(listing.TokenID)
	if err != nil {
		return domain.Listing{}, err
	}
	if ticket.OwnerID != listing.SellerID {
		return domain.Listing{}, apperror.Authorization("Not token owner")
	}

	ticket.OwnerID = escrowAccountID
	r.s.tickets[ticket.ID] = ticket

	listing.ID = r.s.allocID()
	listing.Active = true
	r.s.listings[listingKey(listing.Collection, listing.TokenID)] = listing

	return listing, nil
}

func (r fakeMarketRepo) CancelListing(_ context.Context, collection string, tokenID, sellerID, escrowAccountID uint) error {
	key := listingKey(collection, tokenID)

	listing, ok := r.s.listings[key]
	if !ok || !listing.Active {
		return apperror.State("Listing not active")
	}
	if listing.SellerID != sellerID {
		return apperror.Authorization("not the seller")
	}

	listing.Active = false
	r.s.listings[key] = listing

	ticket := r.s.tickets[tokenID]
	ticket.OwnerID = sellerID
	r.s.tickets[tokenID] = ticket

	return nil
}

func (r fakeMarketRepo) ExecuteSale(_ context.Context, sale domain.Sale) error {
	key := listingKey(sale.Collection, sale.TokenID)

	listing, ok := r.s.listings[key]
	if !ok || !listing.Active {
		return apperror.State("Listing not active")
	}

	if err := r.s.debit(sale.BuyerID, sale.Price); err != nil {
		return err
	}

	listing.Active = false
	r.s.listings[key] = listing
	r.s.paySplit(sale)

	ticket := r.s.tickets[sale.TokenID]
	ticket.OwnerID = sale.BuyerID
	r.s.tickets[sale.TokenID] = ticket

	saleCopy := sale
	r.s.lastSale = &saleCopy

	return nil
}

func (r fakeMarketRepo) CreateOffer(_ context.Context, offer domain.Offer) (domain.Offer, error) {
	key := offerKey(offer.Collection, offer.TokenID, offer.OffererID)
	if existing, ok := r.s.offers[key]; ok && existing.Active {
		return domain.Offer{}, apperror.State("offer already exists")
	}

	if err := r.s.debit(offer.OffererID, offer.Amount); err != nil {
		return domain.Offer{}, err
	}

	offer.ID = r.s.allocID()
	offer.Active = true
	r.s.offers[key] = offer

	return offer, nil
}

func (r fakeMarketRepo) FindOffer(_ context.Context, collection string, tokenID, offererID uint) (domain.Offer, error) {
	offer, ok := r.s.offers[offerKey(collection, tokenID, offererID)]
	if !ok || !offer.Active {
		return domain.Offer{}, apperror.NotFound("offer not found")
	}

	return offer, nil
}

func (r fakeMarketRepo) CancelOffer(_ context.Context, collection string, tokenID, offererID uint) (domain.Offer, error) {
	key := offerKey(collection, tokenID, offererID)

	offer, ok := r.s.offers[key]
	if !ok || !offer.Active {
		return domain.Offer{}, apperror.NotFound("offer not found")
	}

	offer.Active = false
	r.s.offers[key] = offer
	r.s.fund(offererID, offer.Amount)

	return offer, nil
}

func (r fakeMarketRepo) AcceptOffer(_ context.Context, offerID uint, sale domain.Sale, listingID *uint) error {
	var key string
	for k, o := range r.s.offers {
		if o.ID == offerID {
			key = k
		}
	}

	offer, ok := r.s.offers[key]
	if !ok || !offer.Active {
		return apperror.NotFound("offer not found")
	}

	offer.Active = false
	r.s.offers[key] = offer

	if listingID != nil {
		for k, l := range r.s.listings {
			if l.ID == *listingID {
				l.Active = false
				r.s.listings[k] = l
			}
		}
	}

	r.s.paySplit(sale)

	ticket := r.s.tickets[sale.TokenID]
	ticket.OwnerID = sale.BuyerID
	r.s.tickets[sale.TokenID] = ticket

	saleCopy := sale
	r.s.lastSale = &saleCopy

	return nil
}
