package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ticketforge/ticketforge/internal/apperror"
	"github.com/ticketforge/ticketforge/internal/domain"
	"github.com/ticketforge/ticketforge/internal/events"
	"github.com/ticketforge/ticketforge/internal/repository"
)

var (
	ErrListingNotFound  = repository.ErrListingNotFound
	ErrListingNotActive = repository.ErrListingNotActive
	ErrOfferNotFound    = repository.ErrOfferNotFound
	ErrOfferExists      = repository.ErrOfferExists
)

var bpsDenominator = decimal.NewFromInt(domain.BpsDenominator)

type MarketplaceRepository interface {
	GetConfig(ctx context.Context) (domain.MarketConfig, error)
	UpdateConfig(ctx context.Context, conf domain.MarketConfig) error
	FindListing(ctx context.Context, collection string, tokenID uint) (domain.Listing, error)
	CreateListing(ctx context.Context, listing domain.Listing, escrowAccountID uint) (domain.Listing, error)
	CancelListing(ctx context.Context, collection string, tokenID, sellerID, escrowAccountID uint) error
	ExecuteSale(ctx context.Context, sale domain.Sale) error
	CreateOffer(ctx context.Context, offer domain.Offer) (domain.Offer, error)
	FindOffer(ctx context.Context, collection string, tokenID, offererID uint) (domain.Offer, error)
	CancelOffer(ctx context.Context, collection string, tokenID, offererID uint) (domain.Offer, error)
	AcceptOffer(ctx context.Context, offerID uint, sale domain.Sale, listingID *uint) error
}

type MarketplaceTicketRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Ticket, error)
}

type MarketplaceEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	SetRoyaltyBps(ctx context.Context, id uint, bps uint) error
}

type MarketplaceService struct {
	repo       MarketplaceRepository
	ticketRepo MarketplaceTicketRepository
	eventRepo  MarketplaceEventRepository
	users      CapabilityRepository
	cache      EventCache
	publisher  events.Publisher
	now        func() time.Time
}

func NewMarketplaceService(repo MarketplaceRepository, ticketRepo MarketplaceTicketRepository, eventRepo MarketplaceEventRepository, users CapabilityRepository, cache EventCache, publisher events.Publisher) *MarketplaceService {
	return &MarketplaceService{
		repo:       repo,
		ticketRepo: ticketRepo,
		eventRepo:  eventRepo,
		users:      users,
		cache:      cache,
		publisher:  publisher,
		now:        time.Now,
	}
}

// ListTicket escrows the caller's ticket with the marketplace and opens a
// listing. OriginalPrice snapshots the mint price so the ceiling check
// stays stable across later policy flips.
func (s *MarketplaceService) ListTicket(ctx context.Context, sellerID uint, collection string, tokenID uint, price decimal.Decimal) (domain.Listing, error) {
	conf, err := s.liveConfig(ctx)
	if err != nil {
		return domain.Listing{}, err
	}

	ticket, err := s.ticketRepo.FindByID(ctx, tokenID)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("s.ticketRepo.FindByID -> %w", err)
	}
	if ticket.OwnerID != sellerID {
		return domain.Listing{}, apperror.Authorization("Not token owner")
	}

	event, err := s.eventRepo.FindByID(ctx, ticket.EventID)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}
	if event.HasEnded(s.now()) {
		return domain.Listing{}, apperror.State("Event has ended")
	}

	if !price.IsPositive() || !price.IsInteger() {
		return domain.Listing{}, apperror.Validation("price must be a positive integer wei value")
	}
	if conf.EnforcePriceCeiling {
		ceiling := event.TicketPrice.Mul(decimal.NewFromInt(domain.PriceCeilingMultiplier))
		if price.GreaterThan(ceiling) {
			return domain.Listing{}, apperror.State("Price exceeds maximum allowed")
		}
	}

	listing, err := s.repo.CreateListing(ctx, domain.Listing{
		SellerID:      sellerID,
		Collection:    collection,
		TokenID:       tokenID,
		EventID:       ticket.EventID,
		Price:         price,
		OriginalPrice: event.TicketPrice,
		ListedAt:      s.now(),
	}, conf.EscrowAccountID)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("s.repo.CreateListing -> %w", err)
	}

	if err := s.publisher.PublishTicketListed(ctx, events.TicketListed{
		Collection: collection,
		TokenID:    tokenID,
		SellerID:   sellerID,
		Price:      price.String(),
		Timestamp:  s.now(),
	}); err != nil {
		zap.L().Warn("failed to publish ticket listed fact", zap.Uint("token_id", tokenID), zap.Error(err))
	}

	return listing, nil
}

// CancelListing closes the listing and returns ticket custody to the
// seller. No fee is charged.
func (s *MarketplaceService) CancelListing(ctx context.Context, sellerID uint, collection string, tokenID uint) error {
	conf, err := s.liveConfig(ctx)
	if err != nil {
		return err
	}

	if err := s.repo.CancelListing(ctx, collection, tokenID, sellerID, conf.EscrowAccountID); err != nil {
		return fmt.Errorf("s.repo.CancelListing -> %w", err)
	}

	return nil
}

// BuyTicket settles an active listing: the buyer pays exactly the asking
// price, the split pays the fee recipient, the organizer royalty, and the
// seller, and custody moves from escrow to the buyer, all in one
// transaction.
func (s *MarketplaceService) BuyTicket(ctx context.Context, buyerID uint, collection string, tokenID uint, payment decimal.Decimal) error {
	conf, err := s.liveConfig(ctx)
	if err != nil {
		return err
	}

	listing, err := s.repo.FindListing(ctx, collection, tokenID)
	if err != nil {
		return fmt.Errorf("s.repo.FindListing -> %w", err)
	}
	if !payment.Equal(listing.Price) {
		return apperror.Payment("Incorrect payment amount")
	}

	event, err := s.eventRepo.FindByID(ctx, listing.EventID)
	if err != nil {
		return fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	sale, err := s.computeSplit(listing.Price, conf, event)
	if err != nil {
		return err
	}
	sale.Collection = collection
	sale.TokenID = tokenID
	sale.SellerID = listing.SellerID
	sale.BuyerID = buyerID
	sale.EscrowHolderID = conf.EscrowAccountID
	sale.EventID = listing.EventID

	if err := s.repo.ExecuteSale(ctx, sale); err != nil {
		return fmt.Errorf("s.repo.ExecuteSale -> %w", err)
	}

	s.publishSold(ctx, collection, tokenID, listing.SellerID, buyerID, listing.Price)

	return nil
}

// MakeOffer escrows the offer amount from the offerer. One live offer per
// offerer per ticket; the funds stay locked until accept or cancel.
func (s *MarketplaceService) MakeOffer(ctx context.Context, offererID uint, collection string, tokenID uint, amount decimal.Decimal) (domain.Offer, error) {
	if _, err := s.liveConfig(ctx); err != nil {
		return domain.Offer{}, err
	}

	if !amount.IsPositive() || !amount.IsInteger() {
		return domain.Offer{}, apperror.Validation("offer amount must be a positive integer wei value")
	}

	ticket, err := s.ticketRepo.FindByID(ctx, tokenID)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("s.ticketRepo.FindByID -> %w", err)
	}
	if ticket.OwnerID == offererID {
		return domain.Offer{}, apperror.Validation("cannot offer on your own ticket")
	}

	offer, err := s.repo.CreateOffer(ctx, domain.Offer{
		OffererID:  offererID,
		Collection: collection,
		TokenID:    tokenID,
		Amount:     amount,
	})
	if err != nil {
		return domain.Offer{}, fmt.Errorf("s.repo.CreateOffer -> %w", err)
	}

	s.publishOffer(ctx, events.OfferMade, collection, tokenID, offererID, amount)

	return offer, nil
}

// CancelOffer closes the caller's open offer and refunds the escrowed
// amount to their wallet.
func (s *MarketplaceService) CancelOffer(ctx context.Context, offererID uint, collection string, tokenID uint) error {
	if _, err := s.liveConfig(ctx); err != nil {
		return err
	}

	offer, err := s.repo.CancelOffer(ctx, collection, tokenID, offererID)
	if err != nil {
		return fmt.Errorf("s.repo.CancelOffer -> %w", err)
	}

	s.publishOffer(ctx, events.OfferCancelled, collection, tokenID, offererID, offer.Amount)

	return nil
}

// AcceptOffer settles an open offer at its escrowed amount. The caller must
// hold the ticket, directly or as the seller behind an active listing; in
// the listed case the listing closes with the sale. Other open offers on
// the ticket stay open and remain cancellable by their offerers.
func (s *MarketplaceService) AcceptOffer(ctx context.Context, callerID uint, collection string, tokenID, offererID uint) error {
	conf, err := s.liveConfig(ctx)
	if err != nil {
		return err
	}

	offer, err := s.repo.FindOffer(ctx, collection, tokenID, offererID)
	if err != nil {
		return fmt.Errorf("s.repo.FindOffer -> %w", err)
	}

	ticket, err := s.ticketRepo.FindByID(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("s.ticketRepo.FindByID -> %w", err)
	}

	var (
		listingID    *uint
		escrowHolder uint
	)
	switch ticket.OwnerID {
	case conf.EscrowAccountID:
		listing, err := s.repo.FindListing(ctx, collection, tokenID)
		if err != nil {
			return fmt.Errorf("s.repo.FindListing -> %w", err)
		}
		if listing.SellerID != callerID {
			return apperror.Authorization("Not token owner")
		}
		id := listing.ID
		listingID = &id
		escrowHolder = conf.EscrowAccountID
	case callerID:
		escrowHolder = callerID
	default:
		return apperror.Authorization("Not token owner")
	}

	event, err := s.eventRepo.FindByID(ctx, ticket.EventID)
	if err != nil {
		return fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	sale, err := s.computeSplit(offer.Amount, conf, event)
	if err != nil {
		return err
	}
	sale.Collection = collection
	sale.TokenID = tokenID
	sale.SellerID = callerID
	sale.BuyerID = offererID
	sale.EscrowHolderID = escrowHolder
	sale.EventID = ticket.EventID

	if err := s.repo.AcceptOffer(ctx, offer.ID, sale, listingID); err != nil {
		return fmt.Errorf("s.repo.AcceptOffer -> %w", err)
	}

	s.publishOffer(ctx, events.OfferAccepted, collection, tokenID, offererID, offer.Amount)
	s.publishSold(ctx, collection, tokenID, callerID, offererID, offer.Amount)

	return nil
}

func (s *MarketplaceService) GetListing(ctx context.Context, collection string, tokenID uint) (domain.Listing, error) {
	listing, err := s.repo.FindListing(ctx, collection, tokenID)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("s.repo.FindListing -> %w", err)
	}

	return listing, nil
}

func (s *MarketplaceService) GetOffer(ctx context.Context, collection string, tokenID, offererID uint) (domain.Offer, error) {
	offer, err := s.repo.FindOffer(ctx, collection, tokenID, offererID)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("s.repo.FindOffer -> %w", err)
	}

	return offer, nil
}

func (s *MarketplaceService) GetConfig(ctx context.Context) (domain.MarketConfig, error) {
	conf, err := s.repo.GetConfig(ctx)
	if err != nil {
		return domain.MarketConfig{}, fmt.Errorf("s.repo.GetConfig -> %w", err)
	}

	return conf, nil
}

// Initialize unpauses a freshly deployed marketplace, once.
func (s *MarketplaceService) Initialize(ctx context.Context, callerID uint) error {
	conf, err := s.adminConfig(ctx, callerID)
	if err != nil {
		return err
	}
	if conf.Initialized {
		return apperror.State("marketplace already initialized")
	}

	conf.Paused = false
	conf.Initialized = true

	return s.updateConfig(ctx, conf)
}

func (s *MarketplaceService) SetFeeRecipient(ctx context.Context, callerID, recipientID uint) error {
	conf, err := s.adminConfig(ctx, callerID)
	if err != nil {
		return err
	}

	if _, err := s.users.FindByID(ctx, recipientID); err != nil {
		return fmt.Errorf("s.users.FindByID -> %w", err)
	}

	conf.FeeRecipientID = recipientID

	return s.updateConfig(ctx, conf)
}

func (s *MarketplaceService) SetFeeBasisPoints(ctx context.Context, callerID uint, bps uint) error {
	conf, err := s.adminConfig(ctx, callerID)
	if err != nil {
		return err
	}
	// The fee plus the maximum per-event royalty must never exceed the
	// sale price, or settlement would owe the seller a negative amount.
	if bps > domain.BpsDenominator-domain.MaxRoyaltyBps {
		return apperror.Validation("platform fee and maximum royalty cannot exceed 100% combined")
	}

	conf.PlatformFeeBps = bps

	return s.updateConfig(ctx, conf)
}

// SetEventRoyalty caps the per-event royalty at configuration time, never
// at sale time.
func (s *MarketplaceService) SetEventRoyalty(ctx context.Context, callerID, eventID uint, bps uint) error {
	if _, err := s.adminConfig(ctx, callerID); err != nil {
		return err
	}
	if bps > domain.MaxRoyaltyBps {
		return apperror.State("Royalty too high")
	}

	if err := s.eventRepo.SetRoyaltyBps(ctx, eventID, bps); err != nil {
		return fmt.Errorf("s.eventRepo.SetRoyaltyBps -> %w", err)
	}

	s.cache.Invalidate(ctx, eventID)

	return nil
}

func (s *MarketplaceService) TogglePriceCeiling(ctx context.Context, callerID uint) (bool, error) {
	conf, err := s.adminConfig(ctx, callerID)
	if err != nil {
		return false, err
	}

	conf.EnforcePriceCeiling = !conf.EnforcePriceCeiling
	if err := s.updateConfig(ctx, conf); err != nil {
		return false, err
	}

	return conf.EnforcePriceCeiling, nil
}

func (s *MarketplaceService) TogglePause(ctx context.Context, callerID uint) (bool, error) {
	conf, err := s.adminConfig(ctx, callerID)
	if err != nil {
		return false, err
	}

	conf.Paused = !conf.Paused
	if err := s.updateConfig(ctx, conf); err != nil {
		return false, err
	}

	return conf.Paused, nil
}

// computeSplit divides a sale price three ways with truncating division;
// what truncation shaves off the fee and royalty lands in the seller's
// proceeds, so the three amounts always sum to the price exactly. A
// policy combination that would owe the seller a negative amount fails
// the sale instead of settling.
func (s *MarketplaceService) computeSplit(price decimal.Decimal, conf domain.MarketConfig, event domain.Event) (domain.Sale, error) {
	fee, _ := price.Mul(decimal.NewFromInt(int64(conf.PlatformFeeBps))).QuoRem(bpsDenominator, 0)
	royalty, _ := price.Mul(decimal.NewFromInt(int64(event.RoyaltyBps))).QuoRem(bpsDenominator, 0)

	proceeds := price.Sub(fee).Sub(royalty)
	if proceeds.IsNegative() {
		return domain.Sale{}, apperror.State("fee and royalty exceed sale price")
	}

	return domain.Sale{
		Price:          price,
		PlatformFee:    fee,
		FeeRecipientID: conf.FeeRecipientID,
		Royalty:        royalty,
		OrganizerID:    event.OrganizerID,
		Proceeds:       proceeds,
	}, nil
}

func (s *MarketplaceService) liveConfig(ctx context.Context) (domain.MarketConfig, error) {
	conf, err := s.repo.GetConfig(ctx)
	if err != nil {
		return domain.MarketConfig{}, fmt.Errorf("s.repo.GetConfig -> %w", err)
	}
	if conf.Paused {
		return domain.MarketConfig{}, apperror.State("paused")
	}

	return conf, nil
}

func (s *MarketplaceService) adminConfig(ctx context.Context, callerID uint) (domain.MarketConfig, error) {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return domain.MarketConfig{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}
	if !caller.IsAdmin() {
		return domain.MarketConfig{}, apperror.Authorization("admin capability required")
	}

	conf, err := s.repo.GetConfig(ctx)
	if err != nil {
		return domain.MarketConfig{}, fmt.Errorf("s.repo.GetConfig -> %w", err)
	}

	return conf, nil
}

func (s *MarketplaceService) updateConfig(ctx context.Context, conf domain.MarketConfig) error {
	if err := s.repo.UpdateConfig(ctx, conf); err != nil {
		return fmt.Errorf("s.repo.UpdateConfig -> %w", err)
	}

	return nil
}

func (s *MarketplaceService) publishSold(ctx context.Context, collection string, tokenID, sellerID, buyerID uint, price decimal.Decimal) {
	if err := s.publisher.PublishTicketSold(ctx, events.TicketSold{
		Collection: collection,
		TokenID:    tokenID,
		SellerID:   sellerID,
		BuyerID:    buyerID,
		Price:      price.String(),
		Timestamp:  s.now(),
	}); err != nil {
		zap.L().Warn("failed to publish ticket sold fact", zap.Uint("token_id", tokenID), zap.Error(err))
	}
}

func (s *MarketplaceService) publishOffer(ctx context.Context, action, collection string, tokenID, offererID uint, amount decimal.Decimal) {
	if err := s.publisher.PublishOffer(ctx, events.OfferEvent{
		Action:     action,
		Collection: collection,
		TokenID:    tokenID,
		OffererID:  offererID,
		Amount:     amount.String(),
		Timestamp:  s.now(),
	}); err != nil {
		zap.L().Warn("failed to publish offer fact", zap.Uint("token_id", tokenID), zap.Error(err))
	}
}
