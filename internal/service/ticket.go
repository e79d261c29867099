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
	ErrTicketNotFound = repository.ErrTicketNotFound
	ErrNotTicketOwner = repository.ErrNotTicketOwner
	ErrEventSoldOut   = repository.ErrEventSoldOut
)

type TicketRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Ticket, error)
	FindByOwnerID(ctx context.Context, ownerID uint) ([]domain.Ticket, error)
	Mint(ctx context.Context, eventID, buyerID uint, payment decimal.Decimal) (domain.Ticket, error)
	UpdateOwner(ctx context.Context, id, fromID, toID uint) error
	SetUsed(ctx context.Context, id uint, used bool) error
	Refund(ctx context.Context, id, ownerID uint) (decimal.Decimal, error)
}

type TicketEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type TicketLedgerService struct {
	repo      TicketRepository
	eventRepo TicketEventRepository
	users     CapabilityRepository
	cache     EventCache
	publisher events.Publisher
	now       func() time.Time
}

func NewTicketLedgerService(repo TicketRepository, eventRepo TicketEventRepository, users CapabilityRepository, cache EventCache, publisher events.Publisher) *TicketLedgerService {
	return &TicketLedgerService{
		repo:      repo,
		eventRepo: eventRepo,
		users:     users,
		cache:     cache,
		publisher: publisher,
		now:       time.Now,
	}
}

// MintTicket sells one ticket to the buyer for exactly the event's ticket
// price. The capacity guard is re-checked atomically in the repository, so
// the checks here only produce friendly failures before money moves.
func (s *TicketLedgerService) MintTicket(ctx context.Context, buyerID, eventID uint, payment decimal.Decimal) (domain.Ticket, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if !event.Active || event.Cancelled {
		return domain.Ticket{}, apperror.State("Event is not active")
	}
	if event.SoldOut() {
		return domain.Ticket{}, ErrEventSoldOut
	}
	if !payment.Equal(event.TicketPrice) {
		return domain.Ticket{}, apperror.Payment("Incorrect payment amount")
	}

	ticket, err := s.repo.Mint(ctx, eventID, buyerID, payment)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.Mint -> %w", err)
	}

	s.cache.Invalidate(ctx, eventID)
	s.publishTransfer(ctx, 0, buyerID, ticket.ID)

	return ticket, nil
}

// Transfer reassigns a ticket to another user. Transfers close permanently
// once the event starts, listed or not, used or not.
func (s *TicketLedgerService) Transfer(ctx context.Context, callerID, tokenID, toID uint) error {
	ticket, err := s.repo.FindByID(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if ticket.OwnerID != callerID {
		return ErrNotTicketOwner
	}

	event, err := s.eventRepo.FindByID(ctx, ticket.EventID)
	if err != nil {
		return fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}
	if event.HasStarted(s.now()) {
		return apperror.State("Transfers not allowed after event starts")
	}

	if _, err := s.users.FindByID(ctx, toID); err != nil {
		return fmt.Errorf("s.users.FindByID -> %w", err)
	}

	if err := s.repo.UpdateOwner(ctx, tokenID, callerID, toID); err != nil {
		return fmt.Errorf("s.repo.UpdateOwner -> %w", err)
	}

	s.publishTransfer(ctx, callerID, toID, tokenID)

	return nil
}

// MarkUsed records check-in state. Only the organizer of the ticket's event
// may flip it, in either direction; every flip is published for audit.
func (s *TicketLedgerService) MarkUsed(ctx context.Context, callerID, tokenID uint, used bool) error {
	ticket, err := s.repo.FindByID(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	event, err := s.eventRepo.FindByID(ctx, ticket.EventID)
	if err != nil {
		return fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}
	if event.OrganizerID != callerID {
		return apperror.Authorization("only the event organizer may mark tickets used")
	}

	if err := s.repo.SetUsed(ctx, tokenID, used); err != nil {
		return fmt.Errorf("s.repo.SetUsed -> %w", err)
	}

	if err := s.publisher.PublishTicketUsed(ctx, events.TicketUsed{
		TokenID:   tokenID,
		Used:      used,
		Timestamp: s.now(),
	}); err != nil {
		zap.L().Warn("failed to publish ticket used fact", zap.Uint("token_id", tokenID), zap.Error(err))
	}

	return nil
}

// RequestRefund burns the caller's ticket and returns the mint price. The
// refund window closes at the event's start time. Sold count is never
// reclaimed, so a refunded mint still consumes capacity.
func (s *TicketLedgerService) RequestRefund(ctx context.Context, callerID, tokenID uint) (decimal.Decimal, error) {
	ticket, err := s.repo.FindByID(ctx, tokenID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if ticket.OwnerID != callerID {
		return decimal.Zero, ErrNotTicketOwner
	}

	event, err := s.eventRepo.FindByID(ctx, ticket.EventID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}
	if event.HasStarted(s.now()) {
		return decimal.Zero, apperror.State("Refund period has ended")
	}

	refunded, err := s.repo.Refund(ctx, tokenID, callerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.repo.Refund -> %w", err)
	}

	s.cache.Invalidate(ctx, ticket.EventID)
	s.publishTransfer(ctx, callerID, 0, tokenID)

	return refunded, nil
}

func (s *TicketLedgerService) GetTicket(ctx context.Context, tokenID uint) (domain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, tokenID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return ticket, nil
}

func (s *TicketLedgerService) GetOwnerTickets(ctx context.Context, ownerID uint) ([]domain.Ticket, error) {
	tickets, err := s.repo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByOwnerID -> %w", err)
	}

	return tickets, nil
}

func (s *TicketLedgerService) publishTransfer(ctx context.Context, fromID, toID, tokenID uint) {
	if err := s.publisher.PublishTransfer(ctx, events.Transfer{
		FromID:    fromID,
		ToID:      toID,
		TokenID:   tokenID,
		Timestamp: s.now(),
	}); err != nil {
		zap.L().Warn("failed to publish transfer fact", zap.Uint("token_id", tokenID), zap.Error(err))
	}
}
