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
	ErrEventNotFound     = repository.ErrEventNotFound
	ErrEventCancelled    = repository.ErrEventCancelled
	ErrNothingToWithdraw = repository.ErrNothingToWithdraw
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindByOrganizerID(ctx context.Context, organizerID uint) ([]domain.Event, error)
	UpdateSchedule(ctx context.Context, id uint, metadataURI string, startTime, endTime time.Time) (domain.Event, error)
	Cancel(ctx context.Context, id uint) error
	WithdrawEscrow(ctx context.Context, id uint, now time.Time) (decimal.Decimal, error)
}

type EventCache interface {
	Get(ctx context.Context, eventID uint) (domain.Event, bool)
	Set(ctx context.Context, event domain.Event)
	Invalidate(ctx context.Context, eventID uint)
}

type CapabilityRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type EventRegistryService struct {
	repo      EventRepository
	users     CapabilityRepository
	cache     EventCache
	publisher events.Publisher
	now       func() time.Time
}

func NewEventRegistryService(repo EventRepository, users CapabilityRepository, cache EventCache, publisher events.Publisher) *EventRegistryService {
	return &EventRegistryService{
		repo:      repo,
		users:     users,
		cache:     cache,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateEvent registers an event for an organizer. Capacity and price are
// immutable after creation; only schedule and metadata can change later.
func (s *EventRegistryService) CreateEvent(ctx context.Context, organizerID uint, metadataURI string, startTime, endTime time.Time, ticketPrice decimal.Decimal, maxTickets uint) (domain.Event, error) {
	organizer, err := s.users.FindByID(ctx, organizerID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}
	if !organizer.IsOrganizer() {
		return domain.Event{}, apperror.Authorization("organizer capability required")
	}

	now := s.now()
	if !startTime.After(now) {
		return domain.Event{}, apperror.Validation("start time must be in the future")
	}
	if !endTime.After(startTime) {
		return domain.Event{}, apperror.Validation("end time must be after start time")
	}
	if maxTickets == 0 {
		return domain.Event{}, apperror.Validation("max tickets must be greater than zero")
	}
	if ticketPrice.IsNegative() || !ticketPrice.IsInteger() {
		return domain.Event{}, apperror.Validation("ticket price must be a non-negative integer wei value")
	}

	created, err := s.repo.Create(ctx, domain.Event{
		OrganizerID: organizerID,
		MetadataURI: metadataURI,
		StartTime:   startTime,
		EndTime:     endTime,
		TicketPrice: ticketPrice,
		MaxTickets:  maxTickets,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if err := s.publisher.PublishEventCreated(ctx, events.EventCreated{
		EventID:     created.ID,
		OrganizerID: created.OrganizerID,
		MetadataURI: created.MetadataURI,
		StartTime:   created.StartTime,
		EndTime:     created.EndTime,
		TicketPrice: created.TicketPrice.String(),
		MaxTickets:  created.MaxTickets,
		Timestamp:   now,
	}); err != nil {
		zap.L().Warn("failed to publish event created fact", zap.Uint("event_id", created.ID), zap.Error(err))
	}

	return created, nil
}

// UpdateEvent changes an event's metadata and schedule. Sold tickets are not
// re-validated against the new schedule.
func (s *EventRegistryService) UpdateEvent(ctx context.Context, callerID, eventID uint, metadataURI string, startTime, endTime time.Time) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if event.OrganizerID != callerID {
		return domain.Event{}, apperror.Authorization("only the event organizer may update the event")
	}
	if !endTime.After(startTime) {
		return domain.Event{}, apperror.Validation("end time must be after start time")
	}

	updated, err := s.repo.UpdateSchedule(ctx, eventID, metadataURI, startTime, endTime)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.UpdateSchedule -> %w", err)
	}

	s.cache.Invalidate(ctx, eventID)

	return updated, nil
}

// CancelEvent flags the event cancelled. Outstanding tickets are not
// refunded here; refunds stay a per-ticket operation.
func (s *EventRegistryService) CancelEvent(ctx context.Context, callerID, eventID uint) error {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if event.OrganizerID != callerID {
		return apperror.Authorization("only the event organizer may cancel the event")
	}

	if err := s.repo.Cancel(ctx, eventID); err != nil {
		return fmt.Errorf("s.repo.Cancel -> %w", err)
	}

	s.cache.Invalidate(ctx, eventID)

	return nil
}

func (s *EventRegistryService) GetEvent(ctx context.Context, eventID uint) (domain.Event, error) {
	if event, ok := s.cache.Get(ctx, eventID); ok {
		return event, nil
	}

	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	s.cache.Set(ctx, event)

	return event, nil
}

func (s *EventRegistryService) GetOrganizerEvents(ctx context.Context, organizerID uint) ([]domain.Event, error) {
	found, err := s.repo.FindByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByOrganizerID -> %w", err)
	}

	return found, nil
}

// WithdrawProceeds pays the event's remaining escrow out to the organizer
// once the event has ended. Cancelled events cannot withdraw; their escrow
// stays reserved for refunds.
func (s *EventRegistryService) WithdrawProceeds(ctx context.Context, callerID, eventID uint) (decimal.Decimal, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if event.OrganizerID != callerID {
		return decimal.Zero, apperror.Authorization("only the event organizer may withdraw proceeds")
	}

	amount, err := s.repo.WithdrawEscrow(ctx, eventID, s.now())
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.repo.WithdrawEscrow -> %w", err)
	}

	s.cache.Invalidate(ctx, eventID)

	return amount, nil
}
