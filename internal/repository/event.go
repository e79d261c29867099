package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ticketforge/ticketforge/internal/domain"
	"github.com/ticketforge/ticketforge/internal/repository/dao"
)

var (
	ErrEventNotFound     = dao.ErrEventNotFound
	ErrEventCancelled    = dao.ErrEventCancelled
	ErrNothingToWithdraw = dao.ErrNothingToWithdraw
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindByOrganizerID(ctx context.Context, organizerID uint) ([]dao.Event, error)
	UpdateSchedule(ctx context.Context, id uint, metadataURI string, startTime, endTime time.Time) (dao.Event, error)
	Cancel(ctx context.Context, id uint) error
	SetRoyaltyBps(ctx context.Context, id uint, bps uint) error
	WithdrawEscrow(ctx context.Context, id uint, now time.Time) (decimal.Decimal, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		OrganizerID: event.OrganizerID,
		MetadataURI: event.MetadataURI,
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
		TicketPrice: event.TicketPrice,
		MaxTickets:  event.MaxTickets,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindByOrganizerID(ctx context.Context, organizerID uint) ([]domain.Event, error) {
	events, err := r.dao.FindByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOrganizerID -> %w", err)
	}

	out := make([]domain.Event, len(events))
	for i, e := range events {
		out[i] = r.daoToDomain(e)
	}

	return out, nil
}

func (r *EventRepository) UpdateSchedule(ctx context.Context, id uint, metadataURI string, startTime, endTime time.Time) (domain.Event, error) {
	updated, err := r.dao.UpdateSchedule(ctx, id, metadataURI, startTime, endTime)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.UpdateSchedule -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) Cancel(ctx context.Context, id uint) error {
	if err := r.dao.Cancel(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Cancel -> %w", err)
	}

	return nil
}

func (r *EventRepository) SetRoyaltyBps(ctx context.Context, id uint, bps uint) error {
	if err := r.dao.SetRoyaltyBps(ctx, id, bps); err != nil {
		return fmt.Errorf("r.dao.SetRoyaltyBps -> %w", err)
	}

	return nil
}

func (r *EventRepository) WithdrawEscrow(ctx context.Context, id uint, now time.Time) (decimal.Decimal, error) {
	amount, err := r.dao.WithdrawEscrow(ctx, id, now)
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.dao.WithdrawEscrow -> %w", err)
	}

	return amount, nil
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:            e.ID,
		OrganizerID:   e.OrganizerID,
		MetadataURI:   e.MetadataURI,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		TicketPrice:   e.TicketPrice,
		MaxTickets:    e.MaxTickets,
		TicketsSold:   e.TicketsSold,
		EscrowBalance: e.EscrowBalance,
		RoyaltyBps:    e.RoyaltyBps,
		Active:        e.Active,
		Cancelled:     e.Cancelled,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
