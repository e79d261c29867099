package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ticketforge/ticketforge/internal/domain"
	"github.com/ticketforge/ticketforge/internal/repository/dao"
)

var (
	ErrTicketNotFound = dao.ErrTicketNotFound
	ErrNotTicketOwner = dao.ErrNotTicketOwner
	ErrEventSoldOut   = dao.ErrEventSoldOut
)

type TicketDAO interface {
	FindByID(ctx context.Context, id uint) (dao.Ticket, error)
	FindByOwnerID(ctx context.Context, ownerID uint) ([]dao.Ticket, error)
	Mint(ctx context.Context, eventID, buyerID uint, payment decimal.Decimal) (dao.Ticket, error)
	UpdateOwner(ctx context.Context, id, fromID, toID uint) error
	SetUsed(ctx context.Context, id uint, used bool) error
	Refund(ctx context.Context, id, ownerID uint) (decimal.Decimal, error)
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (domain.Ticket, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TicketRepository) FindByOwnerID(ctx context.Context, ownerID uint) ([]domain.Ticket, error) {
	tickets, err := r.dao.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOwnerID -> %w", err)
	}

	out := make([]domain.Ticket, len(tickets))
	for i, t := range tickets {
		out[i] = r.daoToDomain(t)
	}

	return out, nil
}

func (r *TicketRepository) Mint(ctx context.Context, eventID, buyerID uint, payment decimal.Decimal) (domain.Ticket, error) {
	minted, err := r.dao.Mint(ctx, eventID, buyerID, payment)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.Mint -> %w", err)
	}

	return r.daoToDomain(minted), nil
}

func (r *TicketRepository) UpdateOwner(ctx context.Context, id, fromID, toID uint) error {
	if err := r.dao.UpdateOwner(ctx, id, fromID, toID); err != nil {
		return fmt.Errorf("r.dao.UpdateOwner -> %w", err)
	}

	return nil
}

func (r *TicketRepository) SetUsed(ctx context.Context, id uint, used bool) error {
	if err := r.dao.SetUsed(ctx, id, used); err != nil {
		return fmt.Errorf("r.dao.SetUsed -> %w", err)
	}

	return nil
}

func (r *TicketRepository) Refund(ctx context.Context, id, ownerID uint) (decimal.Decimal, error) {
	refunded, err := r.dao.Refund(ctx, id, ownerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.dao.Refund -> %w", err)
	}

	return refunded, nil
}

func (r *TicketRepository) daoToDomain(t dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:        t.ID,
		EventID:   t.EventID,
		OwnerID:   t.OwnerID,
		Used:      t.Used,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
