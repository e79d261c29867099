package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ticketforge/ticketforge/internal/apperror"
)

var (
	ErrTicketNotFound  = apperror.NotFound("ticket not found")
	ErrNotTicketOwner  = apperror.Authorization("Not token owner")
	ErrEventNotActive  = apperror.State("Event is not active")
	ErrEventSoldOut    = apperror.State("Event sold out")
	ErrWrongPayment    = apperror.Payment("Incorrect payment amount")
	ErrEscrowUnderflow = apperror.State("event escrow cannot cover refund")
)

type Ticket struct {
	ID uint `gorm:"primaryKey"`

	EventID uint `gorm:"index;not null"`
	OwnerID uint `gorm:"index;not null"`
	Used    bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

func (d *TicketDAO) FindByID(ctx context.Context, id uint) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByOwnerID(ctx context.Context, ownerID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// Mint sells one ticket against the event's capacity. The whole sale is a
// single transaction: the capacity check-and-increment is one guarded
// UPDATE, so two concurrent mints can never both take the last slot.
func (d *TicketDAO) Mint(ctx context.Context, eventID, buyerID uint, payment decimal.Decimal) (Ticket, error) {
	var ticket Ticket

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}

			return err
		}

		if !event.Active || event.Cancelled {
			return ErrEventNotActive
		}
		if !payment.Equal(event.TicketPrice) {
			return ErrWrongPayment
		}

		result := tx.Model(&Event{}).
			Where("id = ? AND tickets_sold < max_tickets", eventID).
			Updates(map[string]any{
				"tickets_sold":   gorm.Expr("tickets_sold + 1"),
				"escrow_balance": gorm.Expr("escrow_balance + ?", payment),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventSoldOut
		}

		if err := debitBalance(tx, buyerID, payment); err != nil {
			return err
		}

		ticket = Ticket{
			EventID: eventID,
			OwnerID: buyerID,
		}
		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}

		return insertLedgerEntry(tx, LedgerEntry{
			Kind:    "Mint",
			FromID:  &buyerID,
			EventID: &eventID,
			TokenID: &ticket.ID,
			Amount:  payment,
		})
	})
	if err != nil {
		return Ticket{}, err
	}

	return ticket, nil
}

// UpdateOwner reassigns a ticket, guarded on the expected current owner so
// a concurrent transfer or listing loses cleanly.
func (d *TicketDAO) UpdateOwner(ctx context.Context, id, fromID, toID uint) error {
	result := d.db.WithContext(ctx).Model(&Ticket{}).
		Where("id = ? AND owner_id = ?", id, fromID).
		Update("owner_id", toID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := d.FindByID(ctx, id); err != nil {
			return err
		}

		return ErrNotTicketOwner
	}

	return nil
}

func (d *TicketDAO) SetUsed(ctx context.Context, id uint, used bool) error {
	result := d.db.WithContext(ctx).Model(&Ticket{}).
		Where("id = ?", id).
		Update("used", used)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}

	return nil
}

// Refund burns the ticket and pays the mint price back out of the event's
// escrow. Sold count is not reclaimed: a refunded mint permanently
// consumes capacity.
func (d *TicketDAO) Refund(ctx context.Context, id, ownerID uint) (decimal.Decimal, error) {
	var refunded decimal.Decimal

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket Ticket
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ticket, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}

			return err
		}
		if ticket.OwnerID != ownerID {
			return ErrNotTicketOwner
		}

		var event Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, ticket.EventID).Error; err != nil {
			return err
		}

		refunded = event.TicketPrice

		result := tx.Model(&Event{}).
			Where("id = ? AND escrow_balance >= ?", event.ID, refunded).
			Update("escrow_balance", gorm.Expr("escrow_balance - ?", refunded))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEscrowUnderflow
		}

		if err := creditBalance(tx, ownerID, refunded); err != nil {
			return err
		}

		if err := tx.Delete(&Ticket{}, id).Error; err != nil {
			return err
		}

		return insertLedgerEntry(tx, LedgerEntry{
			Kind:    "Refund",
			ToID:    &ownerID,
			EventID: &ticket.EventID,
			TokenID: &id,
			Amount:  refunded,
		})
	})
	if err != nil {
		return decimal.Zero, err
	}

	return refunded, nil
}
