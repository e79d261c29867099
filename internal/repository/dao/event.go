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
	ErrEventNotFound      = apperror.NotFound("event not found")
	ErrEventCancelled     = apperror.State("Event already cancelled")
	ErrNothingToWithdraw  = apperror.State("Nothing to withdraw")
	ErrWithdrawBeforeEnd  = apperror.State("Event has not ended")
	ErrWithdrawNotAllowed = apperror.State("Cancelled event funds are reserved for refunds")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	OrganizerID uint   `gorm:"index;not null"`
	MetadataURI string `gorm:"not null"`

	StartTime time.Time `gorm:"not null"`
	EndTime   time.Time `gorm:"not null"`

	TicketPrice   decimal.Decimal `gorm:"type:numeric(78,0);not null"`
	MaxTickets    uint            `gorm:"not null"`
	TicketsSold   uint            `gorm:"not null;default:0"`
	EscrowBalance decimal.Decimal `gorm:"type:numeric(78,0);not null;default:0"`
	RoyaltyBps    uint            `gorm:"not null;default:0"`

	Active    bool `gorm:"not null;default:true"`
	Cancelled bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	event.Active = true
	event.Cancelled = false

	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// FindByOrganizerID returns the organizer's events in insertion order.
func (d *EventDAO) FindByOrganizerID(ctx context.Context, organizerID uint) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Order("id ASC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// UpdateSchedule mutates the schedule and metadata fields only. Capacity
// and price are immutable after creation.
func (d *EventDAO) UpdateSchedule(ctx context.Context, id uint, metadataURI string, startTime, endTime time.Time) (Event, error) {
	var event Event

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}

			return err
		}

		event.MetadataURI = metadataURI
		event.StartTime = startTime
		event.EndTime = endTime

		return tx.Save(&event).Error
	})
	if err != nil {
		return Event{}, err
	}

	return event, nil
}

// Cancel flips the event into its terminal cancelled state. The guard on
// cancelled = false keeps a second cancellation from double-counting.
func (d *EventDAO) Cancel(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Event{}).
		Where("id = ? AND cancelled = ?", id, false).
		Updates(map[string]any{"active": false, "cancelled": true})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := d.FindByID(ctx, id); err != nil {
			return err
		}

		return ErrEventCancelled
	}

	return nil
}

func (d *EventDAO) SetRoyaltyBps(ctx context.Context, id uint, bps uint) error {
	result := d.db.WithContext(ctx).Model(&Event{}).
		Where("id = ?", id).
		Update("royalty_bps", bps)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// WithdrawEscrow moves the event's remaining escrow balance to the
// organizer's wallet. Allowed only after the event has ended; a cancelled
// event keeps its escrow for refunds.
func (d *EventDAO) WithdrawEscrow(ctx context.Context, id uint, now time.Time) (decimal.Decimal, error) {
	var amount decimal.Decimal

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}

			return err
		}

		if event.Cancelled {
			return ErrWithdrawNotAllowed
		}
		if now.Before(event.EndTime) {
			return ErrWithdrawBeforeEnd
		}
		if event.EscrowBalance.IsZero() {
			return ErrNothingToWithdraw
		}

		amount = event.EscrowBalance
		if err := tx.Model(&Event{}).Where("id = ?", id).
			Update("escrow_balance", decimal.Zero).Error; err != nil {
			return err
		}

		if err := creditBalance(tx, event.OrganizerID, amount); err != nil {
			return err
		}

		return insertLedgerEntry(tx, LedgerEntry{
			Kind:    "Withdrawal",
			ToID:    &event.OrganizerID,
			EventID: &id,
			Amount:  amount,
		})
	})
	if err != nil {
		return decimal.Zero, err
	}

	return amount, nil
}
