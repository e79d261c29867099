package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is the registry record a ticket references. Capacity is fixed at
// creation; tickets_sold only grows, even across refunds. Cancellation is a
// terminal flag, never a row deletion.
type Event struct {
	ID            uint            `json:"id"`
	OrganizerID   uint            `json:"organizer_id"`
	MetadataURI   string          `json:"metadata_uri"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	TicketPrice   decimal.Decimal `json:"ticket_price"`
	MaxTickets    uint            `json:"max_tickets"`
	TicketsSold   uint            `json:"tickets_sold"`
	EscrowBalance decimal.Decimal `json:"escrow_balance"`
	RoyaltyBps    uint            `json:"royalty_bps"`
	Active        bool            `json:"active"`
	Cancelled     bool            `json:"cancelled"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (e Event) HasStarted(now time.Time) bool {
	return !now.Before(e.StartTime)
}

func (e Event) HasEnded(now time.Time) bool {
	return !now.Before(e.EndTime)
}

func (e Event) SoldOut() bool {
	return e.TicketsSold >= e.MaxTickets
}
