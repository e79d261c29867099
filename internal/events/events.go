// Package events publishes the engine's observable facts for off-core
// consumers: indexers, the web UI, and the notification pipeline. Facts
// are emitted after the owning transaction commits and are best-effort;
// the engine's state is authoritative.
package events

import "time"

const (
	TopicEventCreated = "ticketforge.event.created"
	TopicTransfer     = "ticketforge.ticket.transfer"
	TopicTicketUsed   = "ticketforge.ticket.used"
	TopicTicketListed = "ticketforge.market.listed"
	TopicTicketSold   = "ticketforge.market.sold"
	TopicOffer        = "ticketforge.market.offer"
)

type EventCreated struct {
	EventID     uint      `json:"event_id"`
	OrganizerID uint      `json:"organizer_id"`
	MetadataURI string    `json:"metadata_uri"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	TicketPrice string    `json:"ticket_price"`
	MaxTickets  uint      `json:"max_tickets"`
	Timestamp   time.Time `json:"timestamp"`
}

// Transfer covers mint (FromID 0), transfer, and burn (ToID 0).
type Transfer struct {
	FromID    uint      `json:"from_id"`
	ToID      uint      `json:"to_id"`
	TokenID   uint      `json:"token_id"`
	Timestamp time.Time `json:"timestamp"`
}

type TicketUsed struct {
	TokenID   uint      `json:"token_id"`
	Used      bool      `json:"used"`
	Timestamp time.Time `json:"timestamp"`
}

type TicketListed struct {
	Collection string    `json:"collection"`
	TokenID    uint      `json:"token_id"`
	SellerID   uint      `json:"seller_id"`
	Price      string    `json:"price"`
	Timestamp  time.Time `json:"timestamp"`
}

type TicketSold struct {
	Collection string    `json:"collection"`
	TokenID    uint      `json:"token_id"`
	SellerID   uint      `json:"seller_id"`
	BuyerID    uint      `json:"buyer_id"`
	Price      string    `json:"price"`
	Timestamp  time.Time `json:"timestamp"`
}

const (
	OfferMade      = "made"
	OfferAccepted  = "accepted"
	OfferCancelled = "cancelled"
)

type OfferEvent struct {
	Action     string    `json:"action"` // "made", "accepted", or "cancelled"
	Collection string    `json:"collection"`
	TokenID    uint      `json:"token_id"`
	OffererID  uint      `json:"offerer_id"`
	Amount     string    `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}
