package domain

import "time"

// Ticket is a single admission right for one event. Ownership is exclusive:
// exactly one owner at any time, including the marketplace escrow account
// while listed. A refunded ticket is burned and stops resolving.
type Ticket struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	OwnerID   uint      `json:"owner_id"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
