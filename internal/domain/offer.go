package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is a buyer-initiated bid on a ticket, independent of any listing.
// At most one open offer per (token, offerer); the amount sits in
// marketplace escrow until the offer is accepted or cancelled.
type Offer struct {
	ID         uint            `json:"id"`
	OffererID  uint            `json:"offerer_id"`
	Collection string          `json:"collection"`
	TokenID    uint            `json:"token_id"`
	Amount     decimal.Decimal `json:"amount"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
}
