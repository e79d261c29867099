package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing is an escrowed resale. At most one active listing exists per
// (collection, token) pair; a listing terminates as sold or cancelled.
// OriginalPrice snapshots the mint price for price-ceiling checks.
type Listing struct {
	ID            uint            `json:"id"`
	SellerID      uint            `json:"seller_id"`
	Collection    string          `json:"collection"`
	TokenID       uint            `json:"token_id"`
	EventID       uint            `json:"event_id"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Active        bool            `json:"active"`
	ListedAt      time.Time       `json:"listed_at"`
}

// Sale carries the amounts of a settled purchase, computed by the
// marketplace service and applied atomically by the repository.
type Sale struct {
	Collection     string
	TokenID        uint
	SellerID       uint
	BuyerID        uint
	Price          decimal.Decimal
	PlatformFee    decimal.Decimal
	FeeRecipientID uint
	Royalty        decimal.Decimal
	OrganizerID    uint
	Proceeds       decimal.Decimal
	EscrowHolderID uint
	EventID        uint
}
