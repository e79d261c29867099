package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LedgerEntryKind string

const (
	LedgerDeposit     LedgerEntryKind = "Deposit"
	LedgerMint        LedgerEntryKind = "Mint"
	LedgerRefund      LedgerEntryKind = "Refund"
	LedgerProceeds    LedgerEntryKind = "SaleProceeds"
	LedgerPlatformFee LedgerEntryKind = "PlatformFee"
	LedgerRoyalty     LedgerEntryKind = "Royalty"
	LedgerOfferEscrow LedgerEntryKind = "OfferEscrow"
	LedgerOfferRefund LedgerEntryKind = "OfferRefund"
	LedgerWithdrawal  LedgerEntryKind = "Withdrawal"
)

// LedgerEntry is an immutable audit record of one fund movement. Every
// debit or credit the engine performs writes one, inside the same
// transaction as the movement itself.
type LedgerEntry struct {
	ID        uint            `json:"id"`
	Reference string          `json:"reference"`
	Kind      LedgerEntryKind `json:"kind"`
	FromID    *uint           `json:"from_id,omitempty"`
	ToID      *uint           `json:"to_id,omitempty"`
	EventID   *uint           `json:"event_id,omitempty"`
	TokenID   *uint           `json:"token_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}
