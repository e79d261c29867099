package domain

import "time"

// MarketConfig is the single admin-owned policy record every marketplace
// operation reads within its own transaction. The marketplace deploys
// paused; Initialize flips it live exactly once.
type MarketConfig struct {
	ID                  uint      `json:"id"`
	FeeRecipientID      uint      `json:"fee_recipient_id"`
	PlatformFeeBps      uint      `json:"platform_fee_bps"`
	EnforcePriceCeiling bool      `json:"enforce_price_ceiling"`
	Paused              bool      `json:"paused"`
	Initialized         bool      `json:"initialized"`
	EscrowAccountID     uint      `json:"escrow_account_id"`
	Version             uint      `json:"version"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// MaxRoyaltyBps caps per-event royalties at 10%.
const MaxRoyaltyBps = 1000

// BpsDenominator is the basis-point divisor for fee arithmetic.
const BpsDenominator = 10000

// PriceCeilingMultiplier caps resale prices at this multiple of the
// original mint price while ceiling enforcement is on.
const PriceCeilingMultiplier = 2
