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
	ErrListingNotFound  = apperror.NotFound("listing not found")
	ErrListingNotActive = apperror.State("Listing not active")
	ErrNotSeller        = apperror.Authorization("Not the seller")
	ErrOfferNotFound    = apperror.NotFound("offer not found")
	ErrOfferNotActive   = apperror.State("Offer not active")
	ErrOfferExists      = apperror.State("Offer already exists")
	ErrConfigConflict   = apperror.State("configuration was modified concurrently")
	ErrConfigMissing    = apperror.State("marketplace configuration not seeded")
)

type Listing struct {
	ID uint `gorm:"primaryKey"`

	SellerID   uint   `gorm:"index;not null"`
	Collection string `gorm:"index:idx_listings_token;not null"`
	TokenID    uint   `gorm:"index:idx_listings_token;not null"`
	EventID    uint   `gorm:"index;not null"`

	Price         decimal.Decimal `gorm:"type:numeric(78,0);not null"`
	OriginalPrice decimal.Decimal `gorm:"type:numeric(78,0);not null"`

	Active   bool      `gorm:"not null;default:true"`
	ListedAt time.Time `gorm:"not null"`
}

type Offer struct {
	ID uint `gorm:"primaryKey"`

	OffererID  uint   `gorm:"index;not null"`
	Collection string `gorm:"index:idx_offers_token;not null"`
	TokenID    uint   `gorm:"index:idx_offers_token;not null"`

	Amount decimal.Decimal `gorm:"type:numeric(78,0);not null"`

	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
}

type MarketConfig struct {
	ID uint `gorm:"primaryKey"`

	FeeRecipientID      uint `gorm:"not null"`
	PlatformFeeBps      uint `gorm:"not null;default:0"`
	EnforcePriceCeiling bool `gorm:"not null;default:true"`
	Paused              bool `gorm:"not null;default:true"`
	Initialized         bool `gorm:"not null;default:false"`
	EscrowAccountID     uint `gorm:"not null"`
	Version             uint `gorm:"not null;default:1"`

	UpdatedAt time.Time `gorm:"not null"`
}

func (MarketConfig) TableName() string {
	return "market_configs"
}

// SaleParams carries the split amounts of one settled sale. The service
// computes them; the DAO only moves funds and custody atomically.
type SaleParams struct {
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

type MarketplaceDAO struct {
	db *gorm.DB
}

func NewMarketplaceDAO(db *gorm.DB) *MarketplaceDAO {
	return &MarketplaceDAO{
		db: db,
	}
}

func (d *MarketplaceDAO) GetConfig(ctx context.Context) (MarketConfig, error) {
	var conf MarketConfig

	result := d.db.WithContext(ctx).First(&conf)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return MarketConfig{}, ErrConfigMissing
		}

		return MarketConfig{}, result.Error
	}

	return conf, nil
}

// UpdateConfig writes the policy record guarded on its version, so two
// admins racing a change cannot silently overwrite each other.
func (d *MarketplaceDAO) UpdateConfig(ctx context.Context, conf MarketConfig) error {
	result := d.db.WithContext(ctx).Model(&MarketConfig{}).
		Where("id = ? AND version = ?", conf.ID, conf.Version).
		Updates(map[string]any{
			"fee_recipient_id":      conf.FeeRecipientID,
			"platform_fee_bps":      conf.PlatformFeeBps,
			"enforce_price_ceiling": conf.EnforcePriceCeiling,
			"paused":                conf.Paused,
			"initialized":           conf.Initialized,
			"version":               gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConfigConflict
	}

	return nil
}

func (d *MarketplaceDAO) FindListing(ctx context.Context, collection string, tokenID uint) (Listing, error) {
	var listing Listing

	result := d.db.WithContext(ctx).
		Where("collection = ? AND token_id = ? AND active = ?", collection, tokenID, true).
		First(&listing)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Listing{}, ErrListingNotFound
		}

		return Listing{}, result.Error
	}

	return listing, nil
}

// CreateListing escrows the ticket and opens the listing in one
// transaction. The owner-guarded custody move is the uniqueness guarantee:
// once the escrow account owns the ticket, a second listing attempt fails
// the owner check.
func (d *MarketplaceDAO) CreateListing(ctx context.Context, listing Listing, escrowAccountID uint) (Listing, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Ticket{}).
			Where("id = ? AND owner_id = ?", listing.TokenID, listing.SellerID).
			Update("owner_id", escrowAccountID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotTicketOwner
		}

		listing.Active = true

		return tx.Create(&listing).Error
	})
	if err != nil {
		return Listing{}, err
	}

	return listing, nil
}

// CancelListing returns custody to the seller. The active flag flips under
// a row lock so a racing purchase settles exactly one way.
func (d *MarketplaceDAO) CancelListing(ctx context.Context, collection string, tokenID, sellerID, escrowAccountID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing Listing
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND token_id = ? AND active = ?", collection, tokenID, true).
			First(&listing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotActive
			}

			return err
		}
		if listing.SellerID != sellerID {
			return ErrNotSeller
		}

		if err := tx.Model(&Listing{}).Where("id = ?", listing.ID).
			Update("active", false).Error; err != nil {
			return err
		}

		result := tx.Model(&Ticket{}).
			Where("id = ? AND owner_id = ?", tokenID, escrowAccountID).
			Update("owner_id", sellerID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTicketNotFound
		}

		return nil
	})
}

// ExecuteSale settles a listed purchase: buyer debit, three-way credit,
// custody to the buyer, listing closed. All of it commits or none of it
// does.
func (d *MarketplaceDAO) ExecuteSale(ctx context.Context, sale SaleParams) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Listing{}).
			Where("collection = ? AND token_id = ? AND active = ?", sale.Collection, sale.TokenID, true).
			Update("active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrListingNotActive
		}

		if err := debitBalance(tx, sale.BuyerID, sale.Price); err != nil {
			return err
		}

		if err := d.paySplit(tx, sale); err != nil {
			return err
		}

		custody := tx.Model(&Ticket{}).
			Where("id = ? AND owner_id = ?", sale.TokenID, sale.EscrowHolderID).
			Update("owner_id", sale.BuyerID)
		if custody.Error != nil {
			return custody.Error
		}
		if custody.RowsAffected == 0 {
			return ErrTicketNotFound
		}

		return nil
	})
}

// CreateOffer escrows the offer amount from the offerer's wallet and opens
// the offer. One live offer per offerer per ticket.
func (d *MarketplaceDAO) CreateOffer(ctx context.Context, offer Offer) (Offer, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Offer{}).
			Where("collection = ? AND token_id = ? AND offerer_id = ? AND active = ?",
				offer.Collection, offer.TokenID, offer.OffererID, true).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrOfferExists
		}

		if err := debitBalance(tx, offer.OffererID, offer.Amount); err != nil {
			return err
		}

		offer.Active = true
		if err := tx.Create(&offer).Error; err != nil {
			return err
		}

		return insertLedgerEntry(tx, LedgerEntry{
			Kind:    "OfferEscrow",
			FromID:  &offer.OffererID,
			TokenID: &offer.TokenID,
			Amount:  offer.Amount,
		})
	})
	if err != nil {
		return Offer{}, err
	}

	return offer, nil
}

func (d *MarketplaceDAO) FindOffer(ctx context.Context, collection string, tokenID, offererID uint) (Offer, error) {
	var offer Offer

	result := d.db.WithContext(ctx).
		Where("collection = ? AND token_id = ? AND offerer_id = ? AND active = ?",
			collection, tokenID, offererID, true).
		First(&offer)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Offer{}, ErrOfferNotFound
		}

		return Offer{}, result.Error
	}

	return offer, nil
}

// CancelOffer closes the offer and releases its escrow back to the
// offerer.
func (d *MarketplaceDAO) CancelOffer(ctx context.Context, collection string, tokenID, offererID uint) (Offer, error) {
	var offer Offer

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND token_id = ? AND offerer_id = ? AND active = ?",
				collection, tokenID, offererID, true).
			First(&offer).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOfferNotFound
			}

			return err
		}

		if err := tx.Model(&Offer{}).Where("id = ?", offer.ID).
			Update("active", false).Error; err != nil {
			return err
		}

		if err := creditBalance(tx, offererID, offer.Amount); err != nil {
			return err
		}

		return insertLedgerEntry(tx, LedgerEntry{
			Kind:    "OfferRefund",
			ToID:    &offererID,
			TokenID: &tokenID,
			Amount:  offer.Amount,
		})
	})
	if err != nil {
		return Offer{}, err
	}

	return offer, nil
}

// AcceptOffer settles a bid: the escrowed amount is split, custody moves
// to the offerer, and the accepter's own listing (if the ticket was
// escrowed under one) closes in the same transaction. Other open offers on
// the ticket stay live with their escrow intact.
func (d *MarketplaceDAO) AcceptOffer(ctx context.Context, offerID uint, sale SaleParams, listingID *uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Offer{}).
			Where("id = ? AND active = ?", offerID, true).
			Update("active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOfferNotActive
		}

		if listingID != nil {
			closed := tx.Model(&Listing{}).
				Where("id = ? AND active = ?", *listingID, true).
				Update("active", false)
			if closed.Error != nil {
				return closed.Error
			}
			if closed.RowsAffected == 0 {
				return ErrListingNotActive
			}
		}

		// The offer amount was debited when the offer opened, so
		// settlement only credits the three recipients.
		if err := d.paySplit(tx, sale); err != nil {
			return err
		}

		custody := tx.Model(&Ticket{}).
			Where("id = ? AND owner_id = ?", sale.TokenID, sale.EscrowHolderID).
			Update("owner_id", sale.BuyerID)
		if custody.Error != nil {
			return custody.Error
		}
		if custody.RowsAffected == 0 {
			return ErrTicketNotFound
		}

		return nil
	})
}

// paySplit credits platform fee, royalty, and seller proceeds, with one
// ledger entry per non-zero leg.
func (d *MarketplaceDAO) paySplit(tx *gorm.DB, sale SaleParams) error {
	if sale.PlatformFee.IsPositive() {
		if err := creditBalance(tx, sale.FeeRecipientID, sale.PlatformFee); err != nil {
			return err
		}
		err := insertLedgerEntry(tx, LedgerEntry{
			Kind:    "PlatformFee",
			FromID:  &sale.BuyerID,
			ToID:    &sale.FeeRecipientID,
			EventID: &sale.EventID,
			TokenID: &sale.TokenID,
			Amount:  sale.PlatformFee,
		})
		if err != nil {
			return err
		}
	}

	if sale.Royalty.IsPositive() {
		if err := creditBalance(tx, sale.OrganizerID, sale.Royalty); err != nil {
			return err
		}
		err := insertLedgerEntry(tx, LedgerEntry{
			Kind:    "Royalty",
			FromID:  &sale.BuyerID,
			ToID:    &sale.OrganizerID,
			EventID: &sale.EventID,
			TokenID: &sale.TokenID,
			Amount:  sale.Royalty,
		})
		if err != nil {
			return err
		}
	}

	if err := creditBalance(tx, sale.SellerID, sale.Proceeds); err != nil {
		return err
	}

	return insertLedgerEntry(tx, LedgerEntry{
		Kind:    "SaleProceeds",
		FromID:  &sale.BuyerID,
		ToID:    &sale.SellerID,
		EventID: &sale.EventID,
		TokenID: &sale.TokenID,
		Amount:  sale.Proceeds,
	})
}
