package repository

import (
	"context"
	"fmt"

	"github.com/ticketforge/ticketforge/internal/domain"
	"github.com/ticketforge/ticketforge/internal/repository/dao"
)

var (
	ErrListingNotFound  = dao.ErrListingNotFound
	ErrListingNotActive = dao.ErrListingNotActive
	ErrOfferNotFound    = dao.ErrOfferNotFound
	ErrOfferExists      = dao.ErrOfferExists
)

type MarketplaceDAO interface {
	GetConfig(ctx context.Context) (dao.MarketConfig, error)
	UpdateConfig(ctx context.Context, conf dao.MarketConfig) error
	FindListing(ctx context.Context, collection string, tokenID uint) (dao.Listing, error)
	CreateListing(ctx context.Context, listing dao.Listing, escrowAccountID uint) (dao.Listing, error)
	CancelListing(ctx context.Context, collection string, tokenID, sellerID, escrowAccountID uint) error
	ExecuteSale(ctx context.Context, sale dao.SaleParams) error
	CreateOffer(ctx context.Context, offer dao.Offer) (dao.Offer, error)
	FindOffer(ctx context.Context, collection string, tokenID, offererID uint) (dao.Offer, error)
	CancelOffer(ctx context.Context, collection string, tokenID, offererID uint) (dao.Offer, error)
	AcceptOffer(ctx context.Context, offerID uint, sale dao.SaleParams, listingID *uint) error
}

type MarketplaceRepository struct {
	dao MarketplaceDAO
}

func NewMarketplaceRepository(dao MarketplaceDAO) *MarketplaceRepository {
	return &MarketplaceRepository{
		dao: dao,
	}
}

func (r *MarketplaceRepository) GetConfig(ctx context.Context) (domain.MarketConfig, error) {
	conf, err := r.dao.GetConfig(ctx)
	if err != nil {
		return domain.MarketConfig{}, fmt.Errorf("r.dao.GetConfig -> %w", err)
	}

	return r.configDaoToDomain(conf), nil
}

func (r *MarketplaceRepository) UpdateConfig(ctx context.Context, conf domain.MarketConfig) error {
	err := r.dao.UpdateConfig(ctx, dao.MarketConfig{
		ID:                  conf.ID,
		FeeRecipientID:      conf.FeeRecipientID,
		PlatformFeeBps:      conf.PlatformFeeBps,
		EnforcePriceCeiling: conf.EnforcePriceCeiling,
		Paused:              conf.Paused,
		Initialized:         conf.Initialized,
		EscrowAccountID:     conf.EscrowAccountID,
		Version:             conf.Version,
	})
	if err != nil {
		return fmt.Errorf("r.dao.UpdateConfig -> %w", err)
	}

	return nil
}

func (r *MarketplaceRepository) FindListing(ctx context.Context, collection string, tokenID uint) (domain.Listing, error) {
	listing, err := r.dao.FindListing(ctx, collection, tokenID)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("r.dao.FindListing -> %w", err)
	}

	return r.listingDaoToDomain(listing), nil
}

func (r *MarketplaceRepository) CreateListing(ctx context.Context, listing domain.Listing, escrowAccountID uint) (domain.Listing, error) {
	created, err := r.dao.CreateListing(ctx, dao.Listing{
		SellerID:      listing.SellerID,
		Collection:    listing.Collection,
		TokenID:       listing.TokenID,
		EventID:       listing.EventID,
		Price:         listing.Price,
		OriginalPrice: listing.OriginalPrice,
		ListedAt:      listing.ListedAt,
	}, escrowAccountID)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("r.dao.CreateListing -> %w", err)
	}

	return r.listingDaoToDomain(created), nil
}

func (r *MarketplaceRepository) CancelListing(ctx context.Context, collection string, tokenID, sellerID, escrowAccountID uint) error {
	if err := r.dao.CancelListing(ctx, collection, tokenID, sellerID, escrowAccountID); err != nil {
		return fmt.Errorf("r.dao.CancelListing -> %w", err)
	}

	return nil
}

func (r *MarketplaceRepository) ExecuteSale(ctx context.Context, sale domain.Sale) error {
	if err := r.dao.ExecuteSale(ctx, r.saleDomainToDao(sale)); err != nil {
		return fmt.Errorf("r.dao.ExecuteSale -> %w", err)
	}

	return nil
}

func (r *MarketplaceRepository) CreateOffer(ctx context.Context, offer domain.Offer) (domain.Offer, error) {
	created, err := r.dao.CreateOffer(ctx, dao.Offer{
		OffererID:  offer.OffererID,
		Collection: offer.Collection,
		TokenID:    offer.TokenID,
		Amount:     offer.Amount,
	})
	if err != nil {
		return domain.Offer{}, fmt.Errorf("r.dao.CreateOffer -> %w", err)
	}

	return r.offerDaoToDomain(created), nil
}

func (r *MarketplaceRepository) FindOffer(ctx context.Context, collection string, tokenID, offererID uint) (domain.Offer, error) {
	offer, err := r.dao.FindOffer(ctx, collection, tokenID, offererID)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("r.dao.FindOffer -> %w", err)
	}

	return r.offerDaoToDomain(offer), nil
}

func (r *MarketplaceRepository) CancelOffer(ctx context.Context, collection string, tokenID, offererID uint) (domain.Offer, error) {
	offer, err := r.dao.CancelOffer(ctx, collection, tokenID, offererID)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("r.dao.CancelOffer -> %w", err)
	}

	return r.offerDaoToDomain(offer), nil
}

func (r *MarketplaceRepository) AcceptOffer(ctx context.Context, offerID uint, sale domain.Sale, listingID *uint) error {
	if err := r.dao.AcceptOffer(ctx, offerID, r.saleDomainToDao(sale), listingID); err != nil {
		return fmt.Errorf("r.dao.AcceptOffer -> %w", err)
	}

	return nil
}

func (r *MarketplaceRepository) saleDomainToDao(sale domain.Sale) dao.SaleParams {
	return dao.SaleParams{
		Collection:     sale.Collection,
		TokenID:        sale.TokenID,
		SellerID:       sale.SellerID,
		BuyerID:        sale.BuyerID,
		Price:          sale.Price,
		PlatformFee:    sale.PlatformFee,
		FeeRecipientID: sale.FeeRecipientID,
		Royalty:        sale.Royalty,
		OrganizerID:    sale.OrganizerID,
		Proceeds:       sale.Proceeds,
		EscrowHolderID: sale.EscrowHolderID,
		EventID:        sale.EventID,
	}
}

func (r *MarketplaceRepository) configDaoToDomain(c dao.MarketConfig) domain.MarketConfig {
	return domain.MarketConfig{
		ID:                  c.ID,
		FeeRecipientID:      c.FeeRecipientID,
		PlatformFeeBps:      c.PlatformFeeBps,
		EnforcePriceCeiling: c.EnforcePriceCeiling,
		Paused:              c.Paused,
		Initialized:         c.Initialized,
		EscrowAccountID:     c.EscrowAccountID,
		Version:             c.Version,
		UpdatedAt:           c.UpdatedAt,
	}
}

func (r *MarketplaceRepository) listingDaoToDomain(l dao.Listing) domain.Listing {
	return domain.Listing{
		ID:            l.ID,
		SellerID:      l.SellerID,
		Collection:    l.Collection,
		TokenID:       l.TokenID,
		EventID:       l.EventID,
		Price:         l.Price,
		OriginalPrice: l.OriginalPrice,
		Active:        l.Active,
		ListedAt:      l.ListedAt,
	}
}

func (r *MarketplaceRepository) offerDaoToDomain(o dao.Offer) domain.Offer {
	return domain.Offer{
		ID:         o.ID,
		OffererID:  o.OffererID,
		Collection: o.Collection,
		TokenID:    o.TokenID,
		Amount:     o.Amount,
		Active:     o.Active,
		CreatedAt:  o.CreatedAt,
	}
}
