package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Event{},
		&Ticket{},
		&Listing{},
		&Offer{},
		&MarketConfig{},
		&LedgerEntry{},
	)
	if err != nil {
		return err
	}

	return seedMarketplace(db)
}

// seedMarketplace creates the system escrow account and the singleton
// policy record. The marketplace deploys paused; an admin must call
// initialize before any listing can be created.
func seedMarketplace(db *gorm.DB) error {
	escrow := User{
		Email:    "escrow@marketplace.internal",
		Password: "!locked",
		Name:     "Marketplace Escrow",
		Role:     "marketplace",
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&escrow).Error
	if err != nil {
		return err
	}
	if escrow.ID == 0 {
		if err := db.First(&escrow, "email = ?", escrow.Email).Error; err != nil {
			return err
		}
	}

	var count int64
	if err := db.Model(&MarketConfig{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	conf := MarketConfig{
		FeeRecipientID:      escrow.ID,
		PlatformFeeBps:      250,
		EnforcePriceCeiling: true,
		Paused:              true,
		Initialized:         false,
		EscrowAccountID:     escrow.ID,
		Version:             1,
	}

	return db.Create(&conf).Error
}
