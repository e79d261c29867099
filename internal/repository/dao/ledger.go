package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LedgerEntry struct {
	ID        uint   `gorm:"primaryKey"`
	Reference string `gorm:"not null;index"`
	Kind      string `gorm:"not null"`
	FromID    *uint  `gorm:"index"`
	ToID      *uint  `gorm:"index"`
	EventID   *uint
	TokenID   *uint
	Amount    decimal.Decimal `gorm:"type:numeric(78,0);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

type LedgerDAO struct {
	db *gorm.DB
}

func NewLedgerDAO(db *gorm.DB) *LedgerDAO {
	return &LedgerDAO{
		db: db,
	}
}

func (d *LedgerDAO) FindByUserID(ctx context.Context, userID uint, limit int) ([]LedgerEntry, error) {
	var entries []LedgerEntry

	result := d.db.WithContext(ctx).
		Where("from_id = ? OR to_id = ?", userID, userID).
		Order("id DESC").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// insertLedgerEntry records one fund movement. Callers pass it the same tx
// that performs the movement so the audit row commits with it.
func insertLedgerEntry(tx *gorm.DB, entry LedgerEntry) error {
	if entry.Reference == "" {
		entry.Reference = uuid.NewString()
	}

	return tx.Create(&entry).Error
}
