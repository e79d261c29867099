package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ticketforge/ticketforge/internal/apperror"
)

var (
	ErrUserEmailExists = apperror.Validation("user already exists")
	ErrUserNotFound    = apperror.NotFound("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Name string `gorm:"not null"`
	Role string `gorm:"not null"` // "user", "organizer", "admin", or "marketplace"

	Balance decimal.Decimal `gorm:"type:numeric(78,0);not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_users_email"`) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// Deposit credits a wallet and records the matching ledger entry in one
// transaction.
func (d *UserDAO) Deposit(ctx context.Context, userID uint, amount decimal.Decimal, reference string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := creditBalance(tx, userID, amount); err != nil {
			return err
		}

		return insertLedgerEntry(tx, LedgerEntry{
			Reference: reference,
			Kind:      "Deposit",
			ToID:      &userID,
			Amount:    amount,
		})
	})
}

// debitBalance subtracts amount from a wallet, guarded so the balance can
// never go negative. The guard doubles as the funds check: zero rows
// affected means the wallet cannot cover the amount.
func debitBalance(tx *gorm.DB, userID uint, amount decimal.Decimal) error {
	result := tx.Model(&User{}).
		Where("id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.Payment("insufficient wallet balance")
	}

	return nil
}

func creditBalance(tx *gorm.DB, userID uint, amount decimal.Decimal) error {
	result := tx.Model(&User{}).
		Where("id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
